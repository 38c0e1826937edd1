package similarity

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
)

// Terms are the inputs of a scoring formula. IC1 and IC2 are always
// positive when a formula is called.
type Terms struct {
	IC1           float64
	IC2           float64
	ICLCS         float64
	RootFrequency float64
}

// Formula turns information content values into a similarity score.
type Formula func(Terms) float64

// Definition registers a named measure.
type Definition struct {
	Name    string
	Aliases []string
	Formula Formula
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Definition)
)

// Register adds def under its name and aliases, matched case-insensitively.
// It panics if a name is already taken or def has no formula.
func Register(def Definition) {
	if def.Name == "" || def.Formula == nil {
		panic("similarity: Register requires a name and a formula")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	for _, name := range append([]string{def.Name}, def.Aliases...) {
		key := strings.ToLower(name)
		if _, dup := registry[key]; dup {
			panic("similarity: Register called twice for " + name)
		}
		registry[key] = def
	}
}

// Lookup resolves a measure name or alias.
func Lookup(name string) (Definition, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %w: %q", internalerr.ErrInvalidConfig, internalerr.ErrUnknownMeasure, name)
	}
	return def, nil
}

// Names returns the canonical names of all registered measures, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]struct{})
	var names []string
	for _, def := range registry {
		if _, ok := seen[def.Name]; ok {
			continue
		}
		seen[def.Name] = struct{}{}
		names = append(names, def.Name)
	}
	sort.Strings(names)
	return names
}
