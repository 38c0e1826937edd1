// Package domainmap maps arbitrary terms, such as domain vocabulary or named
// entity tags, directly onto synsets, bypassing dictionary lookup.
package domainmap

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

// LookupFunc resolves an encoded word to synsets.
type LookupFunc func(ctx context.Context, token string) ([]*wordnet.Synset, error)

// maxLineSize bounds a single mapping line.
const maxLineSize = 1024 * 1024

// Table maps a term to a non-empty set of synsets.
type Table struct {
	// term -> synsets, de-duplicated, in insertion order
	// Example: "namperson" -> [7890n]
	entries map[string][]*wordnet.Synset
}

// New creates an empty table.
func New() *Table {
	return &Table{entries: make(map[string][]*wordnet.Synset)}
}

// Add maps term to synsets, replacing any existing mapping. Empty sets are
// not stored; Add reports whether the mapping was kept.
func (t *Table) Add(term string, synsets []*wordnet.Synset) bool {
	seen := make(map[wordnet.SynsetID]struct{}, len(synsets))
	unique := make([]*wordnet.Synset, 0, len(synsets))
	for _, s := range synsets {
		if _, ok := seen[s.ID()]; ok {
			continue
		}
		seen[s.ID()] = struct{}{}
		unique = append(unique, s)
	}

	if len(unique) == 0 {
		return false
	}
	t.entries[term] = unique
	return true
}

// Lookup returns the synsets mapped to term. Any "#pos#sense" suffix is
// ignored, so "namperson#n#3" finds the mapping for "namperson".
func (t *Table) Lookup(term string) ([]*wordnet.Synset, bool) {
	synsets, ok := t.entries[wordnet.Term(term)]
	return synsets, ok
}

// Len returns the number of mapped terms.
func (t *Table) Len() int { return len(t.entries) }

// Terms returns the mapped terms in sorted order.
func (t *Table) Terms() []string {
	terms := make([]string, 0, len(t.entries))
	for term := range t.entries {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Load reads mappings into t.
//
// Format:
//
//	# comment
//	namperson person#n#1
//	nampet dog#n#1 cat#n#1
//
// Each target is resolved with lookup, which may consult t itself so later
// lines can refer to terms mapped earlier. A line whose target cannot be
// resolved is logged and skipped; a term that resolves to no synsets is
// dropped.
func (t *Table) Load(ctx context.Context, r io.Reader, lookup LookupFunc, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		if strings.HasPrefix(raw, "#") {
			continue
		}

		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		term, targets := fields[0], fields[1:]

		var mapped []*wordnet.Synset
		failed := false
		for _, target := range targets {
			synsets, err := lookup(ctx, target)
			if err != nil {
				logger.Warn("skipping malformed mapping line",
					"line", lineNum,
					"term", term,
					"target", target,
					"error", err)
				failed = true
				break
			}
			mapped = append(mapped, synsets...)
		}
		if failed {
			continue
		}

		if !t.Add(term, mapped) {
			logger.Debug("mapping resolved to no synsets", "line", lineNum, "term", term)
		}
	}

	return scanner.Err()
}
