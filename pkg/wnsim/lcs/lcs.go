// Package lcs finds the lowest common subsumer of two synsets: the common
// hypernym ancestor with the highest information content.
package lcs

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

// Hypernymer supplies the direct parents of a synset.
type Hypernymer interface {
	Hypernyms(ctx context.Context, s *wordnet.Synset) ([]*wordnet.Synset, error)
}

// ICSource supplies the information content of a synset.
type ICSource interface {
	IC(s *wordnet.Synset) float64
}

// Path is a root-ward chain of synsets, starting node first.
type Path []*wordnet.Synset

// Contains reports whether s is on the path.
func (p Path) Contains(s *wordnet.Synset) bool {
	for _, n := range p {
		if n.Equal(s) {
			return true
		}
	}
	return false
}

// Finder searches the hypernym graph for common subsumers.
type Finder struct {
	hypernyms  Hypernymer
	ic         ICSource
	singleRoot bool

	mu    sync.Mutex
	roots map[wordnet.POS]*wordnet.Synset
}

// NewFinder creates a finder. With singleRoot set, synsets of the same POS
// always share at least the virtual root of that POS.
func NewFinder(hypernyms Hypernymer, ic ICSource, singleRoot bool) *Finder {
	return &Finder{
		hypernyms:  hypernyms,
		ic:         ic,
		singleRoot: singleRoot,
		roots:      make(map[wordnet.POS]*wordnet.Synset),
	}
}

// SingleRoot reports whether the virtual root is enabled.
func (f *Finder) SingleRoot() bool { return f.singleRoot }

// Paths enumerates every maximal root-ward path from s. A synset without
// parents yields the single path [s].
func (f *Finder) Paths(ctx context.Context, s *wordnet.Synset) ([]Path, error) {
	var paths []Path
	if err := f.walk(ctx, Path{s}, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (f *Finder) walk(ctx context.Context, current Path, out *[]Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tip := current[len(current)-1]
	parents, err := f.hypernyms.Hypernyms(ctx, tip)
	if err != nil {
		return fmt.Errorf("hypernyms of %s: %w", tip.ID(), err)
	}

	extended := false
	for _, parent := range parents {
		// Cycle in the data
		if current.Contains(parent) {
			continue
		}
		next := make(Path, len(current)+1)
		copy(next, current)
		next[len(current)] = parent

		if err := f.walk(ctx, next, out); err != nil {
			return err
		}
		extended = true
	}

	if !extended {
		*out = append(*out, current)
	}
	return nil
}

// Candidates returns the potential common subsumers of s1 and s2. For each
// pair of paths, the first node of either path that also lies on the other
// is a candidate; both scan directions are taken.
func (f *Finder) Candidates(ctx context.Context, s1, s2 *wordnet.Synset) ([]*wordnet.Synset, error) {
	paths1, err := f.Paths(ctx, s1)
	if err != nil {
		return nil, err
	}
	paths2, err := f.Paths(ctx, s2)
	if err != nil {
		return nil, err
	}

	seen := make(map[wordnet.SynsetID]struct{})
	var candidates []*wordnet.Synset
	add := func(s *wordnet.Synset) {
		if _, ok := seen[s.ID()]; ok {
			return
		}
		seen[s.ID()] = struct{}{}
		candidates = append(candidates, s)
	}

	for _, p1 := range paths1 {
		for _, p2 := range paths2 {
			if s, ok := firstShared(p1, p2); ok {
				add(s)
			}
			if s, ok := firstShared(p2, p1); ok {
				add(s)
			}
		}
	}
	return candidates, nil
}

func firstShared(scan, other Path) (*wordnet.Synset, bool) {
	for _, n := range scan {
		if other.Contains(n) {
			return n, true
		}
	}
	return nil, false
}

// ByIC returns the common subsumer of s1 and s2 with the greatest
// information content; the first candidate found wins ties. When none
// exists it returns the virtual root of s1's POS if enabled, otherwise nil.
func (f *Finder) ByIC(ctx context.Context, s1, s2 *wordnet.Synset) (*wordnet.Synset, error) {
	candidates, err := f.Candidates(ctx, s1, s2)
	if err != nil {
		return nil, err
	}

	var best *wordnet.Synset
	bestIC := 0.0
	for _, c := range candidates {
		ic := f.ic.IC(c)
		if best == nil || ic > bestIC {
			best, bestIC = c, ic
		}
	}

	if best == nil && f.singleRoot {
		return f.VirtualRoot(s1.POS), nil
	}
	return best, nil
}

// VirtualRoot returns the synthetic root for pos. Repeated calls return the
// same synset.
func (f *Finder) VirtualRoot(pos wordnet.POS) *wordnet.Synset {
	f.mu.Lock()
	defer f.mu.Unlock()

	if root, ok := f.roots[pos]; ok {
		return root
	}
	root := &wordnet.Synset{POS: pos}
	f.roots[pos] = root
	return root
}

// IsVirtualRoot reports whether s is a synthetic root.
func IsVirtualRoot(s *wordnet.Synset) bool {
	return s != nil && s.Offset == 0 && len(s.Words) == 0
}
