// Package memdict is an in-memory wordnet.Dictionary, loaded from a YAML
// fixture or populated programmatically. It backs tests, demos and small
// domain taxonomies.
package memdict

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

type entry struct {
	synset    *wordnet.Synset
	hypernyms []wordnet.SynsetID
}

// Dict is an in-memory implementation of wordnet.Dictionary.
type Dict struct {
	mu      sync.RWMutex
	version string
	order   []wordnet.SynsetID
	synsets map[wordnet.SynsetID]*entry
	// pos -> lemma -> senses in sense order
	index map[wordnet.POS]map[string][]wordnet.SynsetID
}

// New creates an empty dictionary reporting the given WordNet version.
func New(version string) *Dict {
	return &Dict{
		version: version,
		synsets: make(map[wordnet.SynsetID]*entry),
		index:   make(map[wordnet.POS]map[string][]wordnet.SynsetID),
	}
}

// AddSynset adds s with the given direct hypernyms. Every word of s becomes
// a sense of that lemma, numbered in insertion order. Re-adding a synset
// replaces its hypernyms but keeps existing sense numbering.
func (d *Dict) AddSynset(s *wordnet.Synset, hypernyms ...wordnet.SynsetID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := s.ID()
	cp := copySynset(s)
	for i, w := range cp.Words {
		cp.Words[i] = wordnet.NormalizeLemma(w)
	}

	if _, exists := d.synsets[id]; !exists {
		d.order = append(d.order, id)
	}
	d.synsets[id] = &entry{
		synset:    cp,
		hypernyms: append([]wordnet.SynsetID(nil), hypernyms...),
	}

	if d.index[s.POS] == nil {
		d.index[s.POS] = make(map[string][]wordnet.SynsetID)
	}
	for _, lemma := range cp.Words {
		senses := d.index[s.POS][lemma]
		if !containsID(senses, id) {
			d.index[s.POS][lemma] = append(senses, id)
		}
	}
}

// Version implements wordnet.Dictionary.
func (d *Dict) Version() string { return d.version }

// IndexWord implements wordnet.Dictionary.
func (d *Dict) IndexWord(ctx context.Context, pos wordnet.POS, lemma string) (*wordnet.IndexWord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.indexWordLocked(pos, wordnet.NormalizeLemma(lemma)), nil
}

// IndexWords implements wordnet.Dictionary.
func (d *Dict) IndexWords(ctx context.Context, lemma string) ([]*wordnet.IndexWord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	lemma = wordnet.NormalizeLemma(lemma)
	var out []*wordnet.IndexWord
	for _, pos := range wordnet.AllPOS {
		if iw := d.indexWordLocked(pos, lemma); iw != nil {
			out = append(out, iw)
		}
	}
	return out, nil
}

// Hypernyms implements wordnet.Dictionary.
func (d *Dict) Hypernyms(ctx context.Context, s *wordnet.Synset) ([]*wordnet.Synset, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.synsets[s.ID()]
	if !ok {
		return nil, nil
	}

	parents := make([]*wordnet.Synset, 0, len(e.hypernyms))
	for _, pid := range e.hypernyms {
		p, ok := d.synsets[pid]
		if !ok {
			return nil, fmt.Errorf("hypernym %s of %s: %w", pid, s.ID(), internalerr.ErrNotFound)
		}
		parents = append(parents, p.synset)
	}
	return parents, nil
}

// Synset returns the synset with the given ID.
func (d *Dict) Synset(id wordnet.SynsetID) (*wordnet.Synset, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.synsets[id]
	if !ok {
		return nil, false
	}
	return e.synset, true
}

// Synsets returns every synset in insertion order.
func (d *Dict) Synsets() []*wordnet.Synset {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*wordnet.Synset, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.synsets[id].synset)
	}
	return out
}

// HypernymIDs returns the direct hypernym IDs recorded for id.
func (d *Dict) HypernymIDs(id wordnet.SynsetID) []wordnet.SynsetID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if e, ok := d.synsets[id]; ok {
		return append([]wordnet.SynsetID(nil), e.hypernyms...)
	}
	return nil
}

// AllIndexWords returns every index word, ordered by POS then lemma.
func (d *Dict) AllIndexWords() []*wordnet.IndexWord {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*wordnet.IndexWord
	for _, pos := range wordnet.AllPOS {
		lemmas := make([]string, 0, len(d.index[pos]))
		for lemma := range d.index[pos] {
			lemmas = append(lemmas, lemma)
		}
		sort.Strings(lemmas)
		for _, lemma := range lemmas {
			out = append(out, d.indexWordLocked(pos, lemma))
		}
	}
	return out
}

// Stats returns statistics about the dictionary contents.
func (d *Dict) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := Stats{Synsets: len(d.synsets)}
	for _, lemmas := range d.index {
		stats.IndexWords += len(lemmas)
		for _, senses := range lemmas {
			stats.Senses += len(senses)
		}
	}
	for _, e := range d.synsets {
		stats.HypernymLinks += len(e.hypernyms)
	}
	return stats
}

// Stats holds statistics about dictionary contents.
type Stats struct {
	Synsets       int // Number of synsets
	IndexWords    int // Number of (lemma, POS) entries
	Senses        int // Total senses across all index words
	HypernymLinks int // Number of direct hypernym edges
}

func (d *Dict) indexWordLocked(pos wordnet.POS, lemma string) *wordnet.IndexWord {
	ids, ok := d.index[pos][lemma]
	if !ok || len(ids) == 0 {
		return nil
	}

	iw := &wordnet.IndexWord{
		Lemma:  lemma,
		POS:    pos,
		Senses: make([]*wordnet.Synset, 0, len(ids)),
	}
	for _, id := range ids {
		iw.Senses = append(iw.Senses, d.synsets[id].synset)
	}
	return iw
}

func copySynset(s *wordnet.Synset) *wordnet.Synset {
	cp := *s
	cp.Words = append([]string(nil), s.Words...)
	return &cp
}

func containsID(ids []wordnet.SynsetID, id wordnet.SynsetID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}
