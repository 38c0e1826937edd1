package wordnet

import (
	"strconv"
	"strings"
)

// SynsetID uniquely identifies a synset across all parts of speech.
type SynsetID struct {
	POS    POS
	Offset int64
}

// String renders the ID as offset followed by the POS key, e.g. "2084071n".
// This is the key format of information content files.
func (id SynsetID) String() string {
	return strconv.FormatInt(id.Offset, 10) + id.POS.Key()
}

// Synset is one concept node of the taxonomy.
type Synset struct {
	POS    POS
	Offset int64
	Words  []string
	Gloss  string
}

// ID returns the POS-qualified identity of the synset.
func (s *Synset) ID() SynsetID {
	return SynsetID{POS: s.POS, Offset: s.Offset}
}

// Key returns the identity key of the synset, unique within its POS.
func (s *Synset) Key() string {
	return strconv.FormatInt(s.Offset, 10)
}

// Equal compares synsets by identity.
func (s *Synset) Equal(o *Synset) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.POS == o.POS && s.Offset == o.Offset
}

func (s *Synset) String() string {
	return s.ID().String() + " [" + strings.Join(s.Words, ", ") + "]"
}

// IndexWord is a lemma under one part of speech together with its senses
// in sense-number order.
type IndexWord struct {
	Lemma  string
	POS    POS
	Senses []*Synset
}

// Sense returns the n-th sense (1-indexed).
func (iw *IndexWord) Sense(n int) (*Synset, bool) {
	if n < 1 || n > len(iw.Senses) {
		return nil, false
	}
	return iw.Senses[n-1], true
}

// SenseNumber returns the 1-indexed position of s among the senses of the
// word, or -1 if s is not a sense of it.
func (iw *IndexWord) SenseNumber(s *Synset) int {
	for i, sense := range iw.Senses {
		if sense.Equal(s) {
			return i + 1
		}
	}
	return -1
}

// NormalizeLemma lowercases a lemma and joins multi-word forms with
// underscores, as WordNet stores them.
func NormalizeLemma(lemma string) string {
	return strings.Join(strings.Fields(strings.ToLower(lemma)), "_")
}
