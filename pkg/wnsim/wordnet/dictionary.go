package wordnet

import "context"

// Dictionary is the lexical database the similarity engine reads from.
//
// Lookups of absent words return a nil IndexWord and a nil error.
type Dictionary interface {
	// Version is the WordNet version the data was built from, e.g. "3.0".
	Version() string

	// IndexWord returns the entry for lemma under pos.
	IndexWord(ctx context.Context, pos POS, lemma string) (*IndexWord, error)

	// IndexWords returns the entries for lemma under every part of speech.
	IndexWords(ctx context.Context, lemma string) ([]*IndexWord, error)

	// Hypernyms returns the direct hypernym parents of s.
	Hypernyms(ctx context.Context, s *Synset) ([]*Synset, error)
}
