package wordnet

import (
	"context"

	"github.com/surgebase/porter2"
)

// Lookup resolves an encoded word to its candidate synsets:
//   - "word": every sense of every entry for word, across all parts of speech
//   - "word#pos": every sense of the entry under pos
//   - "word#pos#n": only the n-th sense
//
// Unknown words and out-of-range senses yield an empty result, not an error.
func Lookup(ctx context.Context, dict Dictionary, token string) ([]*Synset, error) {
	tok, err := ParseToken(token)
	if err != nil {
		return nil, err
	}

	if !tok.HasPOS() {
		return lookupAll(ctx, dict, tok.Lemma)
	}

	iw, err := dict.IndexWord(ctx, tok.POS, tok.Lemma)
	if err != nil {
		return nil, err
	}
	if iw == nil {
		return nil, nil
	}

	if tok.HasSense() {
		s, ok := iw.Sense(tok.Sense)
		if !ok {
			return nil, nil
		}
		return []*Synset{s}, nil
	}

	return uniqueSynsets(iw.Senses), nil
}

func lookupAll(ctx context.Context, dict Dictionary, lemma string) ([]*Synset, error) {
	iws, err := dict.IndexWords(ctx, lemma)
	if err != nil {
		return nil, err
	}

	// Fall back to the stemmed form, e.g. "dogs" -> "dog"
	if len(iws) == 0 {
		if base := BaseForm(lemma); base != NormalizeLemma(lemma) {
			iws, err = dict.IndexWords(ctx, base)
			if err != nil {
				return nil, err
			}
		}
	}

	var all []*Synset
	for _, iw := range iws {
		all = append(all, iw.Senses...)
	}
	return uniqueSynsets(all), nil
}

// BaseForm returns the Porter2 stem of a normalized lemma.
func BaseForm(lemma string) string {
	return porter2.Stem(NormalizeLemma(lemma))
}

func uniqueSynsets(in []*Synset) []*Synset {
	seen := make(map[SynsetID]struct{}, len(in))
	out := make([]*Synset, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s.ID()]; ok {
			continue
		}
		seen[s.ID()] = struct{}{}
		out = append(out, s)
	}
	return out
}
