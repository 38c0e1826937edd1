// Package wordnet defines the view of the lexical database consumed by the
// similarity engine: parts of speech, synsets, index words and the
// Dictionary interface implemented by the concrete stores.
package wordnet

// POS is a WordNet part-of-speech tag.
type POS int

const (
	Noun POS = iota + 1
	Verb
	Adjective
	Adverb
)

// AllPOS lists every part of speech in lookup order.
var AllPOS = []POS{Noun, Verb, Adjective, Adverb}

var posKeys = map[POS]string{
	Noun:      "n",
	Verb:      "v",
	Adjective: "a",
	Adverb:    "r",
}

var posNames = map[POS]string{
	Noun:      "noun",
	Verb:      "verb",
	Adjective: "adjective",
	Adverb:    "adverb",
}

// Key returns the single character key used in encoded words and
// frequency files ("n", "v", "a", "r").
func (p POS) Key() string {
	return posKeys[p]
}

func (p POS) String() string {
	if name, ok := posNames[p]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether p is one of the known parts of speech.
func (p POS) Valid() bool {
	_, ok := posKeys[p]
	return ok
}

// POSForKey maps a key such as "n" back to its POS.
func POSForKey(key string) (POS, bool) {
	for pos, k := range posKeys {
		if k == key {
			return pos, true
		}
	}
	return 0, false
}
