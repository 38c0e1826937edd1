package memdict

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

type fileFormat struct {
	Version string `yaml:"version"`
	Synsets []struct {
		Offset    int64    `yaml:"offset"`
		POS       string   `yaml:"pos"`
		Words     []string `yaml:"words"`
		Gloss     string   `yaml:"gloss"`
		Hypernyms []int64  `yaml:"hypernyms"`
	} `yaml:"synsets"`
}

// LoadYAML loads a dictionary from a YAML file.
//
// Expected format:
//
//	version: "3.0"
//	synsets:
//	  - offset: 2084071
//	    pos: n
//	    words: [dog, domestic_dog]
//	    gloss: a member of the genus Canis
//	    hypernyms: [2083346, 1317541]
//
// Hypernyms are offsets within the same POS. Senses of a lemma are numbered
// in the order its synsets appear in the file.
func LoadYAML(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Load reads the YAML format described at LoadYAML.
func Load(r io.Reader) (*Dict, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}

	known := make(map[wordnet.SynsetID]bool, len(file.Synsets))
	for i, s := range file.Synsets {
		pos, ok := wordnet.POSForKey(s.POS)
		if !ok {
			return nil, fmt.Errorf("synset %d: pos %q: %w", i, s.POS, internalerr.ErrInvalidInput)
		}
		if s.Offset <= 0 {
			return nil, fmt.Errorf("synset %d: offset must be positive: %w", i, internalerr.ErrInvalidInput)
		}
		known[wordnet.SynsetID{POS: pos, Offset: s.Offset}] = true
	}

	dict := New(file.Version)
	for _, s := range file.Synsets {
		pos, _ := wordnet.POSForKey(s.POS)
		id := wordnet.SynsetID{POS: pos, Offset: s.Offset}

		hypernyms := make([]wordnet.SynsetID, 0, len(s.Hypernyms))
		for _, off := range s.Hypernyms {
			pid := wordnet.SynsetID{POS: pos, Offset: off}
			if !known[pid] {
				return nil, fmt.Errorf("synset %s: hypernym %s: %w", id, pid, internalerr.ErrInvalidInput)
			}
			hypernyms = append(hypernyms, pid)
		}

		dict.AddSynset(&wordnet.Synset{
			POS:    pos,
			Offset: s.Offset,
			Words:  s.Words,
			Gloss:  s.Gloss,
		}, hypernyms...)
	}

	return dict, nil
}
