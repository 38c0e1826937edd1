package similarity

import (
	"strconv"

	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

// Info describes the best-scoring synset pair for two words.
type Info struct {
	ID      string          `json:"id"`
	Word1   string          `json:"word1"`
	Word2   string          `json:"word2"`
	Synset1 *wordnet.Synset `json:"-"`
	Synset2 *wordnet.Synset `json:"-"`
	Desc1   string          `json:"sense1"`
	Desc2   string          `json:"sense2"`
	Score   float64         `json:"score"`
}

func (i *Info) String() string {
	return i.Desc1 + "  " + i.Desc2 + "  " + strconv.FormatFloat(i.Score, 'g', -1, 64)
}
