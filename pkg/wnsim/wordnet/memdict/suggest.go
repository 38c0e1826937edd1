package memdict

import (
	"sort"

	"github.com/hbollon/go-edlib"

	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

// minSuggestScore is the Jaro-Winkler similarity below which a lemma is not
// offered as a suggestion.
const minSuggestScore = 0.8

// Suggest returns up to max known lemmas closest to lemma, best first.
func (d *Dict) Suggest(lemma string, max int) []string {
	lemma = wordnet.NormalizeLemma(lemma)
	if lemma == "" || max <= 0 {
		return nil
	}

	d.mu.RLock()
	seen := make(map[string]struct{})
	type scored struct {
		lemma string
		score float32
	}
	var candidates []scored
	for _, lemmas := range d.index {
		for candidate := range lemmas {
			if _, ok := seen[candidate]; ok || candidate == lemma {
				continue
			}
			seen[candidate] = struct{}{}

			score, err := edlib.StringsSimilarity(lemma, candidate, edlib.JaroWinkler)
			if err != nil || score < minSuggestScore {
				continue
			}
			candidates = append(candidates, scored{lemma: candidate, score: score})
		}
	}
	d.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].lemma < candidates[j].lemma
	})
	if len(candidates) > max {
		candidates = candidates[:max]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.lemma
	}
	return out
}
