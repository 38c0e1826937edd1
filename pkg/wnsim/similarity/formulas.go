package similarity

import "math"

// rootEpsilon is subtracted from the root frequency to turn a zero
// Jiang-Conrath distance into a large finite similarity.
const rootEpsilon = 0.01

func init() {
	Register(Definition{
		Name:    "jcn",
		Aliases: []string{"jiang-conrath", "jiangconrath"},
		Formula: JiangConrath,
	})
	Register(Definition{
		Name:    "lin",
		Formula: Lin,
	})
}

// JiangConrath scores 1/distance where distance = ic1 + ic2 - 2*icLCS.
// A zero distance scores 1/-ln((r-0.01)/r) for root frequency r, or 0 when
// r <= 0.01. Negative distances are returned as negative scores.
func JiangConrath(t Terms) float64 {
	distance := t.IC1 + t.IC2 - 2*t.ICLCS
	if distance != 0 {
		return 1 / distance
	}

	r := t.RootFrequency
	if r > rootEpsilon {
		return 1 / -math.Log((r-rootEpsilon)/r)
	}
	return 0
}

// Lin scores 2*icLCS / (ic1 + ic2).
func Lin(t Terms) float64 {
	return 2 * t.ICLCS / (t.IC1 + t.IC2)
}
