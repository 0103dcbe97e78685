package suggest

import "sort"

// Scorer rates a candidate's text for security risk in [0,1].
type Scorer interface {
	Score(text string) float64
}

// Combine weights, security-scores, ranks and truncates candidates.
// The input slice is not modified.
func Combine(candidates []Candidate, scorer Scorer) []Candidate {
	ranked := make([]Candidate, len(candidates))
	for i, c := range candidates {
		c.Confidence = clamp01(c.Confidence * c.Model.Weight())
		c.Security = clamp01(scorer.Score(c.Text))
		ranked[i] = c
	}

	// ties keep emission order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Composite() > ranked[j].Composite()
	})

	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return ranked
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
