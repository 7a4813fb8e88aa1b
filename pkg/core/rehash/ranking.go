package rehash

import (
	"math"
	"sort"
)

// rankCandidates sorts in place: net check to the dealer descending, ties
// broken by distance from the target payment ascending. Stable so equal
// candidates keep generation order and the search stays idempotent.
func rankCandidates(candidates []DealCandidate, targetPayment float64) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].NetCheck != candidates[j].NetCheck {
			return candidates[i].NetCheck > candidates[j].NetCheck
		}
		di := math.Abs(candidates[i].MonthlyPayment - targetPayment)
		dj := math.Abs(candidates[j].MonthlyPayment - targetPayment)
		return di < dj
	})
}

// selectBest filters to the payment window and ranks within it; when nothing
// lands in the window it degrades to ranking everything rather than
// returning empty-handed.
func selectBest(candidates []DealCandidate, targetPayment, tolerance float64) *DealCandidate {
	if len(candidates) == 0 {
		return nil
	}
	low, high := targetPayment-tolerance, targetPayment+tolerance

	var inWindow []DealCandidate
	for _, c := range candidates {
		if c.MonthlyPayment >= low && c.MonthlyPayment <= high {
			inWindow = append(inWindow, c)
		}
	}

	pool := inWindow
	if len(pool) == 0 {
		pool = append([]DealCandidate(nil), candidates...)
	}
	rankCandidates(pool, targetPayment)
	best := pool[0]
	return &best
}
