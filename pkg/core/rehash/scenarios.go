package rehash

import (
	"math"

	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/risk"
)

// Flat retail pricing for the two financed backend products.
const (
	gapPrice = 895.0
	vscPrice = 2495.0
)

// BackendScenario is one backend-product bundle to evaluate. Scenarios form a
// forward-only strip path: optimal -> vsc_stripped -> all_stripped.
type BackendScenario struct {
	Level      OptimizationLevel
	IncludeGAP bool
	IncludeVSC bool
	Total      float64
}

// BuildScenarios produces the ordered scenario list for one lender. A product
// is in the optimal bundle when the risk assessment recommends it or the
// customer asked for it; the VSC-stripped scenario only exists when there was
// a VSC to strip. Totals cap at the lender's max backend total.
func BuildScenarios(d deal.Input, ra risk.Assessment, maxBackendTotal float64) []BackendScenario {
	withGAP := ra.RecommendGAP || d.WantsGAP
	withVSC := ra.RecommendVSC || d.WantsVSC

	capTotal := func(total float64) float64 {
		if maxBackendTotal > 0 {
			return math.Min(total, maxBackendTotal)
		}
		return total
	}

	total := d.OtherTotal
	if withGAP {
		total += gapPrice
	}
	if withVSC {
		total += vscPrice
	}

	scenarios := []BackendScenario{{
		Level:      LevelOptimal,
		IncludeGAP: withGAP,
		IncludeVSC: withVSC,
		Total:      capTotal(total),
	}}

	if withVSC {
		stripped := d.OtherTotal
		if withGAP {
			stripped += gapPrice
		}
		scenarios = append(scenarios, BackendScenario{
			Level:      LevelVSCStripped,
			IncludeGAP: withGAP,
			Total:      capTotal(stripped),
		})
	}

	scenarios = append(scenarios, BackendScenario{
		Level: LevelAllStripped,
		Total: capTotal(d.OtherTotal),
	})

	return scenarios
}
