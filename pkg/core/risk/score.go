package risk

import (
	"strings"

	"dealer_rehash/pkg/core/deal"
)

// =============================================================================
// COMPOSITE RISK SCORE
// 0-100 scale, 50 = neutral baseline. Higher is safer paper.
// =============================================================================

var tierBonus = map[deal.CreditTier]float64{
	deal.TierPrime:        30,
	deal.TierNearPrime:    15,
	deal.TierSubprime:     0,
	deal.TierDeepSubprime: -20,
}

// Makes with a track record that moves the score either way.
var reliableMakes = []string{"Toyota", "Honda", "Lexus"}
var riskyMakes = []string{"Land Rover", "Jaguar", "Fiat", "Chrysler"}

func makeInList(make string, list []string) bool {
	for _, m := range list {
		if strings.EqualFold(m, make) {
			return true
		}
	}
	return false
}

// Score computes the composite risk score for a deal. Deterministic and
// lender-independent; computed once per deal and reused by every candidate.
func Score(d deal.Input) float64 {
	score := 50.0

	score += tierBonus[d.CreditTier]

	switch downPct := d.DownPercent() * 100; {
	case downPct >= 20:
		score += 15
	case downPct >= 15:
		score += 10
	case downPct >= 10:
		score += 5
	}

	switch age := d.VehicleAge(); {
	case age > 10:
		score -= 15
	case age > 7:
		score -= 10
	case age > 5:
		score -= 5
	}

	switch {
	case d.Mileage > 150000:
		score -= 15
	case d.Mileage > 120000:
		score -= 10
	case d.Mileage > 90000:
		score -= 5
	}

	if makeInList(d.VehicleMake, reliableMakes) {
		score += 10
	} else if makeInList(d.VehicleMake, riskyMakes) {
		score -= 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
