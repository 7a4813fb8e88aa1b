package risk

import (
	"fmt"
	"strings"

	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/lender"
)

// Theft-risk window: Kia/Hyundai models without engine immobilizers.
var theftRiskMakes = []string{"Kia", "Hyundai"}

const (
	theftRiskMinYear    = 2011
	theftRiskMaxYear    = 2021
	theftRiskMultiplier = 0.90
)

// EligibilityResult is the outcome of matching a deal against one lender's
// vehicle rules.
type EligibilityResult struct {
	IsEligible        bool     `json:"is_eligible"`
	Reasons           []string `json:"reasons,omitempty"`
	AdvanceMultiplier float64  `json:"advance_multiplier"`
	Warnings          []string `json:"warnings,omitempty"`
}

// VehicleEligibility applies a lender's hard collateral rules and preference
// multipliers to a deal. Rejection reasons are collected, not short-circuited,
// so the UI can show everything wrong at once.
//
// Multiple matching preferences resolve to the minimum multiplier (worst
// case). The theft-risk penalty applies only when the lender has no explicit
// preference covering the make/year AND the multiplier is still neutral; a
// lender that already priced the make (bonus or penalty) is never
// double-penalized.
func VehicleEligibility(d deal.Input, cfg lender.Config) EligibilityResult {
	res := EligibilityResult{IsEligible: true, AdvanceMultiplier: 1.0}
	age := d.VehicleAge()

	if cfg.Restrictions.MaxAgeYears > 0 && age > cfg.Restrictions.MaxAgeYears {
		res.IsEligible = false
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"vehicle age %d exceeds lender max of %d years", age, cfg.Restrictions.MaxAgeYears))
	}
	if cfg.Restrictions.MaxMileage > 0 && d.Mileage > cfg.Restrictions.MaxMileage {
		res.IsEligible = false
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"mileage %d exceeds lender max of %d", d.Mileage, cfg.Restrictions.MaxMileage))
	}
	for _, excluded := range cfg.Restrictions.ExcludedMakes {
		if strings.EqualFold(excluded, d.VehicleMake) {
			res.IsEligible = false
			res.Reasons = append(res.Reasons, fmt.Sprintf(
				"%s is on the lender's excluded makes list", d.VehicleMake))
			break
		}
	}

	// Preference scan is independent of hard eligibility: the multiplier is
	// still reported for rejected deals so the caller can explain pricing.
	// When several rules match, the lowest (most conservative) multiplier
	// wins; a single bonus rule passes through unclamped.
	explicitCoverage := false
	for _, pref := range cfg.Preferences {
		if !pref.Matches(d.VehicleMake, d.VehicleYear) {
			continue
		}
		if !explicitCoverage || pref.Multiplier < res.AdvanceMultiplier {
			res.AdvanceMultiplier = pref.Multiplier
		}
		explicitCoverage = true
		if pref.Multiplier != 1.0 {
			delta := (pref.Multiplier - 1.0) * 100
			reason := pref.Reason
			if reason == "" {
				reason = "lender preference"
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s advance adjusted %+.0f%% (%s)", d.VehicleMake, delta, reason))
		}
	}

	if isTheftRiskVehicle(d.VehicleMake, d.VehicleYear) && !explicitCoverage && res.AdvanceMultiplier == 1.0 {
		res.AdvanceMultiplier = theftRiskMultiplier
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%d %s falls in the theft-risk window, advance reduced 10%%",
			d.VehicleYear, d.VehicleMake))
	}

	return res
}

func isTheftRiskVehicle(make string, year int) bool {
	if year < theftRiskMinYear || year > theftRiskMaxYear {
		return false
	}
	return makeInList(make, theftRiskMakes)
}
