package valuation

import "math"

// =============================================================================
// DEPRECIATION-BASED BOOK VALUE
// Foundation for all LTV math. Retail price is what the dealer asks; book
// value is what the collateral is actually worth to a lender.
// =============================================================================

// ageFactors maps whole vehicle ages (0-10) to a depreciation factor.
// Ages beyond 10 clamp to the age-10 factor.
var ageFactors = [...]float64{
	1.00, // current model year
	0.88,
	0.80,
	0.73,
	0.66,
	0.60,
	0.55,
	0.50,
	0.46,
	0.42,
	0.38, // age >= 10
}

// mileageBracket is an upper-bound/factor pair. Brackets are ordered and
// evaluated first-match.
type mileageBracket struct {
	maxMiles int
	factor   float64
}

var mileageBrackets = []mileageBracket{
	{30000, 1.00},
	{60000, 0.95},
	{90000, 0.90},
	{120000, 0.85},
	{150000, 0.80},
	{180000, 0.75},
}

// factor applied above the top bracket (180k+ miles)
const highMileageFactor = 0.70

// AgeFactor returns the depreciation factor for a vehicle age in years.
func AgeFactor(ageYears int) float64 {
	if ageYears < 0 {
		ageYears = 0
	}
	if ageYears >= len(ageFactors) {
		ageYears = len(ageFactors) - 1
	}
	return ageFactors[ageYears]
}

// MileageFactor returns the depreciation factor for an odometer reading.
func MileageFactor(miles int) float64 {
	if miles < 0 {
		miles = 0
	}
	for _, b := range mileageBrackets {
		if miles < b.maxMiles {
			return b.factor
		}
	}
	return highMileageFactor
}

// BookValue computes the depreciation-adjusted value of a vehicle from its
// retail price, age and mileage, rounded to the nearest dollar. Never
// negative.
func BookValue(retailPrice float64, ageYears int, miles int) float64 {
	if retailPrice <= 0 {
		return 0
	}
	return math.Round(retailPrice * AgeFactor(ageYears) * MileageFactor(miles))
}

// LTVSentinel represents an undefined/maximal LTV when book value is zero.
const LTVSentinel = 999.0

// LTVPercent is amount financed as a percent of book value. A zero book value
// makes LTV undefined; the sentinel stands in for "infinitely leveraged" so
// every downstream cap check fails naturally.
func LTVPercent(amountFinanced, bookValue float64) float64 {
	if bookValue <= 0 {
		return LTVSentinel
	}
	return (amountFinanced / bookValue) * 100
}
