package payment

import (
	"fmt"
	"math"

	"dealer_rehash/pkg/core/deal"
)

// =============================================================================
// AMORTIZATION & AFFORDABILITY
// =============================================================================

// MonthlyPayment computes the fixed payment for a simple-interest loan:
// payment = (r * P) / (1 - (1+r)^-n), r = APR/100/12. Zero APR degrades to
// straight principal/term. Callers never pass a zero term; supported-terms
// lists always contain positive integers.
func MonthlyPayment(principal float64, aprPercent float64, termMonths int) float64 {
	if principal <= 0 {
		return 0
	}
	if aprPercent == 0 {
		return principal / float64(termMonths)
	}
	r := aprPercent / 100 / 12
	n := float64(termMonths)
	return (r * principal) / (1 - math.Pow(1+r, -n))
}

// AmountFinanced is the loan principal for a deal given a down payment and a
// backend-product total: price plus tax, fees and backend, less total down.
// Floored at zero; a structure that cashes out negative is simply a cash
// deal, not a negative loan.
func AmountFinanced(d deal.Input, downPayment float64, backendTotal float64) float64 {
	gross := d.VehiclePrice + d.VehiclePrice*d.TaxRate + d.Fees + backendTotal
	financed := gross - (downPayment + d.TradeAllowance - d.TradePayoff)
	if financed < 0 {
		return 0
	}
	return financed
}

// maxPTIPercent is the per-tier payment-to-income ceiling.
var maxPTIPercent = map[deal.CreditTier]float64{
	deal.TierDeepSubprime: 25,
	deal.TierSubprime:     18,
	deal.TierNearPrime:    15,
	deal.TierPrime:        12,
}

// MaxPTIForTier returns the PTI ceiling for a tier (percent).
func MaxPTIForTier(tier deal.CreditTier) float64 {
	if pct, ok := maxPTIPercent[tier]; ok {
		return pct
	}
	return maxPTIPercent[deal.TierSubprime]
}

// PTIResult captures affordability for one candidate payment. RequiredIncome
// is always computed; Percent is only meaningful when HasIncome is true.
type PTIResult struct {
	HasIncome      bool    `json:"has_income"`
	Percent        float64 `json:"percent,omitempty"`
	ExceedsLimit   bool    `json:"exceeds_limit"`
	Warning        string  `json:"warning,omitempty"`
	RequiredIncome float64 `json:"required_income"`
}

// ComputePTI evaluates payment-to-income against the tier ceiling.
// A missing or non-positive income leaves PTI undefined rather than zero.
func ComputePTI(monthlyPayment float64, monthlyIncome float64, tier deal.CreditTier) PTIResult {
	limit := MaxPTIForTier(tier)
	res := PTIResult{
		RequiredIncome: math.Round(monthlyPayment / (limit / 100)),
	}
	if monthlyIncome <= 0 {
		return res
	}
	res.HasIncome = true
	res.Percent = (monthlyPayment / monthlyIncome) * 100
	if res.Percent > limit {
		res.ExceedsLimit = true
		res.Warning = fmt.Sprintf(
			"PTI %.1f%% exceeds the %.0f%% limit for %s; income of $%.0f/mo needed",
			res.Percent, limit, tier, res.RequiredIncome)
	}
	return res
}
