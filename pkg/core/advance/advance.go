package advance

import (
	"math"

	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/lender"
	"dealer_rehash/pkg/core/risk"
	"dealer_rehash/pkg/core/valuation"
)

// =============================================================================
// LENDER ADVANCE CALCULATORS
// One pure function per advance policy, dispatched by tag. Each converts a
// deal + lender config into a funded advance, net of the lender's fee stack.
// =============================================================================

// Result is the funding outcome for one candidate structure.
type Result struct {
	GrossAdvance float64 `json:"gross_advance"`
	FeeTotal     float64 `json:"fee_total"`
	NetAdvance   float64 `json:"net_advance"`
	NetCheck     float64 `json:"net_check"`
}

type calcFunc func(d deal.Input, cfg lender.Config, amountFinanced, vehicleMultiplier float64) Result

// calculators is the closed dispatch table; unknown tags fall through to the
// fallback formula.
var calculators = map[lender.AdvancePolicy]calcFunc{
	lender.PolicyCostBased:    costBased,
	lender.PolicyPaymentBased: paymentBased,
	lender.PolicyRiskAdjusted: riskAdjusted,
	lender.PolicyFallback:     fallback,
}

// Calculate runs the lender's advance formula for one candidate structure.
func Calculate(d deal.Input, cfg lender.Config, amountFinanced, vehicleMultiplier float64) Result {
	calc, ok := calculators[cfg.Policy]
	if !ok {
		calc = fallback
	}
	return calc(d, cfg, amountFinanced, vehicleMultiplier)
}

// netOut applies the fixed fee bundle to a gross advance and settles the
// trade payoff. The dealer never writes the lender a check: net check floors
// at zero.
func netOut(gross float64, fees lender.FeeBundle, tradePayoff float64) Result {
	feeTotal := fees.Total(gross)
	net := gross - feeTotal
	return Result{
		GrossAdvance: gross,
		FeeTotal:     feeTotal,
		NetAdvance:   net,
		NetCheck:     math.Max(net-tradePayoff, 0),
	}
}

// costBased: tiered dealer program. Advance is dealer cost times the active
// dealer-tier rate, never more than the amount financed.
func costBased(d deal.Input, cfg lender.Config, amountFinanced, vehicleMultiplier float64) Result {
	p := cfg.CostBased
	rate := p.TierRates[p.ActiveTier]
	if rate == 0 {
		rate = p.TierRates["standard"]
	}
	gross := math.Min(amountFinanced, d.VehicleCost*rate*vehicleMultiplier)
	return netOut(gross, p.Fees, d.TradePayoff)
}

// creditMultiplier interpolates the payment-based multiplier by credit tier.
// The near_prime point is a hand-tuned 95% of max, not a formula; reproduce
// it literally.
func creditMultiplier(tier deal.CreditTier, min, max float64) float64 {
	switch tier {
	case deal.TierDeepSubprime:
		return min
	case deal.TierSubprime:
		return (min + max) / 2
	case deal.TierNearPrime:
		return max * 0.95
	case deal.TierPrime:
		return max
	}
	return min
}

// paymentBased: credit-tier-driven multiplier over dealer cost.
func paymentBased(d deal.Input, cfg lender.Config, amountFinanced, vehicleMultiplier float64) Result {
	p := cfg.PaymentBased
	mult := creditMultiplier(d.CreditTier, p.MinMultiplier, p.MaxMultiplier)
	gross := math.Min(amountFinanced, d.VehicleCost*mult*vehicleMultiplier)
	return netOut(gross, p.Fees, d.TradePayoff)
}

// riskAdjusted: the composite risk score maps linearly from [0,100] onto the
// configured adjustment range, shifting the base advance percent of cost.
func riskAdjusted(d deal.Input, cfg lender.Config, amountFinanced, vehicleMultiplier float64) Result {
	p := cfg.RiskAdjusted
	score := risk.Score(d)
	adjustment := p.MinAdjustment + (score/100)*(p.MaxAdjustment-p.MinAdjustment)
	pct := (p.BaseAdvancePercent + adjustment) / 100
	gross := math.Min(amountFinanced, d.VehicleCost*pct*vehicleMultiplier)
	return netOut(gross, p.Fees, d.TradePayoff)
}

// fallback: unconfigured lender. Advance is capped by the tier row's base
// percent of cost and max percent of book value; a flat fee percent of the
// amount financed replaces the fixed fee bundle.
func fallback(d deal.Input, cfg lender.Config, amountFinanced, vehicleMultiplier float64) Result {
	var basePct, maxPct float64
	if row, ok := cfg.TierRow(d.CreditTier); ok {
		basePct = row.MinAdvancePercent
		maxPct = row.MaxAdvancePercent
	}
	book := valuation.BookValue(d.VehiclePrice, d.VehicleAge(), d.Mileage)
	maxByCost := d.VehicleCost * (basePct / 100) * vehicleMultiplier
	maxByLTV := book * (maxPct / 100) * vehicleMultiplier
	gross := math.Min(amountFinanced, math.Min(maxByCost, maxByLTV))

	feeTotal := amountFinanced * (cfg.LenderFeePercent / 100)
	net := gross - feeTotal
	return Result{
		GrossAdvance: gross,
		FeeTotal:     feeTotal,
		NetAdvance:   net,
		NetCheck:     math.Max(net-d.TradePayoff, 0),
	}
}

// DealerProfit is the dealer's total gross on a structure: cash received
// from the lender plus customer money in, less what the car and deal fees
// cost the store.
func DealerProfit(d deal.Input, netCheck float64) float64 {
	return netCheck + d.TotalDown() - d.VehicleCost - d.Fees
}

// FrontGross is the profit in the metal itself.
func FrontGross(d deal.Input) float64 {
	return d.VehiclePrice - d.VehicleCost
}
