package advance

import (
	"math"
	"testing"

	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/lender"
)

func costBasedConfig() lender.Config {
	return lender.Config{
		ID:     "cb",
		Policy: lender.PolicyCostBased,
		CostBased: &lender.CostBasedParams{
			TierRates:  map[string]float64{"standard": 1.15, "preferred": 1.25},
			ActiveTier: "preferred",
			Fees: lender.FeeBundle{
				DocFee:          199,
				OriginationFee:  395,
				MiscFee:         50,
				HoldbackPercent: 2.0,
			},
		},
	}
}

func TestCostBasedAdvance(t *testing.T) {
	d := deal.Input{VehicleCost: 10000, CreditTier: deal.TierSubprime}
	res := Calculate(d, costBasedConfig(), 20000, 1.0)

	// gross = min(20000, 10000*1.25) = 12500
	if res.GrossAdvance != 12500 {
		t.Errorf("gross = %.2f, want 12500", res.GrossAdvance)
	}
	// fees = 199+395+50 + 2% of 12500 = 894
	if math.Abs(res.FeeTotal-894) > 1e-9 {
		t.Errorf("fees = %.2f, want 894", res.FeeTotal)
	}
	if math.Abs(res.NetCheck-11606) > 1e-9 {
		t.Errorf("net check = %.2f, want 11606", res.NetCheck)
	}
}

func TestCostBasedUnknownTierFallsToStandard(t *testing.T) {
	cfg := costBasedConfig()
	cfg.CostBased.ActiveTier = "gold"
	d := deal.Input{VehicleCost: 10000, CreditTier: deal.TierSubprime}
	res := Calculate(d, cfg, 20000, 1.0)
	if res.GrossAdvance != 11500 {
		t.Errorf("gross = %.2f, want standard-rate 11500", res.GrossAdvance)
	}
}

func TestCostBasedCappedByAmountFinanced(t *testing.T) {
	d := deal.Input{VehicleCost: 10000, CreditTier: deal.TierSubprime}
	res := Calculate(d, costBasedConfig(), 9000, 1.0)
	if res.GrossAdvance != 9000 {
		t.Errorf("gross = %.2f, want financed cap 9000", res.GrossAdvance)
	}
}

func TestCostBasedVehicleMultiplier(t *testing.T) {
	d := deal.Input{VehicleCost: 10000, CreditTier: deal.TierSubprime}
	res := Calculate(d, costBasedConfig(), 20000, 0.9)
	// 10000 * 1.25 * 0.9 = 11250
	if res.GrossAdvance != 11250 {
		t.Errorf("gross = %.2f, want 11250 after 0.9 haircut", res.GrossAdvance)
	}
}

func TestCreditMultiplier(t *testing.T) {
	cases := []struct {
		tier deal.CreditTier
		want float64
	}{
		{deal.TierDeepSubprime, 1.00},
		{deal.TierSubprime, 1.20},  // midpoint
		{deal.TierNearPrime, 1.33}, // 95% of max
		{deal.TierPrime, 1.40},
		{deal.CreditTier("unknown"), 1.00},
	}
	for _, c := range cases {
		got := creditMultiplier(c.tier, 1.0, 1.4)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("creditMultiplier(%s) = %.4f, want %.2f", c.tier, got, c.want)
		}
	}
}

func TestPaymentBasedAdvance(t *testing.T) {
	cfg := lender.Config{
		Policy: lender.PolicyPaymentBased,
		PaymentBased: &lender.PaymentBasedParams{
			MinMultiplier: 1.0,
			MaxMultiplier: 1.4,
		},
	}
	d := deal.Input{VehicleCost: 10000, CreditTier: deal.TierSubprime}
	res := Calculate(d, cfg, 20000, 1.0)
	// subprime midpoint 1.2: gross 12000, zero fee bundle
	if res.GrossAdvance != 12000 {
		t.Errorf("gross = %.2f, want 12000", res.GrossAdvance)
	}
	if res.NetCheck != 12000 {
		t.Errorf("net check = %.2f, want 12000 with no fees", res.NetCheck)
	}
}

func TestRiskAdjustedAdvance(t *testing.T) {
	cfg := lender.Config{
		Policy: lender.PolicyRiskAdjusted,
		RiskAdjusted: &lender.RiskAdjustedParams{
			BaseAdvancePercent: 100,
			MinAdjustment:      -15,
			MaxAdjustment:      25,
		},
	}
	// Neutral-50 deal: adjustment = -15 + 0.5*40 = +5 -> 105% of cost
	d := deal.Input{
		VehicleYear:    2022,
		VehicleMake:    "Ford",
		Mileage:        50000,
		VehiclePrice:   15000,
		VehicleCost:    10000,
		CreditTier:     deal.TierSubprime,
		EvaluationYear: 2025,
	}
	res := Calculate(d, cfg, 20000, 1.0)
	if math.Abs(res.GrossAdvance-10500) > 1e-9 {
		t.Errorf("gross = %.2f, want 10500", res.GrossAdvance)
	}
}

func TestFallbackAdvance(t *testing.T) {
	cfg := lender.Config{
		Policy:           lender.PolicyFallback,
		LenderFeePercent: 2.0,
		PricingGrid: map[deal.CreditTier]lender.PricingTier{
			deal.TierSubprime: {MinAdvancePercent: 80, MaxAdvancePercent: 110},
		},
	}
	// New unit, low miles: book = price = 10000
	d := deal.Input{
		VehicleYear:    2025,
		VehicleMake:    "Ford",
		Mileage:        10000,
		VehiclePrice:   10000,
		VehicleCost:    9000,
		CreditTier:     deal.TierSubprime,
		EvaluationYear: 2025,
	}
	res := Calculate(d, cfg, 12000, 1.0)
	// min(12000, 9000*0.80 = 7200, 10000*1.10 = 11000) = 7200
	if res.GrossAdvance != 7200 {
		t.Errorf("gross = %.2f, want 7200", res.GrossAdvance)
	}
	// flat fee = 2% of amount financed, not of gross
	if math.Abs(res.FeeTotal-240) > 1e-9 {
		t.Errorf("fee = %.2f, want 240", res.FeeTotal)
	}
	if math.Abs(res.NetCheck-6960) > 1e-9 {
		t.Errorf("net check = %.2f, want 6960", res.NetCheck)
	}
}

func TestUnknownPolicyUsesFallback(t *testing.T) {
	cfg := lender.Config{
		Policy: lender.AdvancePolicy("mystery"),
		PricingGrid: map[deal.CreditTier]lender.PricingTier{
			deal.TierSubprime: {MinAdvancePercent: 80, MaxAdvancePercent: 110},
		},
	}
	d := deal.Input{
		VehicleYear:    2025,
		Mileage:        10000,
		VehiclePrice:   10000,
		VehicleCost:    9000,
		CreditTier:     deal.TierSubprime,
		EvaluationYear: 2025,
	}
	res := Calculate(d, cfg, 12000, 1.0)
	if res.GrossAdvance != 7200 {
		t.Errorf("unknown policy gross = %.2f, want fallback 7200", res.GrossAdvance)
	}
}

func TestNetCheckFloorsAtZero(t *testing.T) {
	d := deal.Input{VehicleCost: 10000, TradePayoff: 15000, CreditTier: deal.TierSubprime}
	res := Calculate(d, costBasedConfig(), 12000, 1.0)
	if res.NetCheck != 0 {
		t.Errorf("net check = %.2f, want floor at 0 with a heavy payoff", res.NetCheck)
	}
	// NetAdvance still reflects the real funding position.
	if res.NetAdvance <= 0 {
		t.Errorf("net advance = %.2f, want positive", res.NetAdvance)
	}
}

func TestDealerProfitAndFrontGross(t *testing.T) {
	d := deal.Input{
		VehiclePrice: 18995,
		VehicleCost:  15500,
		Fees:         500,
		DownPayment:  2000,
	}
	if got := DealerProfit(d, 12000); math.Abs(got-(-2000)) > 1e-9 {
		t.Errorf("dealer profit = %.2f, want -2000", got)
	}
	if got := FrontGross(d); got != 3495 {
		t.Errorf("front gross = %.2f, want 3495", got)
	}
}
