package lender

import (
	"fmt"

	"dealer_rehash/pkg/core/deal"
)

// BuiltinLenders returns the in-code lender program set used when no YAML
// configuration is present. Four lenders, one per advance policy, so every
// calculation style is exercised out of the box.
func BuiltinLenders() []Config {
	subprimeTerms := []int{36, 42, 48, 54, 60, 66, 72}

	heritage := Config{
		ID:                "heritage_acceptance",
		Name:              "Heritage Acceptance Corp",
		Active:            true,
		AllowedTerms:      subprimeTerms,
		MinAmountFinanced: 6000,
		MaxAmountFinanced: 32000,
		MaxBackendTotal:   3500,
		MaxBackendPercent: 20,
		MaxVehicleAge:     12,
		MaxVehicleMileage: 160000,
		Policy:            PolicyCostBased,
		CostBased: &CostBasedParams{
			TierRates: map[string]float64{
				"standard":  1.15,
				"preferred": 1.25,
			},
			ActiveTier: "standard",
			Fees: FeeBundle{
				DocFee:          199,
				OriginationFee:  395,
				MiscFee:         50,
				HoldbackPercent: 2.0,
			},
		},
		PricingGrid: map[deal.CreditTier]PricingTier{
			deal.TierDeepSubprime: {MinAPR: 21.0, MaxAPR: 24.9, MinDownPercent: 15, MinAdvancePercent: 90, MaxAdvancePercent: 110, MaxLTVPercent: 150},
			deal.TierSubprime:     {MinAPR: 17.0, MaxAPR: 21.9, MinDownPercent: 10, MinAdvancePercent: 95, MaxAdvancePercent: 120, MaxLTVPercent: 175},
			deal.TierNearPrime:    {MinAPR: 12.0, MaxAPR: 16.9, MinDownPercent: 5, MinAdvancePercent: 100, MaxAdvancePercent: 130, MaxLTVPercent: 185},
			deal.TierPrime:        {MinAPR: 8.0, MaxAPR: 11.9, MinDownPercent: 0, MinAdvancePercent: 100, MaxAdvancePercent: 140, MaxLTVPercent: 195},
		},
		Restrictions: VehicleRestrictions{
			MaxAgeYears:   12,
			MaxMileage:    160000,
			ExcludedMakes: []string{"Smart", "Fiat"},
		},
		Preferences: []VehiclePreference{
			{Make: "Toyota", Multiplier: 1.05, Reason: "strong resale retention"},
			{Make: "Honda", Multiplier: 1.05, Reason: "strong resale retention"},
			{Make: "Chrysler", Multiplier: 0.92, Reason: "weak auction recovery"},
		},
	}

	western := Config{
		ID:                "western_pines_funding",
		Name:              "Western Pines Funding",
		Active:            true,
		AllowedTerms:      []int{36, 48, 60, 72},
		MinAmountFinanced: 7500,
		MaxAmountFinanced: 28000,
		MaxBackendTotal:   3000,
		MaxBackendPercent: 18,
		MaxVehicleAge:     10,
		MaxVehicleMileage: 140000,
		Policy:            PolicyPaymentBased,
		PaymentBased: &PaymentBasedParams{
			MinMultiplier: 1.00,
			MaxMultiplier: 1.40,
			Fees: FeeBundle{
				DocFee:          249,
				OriginationFee:  299,
				MiscFee:         0,
				HoldbackPercent: 1.5,
			},
		},
		PricingGrid: map[deal.CreditTier]PricingTier{
			deal.TierDeepSubprime: {MinAPR: 22.0, MaxAPR: 26.9, MinDownPercent: 15, MinAdvancePercent: 85, MaxAdvancePercent: 105, MaxLTVPercent: 145},
			deal.TierSubprime:     {MinAPR: 18.0, MaxAPR: 22.9, MinDownPercent: 10, MinAdvancePercent: 90, MaxAdvancePercent: 115, MaxLTVPercent: 170},
			deal.TierNearPrime:    {MinAPR: 13.0, MaxAPR: 17.9, MinDownPercent: 5, MinAdvancePercent: 95, MaxAdvancePercent: 125, MaxLTVPercent: 180},
		},
		Restrictions: VehicleRestrictions{
			MaxAgeYears:   10,
			MaxMileage:    140000,
			ExcludedMakes: []string{"Land Rover", "Jaguar", "Fiat"},
		},
		Preferences: []VehiclePreference{
			{Make: "Kia", Multiplier: 0.90, MinYear: 2011, MaxYear: 2021, Reason: "theft exposure"},
			{Make: "Nissan", Multiplier: 0.95, Reason: "CVT reliability history"},
		},
	}

	crestline := Config{
		ID:                "crestline_financial",
		Name:              "Crestline Financial",
		Active:            true,
		AllowedTerms:      []int{48, 60, 66, 72},
		MinAmountFinanced: 8000,
		MaxAmountFinanced: 35000,
		MaxBackendTotal:   4000,
		MaxBackendPercent: 22,
		MaxVehicleAge:     11,
		MaxVehicleMileage: 150000,
		Policy:            PolicyRiskAdjusted,
		RiskAdjusted: &RiskAdjustedParams{
			BaseAdvancePercent: 100,
			MinAdjustment:      -15,
			MaxAdjustment:      25,
			Fees: FeeBundle{
				DocFee:          150,
				OriginationFee:  450,
				MiscFee:         75,
				HoldbackPercent: 2.5,
			},
		},
		PricingGrid: map[deal.CreditTier]PricingTier{
			deal.TierDeepSubprime: {MinAPR: 20.0, MaxAPR: 25.9, MinDownPercent: 12, MinAdvancePercent: 85, MaxAdvancePercent: 115, MaxLTVPercent: 148},
			deal.TierSubprime:     {MinAPR: 16.0, MaxAPR: 20.9, MinDownPercent: 8, MinAdvancePercent: 90, MaxAdvancePercent: 125, MaxLTVPercent: 172},
			deal.TierNearPrime:    {MinAPR: 11.5, MaxAPR: 15.9, MinDownPercent: 5, MinAdvancePercent: 95, MaxAdvancePercent: 135, MaxLTVPercent: 182},
			deal.TierPrime:        {MinAPR: 7.5, MaxAPR: 10.9, MinDownPercent: 0, MinAdvancePercent: 100, MaxAdvancePercent: 145, MaxLTVPercent: 192},
		},
		Restrictions: VehicleRestrictions{
			MaxAgeYears: 11,
			MaxMileage:  150000,
		},
		Preferences: []VehiclePreference{
			{Make: "Hyundai", Multiplier: 0.90, MinYear: 2011, MaxYear: 2021, Reason: "theft exposure"},
			{Make: "Toyota", Multiplier: 1.08, MinYear: 2015, MaxYear: 2026, Reason: "reliability bonus"},
		},
	}

	openRoad := Config{
		ID:                "open_road_capital",
		Name:              "Open Road Capital",
		Active:            true,
		AllowedTerms:      []int{36, 48, 60},
		MinAmountFinanced: 5000,
		MaxAmountFinanced: 25000,
		MaxBackendTotal:   2500,
		MaxBackendPercent: 15,
		MaxVehicleAge:     14,
		MaxVehicleMileage: 180000,
		LenderFeePercent:  3.0,
		Policy:            PolicyFallback,
		PricingGrid: map[deal.CreditTier]PricingTier{
			deal.TierDeepSubprime: {MinAPR: 23.0, MaxAPR: 28.9, MinDownPercent: 18, MinAdvancePercent: 80, MaxAdvancePercent: 100, MaxLTVPercent: 140},
			deal.TierSubprime:     {MinAPR: 19.0, MaxAPR: 23.9, MinDownPercent: 12, MinAdvancePercent: 85, MaxAdvancePercent: 110, MaxLTVPercent: 165},
		},
		Restrictions: VehicleRestrictions{
			MaxAgeYears: 14,
			MaxMileage:  180000,
		},
	}

	lenders := []Config{heritage, western, crestline, openRoad}
	for i := range lenders {
		base := DefaultValidator(lenders[i])
		lenders[i].ValidateDeal = func(d deal.Input, amountFinanced float64) (bool, []string) {
			ok, reasons := base(d, amountFinanced)
			// House rule shared by every built-in program: the trade payoff
			// cannot exceed cash down plus trade allowance.
			if d.TradePayoff > d.TradeAllowance+d.DownPayment {
				ok = false
				reasons = append(reasons, fmt.Sprintf(
					"negative equity $%.0f exceeds cash plus allowance",
					d.TradePayoff-d.TradeAllowance))
			}
			return ok, reasons
		}
	}
	return lenders
}
