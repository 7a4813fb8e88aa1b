package risk

import (
	"testing"

	"dealer_rehash/pkg/core/deal"
)

func TestScoreNeutralBaseline(t *testing.T) {
	// subprime (+0), no down, age 3, 50k miles, neutral make: stays at 50
	d := deal.Input{
		VehicleYear:    2022,
		VehicleMake:    "Ford",
		Mileage:        50000,
		VehiclePrice:   15000,
		CreditTier:     deal.TierSubprime,
		EvaluationYear: 2025,
	}
	if got := Score(d); got != 50 {
		t.Errorf("neutral deal score = %.0f, want 50", got)
	}
}

func TestScoreClampsHigh(t *testing.T) {
	// prime +30, 20% down +15, new reliable make +10 = 105 -> 100
	d := deal.Input{
		VehicleYear:    2025,
		VehicleMake:    "Toyota",
		Mileage:        10000,
		VehiclePrice:   10000,
		DownPayment:    2000,
		CreditTier:     deal.TierPrime,
		EvaluationYear: 2025,
	}
	if got := Score(d); got != 100 {
		t.Errorf("score = %.0f, want clamp at 100", got)
	}
}

func TestScoreClampsLow(t *testing.T) {
	// deep -20, age 12 -15, 160k miles -15, risky make -10 = -10 -> 0
	d := deal.Input{
		VehicleYear:    2013,
		VehicleMake:    "Fiat",
		Mileage:        160000,
		VehiclePrice:   8000,
		CreditTier:     deal.TierDeepSubprime,
		EvaluationYear: 2025,
	}
	if got := Score(d); got != 0 {
		t.Errorf("score = %.0f, want clamp at 0", got)
	}
}

func TestScoreSampleDeal(t *testing.T) {
	// subprime +0, 26.3% down +15, age 6 -5, 45k miles +0, Honda +10 = 70
	d := deal.Input{
		VehicleYear:    2019,
		VehicleMake:    "Honda",
		Mileage:        45000,
		VehiclePrice:   18995,
		DownPayment:    3000,
		TradeAllowance: 5000,
		TradePayoff:    3000,
		CreditTier:     deal.TierSubprime,
		EvaluationYear: 2025,
	}
	if got := Score(d); got != 70 {
		t.Errorf("sample deal score = %.0f, want 70", got)
	}
}

func TestScoreDownPaymentBands(t *testing.T) {
	base := deal.Input{
		VehicleYear:    2023,
		VehicleMake:    "Ford",
		Mileage:        30000,
		VehiclePrice:   10000,
		CreditTier:     deal.TierSubprime,
		EvaluationYear: 2025,
	}
	cases := []struct {
		down float64
		want float64
	}{
		{0, 50},
		{999, 50},
		{1000, 55}, // 10% band
		{1500, 60}, // 15% band
		{2000, 65}, // 20% band
	}
	for _, c := range cases {
		d := base
		d.DownPayment = c.down
		if got := Score(d); got != c.want {
			t.Errorf("down $%.0f score = %.0f, want %.0f", c.down, got, c.want)
		}
	}
}
