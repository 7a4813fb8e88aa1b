package insight

import (
	"context"
	"strings"
	"testing"

	"dealer_rehash/pkg/core/compliance"
	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/rehash"
)

func resultWithPayment(p float64) rehash.Result {
	return rehash.Result{
		BestDeal: &rehash.DealCandidate{MonthlyPayment: p},
	}
}

func TestFallbackClassificationThresholds(t *testing.T) {
	advisor := NewAdvisor(nil) // no provider: fallback-only
	d := deal.Input{TargetPayment: 450}
	rules := compliance.BankRules{MaxLTVPercent: 120}

	cases := []struct {
		payment float64
		want    string
	}{
		{430, StatusGood},       // gap 20
		{401, StatusGood},       // gap 49, still under 50
		{400, StatusDifficult},  // gap exactly 50
		{380, StatusDifficult},  // gap 70
		{351, StatusDifficult},  // gap 99
		{350, StatusImpossible}, // gap exactly 100
		{300, StatusImpossible}, // gap 150
	}
	for _, c := range cases {
		got := advisor.AssessDeal(context.Background(), d, resultWithPayment(c.payment), rules)
		if got.Status != c.want {
			t.Errorf("payment %.0f: status = %s, want %s", c.payment, got.Status, c.want)
		}
		if !got.FromFallback {
			t.Errorf("payment %.0f: classification should be marked as fallback", c.payment)
		}
		if got.Analysis == "" || got.Strategy == "" {
			t.Errorf("payment %.0f: fallback must still give analysis and strategy", c.payment)
		}
	}
}

func TestFallbackClassificationNoBestDeal(t *testing.T) {
	advisor := NewAdvisor(nil)
	d := deal.Input{TargetPayment: 450}

	got := advisor.AssessDeal(context.Background(), d, rehash.Result{}, compliance.BankRules{})
	if got.Status != StatusImpossible {
		t.Errorf("no qualifying structure: status = %s, want impossible", got.Status)
	}
	if !got.FromFallback {
		t.Error("want fallback classification")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusGood, StatusDifficult, StatusImpossible} {
		if !validStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []string{"", "ok", "GOOD", "maybe"} {
		if validStatus(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestBuildPromptMentionsRulesAndGap(t *testing.T) {
	d := deal.Input{VehiclePrice: 18995, TargetPayment: 450, CreditTier: deal.TierSubprime}
	res := resultWithPayment(430)
	rules := compliance.BankRules{MaxLTVPercent: 120, RequireGAP: true}

	prompt := buildPrompt(d, res, rules, 20)
	for _, want := range []string{"Target payment: $450", "Payment gap: $20.00", "GAP coverage is mandatory", "subprime"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
