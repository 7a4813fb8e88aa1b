package insight

import (
	"context"
	"fmt"
	"math"
	"strings"

	"dealer_rehash/pkg/core/agent"
	"dealer_rehash/pkg/core/compliance"
	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/rehash"
	"dealer_rehash/pkg/core/utils"
)

// =============================================================================
// DEAL INSIGHT ADVISOR
// Optional LLM layer over the deterministic core. Every failure path ends in
// the gap-threshold fallback; the caller never sees an error.
// =============================================================================

// Gap thresholds for the deterministic classification, in dollars between
// the best achievable payment and the target.
const (
	gapGoodBelow      = 50.0
	gapDifficultBelow = 100.0
)

const (
	StatusGood       = "good"
	StatusDifficult  = "difficult"
	StatusImpossible = "impossible"
)

// Classification is the advisory verdict on a rehash outcome.
type Classification struct {
	Status   string `json:"status"`
	Analysis string `json:"analysis"`
	Strategy string `json:"strategy"`
	// FromFallback marks deterministic classifications (provider missing,
	// call failed or output unusable).
	FromFallback bool `json:"from_fallback,omitempty"`
}

const systemPrompt = `You are a seasoned subprime auto finance desk manager.
Given a deal summary, respond ONLY with a JSON object:
{"status": "good"|"difficult"|"impossible", "analysis": "...", "strategy": "..."}
Status reflects how realistic the payment target is. Analysis is 1-2 sentences
on why. Strategy is concrete desking advice (down payment, term, products).`

// Advisor classifies rehash outcomes, via LLM when one is configured.
// A nil manager is valid and means fallback-only.
type Advisor struct {
	mgr *agent.Manager
}

func NewAdvisor(mgr *agent.Manager) *Advisor {
	return &Advisor{mgr: mgr}
}

// AssessDeal produces the advisory classification for one rehash result.
func (a *Advisor) AssessDeal(ctx context.Context, d deal.Input, res rehash.Result, rules compliance.BankRules) Classification {
	gap := paymentGap(d, res)

	if a.mgr == nil {
		return fallbackClassification(gap, res)
	}

	raw, err := a.mgr.ExecutePrompt(ctx, "insight", buildPrompt(d, res, rules, gap), systemPrompt,
		map[string]interface{}{
			"response_format": map[string]interface{}{"type": "json_object"},
		})
	if err != nil {
		fmt.Printf("[INSIGHT] provider call failed, using fallback: %v\n", err)
		return fallbackClassification(gap, res)
	}

	var c Classification
	if _, err := utils.SmartParse(raw, &c); err != nil || !validStatus(c.Status) {
		fmt.Printf("[INSIGHT] unusable provider output, using fallback\n")
		return fallbackClassification(gap, res)
	}

	c.Strategy = utils.CleanMarkdown(c.Strategy)
	if !utils.ValidateMarkdown(c.Strategy) {
		c.Strategy = ""
	}
	return c
}

func validStatus(s string) bool {
	switch s {
	case StatusGood, StatusDifficult, StatusImpossible:
		return true
	}
	return false
}

// paymentGap is the dollar distance between the best achievable payment and
// the target. No best deal at all means an unbounded gap.
func paymentGap(d deal.Input, res rehash.Result) float64 {
	if res.BestDeal == nil {
		return math.Inf(1)
	}
	return math.Abs(res.BestDeal.MonthlyPayment - d.TargetPayment)
}

// fallbackClassification is the deterministic contract: <$50 good, $50-99
// difficult, >=$100 impossible. Used whenever the advisory service is
// unavailable, unconfigured or returns garbage.
func fallbackClassification(gap float64, res rehash.Result) Classification {
	c := Classification{FromFallback: true}
	switch {
	case gap < gapGoodBelow:
		c.Status = StatusGood
		c.Analysis = fmt.Sprintf("Best structure lands within $%.0f of the target payment.", gap)
		c.Strategy = "Present the top-ranked structure as-is."
	case gap < gapDifficultBelow:
		c.Status = StatusDifficult
		c.Analysis = fmt.Sprintf("Best structure misses the target by $%.0f.", gap)
		c.Strategy = "Ask for additional down payment or present the longest available term."
	default:
		if res.BestDeal == nil {
			c.Analysis = "No lender structure satisfied the underwriting constraints."
		} else {
			c.Analysis = fmt.Sprintf("Best structure misses the target by $%.0f.", gap)
		}
		c.Status = StatusImpossible
		c.Strategy = "Switch the customer to a cheaper unit or revisit the target payment."
	}
	return c
}

// buildPrompt summarizes the deal for the model: price, payments, gap, tier
// and the applicable bank rules.
func buildPrompt(d deal.Input, res rehash.Result, rules compliance.BankRules, gap float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vehicle price: $%.0f\n", d.VehiclePrice)
	fmt.Fprintf(&b, "Target payment: $%.0f (tolerance $%.0f)\n", d.TargetPayment, d.PaymentTolerance)
	if res.BestDeal != nil {
		fmt.Fprintf(&b, "Best achievable payment: $%.2f (%s, %d months)\n",
			res.BestDeal.MonthlyPayment, res.BestDeal.LenderName, res.BestDeal.TermMonths)
		fmt.Fprintf(&b, "Payment gap: $%.2f\n", gap)
	} else {
		b.WriteString("Best achievable payment: none (no qualifying structure)\n")
	}
	fmt.Fprintf(&b, "Credit tier: %s\n", d.CreditTier)
	fmt.Fprintf(&b, "Candidates evaluated: %d\n", len(res.Candidates))
	b.WriteString("Applicable bank rules:\n")
	for _, rule := range rules.Describe() {
		fmt.Fprintf(&b, "- %s\n", rule)
	}
	return b.String()
}
