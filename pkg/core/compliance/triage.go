package compliance

import (
	"fmt"

	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/payment"
	"dealer_rehash/pkg/core/rehash"
)

// =============================================================================
// BANK-STYLE COMPLIANCE TRIAGE
// A second, stricter pass over the candidate pool. Bank rules are independent
// of lender guidelines: a deal a lender would buy can still be non-compliant
// under the bank's caps. This filter never re-ranks, it only partitions.
// =============================================================================

// BankRules are the derived, transient rules for one deal.
type BankRules struct {
	MaxLTVPercent float64 `json:"max_ltv_percent"`
	RequireGAP    bool    `json:"require_gap"`
	RequireVSC    bool    `json:"require_vsc"`
	// MaxPTIPercent is optional; zero disables the check.
	MaxPTIPercent float64 `json:"max_pti_percent,omitempty"`
}

// Describe returns the active rules as short human-readable strings for the
// advisory prompt.
func (r BankRules) Describe() []string {
	rules := []string{fmt.Sprintf("LTV must not exceed %.0f%%", r.MaxLTVPercent)}
	if r.RequireGAP {
		rules = append(rules, "GAP coverage is mandatory")
	}
	if r.RequireVSC {
		rules = append(rules, "VSC coverage is mandatory")
	}
	if r.MaxPTIPercent > 0 {
		rules = append(rules, fmt.Sprintf("PTI must not exceed %.0f%%", r.MaxPTIPercent))
	}
	return rules
}

// Per-tier bank LTV caps: stricter than most lender pricing rows.
var tierLTVCap = map[deal.CreditTier]float64{
	deal.TierDeepSubprime: 110,
	deal.TierSubprime:     120,
	deal.TierNearPrime:    130,
	deal.TierPrime:        140,
}

// Thresholds that make protection products mandatory.
const (
	mandatoryVSCMileage = 100000
	mandatoryGAPLTV     = 110.0
)

// DetermineBankRules derives the rule set for a deal from its mileage, LTV
// and credit tier. Deterministic; same inputs always yield the same rules.
func DetermineBankRules(mileage int, ltvPercent float64, tier deal.CreditTier) BankRules {
	capLTV, ok := tierLTVCap[tier]
	if !ok {
		capLTV = tierLTVCap[deal.TierSubprime]
	}
	return BankRules{
		MaxLTVPercent: capLTV,
		RequireVSC:    mileage > mandatoryVSCMileage,
		RequireGAP:    ltvPercent > mandatoryGAPLTV,
		MaxPTIPercent: payment.MaxPTIForTier(tier),
	}
}

// RejectedDeal pairs a non-compliant candidate with its violations.
type RejectedDeal struct {
	Candidate  rehash.DealCandidate `json:"candidate"`
	Violations []string             `json:"violations"`
}

// TriageResult partitions a candidate pool into compliant and rejected.
type TriageResult struct {
	ValidDeals    []rehash.DealCandidate `json:"valid_deals"`
	RejectedDeals []RejectedDeal         `json:"rejected_deals"`
}

// FilterCompliantDeals applies the bank rules to every candidate, collecting
// all violations per candidate rather than stopping at the first.
func FilterCompliantDeals(candidates []rehash.DealCandidate, rules BankRules) TriageResult {
	var res TriageResult
	for _, c := range candidates {
		var violations []string
		if c.LTVPercent > rules.MaxLTVPercent {
			violations = append(violations, fmt.Sprintf(
				"LTV %.1f%% over the %.0f%% cap", c.LTVPercent, rules.MaxLTVPercent))
		}
		if rules.RequireGAP && !c.IncludesGAP {
			violations = append(violations, "missing mandatory GAP coverage")
		}
		if rules.RequireVSC && !c.IncludesVSC {
			violations = append(violations, "missing mandatory VSC coverage")
		}
		if rules.MaxPTIPercent > 0 && c.PTI.HasIncome && c.PTI.Percent > rules.MaxPTIPercent {
			violations = append(violations, fmt.Sprintf(
				"PTI %.1f%% over the %.0f%% limit", c.PTI.Percent, rules.MaxPTIPercent))
		}

		if len(violations) == 0 {
			res.ValidDeals = append(res.ValidDeals, c)
		} else {
			res.RejectedDeals = append(res.RejectedDeals, RejectedDeal{Candidate: c, Violations: violations})
		}
	}
	return res
}
