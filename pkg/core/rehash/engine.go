package rehash

import (
	"fmt"

	"dealer_rehash/pkg/core/advance"
	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/lender"
	"dealer_rehash/pkg/core/payment"
	"dealer_rehash/pkg/core/risk"
	"dealer_rehash/pkg/core/valuation"
)

// Down-payment bumps tried on top of the customer's stated down.
var downPaymentBumps = []float64{0, 500, 1000}

// Run is the primary entry point: a pure function of the deal input and the
// lender set. It enumerates lender x term x down bump x backend scenario,
// scores every combination that survives the lender's constraints, and
// returns the ranked result. No I/O, no shared state; safe to call
// concurrently.
func Run(d deal.Input, lenders []lender.Config) Result {
	ra := risk.Assess(d)
	fmt.Printf("[REHASH] %d %s, book=$%.0f ltv=%.0f%% score=%.0f tier=%s target=$%.0f±%.0f\n",
		d.VehicleYear, d.VehicleMake, ra.BookValue, ra.LTVPercent, ra.RiskScore,
		d.CreditTier, d.TargetPayment, d.PaymentTolerance)

	var candidates []DealCandidate
	for _, cfg := range lenders {
		if !cfg.Active {
			continue
		}
		candidates = append(candidates, evaluateLender(d, cfg, ra)...)
	}

	// Rank the full list for the response; the window filter only decides
	// which candidate is "best".
	rankCandidates(candidates, d.TargetPayment)
	best := selectBest(candidates, d.TargetPayment, d.PaymentTolerance)

	if best != nil {
		fmt.Printf("[REHASH] best: %s %dmo $%.2f/mo net=$%.2f (%d candidates)\n",
			best.LenderName, best.TermMonths, best.MonthlyPayment, best.NetCheck, len(candidates))
	} else {
		fmt.Printf("[REHASH] no viable structure found across %d lenders\n", len(lenders))
	}

	return Result{BestDeal: best, Candidates: candidates, Risk: ra}
}

// evaluateLender produces every viable candidate for one lender.
func evaluateLender(d deal.Input, cfg lender.Config, ra risk.Assessment) []DealCandidate {
	elig := risk.VehicleEligibility(d, cfg)
	if !elig.IsEligible {
		fmt.Printf("[REHASH] %s: vehicle ineligible (%v)\n", cfg.ID, elig.Reasons)
		return nil
	}

	// Legacy direct caps, kept as a redundant safety net next to the
	// restriction block.
	if cfg.MaxVehicleAge > 0 && ra.VehicleAge > cfg.MaxVehicleAge {
		return nil
	}
	if cfg.MaxVehicleMileage > 0 && d.Mileage > cfg.MaxVehicleMileage {
		return nil
	}

	row, ok := cfg.TierRow(d.CreditTier)
	if !ok {
		fmt.Printf("[REHASH] %s: tier %s not supported\n", cfg.ID, d.CreditTier)
		return nil
	}
	apr := (row.MinAPR + row.MaxAPR) / 2

	scenarios := BuildScenarios(d, ra, cfg.MaxBackendTotal)
	terms := termsToTry(d, cfg)

	var out []DealCandidate
	for _, term := range terms {
		for _, bump := range downPaymentBumps {
			down := d.DownPayment + bump
			dv := d.WithDown(down)
			for _, sc := range scenarios {
				c, ok := buildCandidate(dv, cfg, row, apr, term, bump, sc, ra, elig)
				if ok {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// termsToTry honors a customer's preferred term when the lender supports it;
// otherwise every allowed term is in play.
func termsToTry(d deal.Input, cfg lender.Config) []int {
	if d.PreferredTerm > 0 && cfg.SupportsTerm(d.PreferredTerm) {
		return []int{d.PreferredTerm}
	}
	return cfg.AllowedTerms
}

// buildCandidate evaluates one (lender, term, down, scenario) structure.
// Returns ok=false when any lender constraint rejects it; rejection is data,
// never an error.
func buildCandidate(dv deal.Input, cfg lender.Config, row lender.PricingTier, apr float64,
	term int, bump float64, sc BackendScenario, ra risk.Assessment, elig risk.EligibilityResult) (DealCandidate, bool) {

	financed := payment.AmountFinanced(dv, dv.DownPayment, sc.Total)

	if financed < cfg.MinAmountFinanced || (cfg.MaxAmountFinanced > 0 && financed > cfg.MaxAmountFinanced) {
		return DealCandidate{}, false
	}
	if cfg.MaxBackendPercent > 0 && financed > 0 && (sc.Total/financed)*100 > cfg.MaxBackendPercent {
		return DealCandidate{}, false
	}

	valid, reasons := true, []string(nil)
	if cfg.ValidateDeal != nil {
		valid, reasons = cfg.ValidateDeal(dv, financed)
	}
	if !valid {
		return DealCandidate{}, false
	}

	ltv := valuation.LTVPercent(financed, ra.BookValue)
	if ltv > row.MaxLTVPercent {
		return DealCandidate{}, false
	}

	pay := payment.MonthlyPayment(financed, apr, term)
	adv := advance.Calculate(dv, cfg, financed, elig.AdvanceMultiplier)
	pti := payment.ComputePTI(pay, dv.MonthlyIncome, dv.CreditTier)

	backGross := sc.Total
	profit := advance.DealerProfit(dv, adv.NetCheck)

	c := DealCandidate{
		LenderID:          cfg.ID,
		LenderName:        cfg.Name,
		TermMonths:        term,
		APR:               apr,
		AmountFinanced:    financed,
		MonthlyPayment:    pay,
		NetCheck:          adv.NetCheck,
		FrontGross:        advance.FrontGross(dv),
		BackGross:         backGross,
		TotalGross:        profit,
		TotalDown:         dv.TotalDown(),
		BackendTotal:      sc.Total,
		LTVPercent:        ltv,
		IncludesGAP:       sc.IncludeGAP,
		IncludesVSC:       sc.IncludeVSC,
		ValidationReasons: reasons,
		Level:             sc.Level,
		VehicleWarnings:   elig.Warnings,
		AdvanceMultiplier: elig.AdvanceMultiplier,
		Risk:              ra,
		PTI:               pti,
	}

	c.Adjustments = buildAdjustments(cfg, term, apr, bump, sc, elig, pti)
	c.Note = smartNote(sc.Level, sc.IncludeGAP, sc.IncludeVSC, ra, elig.Warnings)
	return c, true
}

// buildAdjustments assembles the human-readable line items describing how
// this structure differs from the customer's original ask.
func buildAdjustments(cfg lender.Config, term int, apr float64, bump float64,
	sc BackendScenario, elig risk.EligibilityResult, pti payment.PTIResult) []string {

	adjustments := []string{fmt.Sprintf("%s, %d months @ %.2f%% APR", cfg.Name, term, apr)}

	if bump > 0 {
		adjustments = append(adjustments, fmt.Sprintf("Requires $%.0f additional down", bump))
	}

	switch {
	case sc.IncludeGAP && sc.IncludeVSC:
		adjustments = append(adjustments, "Includes GAP + VSC")
	case sc.IncludeGAP:
		adjustments = append(adjustments, "Includes GAP")
	case sc.IncludeVSC:
		adjustments = append(adjustments, "Includes VSC")
	default:
		adjustments = append(adjustments, "Lean structure, no protection products")
	}

	if elig.AdvanceMultiplier != 1.0 {
		adjustments = append(adjustments, fmt.Sprintf(
			"Advance adjusted %+.0f%% for this vehicle", (elig.AdvanceMultiplier-1.0)*100))
	}
	if pti.ExceedsLimit {
		adjustments = append(adjustments, pti.Warning)
	}
	return adjustments
}
