package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"dealer_rehash/pkg/core/compliance"
	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/insight"
	"dealer_rehash/pkg/core/lender"
	"dealer_rehash/pkg/core/rehash"
)

func logStep(step string, details string) {
	fmt.Printf("\n[STEP] %s\n", step)
	fmt.Println("---------------------------------------------------------")
	fmt.Println(details)
	fmt.Println("---------------------------------------------------------")
}

func main() {
	godotenv.Load()
	logStep("0. Initialization", "Deal rehash walkthrough against the built-in lender set")

	lenders := lender.BuiltinLenders()

	d := deal.Input{
		VehicleYear:      time.Now().Year() - 6,
		VehicleMake:      "Honda",
		Mileage:          45000,
		VehiclePrice:     18995,
		VehicleCost:      17000,
		TaxRate:          0.09,
		Fees:             799,
		DownPayment:      3000,
		TradeAllowance:   5000,
		TradePayoff:      3000,
		CreditTier:       deal.TierSubprime,
		TargetPayment:    450,
		PaymentTolerance: 50,
		MonthlyIncome:    3800,
		EvaluationYear:   time.Now().Year(),
	}

	logStep("1. Search", fmt.Sprintf("%d %s, $%.0f asking, target $%.0f/mo ±$%.0f",
		d.VehicleYear, d.VehicleMake, d.VehiclePrice, d.TargetPayment, d.PaymentTolerance))

	result := rehash.Run(d, lenders)

	fmt.Printf("\n%-26s %-5s %-8s %-10s %-10s %-12s %s\n",
		"LENDER", "TERM", "APR", "PAYMENT", "LTV", "NET CHECK", "LEVEL")
	for i, c := range result.Candidates {
		if i >= 15 {
			fmt.Printf("... and %d more\n", len(result.Candidates)-i)
			break
		}
		fmt.Printf("%-26s %-5d %-8.2f $%-9.2f %-10.1f $%-11.2f %s\n",
			c.LenderName, c.TermMonths, c.APR, c.MonthlyPayment, c.LTVPercent, c.NetCheck, c.Level)
	}

	if result.BestDeal != nil {
		logStep("2. Best structure", fmt.Sprintf("%s\n%v\nNote: %s",
			result.BestDeal.LenderName, result.BestDeal.Adjustments, result.BestDeal.Note))
	} else {
		logStep("2. Best structure", "none — no lender structure qualified")
	}

	rules := compliance.DetermineBankRules(d.Mileage, result.Risk.LTVPercent, d.CreditTier)
	triage := compliance.FilterCompliantDeals(result.Candidates, rules)
	logStep("3. Compliance triage", fmt.Sprintf("%d compliant, %d rejected under bank rules %v",
		len(triage.ValidDeals), len(triage.RejectedDeals), rules.Describe()))

	// Advisory runs on fallback rules when no provider is configured.
	advisor := insight.NewAdvisor(nil)
	verdict := advisor.AssessDeal(context.Background(), d, result, rules)
	logStep("4. Advisory verdict", fmt.Sprintf("status=%s\n%s\n%s",
		verdict.Status, verdict.Analysis, verdict.Strategy))
}
