package rehash

import (
	"dealer_rehash/pkg/core/payment"
	"dealer_rehash/pkg/core/risk"
)

// OptimizationLevel tags how aggressively a candidate's backend was trimmed
// to reach the payment target.
type OptimizationLevel string

const (
	LevelOptimal     OptimizationLevel = "optimal"
	LevelVSCStripped OptimizationLevel = "vsc_stripped"
	LevelAllStripped OptimizationLevel = "all_stripped"
)

// DealCandidate is one fully evaluated (lender, term, down, backend scenario)
// combination. Created transiently during search, never mutated afterwards.
type DealCandidate struct {
	LenderID   string  `json:"lender_id"`
	LenderName string  `json:"lender_name"`
	TermMonths int     `json:"term_months"`
	APR        float64 `json:"apr"`

	AmountFinanced float64 `json:"amount_financed"`
	MonthlyPayment float64 `json:"monthly_payment"`
	NetCheck       float64 `json:"net_check"`
	FrontGross     float64 `json:"front_gross"`
	BackGross      float64 `json:"back_gross"`
	TotalGross     float64 `json:"total_gross"`
	TotalDown      float64 `json:"total_down"`
	BackendTotal   float64 `json:"backend_total"`
	LTVPercent     float64 `json:"ltv_percent"`

	IncludesGAP bool `json:"includes_gap"`
	IncludesVSC bool `json:"includes_vsc"`

	ValidationReasons []string          `json:"validation_reasons,omitempty"`
	Adjustments       []string          `json:"adjustments,omitempty"`
	Note              string            `json:"note"`
	Level             OptimizationLevel `json:"optimization_level"`
	VehicleWarnings   []string          `json:"vehicle_warnings,omitempty"`
	AdvanceMultiplier float64           `json:"advance_multiplier"`

	Risk risk.Assessment   `json:"risk_assessment"`
	PTI  payment.PTIResult `json:"pti"`
}

// Result is the terminal output of one optimizer invocation: the best
// candidate (nil when nothing qualifies), the full ranked list and the
// deal-level risk assessment.
type Result struct {
	BestDeal   *DealCandidate  `json:"best_deal,omitempty"`
	Candidates []DealCandidate `json:"candidates"`
	Risk       risk.Assessment `json:"risk_assessment"`
}
