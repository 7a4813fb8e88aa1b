package deal

import "time"

// CreditTier buckets the customer's creditworthiness. It drives APR selection,
// PTI limits and risk scoring throughout the engine.
type CreditTier string

const (
	TierDeepSubprime CreditTier = "deep_subprime"
	TierSubprime     CreditTier = "subprime"
	TierNearPrime    CreditTier = "near_prime"
	TierPrime        CreditTier = "prime"
)

// AllTiers lists every supported tier in ascending credit quality.
var AllTiers = []CreditTier{TierDeepSubprime, TierSubprime, TierNearPrime, TierPrime}

// IsValid reports whether t is one of the closed set of credit tiers.
func (t CreditTier) IsValid() bool {
	switch t {
	case TierDeepSubprime, TierSubprime, TierNearPrime, TierPrime:
		return true
	}
	return false
}

// Input is one customer/vehicle/deal scenario under evaluation.
// It is constructed once per request and treated as immutable during a search
// pass; term and down-payment variations are applied via copies (WithDown).
type Input struct {
	VehicleYear    int     `json:"vehicle_year"`
	VehicleMake    string  `json:"vehicle_make"`
	Mileage        int     `json:"mileage"`
	VehiclePrice   float64 `json:"vehicle_price"`
	VehicleCost    float64 `json:"vehicle_cost"`
	TaxRate        float64 `json:"tax_rate"`
	Fees           float64 `json:"fees"`
	DownPayment    float64 `json:"down_payment"`
	TradeAllowance float64 `json:"trade_allowance"`
	TradePayoff    float64 `json:"trade_payoff"`

	// Backend product requests from the customer conversation.
	WantsGAP   bool    `json:"wants_gap"`
	WantsVSC   bool    `json:"wants_vsc"`
	OtherTotal float64 `json:"other_products_total"`

	CreditTier       CreditTier `json:"credit_tier"`
	TargetPayment    float64    `json:"target_payment"`
	PaymentTolerance float64    `json:"payment_tolerance"`
	PreferredTerm    int        `json:"preferred_term,omitempty"`
	MonthlyIncome    float64    `json:"monthly_income,omitempty"`

	// EvaluationYear anchors vehicle-age math. Zero means "this year";
	// tests pin it for reproducible depreciation.
	EvaluationYear int `json:"evaluation_year,omitempty"`
}

// VehicleAge returns the vehicle age in years, floored at zero so that
// next-model-year units never produce a negative age.
func (d Input) VehicleAge() int {
	evalYear := d.EvaluationYear
	if evalYear == 0 {
		evalYear = time.Now().Year()
	}
	age := evalYear - d.VehicleYear
	if age < 0 {
		return 0
	}
	return age
}

// TotalDown is the customer's total cash-equivalent down: cash down plus
// trade equity (allowance net of payoff). It can be negative when the trade
// is underwater.
func (d Input) TotalDown() float64 {
	return d.DownPayment + d.TradeAllowance - d.TradePayoff
}

// DownPercent is total down as a fraction of the selling price. Zero price
// yields zero rather than a divide-by-zero.
func (d Input) DownPercent() float64 {
	if d.VehiclePrice <= 0 {
		return 0
	}
	return d.TotalDown() / d.VehiclePrice
}

// WithDown returns a copy of the deal with the cash down payment replaced.
// The receiver is never mutated.
func (d Input) WithDown(down float64) Input {
	out := d
	out.DownPayment = down
	return out
}
