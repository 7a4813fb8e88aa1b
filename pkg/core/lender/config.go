package lender

import (
	"fmt"
	"strings"

	"dealer_rehash/pkg/core/deal"
)

// =============================================================================
// PER-LENDER UNDERWRITING CONFIGURATION
// Static, loaded once at startup, read-only during requests. No ambient
// singleton: the configured lender set is passed explicitly into the engine.
// =============================================================================

// AdvancePolicy tags which advance calculation a lender uses. Closed set;
// dispatch is a lookup table, not subclassing.
type AdvancePolicy string

const (
	PolicyCostBased    AdvancePolicy = "cost_based"
	PolicyPaymentBased AdvancePolicy = "payment_based"
	PolicyRiskAdjusted AdvancePolicy = "risk_adjusted"
	PolicyFallback     AdvancePolicy = "fallback"
)

// PricingTier is one row of a lender's pricing grid, keyed by credit tier.
type PricingTier struct {
	MinAPR            float64 `yaml:"min_apr" json:"min_apr"`
	MaxAPR            float64 `yaml:"max_apr" json:"max_apr"`
	MinDownPercent    float64 `yaml:"min_down_percent" json:"min_down_percent"`
	MinAdvancePercent float64 `yaml:"min_advance_percent" json:"min_advance_percent"`
	MaxAdvancePercent float64 `yaml:"max_advance_percent" json:"max_advance_percent"`
	MaxLTVPercent     float64 `yaml:"max_ltv_percent" json:"max_ltv_percent"`
}

// VehiclePreference adjusts the advance for specific makes, optionally
// limited to an inclusive model-year range. Multiplier 1.0 is neutral.
type VehiclePreference struct {
	Make       string  `yaml:"make" json:"make"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
	MinYear    int     `yaml:"min_year,omitempty" json:"min_year,omitempty"`
	MaxYear    int     `yaml:"max_year,omitempty" json:"max_year,omitempty"`
	Reason     string  `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// Matches reports whether the preference applies to a make/year combination.
// Make comparison is case-insensitive exact; an unset year bound is open.
func (p VehiclePreference) Matches(make string, year int) bool {
	if !strings.EqualFold(p.Make, make) {
		return false
	}
	if p.MinYear != 0 && year < p.MinYear {
		return false
	}
	if p.MaxYear != 0 && year > p.MaxYear {
		return false
	}
	return true
}

// VehicleRestrictions are hard collateral rules: fail any one and the lender
// will not look at the deal.
type VehicleRestrictions struct {
	MaxAgeYears   int      `yaml:"max_age_years" json:"max_age_years"`
	MaxMileage    int      `yaml:"max_mileage" json:"max_mileage"`
	ExcludedMakes []string `yaml:"excluded_makes,omitempty" json:"excluded_makes,omitempty"`
}

// FeeBundle is the fixed fee stack a lender deducts from a gross advance:
// flat fees plus a holdback percentage of the gross.
type FeeBundle struct {
	DocFee          float64 `yaml:"doc_fee" json:"doc_fee"`
	OriginationFee  float64 `yaml:"origination_fee" json:"origination_fee"`
	MiscFee         float64 `yaml:"misc_fee" json:"misc_fee"`
	HoldbackPercent float64 `yaml:"holdback_percent" json:"holdback_percent"`
}

// Total returns the dollar deduction for a given gross advance.
func (f FeeBundle) Total(grossAdvance float64) float64 {
	return f.DocFee + f.OriginationFee + f.MiscFee + grossAdvance*(f.HoldbackPercent/100)
}

// CostBasedParams configures a cost-based lender. TierRates maps dealer
// tiers (e.g. "standard", "preferred") to advance multipliers over cost;
// ActiveTier selects which rate this dealer gets.
type CostBasedParams struct {
	TierRates  map[string]float64 `yaml:"tier_rates" json:"tier_rates"`
	ActiveTier string             `yaml:"active_tier" json:"active_tier"`
	Fees       FeeBundle          `yaml:"fees" json:"fees"`
}

// PaymentBasedParams configures a credit-tier-driven multiplier lender.
// The multiplier is interpolated between Min and Max by credit tier.
type PaymentBasedParams struct {
	MinMultiplier float64   `yaml:"min_multiplier" json:"min_multiplier"`
	MaxMultiplier float64   `yaml:"max_multiplier" json:"max_multiplier"`
	Fees          FeeBundle `yaml:"fees" json:"fees"`
}

// RiskAdjustedParams configures a composite-score lender: the risk score is
// mapped linearly onto [MinAdjustment, MaxAdjustment] and added to the base
// advance percent of dealer cost.
type RiskAdjustedParams struct {
	BaseAdvancePercent float64   `yaml:"base_advance_percent" json:"base_advance_percent"`
	MinAdjustment      float64   `yaml:"min_adjustment" json:"min_adjustment"`
	MaxAdjustment      float64   `yaml:"max_adjustment" json:"max_adjustment"`
	Fees               FeeBundle `yaml:"fees" json:"fees"`
}

// Validator is a lender's deal-validation predicate: pass/fail plus
// human-readable reasons. Infeasibility is data, never an error.
type Validator func(d deal.Input, amountFinanced float64) (bool, []string)

// Config is one lender's complete rule set.
type Config struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Active bool   `yaml:"active" json:"active"`

	AllowedTerms      []int   `yaml:"allowed_terms" json:"allowed_terms"`
	MinAmountFinanced float64 `yaml:"min_amount_financed" json:"min_amount_financed"`
	MaxAmountFinanced float64 `yaml:"max_amount_financed" json:"max_amount_financed"`

	MaxBackendTotal   float64 `yaml:"max_backend_total" json:"max_backend_total"`
	MaxBackendPercent float64 `yaml:"max_backend_percent" json:"max_backend_percent"`

	// Legacy direct caps, kept as a redundant safety net alongside
	// Restrictions.
	MaxVehicleAge     int `yaml:"max_vehicle_age" json:"max_vehicle_age"`
	MaxVehicleMileage int `yaml:"max_vehicle_mileage" json:"max_vehicle_mileage"`

	// Flat fee percent of amount financed; only the fallback policy uses it.
	LenderFeePercent float64 `yaml:"lender_fee_percent" json:"lender_fee_percent"`

	Policy       AdvancePolicy       `yaml:"policy" json:"policy"`
	CostBased    *CostBasedParams    `yaml:"cost_based,omitempty" json:"cost_based,omitempty"`
	PaymentBased *PaymentBasedParams `yaml:"payment_based,omitempty" json:"payment_based,omitempty"`
	RiskAdjusted *RiskAdjustedParams `yaml:"risk_adjusted,omitempty" json:"risk_adjusted,omitempty"`

	PricingGrid  map[deal.CreditTier]PricingTier `yaml:"pricing_grid" json:"pricing_grid"`
	Restrictions VehicleRestrictions             `yaml:"restrictions" json:"restrictions"`
	Preferences  []VehiclePreference             `yaml:"preferences,omitempty" json:"preferences,omitempty"`

	// ValidateDeal is attached in code (built-in lenders) or defaulted by the
	// loader; YAML cannot carry a predicate.
	ValidateDeal Validator `yaml:"-" json:"-"`
}

// TierRow looks up the pricing-grid row for a credit tier.
func (c Config) TierRow(tier deal.CreditTier) (PricingTier, bool) {
	row, ok := c.PricingGrid[tier]
	return row, ok
}

// SupportsTerm reports whether the lender buys the given term.
func (c Config) SupportsTerm(term int) bool {
	for _, t := range c.AllowedTerms {
		if t == term {
			return true
		}
	}
	return false
}

// DefaultValidator builds the standard predicate from the pricing grid: the
// customer's total down must meet the tier row's minimum down percent of the
// selling price. Used whenever a lender has no bespoke predicate.
func DefaultValidator(c Config) Validator {
	return func(d deal.Input, amountFinanced float64) (bool, []string) {
		row, ok := c.TierRow(d.CreditTier)
		if !ok {
			return false, []string{fmt.Sprintf("credit tier %s not supported", d.CreditTier)}
		}
		var reasons []string
		if d.DownPercent()*100 < row.MinDownPercent {
			reasons = append(reasons, fmt.Sprintf(
				"total down %.1f%% below required %.1f%%",
				d.DownPercent()*100, row.MinDownPercent))
		}
		return len(reasons) == 0, reasons
	}
}

// Validate checks the structural invariants of a lender config: at least one
// pricing row, only known tiers, positive multipliers and a known policy tag.
func (c Config) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("lender config missing id")
	}
	if len(c.AllowedTerms) == 0 {
		return fmt.Errorf("lender %s: no allowed terms", c.ID)
	}
	for _, t := range c.AllowedTerms {
		if t <= 0 {
			return fmt.Errorf("lender %s: non-positive term %d", c.ID, t)
		}
	}
	if len(c.PricingGrid) == 0 {
		return fmt.Errorf("lender %s: empty pricing grid", c.ID)
	}
	for tier := range c.PricingGrid {
		if !tier.IsValid() {
			return fmt.Errorf("lender %s: unknown credit tier %q in pricing grid", c.ID, tier)
		}
	}
	for _, p := range c.Preferences {
		if p.Multiplier <= 0 {
			return fmt.Errorf("lender %s: non-positive multiplier %.2f for make %s", c.ID, p.Multiplier, p.Make)
		}
	}
	switch c.Policy {
	case PolicyCostBased:
		if c.CostBased == nil {
			return fmt.Errorf("lender %s: cost_based policy without parameters", c.ID)
		}
	case PolicyPaymentBased:
		if c.PaymentBased == nil {
			return fmt.Errorf("lender %s: payment_based policy without parameters", c.ID)
		}
	case PolicyRiskAdjusted:
		if c.RiskAdjusted == nil {
			return fmt.Errorf("lender %s: risk_adjusted policy without parameters", c.ID)
		}
	case PolicyFallback, "":
		// fallback needs nothing beyond the pricing grid
	default:
		return fmt.Errorf("lender %s: unknown advance policy %q", c.ID, c.Policy)
	}
	return nil
}
