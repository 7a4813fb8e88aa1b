package risk

import (
	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/payment"
	"dealer_rehash/pkg/core/valuation"
)

// Factory warranty assumptions used for VSC recommendations.
const (
	warrantyMaxAge     = 5
	warrantyMaxMileage = 60000
)

// Assessment is the lender-independent risk picture of a deal, computed once
// before the lender loop and embedded in every candidate.
type Assessment struct {
	BookValue      float64 `json:"book_value"`
	LTVPercent     float64 `json:"ltv_percent"`
	IsUpsideDown   bool    `json:"is_upside_down"`
	OutOfWarranty  bool    `json:"out_of_warranty"`
	WarrantyReason string  `json:"warranty_reason,omitempty"` // age|mileage|both
	VehicleAge     int     `json:"vehicle_age"`
	Mileage        int     `json:"mileage"`
	RecommendGAP   bool    `json:"recommend_gap"`
	RecommendVSC   bool    `json:"recommend_vsc"`
	RiskScore      float64 `json:"risk_score"`
}

// Assess builds the risk assessment for a deal. The LTV here is the clean
// structure (no backend products) so product recommendations don't feed back
// into the very LTV that triggered them.
func Assess(d deal.Input) Assessment {
	age := d.VehicleAge()
	book := valuation.BookValue(d.VehiclePrice, age, d.Mileage)
	financed := payment.AmountFinanced(d, d.DownPayment, 0)
	ltv := valuation.LTVPercent(financed, book)

	a := Assessment{
		BookValue:  book,
		LTVPercent: ltv,
		VehicleAge: age,
		Mileage:    d.Mileage,
		RiskScore:  Score(d),
	}

	a.IsUpsideDown = ltv > 100

	overAge := age > warrantyMaxAge
	overMiles := d.Mileage > warrantyMaxMileage
	switch {
	case overAge && overMiles:
		a.OutOfWarranty = true
		a.WarrantyReason = "both"
	case overAge:
		a.OutOfWarranty = true
		a.WarrantyReason = "age"
	case overMiles:
		a.OutOfWarranty = true
		a.WarrantyReason = "mileage"
	}

	a.RecommendGAP = a.IsUpsideDown
	a.RecommendVSC = a.OutOfWarranty

	return a
}
