package compliance

import (
	"encoding/json"
	"fmt"
	"net/http"

	coreCompliance "dealer_rehash/pkg/core/compliance"
	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/rehash"
)

// Request triages an already computed candidate pool under bank rules
// derived from the deal's mileage, LTV and credit tier.
type Request struct {
	Candidates []rehash.DealCandidate `json:"candidates"`
	Mileage    int                    `json:"mileage"`
	LTVPercent float64                `json:"ltv_percent"`
	CreditTier deal.CreditTier        `json:"credit_tier"`
}

type Response struct {
	BankRules coreCompliance.BankRules    `json:"bank_rules"`
	Triage    coreCompliance.TriageResult `json:"triage"`
}

// HandleTriage derives the bank rules and partitions the candidate pool.
func HandleTriage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !req.CreditTier.IsValid() {
		http.Error(w, fmt.Sprintf("unknown credit tier %q", req.CreditTier), http.StatusBadRequest)
		return
	}

	rules := coreCompliance.DetermineBankRules(req.Mileage, req.LTVPercent, req.CreditTier)
	triage := coreCompliance.FilterCompliantDeals(req.Candidates, rules)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{BankRules: rules, Triage: triage})
}
