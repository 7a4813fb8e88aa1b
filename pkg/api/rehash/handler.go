package rehash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"dealer_rehash/pkg/core/compliance"
	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/insight"
	"dealer_rehash/pkg/core/lender"
	coreRehash "dealer_rehash/pkg/core/rehash"
	"dealer_rehash/pkg/core/store"
)

const cacheTTL = 10 * time.Minute

// Handler serves the optimizer endpoint. Lenders are process-wide static
// config; advisor, cache and repo are optional collaborators.
type Handler struct {
	Lenders []lender.Config
	Advisor *insight.Advisor
	Cache   store.ResponseCache
	Repo    *store.RehashRepo
}

func NewHandler(lenders []lender.Config, advisor *insight.Advisor, cache store.ResponseCache, repo *store.RehashRepo) *Handler {
	return &Handler{Lenders: lenders, Advisor: advisor, Cache: cache, Repo: repo}
}

// Response is the full desk view for one request: ranked structures, the
// bank-rule triage of that pool, and the advisory classification.
type Response struct {
	RunID      string                  `json:"run_id"`
	Result     coreRehash.Result       `json:"result"`
	BankRules  compliance.BankRules    `json:"bank_rules"`
	Compliance compliance.TriageResult `json:"compliance"`
	Insight    insight.Classification  `json:"insight"`
}

// HandleRehash runs the optimizer for one deal input.
func (h *Handler) HandleRehash(w http.ResponseWriter, r *http.Request) {
	// CORS for local dev
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

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var d deal.Input
	if err := json.Unmarshal(body, &d); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !d.CreditTier.IsValid() {
		http.Error(w, fmt.Sprintf("unknown credit tier %q", d.CreditTier), http.StatusBadRequest)
		return
	}

	// The core is pure, so identical bodies yield identical responses.
	key := cacheKey(body)
	if h.Cache != nil {
		if cached, ok := h.Cache.Get(r.Context(), key); ok {
			fmt.Printf("[REHASH-API] cache hit %s\n", key[:12])
			w.Header().Set("Content-Type", "application/json")
			io.Copy(w, bytes.NewReader([]byte(cached)))
			return
		}
	}

	result := coreRehash.Run(d, h.Lenders)
	rules := compliance.DetermineBankRules(d.Mileage, result.Risk.LTVPercent, d.CreditTier)
	triage := compliance.FilterCompliantDeals(result.Candidates, rules)

	resp := Response{
		RunID:      uuid.NewString(),
		Result:     result,
		BankRules:  rules,
		Compliance: triage,
	}
	if h.Advisor != nil {
		resp.Insight = h.Advisor.AssessDeal(r.Context(), d, result, rules)
	}

	if h.Repo != nil {
		if err := h.Repo.Save(r.Context(), resp.RunID, d, result); err != nil {
			// Archive failures never fail the request.
			fmt.Printf("[REHASH-API] archive save failed: %v\n", err)
		}
	}

	out, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if h.Cache != nil {
		h.Cache.Set(r.Context(), key, string(out), cacheTTL)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

func cacheKey(body []byte) string {
	sum := sha256.Sum256(body)
	return "rehash:" + hex.EncodeToString(sum[:])
}
