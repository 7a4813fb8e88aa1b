package rehash

import (
	"testing"
)

func TestRankCandidatesByNetCheck(t *testing.T) {
	cands := []DealCandidate{
		{LenderID: "a", NetCheck: 100},
		{LenderID: "b", NetCheck: 200},
		{LenderID: "c", NetCheck: 150},
	}
	rankCandidates(cands, 450)
	if cands[0].LenderID != "b" || cands[1].LenderID != "c" || cands[2].LenderID != "a" {
		t.Errorf("want order b,c,a by net check desc, got %s,%s,%s",
			cands[0].LenderID, cands[1].LenderID, cands[2].LenderID)
	}
}

func TestRankCandidatesTieBreakByPaymentProximity(t *testing.T) {
	cands := []DealCandidate{
		{LenderID: "far", NetCheck: 100, MonthlyPayment: 430},
		{LenderID: "near", NetCheck: 100, MonthlyPayment: 460},
	}
	// target 450: |460-450| = 10 beats |430-450| = 20
	rankCandidates(cands, 450)
	if cands[0].LenderID != "near" {
		t.Errorf("tie should break toward the target payment, got %s first", cands[0].LenderID)
	}
}

func TestRankCandidatesStable(t *testing.T) {
	// Identical net check and payment distance: generation order survives.
	cands := []DealCandidate{
		{LenderID: "first", NetCheck: 100, MonthlyPayment: 450},
		{LenderID: "second", NetCheck: 100, MonthlyPayment: 450},
	}
	rankCandidates(cands, 450)
	if cands[0].LenderID != "first" {
		t.Error("equal candidates must keep generation order")
	}
}

func TestSelectBestPrefersPaymentWindow(t *testing.T) {
	cands := []DealCandidate{
		{LenderID: "rich_but_high", NetCheck: 1000, MonthlyPayment: 600},
		{LenderID: "in_window", NetCheck: 500, MonthlyPayment: 440},
	}
	best := selectBest(cands, 450, 50)
	if best == nil || best.LenderID != "in_window" {
		t.Errorf("window candidate must win over a richer out-of-window one, got %+v", best)
	}
}

func TestSelectBestDegradesWhenWindowEmpty(t *testing.T) {
	cands := []DealCandidate{
		{LenderID: "a", NetCheck: 500, MonthlyPayment: 620},
		{LenderID: "b", NetCheck: 1000, MonthlyPayment: 600},
	}
	best := selectBest(cands, 450, 50)
	if best == nil || best.LenderID != "b" {
		t.Errorf("empty window should degrade to the global best, got %+v", best)
	}
}

func TestSelectBestEmptyPool(t *testing.T) {
	if best := selectBest(nil, 450, 50); best != nil {
		t.Errorf("no candidates should yield nil, got %+v", best)
	}
}
