package rehash

import (
	"testing"

	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/risk"
)

func TestBuildScenariosFullStripPath(t *testing.T) {
	ra := risk.Assessment{RecommendGAP: true, RecommendVSC: true}
	scenarios := BuildScenarios(deal.Input{}, ra, 0)

	if len(scenarios) != 3 {
		t.Fatalf("want optimal/vsc_stripped/all_stripped, got %d scenarios", len(scenarios))
	}

	opt := scenarios[0]
	if opt.Level != LevelOptimal || !opt.IncludeGAP || !opt.IncludeVSC {
		t.Errorf("optimal scenario wrong: %+v", opt)
	}
	if opt.Total != gapPrice+vscPrice {
		t.Errorf("optimal total = %.0f, want %.0f", opt.Total, gapPrice+vscPrice)
	}

	stripped := scenarios[1]
	if stripped.Level != LevelVSCStripped || !stripped.IncludeGAP || stripped.IncludeVSC {
		t.Errorf("vsc_stripped scenario wrong: %+v", stripped)
	}
	if stripped.Total != gapPrice {
		t.Errorf("vsc_stripped total = %.0f, want %.0f", stripped.Total, gapPrice)
	}

	bare := scenarios[2]
	if bare.Level != LevelAllStripped || bare.IncludeGAP || bare.IncludeVSC || bare.Total != 0 {
		t.Errorf("all_stripped scenario wrong: %+v", bare)
	}
}

func TestBuildScenariosNoVSCToStrip(t *testing.T) {
	// GAP only: there is no vsc_stripped rung on the ladder.
	d := deal.Input{WantsGAP: true}
	scenarios := BuildScenarios(d, risk.Assessment{}, 0)
	if len(scenarios) != 2 {
		t.Fatalf("want 2 scenarios without a VSC, got %d", len(scenarios))
	}
	if scenarios[0].Level != LevelOptimal || scenarios[1].Level != LevelAllStripped {
		t.Errorf("unexpected levels: %s, %s", scenarios[0].Level, scenarios[1].Level)
	}
}

func TestBuildScenariosCustomerRequestCounts(t *testing.T) {
	// Customer asked for VSC even though the assessment doesn't recommend it.
	d := deal.Input{WantsVSC: true}
	scenarios := BuildScenarios(d, risk.Assessment{}, 0)
	if !scenarios[0].IncludeVSC {
		t.Error("customer-requested VSC belongs in the optimal bundle")
	}
}

func TestBuildScenariosCapsAtLenderMax(t *testing.T) {
	ra := risk.Assessment{RecommendGAP: true, RecommendVSC: true}
	scenarios := BuildScenarios(deal.Input{}, ra, 3000)
	if scenarios[0].Total != 3000 {
		t.Errorf("optimal total = %.0f, want capped 3000", scenarios[0].Total)
	}
}

func TestBuildScenariosOtherTotalFlowsThrough(t *testing.T) {
	ra := risk.Assessment{RecommendGAP: true, RecommendVSC: true}
	d := deal.Input{OtherTotal: 500}
	scenarios := BuildScenarios(d, ra, 0)

	wants := []float64{500 + gapPrice + vscPrice, 500 + gapPrice, 500}
	for i, w := range wants {
		if scenarios[i].Total != w {
			t.Errorf("scenario %s total = %.0f, want %.0f", scenarios[i].Level, scenarios[i].Total, w)
		}
	}
}
