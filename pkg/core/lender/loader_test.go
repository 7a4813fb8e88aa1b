package lender

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
lenders:
  - id: test_lender
    name: Test Lender
    active: true
    allowed_terms: [36, 48]
    min_amount_financed: 5000
    policy: fallback
    lender_fee_percent: 2.0
    pricing_grid:
      subprime: {min_apr: 18.0, max_apr: 22.0, min_down_percent: 10, min_advance_percent: 85, max_advance_percent: 110, max_ltv_percent: 150}
    restrictions:
      max_age_years: 10
      max_mileage: 120000
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lenders.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	lenders, err := LoadFromFile(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(lenders) != 1 {
		t.Fatalf("want 1 lender, got %d", len(lenders))
	}
	l := lenders[0]
	if l.ID != "test_lender" || !l.Active {
		t.Errorf("unexpected lender: %+v", l)
	}
	if !l.SupportsTerm(36) || l.SupportsTerm(60) {
		t.Error("allowed terms not parsed")
	}
	if l.Restrictions.MaxMileage != 120000 {
		t.Errorf("max mileage = %d, want 120000", l.Restrictions.MaxMileage)
	}
	// YAML cannot carry a predicate; the loader must attach the default.
	if l.ValidateDeal == nil {
		t.Error("loader should attach the default validation predicate")
	}
}

func TestLoadFromFileMalformed(t *testing.T) {
	if _, err := LoadFromFile(writeConfig(t, "lenders: [")); err == nil {
		t.Error("malformed YAML must be an error, not a silent default")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	if _, err := LoadFromFile(writeConfig(t, "lenders: []")); err == nil {
		t.Error("a config with no lenders must be an error")
	}
}

func TestLoadFromFileInvalidLender(t *testing.T) {
	bad := `
lenders:
  - id: broken
    name: Broken
    allowed_terms: [36]
    policy: cost_based
    pricing_grid:
      subprime: {min_apr: 18.0}
`
	// cost_based without parameters fails structural validation
	if _, err := LoadFromFile(writeConfig(t, bad)); err == nil {
		t.Error("want validation error for cost_based without parameters")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	lenders, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lenders) != 4 {
		t.Fatalf("missing file should fall back to the 4 built-in lenders, got %d", len(lenders))
	}
}

func TestLoadOrDefaultMalformedStillErrors(t *testing.T) {
	if _, err := LoadOrDefault(writeConfig(t, "lenders: [")); err == nil {
		t.Error("a present-but-broken file must error rather than mask with defaults")
	}
}
