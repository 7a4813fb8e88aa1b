package rehash

import (
	"fmt"
	"strings"

	"dealer_rehash/pkg/core/risk"
)

// smartNote builds the one-line explanation for a candidate from a small
// decision table over the optimization level and the deal's risk flags.
// Vehicle eligibility warnings are appended after the scenario note.
func smartNote(level OptimizationLevel, includesGAP, includesVSC bool, ra risk.Assessment, warnings []string) string {
	var note string

	switch level {
	case LevelOptimal:
		switch {
		case includesGAP && ra.IsUpsideDown:
			note = fmt.Sprintf("Added GAP due to high LTV (%.0f%%)", ra.LTVPercent)
		case includesVSC && ra.OutOfWarranty && ra.WarrantyReason == "mileage":
			note = fmt.Sprintf("Added VSC: %d miles is past factory warranty", ra.Mileage)
		case includesVSC && ra.OutOfWarranty:
			note = fmt.Sprintf("Added VSC: %d-year-old vehicle is out of warranty", ra.VehicleAge)
		case includesGAP || includesVSC:
			note = "Full protection structure at the requested payment"
		default:
			note = "Clean structure, no backend products needed"
		}
	case LevelVSCStripped:
		note = "Removed VSC to meet payment target"
		if includesGAP {
			note += " (GAP retained for negative equity)"
		}
	case LevelAllStripped:
		note = "Stripped backend products to maximize payment room"
	default:
		note = "Standard structure"
	}

	if len(warnings) > 0 {
		note += ". " + strings.Join(warnings, ". ")
	}
	return note
}
