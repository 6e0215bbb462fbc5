package analysis

import (
	"fmt"

	"github.com/landscan/zoneaudit/internal/models"
	"github.com/landscan/zoneaudit/internal/zoning"
)

// ViolationType identifies which zoning constraint a parcel breaks.
type ViolationType string

const (
	ViolationUndersizedLot     ViolationType = "undersized_lot"
	ViolationExcessLotCoverage ViolationType = "excess_lot_coverage"
	ViolationIncompatibleUse   ViolationType = "incompatible_use"
)

// Severity ranks violations. Dimensional violations are major; a use that
// the district does not permit at all is critical.
type Severity string

const (
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Violation is one finding from evaluating a parcel against its district's
// rules. The numeric payload depends on the type: Deficit for undersized
// lots, ExcessPct for coverage, CurrentUse/AllowedUses for incompatible use.
type Violation struct {
	Type        ViolationType `json:"type"`
	Severity    Severity      `json:"severity"`
	Description string        `json:"description"`

	Deficit     float64              `json:"deficit,omitempty"`
	ExcessPct   float64              `json:"excess_pct,omitempty"`
	CurrentUse  zoning.UseCategory   `json:"current_use,omitempty"`
	AllowedUses []zoning.UseCategory `json:"allowed_uses,omitempty"`
}

// Evaluate checks one property against the rule table and returns its
// violations in fixed order: lot size, lot coverage, use compatibility.
// It never fails: a missing or unknown zone code yields an empty result.
//
// Thresholds are exclusive boundaries. A lot exactly at the minimum size or
// exactly at the maximum coverage is conforming.
func Evaluate(p models.PropertyRecord, rules zoning.RuleTable) []Violation {
	rule, ok := rules.Lookup(p.Zoning)
	if p.Zoning == "" || !ok {
		return nil
	}

	var violations []Violation

	if rule.MinLotSizeSqft > 0 && p.ParcelAreaSqft < rule.MinLotSizeSqft {
		violations = append(violations, Violation{
			Type:     ViolationUndersizedLot,
			Severity: SeverityMajor,
			Description: fmt.Sprintf("Lot size %.0f sqft is below minimum %d sqft",
				p.ParcelAreaSqft, int(rule.MinLotSizeSqft)),
			Deficit: rule.MinLotSizeSqft - p.ParcelAreaSqft,
		})
	}

	// Coverage of exactly 0 means "no building data", not a conforming
	// empty lot, so it is skipped rather than compared.
	if rule.MaxLotCoveragePct > 0 && p.LotCoveragePct > 0 && p.LotCoveragePct > rule.MaxLotCoveragePct {
		violations = append(violations, Violation{
			Type:     ViolationExcessLotCoverage,
			Severity: SeverityMajor,
			Description: fmt.Sprintf("Lot coverage %.1f%% exceeds maximum %g%%",
				p.LotCoveragePct, rule.MaxLotCoveragePct),
			ExcessPct: p.LotCoveragePct - rule.MaxLotCoveragePct,
		})
	}

	use := zoning.Classify(p.LandUseDesc)
	if len(rule.AllowedUses) > 0 && use != zoning.UseUnknown && use != zoning.UseVacant {
		if !rule.AllowsUse(use) {
			violations = append(violations, Violation{
				Type:     ViolationIncompatibleUse,
				Severity: SeverityCritical,
				Description: fmt.Sprintf("Land use '%s' not allowed in %s zone",
					use, rule.Name),
				CurrentUse:  use,
				AllowedUses: rule.AllowedUses,
			})
		}
	}

	return violations
}
