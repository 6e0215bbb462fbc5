package analysis

import (
	"github.com/landscan/zoneaudit/internal/models"
	"github.com/landscan/zoneaudit/internal/zoning"
)

// ViolationExample is one illustrative parcel retained for a zone's summary.
type ViolationExample struct {
	Address    string      `json:"address"`
	ParcelID   string      `json:"parcel_id"`
	Violations []Violation `json:"violations"`
}

// ZoneViolationSummary rolls violation findings up for one zone. Counts are
// exact over the full collection; Examples is truncated at the caller's cap
// and keeps first-encountered input order.
type ZoneViolationSummary struct {
	TotalParcels          int                   `json:"total_parcels"`
	ParcelsWithViolations int                   `json:"parcels_with_violations"`
	ViolationsByType      map[ViolationType]int `json:"violations_by_type"`
	Examples              []ViolationExample    `json:"examples"`
}

// PropertyViolations pairs a property with every violation found on it.
type PropertyViolations struct {
	Property   models.PropertyRecord `json:"property"`
	Violations []Violation           `json:"violations"`
}

// ViolationReport is the output of AggregateViolations.
//
// UnknownZoneParcels counts properties whose zoning code is not present in
// the rule table; those parcels appear in their zone's TotalParcels but can
// never produce violations, so the count surfaces the data-quality gap
// explicitly instead of hiding it in a zero violation rate.
type ViolationReport struct {
	ViolationsByZone   map[string]*ZoneViolationSummary `json:"violations_by_zone"`
	AllViolations      []PropertyViolations             `json:"all_violations"`
	UnknownZoneParcels int                              `json:"unknown_zone_parcels"`
}

// AggregateViolations evaluates every zoned property against the rule table
// and rolls findings up per zone. exampleCap bounds only the per-zone
// example list (callers use 5 for console summaries and 10 for full
// reports); it never affects the counts.
func AggregateViolations(properties []models.PropertyRecord, rules zoning.RuleTable, exampleCap int) ViolationReport {
	report := ViolationReport{
		ViolationsByZone: make(map[string]*ZoneViolationSummary),
	}

	for _, p := range properties {
		if p.Zoning == "" {
			continue
		}

		summary, ok := report.ViolationsByZone[p.Zoning]
		if !ok {
			summary = &ZoneViolationSummary{
				ViolationsByType: make(map[ViolationType]int),
				Examples:         []ViolationExample{},
			}
			report.ViolationsByZone[p.Zoning] = summary
		}
		summary.TotalParcels++

		if _, known := rules.Lookup(p.Zoning); !known {
			report.UnknownZoneParcels++
			continue
		}

		violations := Evaluate(p, rules)
		if len(violations) == 0 {
			continue
		}

		summary.ParcelsWithViolations++
		for _, v := range violations {
			summary.ViolationsByType[v.Type]++
		}

		if len(summary.Examples) < exampleCap {
			summary.Examples = append(summary.Examples, ViolationExample{
				Address:    p.Address,
				ParcelID:   p.ParcelID,
				Violations: violations,
			})
		}

		report.AllViolations = append(report.AllViolations, PropertyViolations{
			Property:   p,
			Violations: violations,
		})
	}

	return report
}
