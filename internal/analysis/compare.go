package analysis

// ZoneGroup names a set of zone codes analyzed as a unit, e.g. the
// single-family-only districts versus the multi-family-allowed ones.
type ZoneGroup struct {
	Name  string   `json:"name"`
	Zones []string `json:"zones"`
}

// Default residential groupings for the comparative report.
var (
	SingleFamilyGroup = ZoneGroup{Name: "Single-Family Only", Zones: []string{"R", "SRA", "SRB"}}
	MultiFamilyGroup  = ZoneGroup{Name: "Multi-Family Allowed", Zones: []string{"GRA", "GRB", "GRC"}}
)

// GroupStats sums zone-level metrics and violations across one zone group
// and derives its density and rate figures. All derived ratios are 0 when
// their denominator is 0.
type GroupStats struct {
	Name             string  `json:"name"`
	TotalAcres       float64 `json:"total_acres"`
	TotalParcels     int     `json:"total_parcels"`
	TotalValue       float64 `json:"total_value"`
	Violations       int     `json:"violations"`
	UndersizedLots   int     `json:"undersized_lots"`
	IncompatibleUses int     `json:"incompatible_uses"`

	RevenueDensity float64 `json:"revenue_density"`
	ViolationRate  float64 `json:"violation_rate"`
	ParcelsPerAcre float64 `json:"parcels_per_acre"`
}

// GroupComparison contrasts two zone groups. Ratio conventions follow the
// questions the report answers: land and value compare A to B, while the
// density ratios compare B to A ("how much denser is multi-family?").
// Every ratio falls back to 0 when the denominator is 0.
type GroupComparison struct {
	GroupA GroupStats `json:"group_a"`
	GroupB GroupStats `json:"group_b"`

	LandAreaRatio       float64 `json:"land_area_ratio"`       // A acres / B acres
	TotalValueRatio     float64 `json:"total_value_ratio"`     // A value / B value
	RevenueDensityRatio float64 `json:"revenue_density_ratio"` // B density / A density
	ParcelDensityRatio  float64 `json:"parcel_density_ratio"`  // B parcels/acre / A parcels/acre
}

// CompareGroups computes summed and derived statistics for two disjoint
// zone groups from already-aggregated results. It is pure post-processing:
// no property records are revisited.
func CompareGroups(metrics MetricsResult, violations ViolationReport, groupA, groupB ZoneGroup) GroupComparison {
	a := collectGroupStats(metrics, violations, groupA)
	b := collectGroupStats(metrics, violations, groupB)

	return GroupComparison{
		GroupA:              a,
		GroupB:              b,
		LandAreaRatio:       safeDiv(a.TotalAcres, b.TotalAcres),
		TotalValueRatio:     safeDiv(a.TotalValue, b.TotalValue),
		RevenueDensityRatio: safeDiv(b.RevenueDensity, a.RevenueDensity),
		ParcelDensityRatio:  safeDiv(b.ParcelsPerAcre, a.ParcelsPerAcre),
	}
}

func collectGroupStats(metrics MetricsResult, violations ViolationReport, group ZoneGroup) GroupStats {
	stats := GroupStats{Name: group.Name}

	for _, zone := range group.Zones {
		if zm, ok := metrics.Zones[zone]; ok {
			stats.TotalAcres += zm.TotalAcres
			stats.TotalParcels += zm.ParcelCount
			stats.TotalValue += zm.TotalValue
		}
		if vs, ok := violations.ViolationsByZone[zone]; ok {
			stats.Violations += vs.ParcelsWithViolations
			stats.UndersizedLots += vs.ViolationsByType[ViolationUndersizedLot]
			stats.IncompatibleUses += vs.ViolationsByType[ViolationIncompatibleUse]
		}
	}

	stats.RevenueDensity = safeDiv(stats.TotalValue, stats.TotalAcres)
	stats.ViolationRate = safeDiv(float64(stats.Violations), float64(stats.TotalParcels)) * 100
	stats.ParcelsPerAcre = safeDiv(float64(stats.TotalParcels), stats.TotalAcres)

	return stats
}

// safeDiv divides, yielding 0 instead of a fault for empty denominators.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
