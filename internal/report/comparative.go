package report

import (
	"strings"

	"github.com/landscan/zoneaudit/internal/analysis"
	"github.com/landscan/zoneaudit/internal/services"
	"github.com/landscan/zoneaudit/internal/zoning"
)

// Comparative renders the single-family versus multi-family comparison:
// per-group rollups with zone breakdowns, the direct ratio comparison, and
// the headline insights.
func Comparative(res *services.AnalysisResult, rules zoning.RuleTable) string {
	r := &textReport{}
	c := res.ResidentialComparison

	r.heading("RESIDENTIAL ZONE COMPARATIVE ANALYSIS")
	r.add("Single-Family Only vs Multi-Family Allowed Zones")
	r.addf("Generated: %s", res.AnalysisDate.Format("2006-01-02 15:04:05"))
	r.addf("Based on: %s", ordinanceCitation)

	writeGroupSection(r, c.GroupA, analysis.SingleFamilyGroup,
		"These zones permit ONLY single-family dwellings", res.ZoningAnalysis, rules)
	writeGroupSection(r, c.GroupB, analysis.MultiFamilyGroup,
		"These zones permit single-family, two-family, AND multi-family dwellings", res.ZoningAnalysis, rules)

	writeDirectComparison(r, c)
	writeKeyInsights(r, c)

	return r.String()
}

func writeGroupSection(r *textReport, stats analysis.GroupStats, group analysis.ZoneGroup, permits string, metrics analysis.MetricsResult, rules zoning.RuleTable) {
	r.blank()
	r.add(lightRule)
	r.addf("%s ZONES (%s)", strings.ToUpper(group.Name), strings.Join(group.Zones, ", "))
	r.add(lightRule)
	r.add(permits)
	r.blank()
	r.addf("Total Land Area: %s acres", commaFloat(stats.TotalAcres, 2))
	r.addf("Total Parcels: %s", commaInt(stats.TotalParcels))
	r.addf("Parcels per Acre: %.2f", stats.ParcelsPerAcre)
	r.addf("Total Property Value: $%s", commaFloat(stats.TotalValue, 0))
	r.addf("Revenue Density: $%s/acre", commaFloat(stats.RevenueDensity, 0))
	r.blank()

	r.add("Zone Breakdown:")
	for _, code := range group.Zones {
		m, ok := metrics.Zones[code]
		if !ok {
			continue
		}
		rule, _ := rules.Lookup(code)
		r.addf("  %s (%s): %s acres, %s parcels (min lot: %s sf)",
			code, zoneName(rules, code), commaFloat(m.TotalAcres, 0),
			commaInt(m.ParcelCount), commaFloat(rule.MinLotSizeSqft, 0))
	}
	r.blank()

	r.add("Violations:")
	r.addf("  Parcels with Violations: %s (%.1f%%)", commaInt(stats.Violations), stats.ViolationRate)
	r.addf("  Undersized Lots: %s", commaInt(stats.UndersizedLots))
	r.addf("  Incompatible Uses: %s", commaInt(stats.IncompatibleUses))
}

func writeDirectComparison(r *textReport, c analysis.GroupComparison) {
	sf, mf := c.GroupA, c.GroupB

	r.blank()
	r.add(lightRule)
	r.add("DIRECT COMPARISON")
	r.add(lightRule)

	r.blank()
	r.add("Land Area:")
	r.addf("  Single-family zones have %.2fx MORE land than multi-family zones", c.LandAreaRatio)
	r.addf("  Single-family: %s acres vs Multi-family: %s acres",
		commaFloat(sf.TotalAcres, 0), commaFloat(mf.TotalAcres, 0))

	r.blank()
	r.add("Total Property Value:")
	if c.TotalValueRatio >= 1 {
		r.addf("  Single-family zones have %.2fx MORE value than multi-family zones", c.TotalValueRatio)
	} else if c.TotalValueRatio > 0 {
		r.addf("  Multi-family zones have %.2fx MORE value than single-family zones", 1/c.TotalValueRatio)
	}
	r.addf("  Single-family: $%s vs Multi-family: $%s",
		commaFloat(sf.TotalValue, 0), commaFloat(mf.TotalValue, 0))

	r.blank()
	r.add("Revenue Density (Value per Acre):")
	r.addf("  Multi-family zones are %.2fx MORE revenue-dense than single-family zones", c.RevenueDensityRatio)
	r.addf("  Single-family: $%s/acre vs Multi-family: $%s/acre",
		commaFloat(sf.RevenueDensity, 0), commaFloat(mf.RevenueDensity, 0))

	r.blank()
	r.add("Parcel Density (Parcels per Acre):")
	r.addf("  Multi-family zones have %.2fx MORE parcels per acre", c.ParcelDensityRatio)
	r.addf("  Single-family: %.2f parcels/acre vs Multi-family: %.2f parcels/acre",
		sf.ParcelsPerAcre, mf.ParcelsPerAcre)

	r.blank()
	r.add("Violation Rates:")
	if diff := sf.ViolationRate - mf.ViolationRate; diff >= 0 {
		r.addf("  Single-family zones have %.1f percentage points HIGHER violation rate", diff)
	} else {
		r.addf("  Multi-family zones have %.1f percentage points HIGHER violation rate", -diff)
	}
	r.addf("  Single-family: %.1f%% vs Multi-family: %.1f%%", sf.ViolationRate, mf.ViolationRate)
}

func writeKeyInsights(r *textReport, c analysis.GroupComparison) {
	sf, mf := c.GroupA, c.GroupB

	r.blank()
	r.heading("KEY INSIGHTS")

	totalAcres := sf.TotalAcres + mf.TotalAcres
	sfPct, mfPct := 0.0, 0.0
	if totalAcres > 0 {
		sfPct = sf.TotalAcres / totalAcres * 100
		mfPct = mf.TotalAcres / totalAcres * 100
	}

	r.addf("\n• %.1f%% of residential land is zoned for single-family ONLY", sfPct)
	r.addf("• %.1f%% of residential land allows multi-family housing", mfPct)
	r.addf("• Multi-family zones generate %.2fx more tax revenue per acre", c.RevenueDensityRatio)
	r.addf("• Multi-family zones accommodate %.2fx more housing units per acre", c.ParcelDensityRatio)
	r.addf("• %s parcels in single-family zones are too small for current zoning", commaInt(sf.UndersizedLots))
	r.addf("• %s parcels in multi-family zones are too small for current zoning", commaInt(mf.UndersizedLots))
}
