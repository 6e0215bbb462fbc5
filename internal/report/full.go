package report

import (
	"sort"

	"github.com/landscan/zoneaudit/internal/analysis"
	"github.com/landscan/zoneaudit/internal/services"
	"github.com/landscan/zoneaudit/internal/zoning"
)

const (
	ordinanceCitation = "Portsmouth Zoning Ordinance (Amended through May 5, 2025)"
	ordinanceURL      = "https://files.portsmouthnh.gov/files/planning/ZoningOrd-250505+ADOPTED.pdf"

	// Number of zones shown in the tax revenue section.
	topRevenueZones = 15

	// Number of violation examples printed per zone.
	examplesShown = 5
)

// Full renders the comprehensive zoning analysis report: land distribution,
// tax revenue, violations with per-zone examples, and the dimensional
// requirements the evaluation ran against.
func Full(res *services.AnalysisResult, rules zoning.RuleTable) string {
	r := &textReport{}

	r.heading("PORTSMOUTH NH COMPREHENSIVE ZONING ANALYSIS REPORT")
	r.addf("Generated: %s", res.AnalysisDate.Format("2006-01-02 15:04:05"))
	r.addf("Based on: %s", ordinanceCitation)
	r.addf("Source: %s", ordinanceURL)
	r.addf("Total Properties Analyzed: %s", commaInt(res.TotalPropertiesAnalyzed))
	r.addf("Total Land Area: %s acres", commaFloat(res.ZoningAnalysis.TotalAcres, 2))
	r.addf("Total Zones: %d", len(res.ZoningAnalysis.Zones))
	r.blank()

	writeLandDistribution(r, res.ZoningAnalysis, rules)
	writeTaxRevenue(r, res.ZoningAnalysis, rules)
	writeViolations(r, res.ViolationAnalysis, rules)
	writeViolationTotals(r, res.ViolationAnalysis)
	writeDimensionalRequirements(r, rules)

	return r.String()
}

func writeLandDistribution(r *textReport, metrics analysis.MetricsResult, rules zoning.RuleTable) {
	r.heading("LAND DISTRIBUTION BY ZONE")

	byLand := zonesSortedBy(metrics.Zones, func(m analysis.ZoneMetrics) float64 { return m.PercentOfLand })
	for _, z := range byLand {
		r.addf("\n%s - %s", z.code, zoneName(rules, z.code))
		r.addf("  Area: %s acres (%.1f%%)", commaFloat(z.metrics.TotalAcres, 2), z.metrics.PercentOfLand)
		r.addf("  Parcels: %s", commaInt(z.metrics.ParcelCount))
	}
}

func writeTaxRevenue(r *textReport, metrics analysis.MetricsResult, rules zoning.RuleTable) {
	r.blank()
	r.heading("TAX REVENUE ANALYSIS BY ZONE")

	byValue := zonesSortedBy(metrics.Zones, func(m analysis.ZoneMetrics) float64 { return m.TotalValue })
	if len(byValue) > topRevenueZones {
		byValue = byValue[:topRevenueZones]
	}
	for _, z := range byValue {
		r.addf("\n%s - %s", z.code, zoneName(rules, z.code))
		r.addf("  Total Value: $%s", commaFloat(z.metrics.TotalValue, 0))
		r.addf("  Revenue Density: $%s/acre", commaFloat(z.metrics.RevenueDensity, 0))
		r.addf("  Parcels: %s", commaInt(z.metrics.ParcelCount))
	}

	if dense := metrics.MostRevenueDense; dense != nil {
		r.blank()
		r.add(lightRule)
		r.add("MOST REVENUE-DENSE ZONE")
		r.add(lightRule)
		r.addf("Zone: %s", dense.Zone)
		r.addf("Revenue per Acre: $%s", commaFloat(dense.RevenuePerAcre, 0))
	}
}

func writeViolations(r *textReport, report analysis.ViolationReport, rules zoning.RuleTable) {
	r.blank()
	r.heading("ZONING VIOLATIONS ANALYSIS")
	r.addf("Total Violations Found: %d", len(report.AllViolations))

	type zoneViolations struct {
		code    string
		summary *analysis.ZoneViolationSummary
		rate    float64
	}
	var zones []zoneViolations
	for code, summary := range report.ViolationsByZone {
		if summary.ParcelsWithViolations == 0 {
			continue
		}
		rate := float64(summary.ParcelsWithViolations) / float64(summary.TotalParcels)
		zones = append(zones, zoneViolations{code: code, summary: summary, rate: rate})
	}
	sort.Slice(zones, func(i, j int) bool {
		if zones[i].rate != zones[j].rate {
			return zones[i].rate > zones[j].rate
		}
		return zones[i].code < zones[j].code
	})

	for _, z := range zones {
		r.addf("\n%s - %s", z.code, zoneName(rules, z.code))
		r.addf("  Total Parcels: %d", z.summary.TotalParcels)
		r.addf("  Parcels with Violations: %d", z.summary.ParcelsWithViolations)
		r.addf("  Violation Rate: %.1f%%", z.rate*100)

		r.add("\n  Violation Types:")
		for _, tc := range typesByCount(z.summary.ViolationsByType) {
			r.addf("    - %s: %d", tc.vtype, tc.count)
		}

		if len(z.summary.Examples) > 0 {
			r.addf("\n  Examples (first %d):", examplesShown)
			shown := z.summary.Examples
			if len(shown) > examplesShown {
				shown = shown[:examplesShown]
			}
			for _, ex := range shown {
				r.addf("    %s (%s)", ex.Address, ex.ParcelID)
				for _, v := range ex.Violations {
					r.addf("      • [%s] %s", v.Severity, v.Description)
				}
			}
			if extra := len(z.summary.Examples) - examplesShown; extra > 0 {
				r.addf("    ... and %d more examples", extra)
			}
		}
	}
}

type typeCount struct {
	vtype analysis.ViolationType
	count int
}

func typesByCount(byType map[analysis.ViolationType]int) []typeCount {
	counts := make([]typeCount, 0, len(byType))
	for vtype, count := range byType {
		counts = append(counts, typeCount{vtype: vtype, count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].vtype < counts[j].vtype
	})
	return counts
}

func writeViolationTotals(r *textReport, report analysis.ViolationReport) {
	r.blank()
	r.heading("VIOLATION SUMMARY STATISTICS")

	totals := map[analysis.ViolationType]int{}
	for _, summary := range report.ViolationsByZone {
		for vtype, count := range summary.ViolationsByType {
			totals[vtype] += count
		}
	}

	r.addf("\nTotal Undersized Lots: %s", commaInt(totals[analysis.ViolationUndersizedLot]))
	r.addf("Total Excess Lot Coverage: %s", commaInt(totals[analysis.ViolationExcessLotCoverage]))
	r.addf("Total Incompatible Land Uses: %s", commaInt(totals[analysis.ViolationIncompatibleUse]))
}

func writeDimensionalRequirements(r *textReport, rules zoning.RuleTable) {
	r.blank()
	r.heading("KEY DIMENSIONAL REQUIREMENTS (from Official Ordinance)")

	r.add("\nResidential Zones:")
	for _, code := range residentialZones {
		rule, ok := rules.Lookup(code)
		if !ok {
			continue
		}
		label := code + ":"
		r.addf("  %-4s Minimum %s sf%s, Max %g%% coverage",
			label, commaFloat(rule.MinLotSizeSqft, 0), acresNote(rule.MinLotSizeSqft), rule.MaxLotCoveragePct)
	}
}

// acresNote annotates whole-acre minimums, e.g. " (5 acres)" for the R zone.
func acresNote(minLotSqft float64) string {
	const sqftPerAcre = 43560
	acres := minLotSqft / sqftPerAcre
	if acres < 1 || acres != float64(int(acres)) {
		return ""
	}
	if acres == 1 {
		return " (1 acre)"
	}
	return " (" + commaFloat(acres, 0) + " acres)"
}
