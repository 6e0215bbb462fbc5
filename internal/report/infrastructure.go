package report

import (
	"strings"

	"github.com/landscan/zoneaudit/internal/analysis"
	"github.com/landscan/zoneaudit/internal/services"
	"github.com/landscan/zoneaudit/internal/zoning"
)

// Fiscal sustainability thresholds: revenue per parcel over infrastructure
// cost per parcel. Below the concerning line a zone does not cover its own
// estimated infrastructure burden in any reasonable horizon; above the
// strong line it clearly does.
const (
	fiscalRatioConcerning = 20.0
	fiscalRatioStrong     = 50.0
)

// Infrastructure renders the infrastructure burden and fiscal sustainability
// report: per-zone estimates for the residential zones, the single-family vs
// multi-family rollup, key findings, and the methodology notes.
func Infrastructure(res *services.AnalysisResult, rules zoning.RuleTable) string {
	r := &textReport{}

	r.heading("PORTSMOUTH INFRASTRUCTURE BURDEN & FISCAL SUSTAINABILITY ANALYSIS")
	r.blank()
	r.add("This analysis examines the relationship between zoning density, tax revenue,")
	r.add("and estimated municipal service costs.")
	r.blank()
	r.add("KEY CONCEPT: Lower-density zones require MORE infrastructure per household")
	r.add("(roads, utilities, emergency services) but generate LESS tax revenue per acre.")
	r.blank()

	r.heading("RESIDENTIAL ZONE INFRASTRUCTURE ANALYSIS")
	for _, code := range residentialZones {
		z, ok := res.InfrastructureByZone[code]
		if !ok {
			continue
		}
		writeZoneInfrastructure(r, code, z)
	}

	writeInfrastructureComparison(r, res.InfrastructureContrast)
	writeKeyFindings(r, res.InfrastructureContrast)
	writeMethodologyNotes(r)

	r.blank()
	r.heading("END OF ANALYSIS")

	return r.String()
}

func writeZoneInfrastructure(r *textReport, code string, z analysis.ZoneInfrastructure) {
	r.addf("\n%s - %s", code, z.ZoneName)
	r.add(lightRule)

	r.add("\nBasic Metrics:")
	r.addf("  Total Land: %s acres", commaFloat(z.TotalAcres, 0))
	r.addf("  Total Parcels: %s", commaInt(z.ParcelCount))
	r.addf("  Average Lot Size: %s sf (%.2f acres)", commaFloat(z.AvgLotSizeSqft, 0), z.AvgLotSizeAcres)
	r.addf("  Density: %.2f parcels/acre", z.ParcelsPerAcre)

	r.add("\nMinimum Requirements:")
	r.addf("  Minimum Lot Size: %s sf", commaFloat(z.MinLotSizeSqft, 0))
	if z.MinFrontageFt > 0 {
		r.addf("  Minimum Frontage: %s feet", commaFloat(z.MinFrontageFt, 0))
	} else {
		r.add("  Minimum Frontage: Not specified")
	}

	r.add("\nTax Revenue:")
	r.addf("  Revenue per Parcel: $%s", commaFloat(z.RevenuePerParcel, 0))
	r.addf("  Revenue per Acre: $%s", commaFloat(z.RevenuePerAcre, 0))
	r.addf("  Total Zone Revenue: $%s", commaFloat(z.TotalValue, 0))

	if z.MinFrontageFt > 0 {
		r.add("\nEstimated Infrastructure Burden:")
		r.addf("  Linear Infrastructure per Parcel: %s feet", commaFloat(z.MinFrontageFt, 0))
		r.addf("  Total Linear Infrastructure: %s feet", commaFloat(z.EstimatedLinearInfrastructureFt, 0))
		r.addf("  Est. Infrastructure Cost/Parcel: $%s", commaFloat(z.EstInfrastructureCostPerParcel, 0))
		r.addf("    (Based on $%.0f/linear foot for roads + utilities)", analysis.CostPerLinearFoot)

		r.add("\nFiscal Sustainability:")
		r.addf("  Fiscal Ratio: %.2f", z.FiscalSustainabilityRatio)
		r.add("    (Revenue per parcel ÷ Infrastructure cost per parcel)")
		switch {
		case z.FiscalSustainabilityRatio < fiscalRatioConcerning:
			r.add("    ⚠ LOW - High infrastructure burden relative to revenue")
		case z.FiscalSustainabilityRatio < fiscalRatioStrong:
			r.add("    ⚡ MODERATE - Balanced infrastructure vs revenue")
		default:
			r.add("    ✓ HIGH - Revenue significantly exceeds infrastructure costs")
		}
	}
}

func writeInfrastructureComparison(r *textReport, c analysis.InfrastructureComparison) {
	r.blank()
	r.heading("COMPARATIVE ANALYSIS: SINGLE-FAMILY vs MULTI-FAMILY ZONES")

	writeInfrastructureGroup(r, c.GroupA, analysis.SingleFamilyGroup)
	writeInfrastructureGroup(r, c.GroupB, analysis.MultiFamilyGroup)

	r.blank()
	r.add(lightRule)
	r.add("DIRECT COMPARISON:")
	r.add(lightRule)

	r.addf("\n• Single-family homes require %.2fx MORE linear infrastructure per parcel", c.InfrastructureRatio)
	r.addf("• Multi-family zones are %.2fx MORE fiscally sustainable", c.FiscalRatioComparison)
	r.addf("• Multi-family generates $%s/acre vs $%s/acre",
		commaFloat(c.GroupB.RevenuePerAcre, 0), commaFloat(c.GroupA.RevenuePerAcre, 0))

	r.add("\nNet Fiscal Impact (Revenue - Infrastructure Cost):")
	r.addf("  Single-family: $%s per parcel", commaFloat(c.GroupA.NetFiscalPerParcel, 0))
	r.addf("  Multi-family: $%s per parcel", commaFloat(c.GroupB.NetFiscalPerParcel, 0))
}

func writeInfrastructureGroup(r *textReport, stats analysis.InfrastructureGroupStats, group analysis.ZoneGroup) {
	r.addf("\n%s ZONES (%s):", strings.ToUpper(group.Name), strings.Join(group.Zones, ", "))
	r.addf("  Revenue per Parcel: $%s", commaFloat(stats.RevenuePerParcel, 0))
	r.addf("  Revenue per Acre: $%s", commaFloat(stats.RevenuePerAcre, 0))
	r.addf("  Infrastructure per Parcel: %s linear feet", commaFloat(stats.InfrastructurePerParcel, 0))
	r.addf("  Est. Infrastructure Cost per Parcel: $%s", commaFloat(stats.CostPerParcel, 0))
	r.addf("  Fiscal Sustainability Ratio: %.2f", stats.FiscalRatio)
}

func writeKeyFindings(r *textReport, c analysis.InfrastructureComparison) {
	r.blank()
	r.heading("KEY FINDINGS")

	r.add("\n1. INFRASTRUCTURE BURDEN:")
	r.addf("   Single-family zones require %s feet of roads/utilities", commaFloat(c.GroupA.TotalInfrastructureFt, 0))
	r.addf("   Multi-family zones require %s feet of roads/utilities", commaFloat(c.GroupB.TotalInfrastructureFt, 0))
	r.addf("   Single-family zones need %.1fx more infrastructure per household", c.InfrastructureRatio)

	r.add("\n2. FISCAL EFFICIENCY:")
	r.addf("   Single-family fiscal ratio: %.1f (revenue/cost)", c.GroupA.FiscalRatio)
	r.addf("   Multi-family fiscal ratio: %.1f (revenue/cost)", c.GroupB.FiscalRatio)
	r.addf("   Multi-family zones are %.1fx more fiscally sustainable", c.FiscalRatioComparison)

	r.add("\n3. TAX BURDEN EQUITY:")
	r.add("   Despite higher property values, single-family homeowners in large-lot zones")
	r.add("   impose higher infrastructure costs per capita on the municipality.")
	r.add("   The sprawling nature of low-density development means:")
	r.add("   - More road miles to maintain per household")
	r.add("   - Longer utility lines per household")
	r.add("   - Greater distances for emergency services")
	r.add("   - Lower tax revenue per acre of land")

	r.add("\n4. IMPLICATIONS:")
	r.add("   Residents in SRA zones (1 acre minimums) may contribute less in taxes")
	r.add("   relative to the municipal services their large lots demand.")
	r.add("   Multi-family zones effectively subsidize infrastructure costs for")
	r.add("   lower-density single-family neighborhoods.")
}

func writeMethodologyNotes(r *textReport) {
	r.blank()
	r.heading("METHODOLOGY NOTES")

	r.add("\nInfrastructure cost estimates based on:")
	r.add("• Minimum lot frontage requirements (linear feet per parcel)")
	r.addf("• $%.0f/linear foot for combined road + utility infrastructure", analysis.CostPerLinearFoot)
	r.add("• Does not include: water/sewer capacity, school buses, trash collection")
	r.add("• Actual costs vary based on terrain, existing infrastructure, etc.")

	r.add("\nFiscal Sustainability Ratio = Property Tax Revenue ÷ Infrastructure Cost")
	r.add("• Higher ratio = more revenue per dollar of infrastructure")
	r.addf("• <%.0f = concerning fiscal burden", fiscalRatioConcerning)
	r.addf("• %.0f-%.0f = moderate sustainability", fiscalRatioConcerning, fiscalRatioStrong)
	r.addf("• >%.0f = strong fiscal contributor", fiscalRatioStrong)
}
