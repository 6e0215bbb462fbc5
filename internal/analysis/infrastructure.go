package analysis

import (
	"math"

	"github.com/landscan/zoneaudit/internal/models"
	"github.com/landscan/zoneaudit/internal/zoning"
)

// CostPerLinearFoot is the assumed combined road + utility construction and
// maintenance cost, in dollars per linear foot of frontage. A conservative
// planning estimate, not a measured figure.
const CostPerLinearFoot = 500.0

// ZoneInfrastructure estimates the linear-infrastructure footprint a zone's
// minimum frontage requirement implies, and relates it to the zone's tax
// revenue. Zones without a frontage requirement carry zero infrastructure
// figures and a zero fiscal ratio.
type ZoneInfrastructure struct {
	ZoneName    string  `json:"zone_name"`
	TotalAcres  float64 `json:"total_acres"`
	ParcelCount int     `json:"parcel_count"`
	TotalValue  float64 `json:"total_value"`

	AvgLotSizeSqft  float64 `json:"avg_lot_size_sqft"`
	AvgLotSizeAcres float64 `json:"avg_lot_size_acres"`
	ParcelsPerAcre  float64 `json:"parcels_per_acre"`

	RevenuePerParcel float64 `json:"revenue_per_parcel"`
	RevenuePerAcre   float64 `json:"revenue_per_acre"`

	MinFrontageFt  float64 `json:"min_frontage_ft"`
	MinLotSizeSqft float64 `json:"min_lot_size_sqft"`

	EstimatedLinearInfrastructureFt float64 `json:"estimated_linear_infrastructure_ft"`
	EstInfrastructureCostPerParcel  float64 `json:"est_infrastructure_cost_per_parcel"`

	// DensityFactor is the inverse parcel density: acres per parcel. Lower
	// density means more road and utility length per household.
	DensityFactor float64 `json:"density_factor"`

	// FiscalSustainabilityRatio is revenue per parcel over infrastructure
	// cost per parcel; 0 when no frontage requirement exists.
	FiscalSustainabilityRatio float64 `json:"fiscal_sustainability_ratio"`
}

// AggregateInfrastructure estimates per-zone infrastructure burden from the
// property collection and the rule table. Zones absent from the rule table
// are skipped, as are zones with no parcels or no land area.
func AggregateInfrastructure(properties []models.PropertyRecord, rules zoning.RuleTable) map[string]ZoneInfrastructure {
	type zoneSums struct {
		acres   float64
		value   float64
		parcels int
	}

	sums := make(map[string]*zoneSums)
	for _, p := range properties {
		if p.Zoning == "" {
			continue
		}
		s, ok := sums[p.Zoning]
		if !ok {
			s = &zoneSums{}
			sums[p.Zoning] = s
		}
		s.acres += p.ParcelAreaAcres
		s.value += p.TotalValue
		s.parcels++
	}

	results := make(map[string]ZoneInfrastructure)
	for zone, s := range sums {
		rule, ok := rules.Lookup(zone)
		if !ok || s.parcels == 0 || s.acres == 0 {
			continue
		}

		avgLotAcres := s.acres / float64(s.parcels)
		parcelsPerAcre := float64(s.parcels) / s.acres

		linearFt := rule.MinFrontageFt * float64(s.parcels)
		costPerParcel := rule.MinFrontageFt * CostPerLinearFoot

		revenuePerParcel := s.value / float64(s.parcels)
		fiscalRatio := safeDiv(revenuePerParcel, costPerParcel)

		results[zone] = ZoneInfrastructure{
			ZoneName:    rule.Name,
			TotalAcres:  round2(s.acres),
			ParcelCount: s.parcels,
			TotalValue:  s.value,

			AvgLotSizeSqft:  math.Round(avgLotAcres * models.SqftPerAcre),
			AvgLotSizeAcres: round3(avgLotAcres),
			ParcelsPerAcre:  round2(parcelsPerAcre),

			RevenuePerParcel: math.Round(revenuePerParcel),
			RevenuePerAcre:   math.Round(s.value / s.acres),

			MinFrontageFt:  rule.MinFrontageFt,
			MinLotSizeSqft: rule.MinLotSizeSqft,

			EstimatedLinearInfrastructureFt: linearFt,
			EstInfrastructureCostPerParcel:  costPerParcel,

			DensityFactor:             round3(safeDiv(1.0, parcelsPerAcre)),
			FiscalSustainabilityRatio: round2(fiscalRatio),
		}
	}

	return results
}

// InfrastructureGroupStats rolls infrastructure estimates up across a zone
// group, with derived per-parcel and per-acre figures.
type InfrastructureGroupStats struct {
	Name                    string  `json:"name"`
	TotalParcels            int     `json:"total_parcels"`
	TotalAcres              float64 `json:"total_acres"`
	TotalRevenue            float64 `json:"total_revenue"`
	TotalInfrastructureFt   float64 `json:"total_infrastructure_ft"`
	TotalInfrastructureCost float64 `json:"total_infrastructure_cost"`

	RevenuePerParcel        float64 `json:"revenue_per_parcel"`
	RevenuePerAcre          float64 `json:"revenue_per_acre"`
	InfrastructurePerParcel float64 `json:"infrastructure_per_parcel"`
	InfrastructurePerAcre   float64 `json:"infrastructure_per_acre"`
	CostPerParcel           float64 `json:"cost_per_parcel"`
	FiscalRatio             float64 `json:"fiscal_ratio"`
	NetFiscalPerParcel      float64 `json:"net_fiscal_per_parcel"`
}

// InfrastructureComparison contrasts the infrastructure burden of two zone
// groups. InfrastructureRatio is A's linear feet per parcel over B's;
// FiscalRatioComparison is B's fiscal ratio over A's. Both are 0-guarded.
type InfrastructureComparison struct {
	GroupA InfrastructureGroupStats `json:"group_a"`
	GroupB InfrastructureGroupStats `json:"group_b"`

	InfrastructureRatio   float64 `json:"infrastructure_ratio"`
	FiscalRatioComparison float64 `json:"fiscal_ratio_comparison"`
}

// CompareInfrastructure aggregates per-zone infrastructure estimates across
// two zone groups and derives the comparison ratios.
func CompareInfrastructure(zones map[string]ZoneInfrastructure, groupA, groupB ZoneGroup) InfrastructureComparison {
	a := collectInfrastructureStats(zones, groupA)
	b := collectInfrastructureStats(zones, groupB)

	return InfrastructureComparison{
		GroupA:                a,
		GroupB:                b,
		InfrastructureRatio:   safeDiv(a.InfrastructurePerParcel, b.InfrastructurePerParcel),
		FiscalRatioComparison: safeDiv(b.FiscalRatio, a.FiscalRatio),
	}
}

func collectInfrastructureStats(zones map[string]ZoneInfrastructure, group ZoneGroup) InfrastructureGroupStats {
	stats := InfrastructureGroupStats{Name: group.Name}

	for _, zone := range group.Zones {
		z, ok := zones[zone]
		if !ok {
			continue
		}
		stats.TotalParcels += z.ParcelCount
		stats.TotalAcres += z.TotalAcres
		stats.TotalRevenue += z.TotalValue
		stats.TotalInfrastructureFt += z.EstimatedLinearInfrastructureFt
		stats.TotalInfrastructureCost += z.EstInfrastructureCostPerParcel * float64(z.ParcelCount)
	}

	parcels := float64(stats.TotalParcels)
	stats.RevenuePerParcel = safeDiv(stats.TotalRevenue, parcels)
	stats.RevenuePerAcre = safeDiv(stats.TotalRevenue, stats.TotalAcres)
	stats.InfrastructurePerParcel = safeDiv(stats.TotalInfrastructureFt, parcels)
	stats.InfrastructurePerAcre = safeDiv(stats.TotalInfrastructureFt, stats.TotalAcres)
	stats.CostPerParcel = safeDiv(stats.TotalInfrastructureCost, parcels)
	stats.FiscalRatio = safeDiv(stats.RevenuePerParcel, stats.CostPerParcel)
	stats.NetFiscalPerParcel = stats.RevenuePerParcel - stats.CostPerParcel

	return stats
}
