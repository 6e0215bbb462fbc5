package analysis

import (
	"math"

	"github.com/landscan/zoneaudit/internal/models"
)

// ZoneMetrics holds the land, value, and density statistics for one zone.
// PercentOfLand and RevenueDensity are rounded to 2 decimal places for
// display-stable output; counts and total value are exact.
type ZoneMetrics struct {
	TotalAcres     float64        `json:"total_acres"`
	PercentOfLand  float64        `json:"percent_of_land"`
	TotalValue     float64        `json:"total_value"`
	RevenueDensity float64        `json:"revenue_density"`
	ParcelCount    int            `json:"parcel_count"`
	LandUses       map[string]int `json:"land_uses"`
}

// MostRevenueDenseZone names the zone with the highest value per acre.
type MostRevenueDenseZone struct {
	Zone           string  `json:"zone"`
	RevenuePerAcre float64 `json:"revenue_per_acre"`
}

// MetricsResult is the output of AggregateMetrics: per-zone statistics plus
// the grand total of acres across all zoned parcels.
type MetricsResult struct {
	TotalAcres       float64                `json:"total_acres"`
	Zones            map[string]ZoneMetrics `json:"zones"`
	MostRevenueDense *MostRevenueDenseZone  `json:"most_revenue_dense_zone,omitempty"`
}

// zoneAccumulator collects running sums for one zone during a single pass.
type zoneAccumulator struct {
	acres    float64
	value    float64
	parcels  int
	landUses map[string]int
}

// AggregateMetrics computes per-zone land/value/density statistics in a
// single pass over the property collection. Records without a zoning code
// are skipped entirely; records with an unrecognized code still aggregate
// under their raw code (raw metrics do not consult the rule table).
//
// The result is recomputed from scratch on every call; the input is never
// mutated. Ties for the most revenue-dense zone break on first-encountered
// input order, which keeps the result deterministic for a fixed input.
func AggregateMetrics(properties []models.PropertyRecord) MetricsResult {
	accum := make(map[string]*zoneAccumulator)
	var zoneOrder []string
	var totalAcres float64

	for _, p := range properties {
		if p.Zoning == "" {
			continue
		}

		zone, ok := accum[p.Zoning]
		if !ok {
			zone = &zoneAccumulator{landUses: make(map[string]int)}
			accum[p.Zoning] = zone
			zoneOrder = append(zoneOrder, p.Zoning)
		}

		landUse := p.LandUseDesc
		if landUse == "" {
			landUse = "Unknown"
		}

		zone.acres += p.ParcelAreaAcres
		zone.value += p.TotalValue
		zone.parcels++
		zone.landUses[landUse]++

		totalAcres += p.ParcelAreaAcres
	}

	result := MetricsResult{
		TotalAcres: totalAcres,
		Zones:      make(map[string]ZoneMetrics, len(accum)),
	}

	var densest *MostRevenueDenseZone
	for _, code := range zoneOrder {
		zone := accum[code]

		pctOfLand := 0.0
		if totalAcres > 0 {
			pctOfLand = zone.acres / totalAcres * 100
		}
		density := 0.0
		if zone.acres > 0 {
			density = zone.value / zone.acres
		}

		metrics := ZoneMetrics{
			TotalAcres:     round2(zone.acres),
			PercentOfLand:  round2(pctOfLand),
			TotalValue:     zone.value,
			RevenueDensity: round2(density),
			ParcelCount:    zone.parcels,
			LandUses:       zone.landUses,
		}
		result.Zones[code] = metrics

		if densest == nil || metrics.RevenueDensity > densest.RevenuePerAcre {
			densest = &MostRevenueDenseZone{
				Zone:           code,
				RevenuePerAcre: metrics.RevenueDensity,
			}
		}
	}
	result.MostRevenueDense = densest

	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
