package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landscan/zoneaudit/internal/models"
)

func TestAggregateMetrics_EndToEndScenario(t *testing.T) {
	properties := []models.PropertyRecord{
		newProperty("SRB", 0.2, 0, "SINGLE FAM RES"),
		newProperty("SRB", 0.1, 0, "SINGLE FAM RES"),
	}
	properties[1].TotalValue = 250000

	result := AggregateMetrics(properties)

	assert.InDelta(t, 0.3, result.TotalAcres, 1e-9)
	require.Contains(t, result.Zones, "SRB")

	srb := result.Zones["SRB"]
	assert.InDelta(t, 0.3, srb.TotalAcres, 1e-9)
	assert.Equal(t, 2, srb.ParcelCount)
	assert.InDelta(t, 550000.0, srb.TotalValue, 1e-9)
	assert.Equal(t, map[string]int{"SINGLE FAM RES": 2}, srb.LandUses)

	require.NotNil(t, result.MostRevenueDense)
	assert.Equal(t, "SRB", result.MostRevenueDense.Zone)
}

func TestAggregateMetrics_SkipsUnzonedRecords(t *testing.T) {
	properties := []models.PropertyRecord{
		newProperty("SRB", 0.5, 0, "SINGLE FAM RES"),
		newProperty("", 2.0, 0, "VACANT LAND"),
	}

	result := AggregateMetrics(properties)

	assert.InDelta(t, 0.5, result.TotalAcres, 1e-9)
	assert.Len(t, result.Zones, 1)
	assert.NotContains(t, result.Zones, "")
}

func TestAggregateMetrics_UnknownZoneStillAggregates(t *testing.T) {
	// Raw metrics key by the zoning string as reported; the rule table is
	// not consulted here, so an unrecognized code still gets a zone entry.
	properties := []models.PropertyRecord{
		newProperty("XYZ", 1.0, 0, "SINGLE FAM RES"),
	}

	result := AggregateMetrics(properties)

	assert.Contains(t, result.Zones, "XYZ")
	assert.Equal(t, 1, result.Zones["XYZ"].ParcelCount)
}

func TestAggregateMetrics_Conservation(t *testing.T) {
	properties := []models.PropertyRecord{
		newProperty("SRA", 1.25, 0, "SINGLE FAM RES"),
		newProperty("SRB", 0.4, 0, "SINGLE FAM RES"),
		newProperty("GRC", 0.08, 0, "CONDOMINIUM"),
		newProperty("B", 0.6, 0, "RETAIL STORE"),
	}

	result := AggregateMetrics(properties)

	var zoneSum float64
	for _, zm := range result.Zones {
		zoneSum += zm.TotalAcres
	}
	// Per-zone acres are rounded to 2 decimals for display, so allow that
	// much slack against the exact grand total.
	assert.InDelta(t, result.TotalAcres, zoneSum, 0.01*float64(len(result.Zones)))
}

func TestAggregateMetrics_PercentNormalization(t *testing.T) {
	properties := []models.PropertyRecord{
		newProperty("SRA", 3.2, 0, "SINGLE FAM RES"),
		newProperty("GRB", 0.15, 0, "TWO FAMILY"),
		newProperty("I", 12.0, 0, "INDUSTRIAL WAREHOUSE"),
	}

	result := AggregateMetrics(properties)
	require.Greater(t, result.TotalAcres, 0.0)

	var pctSum float64
	for _, zm := range result.Zones {
		pctSum += zm.PercentOfLand
	}
	assert.InDelta(t, 100.0, pctSum, 0.05)
}

func TestAggregateMetrics_RevenueDensityAndRounding(t *testing.T) {
	p := newProperty("GB", 3.0, 0, "RETAIL STORE")
	p.TotalValue = 1000000

	result := AggregateMetrics([]models.PropertyRecord{p})

	gb := result.Zones["GB"]
	// 1,000,000 / 3 = 333,333.333... rounds to 2 decimals.
	assert.InDelta(t, 333333.33, gb.RevenueDensity, 1e-9)
	assert.InDelta(t, 100.0, gb.PercentOfLand, 1e-9)
}

func TestAggregateMetrics_MostDenseTieBreak(t *testing.T) {
	// Identical densities: the first-encountered zone wins.
	a := newProperty("SRA", 1.0, 0, "SINGLE FAM RES")
	a.TotalValue = 500000
	b := newProperty("SRB", 1.0, 0, "SINGLE FAM RES")
	b.TotalValue = 500000

	result := AggregateMetrics([]models.PropertyRecord{a, b})

	require.NotNil(t, result.MostRevenueDense)
	assert.Equal(t, "SRA", result.MostRevenueDense.Zone)
	assert.InDelta(t, 500000.0, result.MostRevenueDense.RevenuePerAcre, 1e-9)
}

func TestAggregateMetrics_Empty(t *testing.T) {
	result := AggregateMetrics(nil)

	assert.Zero(t, result.TotalAcres)
	assert.Empty(t, result.Zones)
	assert.Nil(t, result.MostRevenueDense)
}

func TestAggregateMetrics_ZeroAcresZone(t *testing.T) {
	p := newProperty("M", 0, 0, "MUNICIPAL PROPERTY")
	p.TotalValue = 100000

	result := AggregateMetrics([]models.PropertyRecord{p})

	m := result.Zones["M"]
	assert.Zero(t, m.RevenueDensity)
	assert.Zero(t, m.PercentOfLand)
	assert.Equal(t, 1, m.ParcelCount)
}

func TestAggregateMetrics_Idempotent(t *testing.T) {
	properties := []models.PropertyRecord{
		newProperty("SRA", 1.25, 2000, "SINGLE FAM RES"),
		newProperty("GRC", 0.08, 1200, "CONDOMINIUM"),
		newProperty("B", 0.6, 9000, "RETAIL STORE"),
	}

	first := AggregateMetrics(properties)
	second := AggregateMetrics(properties)

	assert.Equal(t, first, second)
}

func TestAggregateMetrics_DefaultsMissingLandUse(t *testing.T) {
	p := newProperty("SRA", 1.0, 0, "")

	result := AggregateMetrics([]models.PropertyRecord{p})

	assert.Equal(t, map[string]int{"Unknown": 1}, result.Zones["SRA"].LandUses)
}
