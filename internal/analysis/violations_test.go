package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landscan/zoneaudit/internal/models"
	"github.com/landscan/zoneaudit/internal/zoning"
)

func TestAggregateViolations_EndToEndScenario(t *testing.T) {
	rules := zoning.DefaultRules()

	// Both parcels are under SRB's 15,000 sqft minimum.
	p1 := newProperty("SRB", 0.2, 0, "SINGLE FAM RES")
	p2 := newProperty("SRB", 0.1, 0, "SINGLE FAM RES")
	p2.TotalValue = 250000

	report := AggregateViolations([]models.PropertyRecord{p1, p2}, rules, 5)

	require.Contains(t, report.ViolationsByZone, "SRB")
	srb := report.ViolationsByZone["SRB"]
	assert.Equal(t, 2, srb.TotalParcels)
	assert.Equal(t, 2, srb.ParcelsWithViolations)
	assert.Equal(t, map[ViolationType]int{ViolationUndersizedLot: 2}, srb.ViolationsByType)
	assert.Len(t, report.AllViolations, 2)
	assert.Zero(t, report.UnknownZoneParcels)
}

func TestAggregateViolations_ExampleCap(t *testing.T) {
	rules := zoning.DefaultRules()

	var properties []models.PropertyRecord
	for i := 0; i < 12; i++ {
		p := newProperty("SRB", 0.1, 0, "SINGLE FAM RES")
		p.ParcelID = fmt.Sprintf("0001-%04d", i)
		p.Address = fmt.Sprintf("%d ELM ST", i)
		properties = append(properties, p)
	}

	report := AggregateViolations(properties, rules, 5)

	srb := report.ViolationsByZone["SRB"]
	// Counts are exact over the whole collection; only examples are capped.
	assert.Equal(t, 12, srb.TotalParcels)
	assert.Equal(t, 12, srb.ParcelsWithViolations)
	assert.Equal(t, 12, srb.ViolationsByType[ViolationUndersizedLot])
	require.Len(t, srb.Examples, 5)

	// Examples keep first-encountered input order.
	for i, ex := range srb.Examples {
		assert.Equal(t, fmt.Sprintf("0001-%04d", i), ex.ParcelID)
		assert.Equal(t, fmt.Sprintf("%d ELM ST", i), ex.Address)
	}

	assert.Len(t, report.AllViolations, 12)
}

func TestAggregateViolations_LargerCap(t *testing.T) {
	rules := zoning.DefaultRules()

	var properties []models.PropertyRecord
	for i := 0; i < 12; i++ {
		p := newProperty("SRB", 0.1, 0, "SINGLE FAM RES")
		p.ParcelID = fmt.Sprintf("0002-%04d", i)
		properties = append(properties, p)
	}

	report := AggregateViolations(properties, rules, 10)
	assert.Len(t, report.ViolationsByZone["SRB"].Examples, 10)
}

func TestAggregateViolations_ConformingParcels(t *testing.T) {
	rules := zoning.DefaultRules()

	p := newProperty("SRB", 0.5, 0, "SINGLE FAM RES") // 21,780 sqft, fine

	report := AggregateViolations([]models.PropertyRecord{p}, rules, 5)

	srb := report.ViolationsByZone["SRB"]
	assert.Equal(t, 1, srb.TotalParcels)
	assert.Zero(t, srb.ParcelsWithViolations)
	assert.Empty(t, srb.Examples)
	assert.Empty(t, report.AllViolations)
}

func TestAggregateViolations_UnknownZone(t *testing.T) {
	rules := zoning.DefaultRules()

	unknown := newProperty("XYZ", 0.1, 0, "COMMERCIAL BLDG")
	unzoned := newProperty("", 0.1, 0, "COMMERCIAL BLDG")

	report := AggregateViolations([]models.PropertyRecord{unknown, unzoned}, rules, 5)

	// Unzoned records are skipped entirely; unknown codes still count as
	// parcels in their zone but never violate, and are surfaced as a
	// data-quality figure.
	require.Contains(t, report.ViolationsByZone, "XYZ")
	assert.Equal(t, 1, report.ViolationsByZone["XYZ"].TotalParcels)
	assert.Zero(t, report.ViolationsByZone["XYZ"].ParcelsWithViolations)
	assert.NotContains(t, report.ViolationsByZone, "")
	assert.Equal(t, 1, report.UnknownZoneParcels)
	assert.Empty(t, report.AllViolations)
}

func TestAggregateViolations_Idempotent(t *testing.T) {
	rules := zoning.DefaultRules()

	properties := []models.PropertyRecord{
		newProperty("SRB", 0.1, 0, "SINGLE FAM RES"),
		newProperty("SRA", 0.2, 3500, "COMMERCIAL BLDG"),
		newProperty("GRC", 0.08, 0, "CONDOMINIUM"),
	}

	first := AggregateViolations(properties, rules, 10)
	second := AggregateViolations(properties, rules, 10)

	assert.Equal(t, first, second)
}
