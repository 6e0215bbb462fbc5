package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveAreas(t *testing.T) {
	tests := []struct {
		name         string
		property     PropertyRecord
		wantSqft     float64
		wantCoverage float64
	}{
		{
			name:         "quarter acre with building",
			property:     PropertyRecord{ParcelAreaAcres: 0.25, BuildingFootprintSqft: 2178},
			wantSqft:     10890,
			wantCoverage: 20,
		},
		{
			name:         "no building means zero coverage",
			property:     PropertyRecord{ParcelAreaAcres: 1},
			wantSqft:     43560,
			wantCoverage: 0,
		},
		{
			name:         "zero area means zero coverage",
			property:     PropertyRecord{ParcelAreaAcres: 0, BuildingFootprintSqft: 1500},
			wantSqft:     0,
			wantCoverage: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.property
			p.DeriveAreas()
			assert.InDelta(t, tt.wantSqft, p.ParcelAreaSqft, 0.001)
			assert.InDelta(t, tt.wantCoverage, p.LotCoveragePct, 0.001)
		})
	}
}

func TestDeriveAreas_ClearsStaleCoverage(t *testing.T) {
	// A record loaded from an older file may carry a coverage value even
	// after its footprint was removed; recomputing must reset it.
	p := PropertyRecord{ParcelAreaAcres: 0.5, LotCoveragePct: 15}
	p.DeriveAreas()
	assert.Zero(t, p.LotCoveragePct)
}
