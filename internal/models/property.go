package models

// SqftPerAcre is the exact conversion constant: 1 acre = 43,560 square feet.
const SqftPerAcre = 43560.0

// PropertyRecord represents one normalized parcel, combined from the MapGeo
// property dataset and (when available) the VGSI assessor card.
// JSON field names match the interchange files produced by earlier analysis
// runs, so output stays byte-compatible.
//
// Records are created by the fetch/normalization layer and consumed read-only
// by the analysis engine. Missing numeric source fields are normalized to 0
// before a record is constructed; the engine treats every numeric field as
// present and non-negative.
type PropertyRecord struct {
	ParcelID    string `json:"parcel_id"`
	Address     string `json:"address"`
	Owner       string `json:"owner"`
	Account     string `json:"account,omitempty"`
	Zoning      string `json:"zoning"`
	LandUseCode string `json:"land_use_code,omitempty"`
	LandUseDesc string `json:"land_use_desc"`

	TotalValue      float64 `json:"total_value"`
	LandValue       float64 `json:"land_value"`
	ParcelAreaAcres float64 `json:"parcel_area_acres"`
	ParcelAreaSqft  float64 `json:"parcel_area_sqft"`

	BuildingFootprintSqft float64 `json:"building_footprint_sqft"`
	LivingAreaSqft        float64 `json:"living_area_sqft,omitempty"`
	LotCoveragePct        float64 `json:"lot_coverage_pct"`
}

// DeriveAreas fills in the fields computed from the raw source values:
// parcel area in square feet and lot coverage percentage. Coverage is 0
// unless both the footprint and the parcel area are positive.
func (p *PropertyRecord) DeriveAreas() {
	p.ParcelAreaSqft = p.ParcelAreaAcres * SqftPerAcre
	if p.BuildingFootprintSqft > 0 && p.ParcelAreaSqft > 0 {
		p.LotCoveragePct = p.BuildingFootprintSqft / p.ParcelAreaSqft * 100
	} else {
		p.LotCoveragePct = 0
	}
}
