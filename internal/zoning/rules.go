package zoning

// ZoneRule holds the dimensional and use-mix constraints for one zoning
// district. The table is loaded once at process start and never mutated.
//
// Optional constraints are encoded as zero values: a 0 threshold means the
// dimension is unconstrained and is never evaluated. (The Municipal zone,
// for example, carries no dimensional limits at all.)
type ZoneRule struct {
	Code string `json:"code"`
	Name string `json:"name"`

	MinLotSizeSqft    float64 `json:"min_lot_size_sqft"`
	MinFrontageFt     float64 `json:"min_frontage_ft"`
	MaxLotCoveragePct float64 `json:"max_lot_coverage_pct"`

	// Carried as data only; not evaluated by the violation checks in the
	// current ordinance scope, but used for infrastructure estimates.
	MinOpenSpacePct float64 `json:"min_open_space_pct"`
	FrontSetbackFt  float64 `json:"front_setback_ft"`
	SideSetbackFt   float64 `json:"side_setback_ft"`
	RearSetbackFt   float64 `json:"rear_setback_ft"`

	// AllowedUses is the set of standardized use categories permitted in
	// the district. Empty means any use is permitted.
	AllowedUses []UseCategory `json:"allowed_uses"`
}

// AllowsUse reports whether the given use category is in the district's
// allowed-use set. An empty set allows everything.
func (r ZoneRule) AllowsUse(use UseCategory) bool {
	if len(r.AllowedUses) == 0 {
		return true
	}
	for _, u := range r.AllowedUses {
		if u == use {
			return true
		}
	}
	return false
}

// RuleTable maps zone codes to their rules. Lookups for codes not in the
// table return the zero ZoneRule and false; callers treat those parcels as
// "unknown zone" and exclude them from violation checks.
type RuleTable map[string]ZoneRule

// Lookup returns the rule for a zone code.
func (t RuleTable) Lookup(code string) (ZoneRule, bool) {
	r, ok := t[code]
	return r, ok
}

// DefaultRules returns the Portsmouth NH rule table, transcribed from the
// Zoning Ordinance as amended through May 5, 2025 (Tables 10.521 residential
// and 10.531 business/industrial). This is the corrected, authoritative rule
// set; the earlier uncorrected values were retired.
func DefaultRules() RuleTable {
	return RuleTable{
		"R": {
			Code:              "R",
			Name:              "Residential",
			MinLotSizeSqft:    217800, // 5 acres
			MaxLotCoveragePct: 5,
			MinOpenSpacePct:   75,
			FrontSetbackFt:    50,
			SideSetbackFt:     20,
			RearSetbackFt:     40,
			AllowedUses:       []UseCategory{UseSingleFamily, UseAccessoryDwelling},
		},
		"SRA": {
			Code:              "SRA",
			Name:              "Single Residence A",
			MinLotSizeSqft:    43560, // 1 acre
			MinFrontageFt:     150,
			MaxLotCoveragePct: 10,
			MinOpenSpacePct:   50,
			FrontSetbackFt:    30,
			SideSetbackFt:     20,
			RearSetbackFt:     40,
			AllowedUses:       []UseCategory{UseSingleFamily, UseAccessoryDwelling},
		},
		"SRB": {
			Code:              "SRB",
			Name:              "Single Residence B",
			MinLotSizeSqft:    15000,
			MinFrontageFt:     100,
			MaxLotCoveragePct: 20,
			MinOpenSpacePct:   40,
			FrontSetbackFt:    30,
			SideSetbackFt:     10,
			RearSetbackFt:     30,
			AllowedUses:       []UseCategory{UseSingleFamily, UseAccessoryDwelling},
		},
		"GRA": {
			Code:              "GRA",
			Name:              "General Residence A",
			MinLotSizeSqft:    7500,
			MinFrontageFt:     100,
			MaxLotCoveragePct: 25,
			MinOpenSpacePct:   30,
			FrontSetbackFt:    15,
			SideSetbackFt:     10,
			RearSetbackFt:     20,
			AllowedUses:       []UseCategory{UseSingleFamily, UseTwoFamily, UseMultiFamily, UseAccessoryDwelling},
		},
		"GRB": {
			Code:              "GRB",
			Name:              "General Residence B",
			MinLotSizeSqft:    5000,
			MinFrontageFt:     80,
			MaxLotCoveragePct: 30,
			MinOpenSpacePct:   25,
			FrontSetbackFt:    5,
			SideSetbackFt:     10,
			RearSetbackFt:     25,
			AllowedUses:       []UseCategory{UseSingleFamily, UseTwoFamily, UseMultiFamily, UseAccessoryDwelling},
		},
		"GRC": {
			Code:              "GRC",
			Name:              "General Residence C",
			MinLotSizeSqft:    3500,
			MinFrontageFt:     70,
			MaxLotCoveragePct: 35,
			MinOpenSpacePct:   20,
			FrontSetbackFt:    5,
			SideSetbackFt:     10,
			RearSetbackFt:     20,
			AllowedUses:       []UseCategory{UseSingleFamily, UseTwoFamily, UseMultiFamily, UseAccessoryDwelling},
		},
		"MRO": {
			Code:              "MRO",
			Name:              "Mixed Residential Office",
			MinLotSizeSqft:    7500,
			MinFrontageFt:     100,
			MaxLotCoveragePct: 40,
			MinOpenSpacePct:   25,
			FrontSetbackFt:    5,
			SideSetbackFt:     10,
			RearSetbackFt:     15,
			AllowedUses:       []UseCategory{UseSingleFamily, UseTwoFamily, UseMultiFamily, UseOffice, UseMixedUse},
		},
		"MRB": {
			Code:              "MRB",
			Name:              "Mixed Residential Business",
			MinLotSizeSqft:    7500,
			MinFrontageFt:     100,
			MaxLotCoveragePct: 40,
			MinOpenSpacePct:   25,
			FrontSetbackFt:    5,
			SideSetbackFt:     10,
			RearSetbackFt:     15,
			AllowedUses:       []UseCategory{UseSingleFamily, UseTwoFamily, UseMultiFamily, UseCommercial, UseMixedUse},
		},
		"GA/MH": {
			Code:              "GA/MH",
			Name:              "Garden Apartment/Mobile Home Park",
			MinLotSizeSqft:    217800, // 5 acres
			MaxLotCoveragePct: 20,
			MinOpenSpacePct:   50,
			FrontSetbackFt:    30,
			SideSetbackFt:     25,
			RearSetbackFt:     25,
			AllowedUses:       []UseCategory{UseMultiFamily, UseMobileHome},
		},
		"B": {
			Code:              "B",
			Name:              "Business",
			MinLotSizeSqft:    20000,
			MinFrontageFt:     100,
			MaxLotCoveragePct: 35,
			MinOpenSpacePct:   15,
			FrontSetbackFt:    20,
			SideSetbackFt:     15,
			RearSetbackFt:     15,
			AllowedUses:       []UseCategory{UseCommercial, UseRetail, UseOffice, UseMixedUse},
		},
		"GB": {
			Code:              "GB",
			Name:              "General Business",
			MinLotSizeSqft:    43560, // 1 acre
			MinFrontageFt:     200,
			MaxLotCoveragePct: 30,
			MinOpenSpacePct:   20,
			FrontSetbackFt:    30,
			SideSetbackFt:     30,
			RearSetbackFt:     50,
			AllowedUses:       []UseCategory{UseCommercial, UseRetail, UseOffice, UseMixedUse},
		},
		// G1 and G2 are not listed separately in the ordinance tables; GB
		// values are the closest published approximation.
		"G1": {
			Code:              "G1",
			Name:              "General Business 1",
			MinLotSizeSqft:    43560,
			MinFrontageFt:     200,
			MaxLotCoveragePct: 30,
			MinOpenSpacePct:   20,
			FrontSetbackFt:    30,
			SideSetbackFt:     30,
			RearSetbackFt:     50,
			AllowedUses:       []UseCategory{UseCommercial, UseRetail, UseOffice, UseMixedUse},
		},
		"G2": {
			Code:              "G2",
			Name:              "General Business 2",
			MinLotSizeSqft:    43560,
			MinFrontageFt:     200,
			MaxLotCoveragePct: 30,
			MinOpenSpacePct:   20,
			FrontSetbackFt:    30,
			SideSetbackFt:     30,
			RearSetbackFt:     50,
			AllowedUses:       []UseCategory{UseCommercial, UseRetail, UseOffice, UseMixedUse},
		},
		"WB": {
			Code:              "WB",
			Name:              "Waterfront Business",
			MinLotSizeSqft:    20000,
			MinFrontageFt:     100,
			MaxLotCoveragePct: 30,
			MinOpenSpacePct:   20,
			FrontSetbackFt:    30,
			SideSetbackFt:     30,
			RearSetbackFt:     20,
			AllowedUses:       []UseCategory{UseCommercial, UseRetail, UseOffice, UseMarine},
		},
		"I": {
			Code:              "I",
			Name:              "Industrial",
			MinLotSizeSqft:    87120, // 2 acres
			MinFrontageFt:     200,
			MaxLotCoveragePct: 50,
			MinOpenSpacePct:   20,
			FrontSetbackFt:    70,
			SideSetbackFt:     50,
			RearSetbackFt:     50,
			AllowedUses:       []UseCategory{UseIndustrial, UseManufacturing},
		},
		"WI": {
			Code:              "WI",
			Name:              "Waterfront Industrial",
			MinLotSizeSqft:    87120, // 2 acres
			MinFrontageFt:     200,
			MaxLotCoveragePct: 50,
			MinOpenSpacePct:   20,
			FrontSetbackFt:    70,
			SideSetbackFt:     50,
			RearSetbackFt:     50,
			AllowedUses:       []UseCategory{UseIndustrial, UseManufacturing, UseMarine},
		},
		"OR": {
			Code:              "OR",
			Name:              "Office Research",
			MinLotSizeSqft:    130680, // 3 acres
			MinFrontageFt:     300,
			MaxLotCoveragePct: 30,
			MinOpenSpacePct:   30,
			FrontSetbackFt:    50,
			SideSetbackFt:     75,
			RearSetbackFt:     50,
			AllowedUses:       []UseCategory{UseOffice, UseResearch, UseTechnology},
		},
		"M": {
			Code: "M",
			Name: "Municipal",
			// Dimensional requirements vary by use; none are enforced.
			AllowedUses: []UseCategory{UseMunicipal, UsePublic},
		},
		"NRP": {
			Code:              "NRP",
			Name:              "Natural Resource Protection",
			MinLotSizeSqft:    217800, // conservative 5-acre estimate
			MinFrontageFt:     150,
			MaxLotCoveragePct: 10,
			MinOpenSpacePct:   70,
			FrontSetbackFt:    50,
			SideSetbackFt:     25,
			RearSetbackFt:     50,
			AllowedUses:       []UseCategory{UseConservation, UseAgriculture, UseSingleFamily},
		},
	}
}
