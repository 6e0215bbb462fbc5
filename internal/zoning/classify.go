package zoning

import "strings"

// UseCategory is a standardized land-use category produced by Classify and
// referenced by ZoneRule allowed-use sets.
type UseCategory string

const (
	UseSingleFamily      UseCategory = "single_family"
	UseTwoFamily         UseCategory = "two_family"
	UseMultiFamily       UseCategory = "multi_family"
	UseAccessoryDwelling UseCategory = "accessory_dwelling"
	UseMobileHome        UseCategory = "mobile_home"
	UseCommercial        UseCategory = "commercial"
	UseRetail            UseCategory = "retail"
	UseOffice            UseCategory = "office"
	UseIndustrial        UseCategory = "industrial"
	UseManufacturing     UseCategory = "manufacturing"
	UseMunicipal         UseCategory = "municipal"
	UsePublic            UseCategory = "public"
	UseMarine            UseCategory = "marine"
	UseResearch          UseCategory = "research"
	UseTechnology        UseCategory = "technology"
	UseConservation      UseCategory = "conservation"
	UseAgriculture       UseCategory = "agriculture"
	UseMixedUse          UseCategory = "mixed_use"
	UseVacant            UseCategory = "vacant"

	// UseUnknown is returned for empty descriptions, UseOther when no
	// pattern matches. Neither participates in compatibility checks.
	UseUnknown UseCategory = "unknown"
	UseOther   UseCategory = "other"
)

// usePattern pairs an uppercase substring with the category it implies.
type usePattern struct {
	substr   string
	category UseCategory
}

// usePatterns is scanned in order and the first matching substring wins, so
// the order below is part of the classification contract. "CONDO" and
// "APARTMENT" deliberately map to multi_family, and overlapping patterns
// (e.g. a description containing both "MIXED USE" and "COMMERCIAL") resolve
// to whichever entry appears first. Do not reorder; tests pin this sequence.
var usePatterns = []usePattern{
	{"SINGLE FAM", UseSingleFamily},
	{"TWO FAM", UseTwoFamily},
	{"MULTI FAM", UseMultiFamily},
	{"CONDO", UseMultiFamily},
	{"APARTMENT", UseMultiFamily},
	{"COMMERCIAL", UseCommercial},
	{"RETAIL", UseRetail},
	{"OFFICE", UseOffice},
	{"INDUSTRIAL", UseIndustrial},
	{"MUNICIPAL", UseMunicipal},
	{"VACANT", UseVacant},
	{"MIXED USE", UseMixedUse},
}

// Classify maps a free-text land-use description to a standardized category.
// It is total and deterministic: an empty description yields UseUnknown and
// an unrecognized one yields UseOther.
func Classify(desc string) UseCategory {
	if desc == "" {
		return UseUnknown
	}
	upper := strings.ToUpper(desc)
	for _, p := range usePatterns {
		if strings.Contains(upper, p.substr) {
			return p.category
		}
	}
	return UseOther
}
