// Package report renders the analysis output as plain-text reports suitable
// for printing to a terminal or writing alongside the JSON interchange file.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/landscan/zoneaudit/internal/analysis"
	"github.com/landscan/zoneaudit/internal/zoning"
)

const reportWidth = 80

var (
	heavyRule = strings.Repeat("=", reportWidth)
	lightRule = strings.Repeat("─", reportWidth)
)

// residentialZones is the render order for per-zone residential sections,
// from the largest minimum lot size down.
var residentialZones = []string{"R", "SRA", "SRB", "GRA", "GRB", "GRC"}

// textReport accumulates report lines. add writes a literal line, addf a
// formatted one; both append a trailing newline.
type textReport struct {
	b strings.Builder
}

func (r *textReport) add(s string) {
	r.b.WriteString(s)
	r.b.WriteByte('\n')
}

func (r *textReport) addf(format string, args ...any) {
	fmt.Fprintf(&r.b, format, args...)
	r.b.WriteByte('\n')
}

func (r *textReport) blank() {
	r.b.WriteByte('\n')
}

func (r *textReport) heading(title string) {
	r.add(heavyRule)
	r.add(title)
	r.add(heavyRule)
}

func (r *textReport) String() string {
	return r.b.String()
}

// commaFloat formats v to the given number of decimal places with comma
// thousands separators, matching the layout of the original report files.
func commaFloat(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	grouped := groupThousands(intPart)
	if hasFrac {
		grouped += "." + fracPart
	}
	if neg {
		grouped = "-" + grouped
	}
	return grouped
}

func commaInt(n int) string {
	return commaFloat(float64(n), 0)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// zoneName returns the district's full name, falling back to the raw code
// for zones outside the rule table.
func zoneName(rules zoning.RuleTable, code string) string {
	if r, ok := rules.Lookup(code); ok && r.Name != "" {
		return r.Name
	}
	return code
}

type zoneEntry struct {
	code    string
	metrics analysis.ZoneMetrics
}

// zonesSortedBy returns the metrics map as a slice ordered by the given key
// descending, with the zone code breaking ties so output is deterministic.
func zonesSortedBy(zones map[string]analysis.ZoneMetrics, key func(analysis.ZoneMetrics) float64) []zoneEntry {
	entries := make([]zoneEntry, 0, len(zones))
	for code, m := range zones {
		entries = append(entries, zoneEntry{code: code, metrics: m})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := key(entries[i].metrics), key(entries[j].metrics)
		if a != b {
			return a > b
		}
		return entries[i].code < entries[j].code
	})
	return entries
}
