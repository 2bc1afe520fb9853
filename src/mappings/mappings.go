// Package mappings holds the static per-year tables translating logical
// cell keys (e.g. "st_r3_c2", "lt_total_proceed", "1a") into the physical
// field identifiers understood by the document filler. Physical names for
// Form 8949 follow the IRS AcroForm naming: short-term rows live on page 1
// (f1_* fields), long-term rows on page 2 (f2_*), so the two mapped
// namespaces never collide.
package mappings

import "sort"

// Table maps a logical cell key to a physical field identifier.
type Table map[string]string

const (
	Form8949 = "f8949"
	Form1040 = "f1040"
)

// DefaultYear is the baseline table used when the requested year has no
// table of its own.
const DefaultYear = 2021

var tables = map[string]map[int]Table{
	Form8949: {
		2021: f8949Table(),
		2022: f8949Table(),
		2023: f8949Table(),
		2024: f8949Table(),
	},
	Form1040: {
		2021: f1040TY2021(),
		2022: f1040TY2022(),
		2023: f1040TY2022(),
		2024: f1040TY2022(),
	},
}

// ForYear returns the mapping table for the form type and tax year. When
// the year has no table, the DefaultYear table is returned and ok is
// false. An unknown form type returns a nil table.
func ForYear(formType string, year int) (Table, bool) {
	byYear, known := tables[formType]
	if !known {
		return nil, false
	}
	if t, ok := byYear[year]; ok {
		return t, true
	}
	return byYear[DefaultYear], false
}

// SupportedYears lists the years with a dedicated table for the form type.
func SupportedYears(formType string) []int {
	var years []int
	for y := range tables[formType] {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
