// Package validation holds the advisory per-form-type checks run over
// produced field maps. Checks never mutate the maps and never abort the
// pipeline; errors and warnings are returned as data.
package validation

import (
	"fmt"
	"sort"

	"github.com/username/taxformfill/src/mappings"
	"github.com/username/taxformfill/src/models"
)

// ValidateForm8949 checks paginated capital transaction instances: at
// least one instance must exist, instances should carry fields, proceeds
// totals should not be negative, and a classification's first row should
// be filled whenever its totals are.
func ValidateForm8949(data models.FormsData, table mappings.Table) models.ValidationResult {
	res := models.NewValidResult()
	if len(data) == 0 {
		res.AddError("forms", "no Form 8949 document instances were produced")
		return res
	}

	for _, id := range sortedInstanceIDs(data) {
		fields := data[id]
		if len(fields) == 0 {
			res.AddWarning(id, "document instance has no fields")
			continue
		}
		for _, prefix := range []string{"st", "lt"} {
			proceedsField, ok := table[prefix+"_total_proceed"]
			if !ok {
				continue
			}
			v, present := fields[proceedsField]
			if !present {
				// Instance carries no rows of this classification.
				continue
			}
			if f, isNum := v.(float64); isNum && f < 0 {
				res.AddWarning(proceedsField, fmt.Sprintf("%s: proceeds total is negative", id))
			}
			if descField, ok := table[prefix+"_r0_c0"]; ok {
				if dv, dp := fields[descField]; !dp || isEmptyValue(dv) {
					res.AddWarning(descField, fmt.Sprintf("%s: first transaction row description is empty", id))
				}
			}
		}
	}
	return res
}

// requiredLines and nonNegativeLines are the fixed line labels checked on
// Form 1040 output.
var requiredLines = []string{"9", "11"}
var nonNegativeLines = []string{"25a", "25b", "25c", "25d"}

// ValidateForm1040 checks the single line-item instance for presence of
// the required lines and sane signs on the withholding lines.
func ValidateForm1040(data models.FormsData, table mappings.Table) models.ValidationResult {
	res := models.NewValidResult()
	if len(data) == 0 {
		res.AddError("forms", "no Form 1040 document instance was produced")
		return res
	}

	for _, id := range sortedInstanceIDs(data) {
		fields := data[id]
		if len(fields) == 0 {
			res.AddWarning(id, "document instance has no fields")
			continue
		}
		for _, line := range requiredLines {
			field, ok := table[line]
			if !ok {
				continue
			}
			if v, present := fields[field]; !present || isEmptyValue(v) {
				res.AddWarning(field, fmt.Sprintf("%s: required line %s is empty", id, line))
			}
		}
		for _, line := range nonNegativeLines {
			field, ok := table[line]
			if !ok {
				continue
			}
			if f, isNum := fields[field].(float64); isNum && f < 0 {
				res.AddWarning(field, fmt.Sprintf("%s: line %s is negative", id, line))
			}
		}
	}
	return res
}

func sortedInstanceIDs(data models.FormsData) []string {
	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
