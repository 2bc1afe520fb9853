package forms

import (
	"strings"

	"github.com/username/taxformfill/src/logger"
	"github.com/username/taxformfill/src/mappings"
	"github.com/username/taxformfill/src/models"
	"github.com/username/taxformfill/src/parsers"
	"github.com/username/taxformfill/src/validation"
)

// Form1040Handler extracts variable/value line items into a single Form
// 1040 document instance. Unlike the 8949 pipeline there is no chunking;
// one sheet produces at most one instance.
type Form1040Handler struct {
	aliases []string
}

func NewForm1040Handler() *Form1040Handler {
	return &Form1040Handler{aliases: []string{"f1040", "1040"}}
}

func (h *Form1040Handler) FormType() string { return mappings.Form1040 }

func (h *Form1040Handler) Describe() string {
	return "Form 1040 line items (variable/value pairs)"
}

func (h *Form1040Handler) Matches(sheetName string) bool {
	return matchesAlias(sheetName, h.aliases)
}

func (h *Form1040Handler) Process(records []models.RawRecord, opts models.DispatchOptions) models.SheetResult {
	result := models.SheetResult{FormsData: models.FormsData{}, Validation: models.NewValidResult()}

	if len(records) == 0 {
		result.Validation.AddError("sheet", "sheet contains no records")
		return result
	}

	table, _ := mappings.ForYear(mappings.Form1040, opts.Year)

	data := records
	if parsers.DetectLineShape(records[0]) == parsers.LineShapeLabeled {
		// The label row survived as data; everything after it is line items.
		data = records[1:]
	}

	fields := make(models.FieldMap)
	if len(records[0].Headers) < 2 {
		result.Validation.AddWarning("sheet", "fewer than two columns available; no line items extracted")
	} else {
		varHeader := records[0].Headers[0]
		valHeader := records[0].Headers[1]
		for _, rec := range data {
			variable := rec.Get(varHeader)
			if variable.IsEmpty() {
				if opts.SkipEmptyRows {
					continue
				}
				// An empty variable terminates the sheet scan.
				break
			}
			label := strings.ToLower(strings.TrimSpace(variable.AsText()))
			physical, ok := table[label]
			if !ok {
				logger.L.Warn("No mapping entry for line label, skipping", "label", label)
				continue
			}
			value := rec.Get(valHeader)
			if value.Kind == models.CellNumber {
				fields[physical] = value.Number
			} else {
				fields[physical] = value.AsText()
			}
		}
	}

	if len(fields) == 0 {
		result.Validation.AddError("sheet", "no usable line items found in sheet")
		return result
	}

	result.FormIDs = []string{mappings.Form1040}
	result.FormsData[mappings.Form1040] = fields
	return result
}

func (h *Form1040Handler) Validate(data models.FormsData, opts models.DispatchOptions) models.ValidationResult {
	table, _ := mappings.ForYear(mappings.Form1040, opts.Year)
	return validation.ValidateForm1040(data, table)
}
