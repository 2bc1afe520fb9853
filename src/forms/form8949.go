package forms

import (
	"fmt"

	"github.com/username/taxformfill/src/mappings"
	"github.com/username/taxformfill/src/models"
	"github.com/username/taxformfill/src/parsers"
	"github.com/username/taxformfill/src/validation"
)

// Form8949Handler maps capital transaction sheets onto Form 8949 document
// instances, paginating overflow rows into numbered copies.
type Form8949Handler struct {
	aliases []string
}

func NewForm8949Handler() *Form8949Handler {
	return &Form8949Handler{aliases: []string{"f8949", "8949"}}
}

func (h *Form8949Handler) FormType() string { return mappings.Form8949 }

func (h *Form8949Handler) Describe() string {
	return "Form 8949 capital transactions (short/long-term, paginated)"
}

func (h *Form8949Handler) Matches(sheetName string) bool {
	return matchesAlias(sheetName, h.aliases)
}

func (h *Form8949Handler) Process(records []models.RawRecord, opts models.DispatchOptions) models.SheetResult {
	result := models.SheetResult{FormsData: models.FormsData{}, Validation: models.NewValidResult()}

	if len(records) == 0 {
		result.Validation.AddError("sheet", "sheet contains no records")
		return result
	}

	roles, err := parsers.DetectColumns(records[0])
	if err != nil {
		result.Validation.AddError("sheet", fmt.Sprintf("could not detect transaction columns: %v", err))
		return result
	}

	txs := parsers.NormalizeRecords(records, roles)
	if len(txs) == 0 {
		result.Validation.AddError("sheet", "no usable transactions found in sheet")
		return result
	}

	table, _ := mappings.ForYear(mappings.Form8949, opts.Year)

	short, long := parsers.SplitByTerm(txs)
	shortMaps := projectAll(BuildChunks(short), "st", table)
	longMaps := projectAll(BuildChunks(long), "lt", table)

	result.FormIDs, result.FormsData = MergeChunkPages(shortMaps, longMaps, mappings.Form8949)
	return result
}

func (h *Form8949Handler) Validate(data models.FormsData, opts models.DispatchOptions) models.ValidationResult {
	table, _ := mappings.ForYear(mappings.Form8949, opts.Year)
	return validation.ValidateForm8949(data, table)
}

func projectAll(chunks []models.Chunk, prefix string, table mappings.Table) []models.FieldMap {
	maps := make([]models.FieldMap, 0, len(chunks))
	for _, chunk := range chunks {
		maps = append(maps, ProjectChunk(chunk, prefix, table))
	}
	return maps
}
