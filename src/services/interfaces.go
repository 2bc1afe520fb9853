package services

import (
	"errors"
	"io"

	"github.com/username/taxformfill/src/filler"
	"github.com/username/taxformfill/src/models"
)

var (
	ErrWorkbookUnreadable = errors.New("workbook could not be read")
	ErrNoSheets           = errors.New("workbook contains no sheets")
	ErrResultNotFound     = errors.New("conversion result not found or expired")
)

// SheetOutcome is the per-sheet slice of a conversion.
type SheetOutcome struct {
	SheetName  string                  `json:"sheetName"`
	FormIDs    []string                `json:"formIds"`
	Validation models.ValidationResult `json:"validation"`
}

// ConversionResult aggregates everything one workbook produced: the
// combined forms data across sheets, per-sheet outcomes, the merged
// validation and the filled documents.
type ConversionResult struct {
	ID         string
	FormIDs    []string
	FormsData  models.FormsData
	Sheets     []SheetOutcome
	Validation models.ValidationResult
	Documents  []filler.FilledDocument
}

// ConvertService defines the interface for the core workbook conversion
// logic.
type ConvertService interface {
	ProcessWorkbook(r io.Reader, opts models.DispatchOptions) (*ConversionResult, error)
	GetResult(id string) (*ConversionResult, error)
	Archive(id string) ([]byte, error)
}
