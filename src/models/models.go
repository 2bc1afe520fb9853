package models

import (
	"strconv"
	"strings"
	"time"
)

// CellKind identifies the variant stored in a CellValue.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// CellValue is a single spreadsheet cell as delivered by the workbook
// reader. Numeric date serials arrive as CellNumber; interpreting them as
// dates is the normalizer's job.
type CellValue struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

func TextCell(s string) CellValue    { return CellValue{Kind: CellText, Text: s} }
func NumberCell(f float64) CellValue { return CellValue{Kind: CellNumber, Number: f} }
func DateCell(t time.Time) CellValue { return CellValue{Kind: CellDate, Date: t} }
func EmptyCell() CellValue           { return CellValue{Kind: CellEmpty} }

// IsEmpty reports whether the cell carries no usable value. A text cell
// containing only whitespace counts as empty.
func (v CellValue) IsEmpty() bool {
	switch v.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(v.Text) == ""
	default:
		return false
	}
}

// AsText renders the cell for display purposes.
func (v CellValue) AsText() string {
	switch v.Kind {
	case CellText:
		return v.Text
	case CellNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case CellDate:
		return v.Date.Format("01/02/2006")
	default:
		return ""
	}
}

// RawRecord is one spreadsheet row: an ordered header list plus the cell
// value under each header. Header order is preserved from the source sheet
// so that column detection and positional fallbacks stay deterministic.
type RawRecord struct {
	Headers []string
	Cells   map[string]CellValue
}

// Get returns the cell under the given header, or an empty cell when the
// header is absent.
func (r RawRecord) Get(header string) CellValue {
	if v, ok := r.Cells[header]; ok {
		return v
	}
	return EmptyCell()
}

// Transaction is a normalized capital transaction produced from one
// RawRecord.
type Transaction struct {
	Quantity      float64
	Name          string
	PurchaseDate  time.Time
	SellDate      time.Time
	PurchasePrice float64
	SellPrice     float64
	Adjustment    float64
	Code          string
	IsShortTerm   bool
}

// GainLoss is the per-transaction gain or loss.
func (t Transaction) GainLoss() float64 {
	return t.SellPrice - t.PurchasePrice - t.Adjustment
}

// Chunk is a capacity-bounded group of same-classification transactions
// backing one document instance, together with its column totals.
type Chunk struct {
	Transactions    []Transaction
	TotalProceeds   float64
	TotalCost       float64
	TotalGainLoss   float64
	TotalAdjustment float64
}

// FieldMap maps physical field identifiers to the value to write into the
// document. Values are strings or float64s.
type FieldMap map[string]any

// FormsData maps document-instance identifiers (e.g. "f8949_1", "f1040")
// to their field maps.
type FormsData map[string]FieldMap

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationIssue is one advisory finding about a produced field map.
type ValidationIssue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ValidationResult aggregates advisory findings. Errors flip IsValid but
// never block producing field maps.
type ValidationResult struct {
	IsValid  bool              `json:"isValid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

func NewValidResult() ValidationResult {
	return ValidationResult{IsValid: true}
}

func (r *ValidationResult) AddError(field, message string) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Message: message, Severity: SeverityError})
}

func (r *ValidationResult) AddWarning(field, message string) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Message: message, Severity: SeverityWarning})
}

// Merge folds another result into this one.
func (r *ValidationResult) Merge(other ValidationResult) {
	if !other.IsValid {
		r.IsValid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// DispatchOptions carries the per-call configuration surface.
type DispatchOptions struct {
	Year          int
	Validate      bool
	SkipEmptyRows bool
}

// SheetResult is the outcome of dispatching one sheet.
type SheetResult struct {
	FormIDs    []string         `json:"formIds"`
	FormsData  FormsData        `json:"formsData"`
	Validation ValidationResult `json:"validation"`
}
