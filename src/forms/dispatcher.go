package forms

import (
	"fmt"
	"strings"

	"github.com/username/taxformfill/src/logger"
	"github.com/username/taxformfill/src/models"
)

// Handler is one member of the closed set of supported form pipelines.
// Process turns a sheet's records into document-instance field maps;
// Validate runs the form type's advisory checks over produced data.
type Handler interface {
	FormType() string
	Describe() string
	Matches(sheetName string) bool
	Process(records []models.RawRecord, opts models.DispatchOptions) models.SheetResult
	Validate(data models.FormsData, opts models.DispatchOptions) models.ValidationResult
}

// Dispatcher routes sheets to form handlers. Registration order is fixed
// and dispatch is a linear scan, first match wins.
type Dispatcher struct {
	handlers []Handler
}

func NewDispatcher(handlers ...Handler) *Dispatcher {
	return &Dispatcher{handlers: handlers}
}

// DefaultHandlers returns the supported form pipelines in registration
// order.
func DefaultHandlers() []Handler {
	return []Handler{
		NewForm8949Handler(),
		NewForm1040Handler(),
	}
}

// DispatchSheet selects the pipeline for the sheet and runs it. An
// unmatched sheet name yields zero form ids and a single structured error;
// it never panics. The advisory Validator runs only when opts.Validate is
// set and never changes the produced field maps.
func (d *Dispatcher) DispatchSheet(sheetName string, records []models.RawRecord, opts models.DispatchOptions) models.SheetResult {
	for _, h := range d.handlers {
		if !h.Matches(sheetName) {
			continue
		}
		logger.L.Debug("Dispatching sheet", "sheet", sheetName, "formType", h.FormType(), "records", len(records))
		result := h.Process(records, opts)
		if opts.Validate && len(result.FormIDs) > 0 {
			result.Validation.Merge(h.Validate(result.FormsData, opts))
		}
		return result
	}

	logger.L.Warn("No handler matched sheet", "sheet", sheetName)
	result := models.SheetResult{FormsData: models.FormsData{}, Validation: models.NewValidResult()}
	result.Validation.AddError("sheet", fmt.Sprintf("No parser found for sheet: %s", sheetName))
	return result
}

// matchesAlias reports a case-insensitive exact match against the alias
// set.
func matchesAlias(sheetName string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.EqualFold(strings.TrimSpace(sheetName), alias) {
			return true
		}
	}
	return false
}
