package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/username/taxformfill/src/filler"
	"github.com/username/taxformfill/src/forms"
	"github.com/username/taxformfill/src/logger"
	"github.com/username/taxformfill/src/models"
	"github.com/username/taxformfill/src/sheets"
)

const resultCacheKey = "conversion_%s"

type convertServiceImpl struct {
	dispatcher  *forms.Dispatcher
	docFiller   filler.Filler
	resultCache *cache.Cache
}

func NewConvertService(dispatcher *forms.Dispatcher, docFiller filler.Filler, resultCache *cache.Cache) ConvertService {
	return &convertServiceImpl{
		dispatcher:  dispatcher,
		docFiller:   docFiller,
		resultCache: resultCache,
	}
}

// ProcessWorkbook runs the mapping core over every sheet of the workbook
// in workbook order. Sheet-scoped failures are recorded in the combined
// validation and do not affect other sheets; only an unreadable workbook
// is a terminal failure.
func (s *convertServiceImpl) ProcessWorkbook(r io.Reader, opts models.DispatchOptions) (*ConversionResult, error) {
	startTime := time.Now()

	src, err := sheets.OpenXLSX(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	defer src.Close()

	sheetNames := src.SheetNames()
	if len(sheetNames) == 0 {
		return nil, ErrNoSheets
	}

	result := &ConversionResult{
		ID:         uuid.NewString(),
		FormsData:  models.FormsData{},
		Validation: models.NewValidResult(),
	}
	logger.L.Info("ProcessWorkbook START", "conversionID", result.ID, "sheets", len(sheetNames), "year", opts.Year)

	for _, sheetName := range sheetNames {
		records, recErr := src.Records(sheetName)
		if recErr != nil {
			logger.L.Warn("Skipping unreadable sheet", "sheet", sheetName, "error", recErr)
			result.Validation.AddError("sheet", fmt.Sprintf("failed to read sheet %s: %v", sheetName, recErr))
			continue
		}

		sheetResult := s.dispatcher.DispatchSheet(sheetName, records, opts)
		result.Sheets = append(result.Sheets, SheetOutcome{
			SheetName:  sheetName,
			FormIDs:    sheetResult.FormIDs,
			Validation: sheetResult.Validation,
		})
		result.FormIDs = append(result.FormIDs, sheetResult.FormIDs...)
		for id, fieldMap := range sheetResult.FormsData {
			result.FormsData[id] = fieldMap
		}
		result.Validation.Merge(sheetResult.Validation)
	}

	for _, instanceID := range result.FormIDs {
		doc, fillErr := s.docFiller.Fill(instanceID, result.FormsData[instanceID])
		if fillErr != nil {
			logger.L.Error("Document fill failed", "instance", instanceID, "error", fillErr)
			result.Validation.AddWarning(instanceID, fmt.Sprintf("document fill failed: %v", fillErr))
			continue
		}
		result.Documents = append(result.Documents, doc)
	}

	s.resultCache.Set(fmt.Sprintf(resultCacheKey, result.ID), result, cache.DefaultExpiration)

	logger.L.Info("ProcessWorkbook END",
		"conversionID", result.ID,
		"formIDs", len(result.FormIDs),
		"documents", len(result.Documents),
		"valid", result.Validation.IsValid,
		"duration", time.Since(startTime))
	return result, nil
}

func (s *convertServiceImpl) GetResult(id string) (*ConversionResult, error) {
	if cached, found := s.resultCache.Get(fmt.Sprintf(resultCacheKey, id)); found {
		return cached.(*ConversionResult), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrResultNotFound, id)
}

// Archive bundles the conversion's filled documents into a zip.
func (s *convertServiceImpl) Archive(id string) ([]byte, error) {
	result, err := s.GetResult(id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, doc := range result.Documents {
		w, zerr := zw.Create(doc.InstanceID + ".fdf")
		if zerr != nil {
			return nil, fmt.Errorf("error creating archive entry for %s: %w", doc.InstanceID, zerr)
		}
		if _, zerr = w.Write(doc.Bytes); zerr != nil {
			return nil, fmt.Errorf("error writing archive entry for %s: %w", doc.InstanceID, zerr)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("error finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}
