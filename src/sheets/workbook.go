// Package sheets is the input boundary: it turns a workbook into named
// sheets of ordered raw records. The mapping core only ever sees the
// Source interface, never the file format.
package sheets

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/username/taxformfill/src/models"
)

// Source supplies the ordered sheet names of a workbook and the ordered
// records of each sheet.
type Source interface {
	SheetNames() []string
	Records(sheetName string) ([]models.RawRecord, error)
}

// XLSXSource reads .xlsx workbooks via excelize. The first row of each
// sheet is treated as the header row; remaining rows become records keyed
// by those headers.
type XLSXSource struct {
	file *excelize.File
}

func OpenXLSX(r io.Reader) (*XLSXSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx reader: failed to open workbook: %w", err)
	}
	return &XLSXSource{file: f}, nil
}

func (s *XLSXSource) Close() error {
	return s.file.Close()
}

func (s *XLSXSource) SheetNames() []string {
	return s.file.GetSheetList()
}

func (s *XLSXSource) Records(sheetName string) ([]models.RawRecord, error) {
	// RawCellValue keeps date cells as day serials and numbers unformatted,
	// which is what the normalizer expects.
	rows, err := s.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx reader: failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			// Unnamed columns stay addressable by position.
			h = fmt.Sprintf("col%d", i+1)
		}
		headers[i] = h
	}

	records := make([]models.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := models.RawRecord{Headers: headers, Cells: make(map[string]models.CellValue, len(headers))}
		for ci, h := range headers {
			raw := ""
			if ci < len(row) {
				raw = row[ci]
			}
			rec.Cells[h] = cellFromRaw(raw)
		}
		records = append(records, rec)
	}
	return records, nil
}

func cellFromRaw(raw string) models.CellValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.EmptyCell()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return models.NumberCell(f)
	}
	return models.TextCell(raw)
}
