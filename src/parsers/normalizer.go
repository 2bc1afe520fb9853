package parsers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/username/taxformfill/src/logger"
	"github.com/username/taxformfill/src/models"
	"github.com/username/taxformfill/src/utils"
)

// ShortTermThreshold is the fixed holding-period cutoff. It is a flat
// 365-day span in milliseconds, not a calendar year, so leap years shift
// the true one-year boundary by a day. That matches the historical
// behavior the tables were built against.
const ShortTermThreshold = 365 * 24 * time.Hour

// NormalizeRecords converts raw records into typed transactions using the
// resolved column roles. Records with an empty quantity cell are skipped;
// records whose dates cannot be parsed are dropped with a logged warning
// and processing continues. Output order preserves input order.
func NormalizeRecords(records []models.RawRecord, roles ColumnRoleMap) []models.Transaction {
	var txs []models.Transaction
	for i, rec := range records {
		qty := rec.Get(roles[RoleQuantity])
		if qty.IsEmpty() {
			continue
		}

		purchaseDate, err := CellToDate(rec.Get(roles[RolePurchaseDate]))
		if err != nil {
			logger.L.Warn("Dropping record with unparseable purchase date", "row", i, "error", err)
			continue
		}
		sellDate, err := CellToDate(rec.Get(roles[RoleSellDate]))
		if err != nil {
			logger.L.Warn("Dropping record with unparseable sell date", "row", i, "error", err)
			continue
		}

		tx := models.Transaction{
			Quantity:      ParseMoney(qty, 0),
			Name:          strings.TrimSpace(rec.Get(roles[RoleName]).AsText()),
			PurchaseDate:  purchaseDate,
			SellDate:      sellDate,
			PurchasePrice: ParseMoney(rec.Get(roles[RolePurchasePrice]), 0),
			SellPrice:     ParseMoney(rec.Get(roles[RoleSellPrice]), 0),
		}
		if header, ok := roles[RoleCode]; ok {
			tx.Code = strings.TrimSpace(rec.Get(header).AsText())
		}
		if header, ok := roles[RoleAdjustment]; ok {
			tx.Adjustment = ParseMoney(rec.Get(header), 0)
		}
		tx.IsShortTerm = sellDate.Sub(purchaseDate) < ShortTermThreshold

		txs = append(txs, tx)
	}
	return txs
}

// SplitByTerm partitions transactions into short-term and long-term
// sequences, both preserving input order.
func SplitByTerm(txs []models.Transaction) (short, long []models.Transaction) {
	for _, tx := range txs {
		if tx.IsShortTerm {
			short = append(short, tx)
		} else {
			long = append(long, tx)
		}
	}
	return short, long
}

// CellToDate converts a cell to a calendar date. Numeric cells are day
// serials on the 1899-12-30 spreadsheet epoch; native dates pass through;
// text gets flexible layout parsing.
func CellToDate(v models.CellValue) (time.Time, error) {
	switch v.Kind {
	case models.CellDate:
		return v.Date, nil
	case models.CellNumber:
		return utils.DateFromSerial(v.Number), nil
	case models.CellText:
		return utils.ParseFlexibleDate(strings.TrimSpace(v.Text))
	default:
		return time.Time{}, fmt.Errorf("empty date cell")
	}
}

// ParseMoney converts a numeric-like cell to a float64, stripping currency
// symbols and thousands separators from text. Unparseable values fall back
// to the supplied default.
func ParseMoney(v models.CellValue, fallback float64) float64 {
	switch v.Kind {
	case models.CellNumber:
		return v.Number
	case models.CellText:
		cleaned := strings.TrimSpace(v.Text)
		cleaned = strings.ReplaceAll(cleaned, "$", "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		if cleaned == "" {
			return fallback
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return fallback
		}
		return f
	default:
		return fallback
	}
}
