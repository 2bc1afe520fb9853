package parsers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/username/taxformfill/src/models"
)

// ColumnRole is a semantic role a spreadsheet column can play in a
// transaction sheet.
type ColumnRole string

const (
	RoleQuantity      ColumnRole = "quantity"
	RoleName          ColumnRole = "name"
	RolePurchaseDate  ColumnRole = "purchaseDate"
	RoleSellDate      ColumnRole = "sellDate"
	RolePurchasePrice ColumnRole = "purchasePrice"
	RoleSellPrice     ColumnRole = "sellPrice"
	RoleCode          ColumnRole = "code"
	RoleAdjustment    ColumnRole = "adjustment"
)

// ColumnRoleMap maps a role to the originating column header. Optional
// roles that did not resolve are simply absent.
type ColumnRoleMap map[ColumnRole]string

// ErrColumnsNotFound is returned when a required role cannot be matched to
// any header; the whole sheet is then treated as unparseable.
var ErrColumnsNotFound = errors.New("transaction columns not found")

var requiredRoles = []ColumnRole{
	RoleQuantity, RoleName, RolePurchaseDate, RoleSellDate, RolePurchasePrice, RoleSellPrice,
}

var optionalRoles = []ColumnRole{RoleCode, RoleAdjustment}

// roleSynonyms is the fuzzy header vocabulary. Matching is bidirectional
// substring containment over normalized text, so "Date Acquired (mm/dd)"
// still resolves via "date acquired".
var roleSynonyms = map[ColumnRole][]string{
	RoleQuantity:      {"quantity", "qty", "shares", "units"},
	RoleName:          {"name", "description", "security", "symbol", "product"},
	RolePurchaseDate:  {"purchase date", "date acquired", "buy date", "acquired", "open date"},
	RoleSellDate:      {"sell date", "date sold", "sale date", "sold", "close date"},
	RolePurchasePrice: {"purchase price", "cost basis", "cost", "buy price", "basis"},
	RoleSellPrice:     {"sell price", "proceeds", "sale price", "sales price"},
	RoleCode:          {"code"},
	RoleAdjustment:    {"adjustment", "wash sale"},
}

// DetectColumns resolves the column roles for a transaction sheet from the
// first record's header set. Any required role that fails to match aborts
// the whole detection; optional roles are left out of the map when
// unmatched.
func DetectColumns(first models.RawRecord) (ColumnRoleMap, error) {
	roles := make(ColumnRoleMap)
	for _, role := range requiredRoles {
		header, ok := matchRole(first.Headers, roleSynonyms[role])
		if !ok {
			return nil, fmt.Errorf("%w: no header matches role %q", ErrColumnsNotFound, role)
		}
		roles[role] = header
	}
	for _, role := range optionalRoles {
		if header, ok := matchRole(first.Headers, roleSynonyms[role]); ok {
			roles[role] = header
		}
	}
	return roles, nil
}

// matchRole scans headers in input order and returns the first one whose
// normalized text contains, or is contained by, one of the synonyms.
// First match wins, which keeps resolution deterministic when several
// headers could satisfy a role.
func matchRole(headers []string, synonyms []string) (string, bool) {
	for _, h := range headers {
		n := normalizeHeader(h)
		if n == "" {
			continue
		}
		for _, syn := range synonyms {
			if strings.Contains(n, syn) || strings.Contains(syn, n) {
				return h, true
			}
		}
	}
	return "", false
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// LineShape describes how a line-oriented (variable/value) sheet presents
// its columns.
type LineShape int

const (
	// LineShapeLabeled means the sheet's label row survived as the first
	// data record ("Variable" / "Value" appearing as cell text); extraction
	// must skip that record.
	LineShapeLabeled LineShape = iota
	// LineShapeHeaderless means the label row was already consumed upstream
	// (or never existed): every record, including the first, is a data row
	// read through the first two positional columns.
	LineShapeHeaderless
)

var lineLabelWords = []string{"variable", "field", "line", "item"}

// DetectLineShape inspects the first record of a line-oriented sheet.
func DetectLineShape(first models.RawRecord) LineShape {
	if len(first.Headers) == 0 {
		return LineShapeHeaderless
	}
	v := first.Get(first.Headers[0])
	if v.Kind == models.CellText {
		n := normalizeHeader(v.Text)
		for _, w := range lineLabelWords {
			if strings.Contains(n, w) {
				return LineShapeLabeled
			}
		}
	}
	return LineShapeHeaderless
}
