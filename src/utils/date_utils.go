package utils

import (
	"fmt"
	"time"
)

// OutputDateFormat is the MM/DD/YYYY form expected by the tax documents.
const OutputDateFormat = "01/02/2006"

// serialEpochOffsetDays is the day count between the spreadsheet epoch
// (1899-12-30) and the Unix epoch (1970-01-01).
const serialEpochOffsetDays = 25569

const millisPerDay = 24 * 60 * 60 * 1000

// DateFromSerial converts a spreadsheet day-count serial to a UTC date.
// Integer serials land on UTC midnight of the corresponding day.
func DateFromSerial(serial float64) time.Time {
	ms := (serial - serialEpochOffsetDays) * millisPerDay
	return time.UnixMilli(int64(ms)).UTC()
}

// FormatDate renders a date in the output format.
func FormatDate(t time.Time) string {
	return t.Format(OutputDateFormat)
}

// dateLayouts are tried in order when a date arrives as free text.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseFlexibleDate parses a textual date using the known layouts.
func ParseFlexibleDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
