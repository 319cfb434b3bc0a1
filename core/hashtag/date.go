package hashtag

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateSep = "-"

	MinYear = 1900
	MaxYear = 2100
)

// ParseDate parses a `D-M-Y` token (day & month may be zero padded) into a date at midnight UTC.
func ParseDate(token string) (time.Time, error) {
	parts := strings.Split(token, dateSep)
	if len(parts) != 3 {
		return time.Time{}, newFormatError(token, ErrDateFormat)
	}

	var nums [3]int
	for i, p := range parts {
		if p == "" || !isDigits(p) {
			return time.Time{}, newFormatError(token, ErrDateFormat)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, newFormatError(token, ErrDateFormat)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]

	if day < 1 || day > 31 || month < 1 || month > 12 || year < MinYear || year > MaxYear {
		return time.Time{}, newFormatError(token, ErrDateRange)
	}

	// time.Date normalizes overflows (eg. Feb 30 -> Mar 2), so any mismatch means the day does not exist.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return time.Time{}, newFormatError(token, ErrInvalidDate)
	}
	return date, nil
}

// FormatDate renders `t` as DD-MM-YYYY using its own calendar fields.
func FormatDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%02d-%02d-%04d", d, int(m), y)
}

// Day truncates `t` to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// compareDays compares the calendar dates of a & b, ignoring time of day and location.
func compareDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ak := ay*10000 + int(am)*100 + ad
	bk := by*10000 + int(bm)*100 + bd
	switch {
	case ak < bk:
		return -1
	case ak > bk:
		return 1
	default:
		return 0
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
