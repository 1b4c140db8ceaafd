package filter

import (
	"fmt"
	"time"

	"readlytics/internal/models"
)

// All is the sentinel filter value matching every row.
const All = "All"

// Window names a relative time range for the date predicate.
type Window string

const (
	WindowAll Window = "all"
	Window7d  Window = "7d"
	Window30d Window = "30d"
	Window90d Window = "90d"
)

// Windows returns the valid window names in menu order.
func Windows() []string {
	return []string{string(WindowAll), string(Window7d), string(Window30d), string(Window90d)}
}

// ParseWindow maps a query value to a Window. The empty string means
// all time.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case "", WindowAll:
		return WindowAll, nil
	case Window7d, Window30d, Window90d:
		return Window(s), nil
	default:
		return WindowAll, fmt.Errorf("invalid time window '%s'", s)
	}
}

// Cutoff returns the earliest timestamp (inclusive) a row's date must
// meet, or nil for all time.
func (w Window) Cutoff(now time.Time) *time.Time {
	var days int
	switch w {
	case Window7d:
		days = 7
	case Window30d:
		days = 30
	case Window90d:
		days = 90
	default:
		return nil
	}
	cutoff := now.AddDate(0, 0, -days)
	return &cutoff
}

// Readers returns the reader rows matching the conjunction of the
// optional predicates. "All" or the empty string matches every country
// or industry; a nil cutoff matches every date. Rows with a nil value
// never match an active predicate. The input slice is not modified and
// relative row order is preserved.
func Readers(rows []models.ReaderRecord, country, industry string, cutoff *time.Time) []models.ReaderRecord {
	result := make([]models.ReaderRecord, 0, len(rows))
	for _, row := range rows {
		if !matchString(row.Country, country) {
			continue
		}
		if !matchString(row.Industry, industry) {
			continue
		}
		if !matchDate(row.LastAccess, cutoff) {
			continue
		}
		result = append(result, row)
	}
	return result
}

// Articles returns the joined article rows whose date meets the cutoff.
// A nil cutoff matches all rows; rows with a nil date are excluded
// whenever a cutoff is active.
func Articles(rows []models.JoinedArticle, cutoff *time.Time) []models.JoinedArticle {
	result := make([]models.JoinedArticle, 0, len(rows))
	for _, row := range rows {
		if !matchDate(row.Date, cutoff) {
			continue
		}
		result = append(result, row)
	}
	return result
}

func matchString(value *string, want string) bool {
	if want == "" || want == All {
		return true
	}
	return value != nil && *value == want
}

func matchDate(value *time.Time, cutoff *time.Time) bool {
	if cutoff == nil {
		return true
	}
	// Inclusive boundary: a row dated exactly at the cutoff passes.
	return value != nil && !value.Before(*cutoff)
}
