package types

import "time"

// Layouts accepted for user supplied dates. Invoices created through
// the form send plain calendar dates, imported records carry full
// RFC3339 timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ParseDate parses a user supplied date string in UTC.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// MonthWindow returns the first and last calendar day of the month
// `offset` months away from t (offset 0 is t's own month, negative
// offsets go back in time). Both bounds are midnight UTC; callers
// compare strictly inside the window, so an invoice issued exactly at
// either boundary instant belongs to neither adjacent month. That
// matches the historical dashboard behaviour and is intentional.
func MonthWindow(t time.Time, offset int) (start, end time.Time) {
	y, m, _ := t.UTC().Date()
	start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// MonthLabel returns the short display label for a month, e.g. "Jan".
func MonthLabel(t time.Time) string {
	return t.Format("Jan")
}

// AddDays is a small readability helper for computing default due dates.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
