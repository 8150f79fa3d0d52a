package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateRange returns n consecutive YYYY-MM-DD strings starting at from.
func DateRange(from time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, FormatDate(from.AddDate(0, 0, i)))
	}
	return dates
}
