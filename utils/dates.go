// utils/dates.go
package utils

import (
	"errors"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DateKey formats a time as the calendar-date key used by slots and bookings
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ResolveDate normalizes the informal date tokens clients send ("today",
// "tomorrow") or validates a literal YYYY-MM-DD date.
func ResolveDate(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "today":
		return DateKey(time.Now()), nil
	case "tomorrow":
		return DateKey(time.Now().AddDate(0, 0, 1)), nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", errors.New("date must be YYYY-MM-DD, 'today' or 'tomorrow'")
	}
	return DateKey(t), nil
}
