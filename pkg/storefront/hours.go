package storefront

import (
	"fmt"
	"time"
)

// Hours is the daily ordering window. Orders are accepted from Open
// (inclusive) to Close (exclusive), hours of the local day.
type Hours struct {
	Open  int
	Close int
}

func DefaultHours() Hours {
	return Hours{Open: 9, Close: 22}
}

func (h Hours) IsOpen(t time.Time) bool {
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= h.Open*60 && minutes < h.Close*60
}

// NextOpening describes when ordering resumes, or "" while open.
func (h Hours) NextOpening(t time.Time) string {
	minutes := t.Hour()*60 + t.Minute()
	if minutes < h.Open*60 {
		return formatHour(h.Open)
	}
	if minutes >= h.Close*60 {
		return formatHour(h.Open) + " (tomorrow)"
	}
	return ""
}

func (h Hours) Message(t time.Time) string {
	if h.IsOpen(t) {
		return fmt.Sprintf("Orders are accepted until %s", formatHour(h.Close))
	}
	return fmt.Sprintf("Ordering is currently closed. Orders are accepted from %s to %s. Next available time: %s",
		formatHour(h.Open), formatHour(h.Close), h.NextOpening(t))
}

// Range renders the window, e.g. "9:00 AM - 10:00 PM".
func (h Hours) Range() string {
	return formatHour(h.Open) + " - " + formatHour(h.Close)
}

func formatHour(hour int) string {
	suffix := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		display = hour - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}
