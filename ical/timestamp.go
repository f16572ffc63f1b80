package ical

import (
	"log/slog"
	"time"
)

// Canonical layout of every rendered date-time value. The offset never
// appears in the value itself; it travels as the TZID= parameter on the
// property line.
const dateTimeLayout = "20060102T150405"

// validateTimestamp resolves a raw date string into the canonical layout.
//
// - `2006-01-02T15:04:05Z07:00` (ISO-8601 with a numeric UTC offset or
//   the literal Z) is accepted and reformatted, keeping the wall-clock
//   time as given.
// - An absent value becomes "now + fallbackOffsetHours".
// - A malformed value degrades the same way; validation never fails on
//   bad dates.
func (g *Generator) validateTimestamp(raw string, fallbackOffsetHours int) string {
	if raw == "" {
		return g.fallbackTimestamp(fallbackOffsetHours)
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		slog.Debug("can't parse date, using default", "raw", raw, "error", err)
		return g.fallbackTimestamp(fallbackOffsetHours)
	}
	return parsed.Format(dateTimeLayout)
}

func (g *Generator) fallbackTimestamp(offsetHours int) string {
	return g.env.Now().
		Add(time.Duration(offsetHours) * time.Hour).
		Format(dateTimeLayout)
}
