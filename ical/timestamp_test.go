package ical

import (
	"testing"
	"time"
)

func newTestGenerator() *Generator {
	return New(Env{
		Now: func() time.Time {
			return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
		},
		TimeZone:  "Europe/Paris",
		LineBreak: "\n",
		TempDir:   "/tmp",
	})
}

func TestValidateTimestamp(t *testing.T) {
	generator := newTestGenerator()

	// case: absent value, offset 0 -> now
	if got := generator.validateTimestamp("", 0); got != "20240615T100000" {
		t.Error("expected now, got", got)
	}

	// case: absent value, offset 1 -> now + 1h
	if got := generator.validateTimestamp("", 1); got != "20240615T110000" {
		t.Error("expected now + 1h, got", got)
	}

	// case: ISO-8601 with offset, reformatted keeping the wall clock
	if got := generator.validateTimestamp("2019-03-01T08:30:00+02:00", 0); got != "20190301T083000" {
		t.Error("expected reformatted wall clock, got", got)
	}

	// case: ISO-8601 in UTC
	if got := generator.validateTimestamp("2019-03-01T08:30:00Z", 0); got != "20190301T083000" {
		t.Error("expected reformatted UTC value, got", got)
	}

	// case: malformed value degrades to the default
	if got := generator.validateTimestamp("tomorrow-ish", 1); got != "20240615T110000" {
		t.Error("malformed date should fall back to the default, got", got)
	}
}
