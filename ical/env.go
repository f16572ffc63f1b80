package ical

import (
	"log/slog"
	"os"
	"runtime"
	"time"
)

// Env carries every host-dependent value the validator and formatter
// need: the clock, the timezone rendered into TZID= parameters, the line
// separator and the directory for default output paths. It is built once
// and passed into the Generator so the whole pipeline stays pure and
// testable with injected fakes.
type Env struct {
	Now       func() time.Time
	TimeZone  string
	LineBreak string
	TempDir   string
}

// DetectEnv builds an Env from the host: the TIMEZONE environment
// variable (falling back to the process-local zone), the platform line
// separator, the platform temp directory and the real clock.
func DetectEnv() Env {
	return Env{
		Now:       time.Now,
		TimeZone:  detectTimeZone(),
		LineBreak: detectLineBreak(),
		TempDir:   os.TempDir(),
	}
}

func detectTimeZone() string {
	if timezoneStr := os.Getenv("TIMEZONE"); timezoneStr != "" {
		if _, err := time.LoadLocation(timezoneStr); err != nil {
			slog.Warn("invalid TIMEZONE, using local timezone", "timezone", timezoneStr, "error", err)
		} else {
			return timezoneStr
		}
	}
	// time.Local reports "Local" unless the zone was loaded by name
	if name := time.Local.String(); name != "Local" {
		return name
	}
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	return "UTC"
}

func detectLineBreak() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
