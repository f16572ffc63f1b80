// The `ical` package turns loosely-specified calendar options into an
// iCalendar (.ics) document.
//
// # References:
// - RFC5545: https://datatracker.ietf.org/doc/html/rfc5545
//
// # Notes:
// - Write-only: there is no parsing of existing .ics input.
// - The emitted grammar is a fixed simplified subset: one VCALENDAR
//   envelope, one VEVENT block per event, a fixed property order and a
//   single TZID annotation shared by all date properties. Recurrence
//   rules, VTIMEZONE blocks and alarms are out of scope.
// - Validation is defaults-first and never fails; missing or malformed
//   optional fields resolve to documented defaults. The only surfaced
//   error is the terminal file-write failure.
//
// # Example usage:
//
// Render to a string
//	generator := ical.New(ical.DetectEnv())
//	output := generator.GetCalendar(ical.CalendarOptions{})
//
// Render and write to a file
//	path, _ := generator.CreateCalendar(options, "/path/to/output.ics")

package ical

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Base name used when neither a file name nor an explicit path is given
const defaultFileName = "calendar-event"

const icsExtension = ".ics"

// CalendarOptions is both the raw input shape and, once validated, the
// canonical calendar record.
type CalendarOptions struct {
	// Base name for the default temp-dir output path; ignored when an
	// explicit path is given.
	Filename string `json:"filename,omitempty"`
	// IANA timezone identifier; absent means the host-detected default.
	TimeZone string `json:"timeZone,omitempty"`
	// A nil list means "not supplied" and yields one default event; an
	// explicitly empty list stays empty.
	Events []EventOptions `json:"events,omitempty"`
	// Resolved output destination; populated by validation.
	FilePath string `json:"filePath,omitempty"`
	// Pre-validated marker: options carrying a true value pass through
	// re-validation unchanged.
	IsValid bool `json:"isValid,omitempty"`
}

// Generator renders calendar options into iCalendar text using an
// injected environment.
type Generator struct {
	env Env
}

// Initialize a new Generator{} struct
func New(env Env) *Generator {
	return &Generator{env: env}
}

// validateFilePath resolves the output destination. An explicit path
// wins verbatim; otherwise the file name (default "calendar-event")
// gains an .ics suffix when missing and lands in the temp directory.
func (g *Generator) validateFilePath(fileName string, explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	if fileName == "" {
		fileName = defaultFileName
	}
	if !strings.HasSuffix(fileName, icsExtension) {
		fileName += icsExtension
	}
	return filepath.Join(g.env.TempDir, fileName)
}

// validateCalendarOptions produces the canonical options: a resolved
// output path, a resolved timezone and a fully-defaulted event list.
// Options already carrying the IsValid marker are returned untouched.
func (g *Generator) validateCalendarOptions(raw CalendarOptions, explicitPath string) CalendarOptions {
	if raw.IsValid {
		return raw
	}

	options := CalendarOptions{
		Filename: raw.Filename,
		FilePath: g.validateFilePath(raw.Filename, explicitPath),
		TimeZone: raw.TimeZone,
		IsValid:  true,
	}
	if options.TimeZone == "" {
		options.TimeZone = g.env.TimeZone
	}

	if raw.Events == nil {
		options.Events = []EventOptions{g.validateEventOptions(EventOptions{})}
		return options
	}
	options.Events = make([]EventOptions, 0, len(raw.Events))
	for _, event := range raw.Events {
		options.Events = append(options.Events, g.validateEventOptions(event))
	}
	return options
}

// GetCalendar validates the options and renders the iCalendar document.
// Pure: identical canonical input and a fixed clock yield byte-identical
// output, and the filesystem is never touched.
func (g *Generator) GetCalendar(options CalendarOptions) string {
	options = g.validateCalendarOptions(options, "")

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
	}
	for i := range options.Events {
		options.Events[i].toIcal(options.TimeZone, func(line string) {
			lines = append(lines, line)
		})
	}
	lines = append(lines, "END:VCALENDAR")

	return strings.Join(lines, g.env.LineBreak)
}

// CreateCalendar validates the options, renders the document and writes
// it to the resolved destination in a single buffered write. Returns the
// resolved path, or the I/O error unchanged; there is no retry and no
// partial-success state.
func (g *Generator) CreateCalendar(options CalendarOptions, explicitPath string) (string, error) {
	options = g.validateCalendarOptions(options, explicitPath)
	content := g.GetCalendar(options)

	file, err := os.Create(options.FilePath)
	if err != nil {
		return "", NewCustomError("can't create calendar file", map[string]any{
			"path": options.FilePath,
			"err":  err,
		})
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(content); err != nil {
		return "", NewCustomError("can't write calendar to file", map[string]any{
			"path": options.FilePath,
			"err":  err,
		})
	}
	if err := writer.Flush(); err != nil {
		return "", NewCustomError("can't flush calendar to file", map[string]any{
			"path": options.FilePath,
			"err":  err,
		})
	}

	return options.FilePath, nil
}
