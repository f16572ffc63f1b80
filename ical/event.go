package ical

import "fmt"

// Summary used when the event name is absent
const defaultSummary = "New Event"

// EventOptions is both the raw input shape and, once validated, the
// canonical event record. Raw date fields hold ISO-8601 strings with a
// numeric offset; canonical ones hold the 20060102T150405 layout.
type EventOptions struct {
	DTStamp     string   `json:"dtstamp,omitempty"`
	DTStart     string   `json:"dtstart,omitempty"`
	DTEnd       string   `json:"dtend,omitempty"`
	EventName   string   `json:"eventName,omitempty"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Organizer   *Person  `json:"organizer,omitempty"`
	Attendees   []Person `json:"attendees,omitempty"`
}

// validateEventOptions resolves every optional field to its documented
// default and filters the people involved. It never fails: missing or
// malformed fields degrade to defaults.
//
// - dtstamp and dtstart default to now, dtend to now + 1 hour
// - the event name defaults to "New Event"
// - an invalid organizer is dropped, invalid attendees are filtered out
func (g *Generator) validateEventOptions(raw EventOptions) EventOptions {
	event := EventOptions{
		DTStamp:     g.validateTimestamp(raw.DTStamp, 0),
		DTStart:     g.validateTimestamp(raw.DTStart, 0),
		DTEnd:       g.validateTimestamp(raw.DTEnd, 1),
		EventName:   raw.EventName,
		Description: raw.Description,
		Location:    raw.Location,
		Organizer:   validatePerson(raw.Organizer),
		Attendees:   validateAttendees(raw.Attendees),
	}
	if event.EventName == "" {
		event.EventName = defaultSummary
	}
	return event
}

// Convert the event into its VEVENT block, one call to the writer per
// line, in the fixed property order. Example usage:
//
//	var lines []string
//	event.toIcal("Europe/Paris", func(line string) {
//	    lines = append(lines, line)
//	})
//
// Values are inserted verbatim; iCalendar TEXT escaping is intentionally
// not applied.
func (e *EventOptions) toIcal(timeZone string, writer func(string)) {
	// blank separator line before every event block
	writer("")
	writer("BEGIN:VEVENT")

	writer(fmt.Sprintf("DTSTAMP;TZID=%s:%s", timeZone, e.DTStamp))

	// involved people
	if e.Organizer != nil {
		writer(fmt.Sprintf("ORGANIZER;CN=%s:MAILTO:%s", e.Organizer.Name, e.Organizer.Email))
	}
	for _, attendee := range e.Attendees {
		writer(fmt.Sprintf("ATTENDEE;CN=\"%s\";RSVP=%t:MAILTO:%s", attendee.Name, attendee.RSVP, attendee.Email))
	}

	// dates
	writer(fmt.Sprintf("DTSTART;TZID=%s:%s", timeZone, e.DTStart))
	writer(fmt.Sprintf("DTEND;TZID=%s:%s", timeZone, e.DTEnd))

	// basic properties; LOCATION is the only omittable one, DESCRIPTION
	// stays even when empty
	if e.Location != "" {
		writer("LOCATION:" + e.Location)
	}
	writer("DESCRIPTION:" + e.Description)
	writer("SUMMARY:" + e.EventName)

	writer("END:VEVENT")
}
