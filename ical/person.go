package ical

// Person identifies an organizer or an attendee. RSVP only ever applies
// to attendees; an organizer never carries one.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	RSVP  bool   `json:"rsvp,omitempty"`
}

// validatePerson keeps a person only when both the name and the email
// are set. An invalid organizer becomes absent instead of failing the
// pipeline.
func validatePerson(raw *Person) *Person {
	if raw == nil || raw.Name == "" || raw.Email == "" {
		return nil
	}
	return &Person{
		Name:  raw.Name,
		Email: raw.Email,
	}
}

// validateAttendees drops entries missing a name or an email and copies
// the survivors, defaulting RSVP to false. The filter is stable and
// duplicates are kept as-is.
func validateAttendees(raw []Person) []Person {
	attendees := make([]Person, 0, len(raw))
	for _, person := range raw {
		if person.Name == "" || person.Email == "" {
			continue
		}
		attendees = append(attendees, Person{
			Name:  person.Name,
			Email: person.Email,
			RSVP:  person.RSVP,
		})
	}
	return attendees
}
