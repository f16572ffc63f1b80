package ical

import (
	"fmt"
	"sort"
	"strings"
)

// CustomError is the error shape surfaced by the file sink. Validation
// never produces one; bad input degrades to defaults instead.
type CustomError struct {
	msg  string
	args map[string]any
}

func NewCustomError(msg string, args map[string]any) *CustomError {
	if args == nil {
		args = make(map[string]any)
	}
	return &CustomError{
		msg:  msg,
		args: args,
	}
}

// Error renders the message with its arguments in key order.
func (e CustomError) Error() string {
	keys := make([]string, 0, len(e.args))
	for key := range e.args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(e.msg)
	sb.WriteString(" |")
	for _, key := range keys {
		sb.WriteString(fmt.Sprintf(" %s: %v", key, e.args[key]))
	}
	return sb.String()
}

// Unwrap exposes the wrapped I/O error stored under the "err" key, so
// callers can match it with errors.Is.
func (e CustomError) Unwrap() error {
	if err, ok := e.args["err"].(error); ok {
		return err
	}
	return nil
}
