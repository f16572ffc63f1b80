package main

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

type dateParser struct {
	when *when.Parser
}

func newDateParser() *dateParser {
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
	return &dateParser{when: parser}
}

// resolve accepts an ISO-8601 date or an English natural-language phrase
// and returns an ISO-8601 string ready for validation. An empty input
// stays empty so the validator applies its own default.
func (d *dateParser) resolve(raw string, now time.Time) (string, error) {
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(time.RFC3339, raw); err == nil {
		return raw, nil
	}
	result, err := d.when.Parse(raw, now)
	if err != nil {
		return "", fmt.Errorf("can't parse date %q: %w", raw, err)
	}
	if result == nil {
		return "", fmt.Errorf("can't understand date %q", raw)
	}
	return result.Time.Format(time.RFC3339), nil
}
