package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/quilicicf/js2ics/ical"
	"github.com/quilicicf/js2ics/model"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/urfave/cli/v2"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	app := &cli.App{
		Name:  "js2ics",
		Usage: "Turn a calendar event description into an iCalendar (.ics) file.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "explicit output `PATH` (overrides --filename)"},
			&cli.StringFlag{Name: "filename", Usage: "base `NAME` for the temp-dir output path"},
			&cli.StringFlag{Name: "timezone", Usage: "IANA timezone `ID` rendered into TZID= parameters"},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "JSON `FILE` holding the raw calendar options"},
			&cli.StringFlag{Name: "event-name", Usage: "event summary"},
			&cli.StringFlag{Name: "description", Usage: "event description"},
			&cli.StringFlag{Name: "location", Usage: "event location"},
			&cli.StringFlag{Name: "start", Usage: "start date, ISO-8601 or natural language (\"next friday 5pm\")"},
			&cli.StringFlag{Name: "end", Usage: "end date, ISO-8601 or natural language"},
			&cli.StringFlag{Name: "organizer", Usage: "organizer as \"Name <email>\""},
			&cli.StringSliceFlag{Name: "attendee", Usage: "attendee as \"Name <email>\", append \"rsvp\" to request a reply; repeatable"},
			&cli.BoolFlag{Name: "stdout", Usage: "print the document instead of writing a file"},
			&cli.BoolFlag{Name: "tidy", Usage: "trim and title-case the event summary"},
			&cli.StringFlag{Name: "history", Usage: "sqlite `DB` recording each written calendar"},
		},
		Action: generate,
		Commands: []*cli.Command{
			historyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("js2ics failed", "error", err)
		os.Exit(1)
	}
}

func generate(c *cli.Context) error {
	env := ical.DetectEnv()

	options, err := buildOptions(c, env)
	if err != nil {
		return err
	}

	generator := ical.New(env)

	if c.Bool("stdout") {
		fmt.Println(generator.GetCalendar(options))
		return nil
	}

	path, err := generator.CreateCalendar(options, c.String("out"))
	if err != nil {
		return err
	}
	slog.Info("calendar written", "path", path)

	if dbPath := c.String("history"); dbPath != "" {
		eventCount := len(options.Events)
		if options.Events == nil {
			eventCount = 1
		}
		timeZone := options.TimeZone
		if timeZone == "" {
			timeZone = env.TimeZone
		}
		if err := recordGeneration(c.Context, dbPath, path, eventCount, timeZone); err != nil {
			return err
		}
	}
	return nil
}

// buildOptions assembles the raw calendar options from --input or from
// the per-event flags. Options stay raw here; all defaulting belongs to
// the library's validation.
func buildOptions(c *cli.Context, env ical.Env) (ical.CalendarOptions, error) {
	var options ical.CalendarOptions

	if inputPath := c.String("input"); inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return options, fmt.Errorf("can't read input file: %w", err)
		}
		if err := json.Unmarshal(data, &options); err != nil {
			return options, fmt.Errorf("can't parse input file: %w", err)
		}
	} else if event, ok, err := eventFromFlags(c, env); err != nil {
		return options, err
	} else if ok {
		options.Events = []ical.EventOptions{event}
	}

	if filename := c.String("filename"); filename != "" {
		options.Filename = filename
	}
	if timezone := c.String("timezone"); timezone != "" {
		options.TimeZone = timezone
	}
	return options, nil
}

// eventFromFlags builds one raw event when any event flag was given.
func eventFromFlags(c *cli.Context, env ical.Env) (ical.EventOptions, bool, error) {
	given := false
	for _, name := range []string{"event-name", "description", "location", "start", "end", "organizer", "attendee"} {
		if c.IsSet(name) {
			given = true
			break
		}
	}
	if !given {
		return ical.EventOptions{}, false, nil
	}

	event := ical.EventOptions{
		EventName:   c.String("event-name"),
		Description: c.String("description"),
		Location:    c.String("location"),
	}
	if c.Bool("tidy") {
		event.EventName = cleanupString(event.EventName)
	}

	dates := newDateParser()
	var err error
	if event.DTStart, err = dates.resolve(c.String("start"), env.Now()); err != nil {
		return event, false, err
	}
	if event.DTEnd, err = dates.resolve(c.String("end"), env.Now()); err != nil {
		return event, false, err
	}

	if raw := c.String("organizer"); raw != "" {
		person, err := parsePerson(raw)
		if err != nil {
			return event, false, err
		}
		event.Organizer = &person
	}
	for _, raw := range c.StringSlice("attendee") {
		person, err := parsePerson(raw)
		if err != nil {
			return event, false, err
		}
		event.Attendees = append(event.Attendees, person)
	}
	return event, true, nil
}

// parsePerson reads a "Name <email>" string, with an optional trailing
// "rsvp" marker for attendees.
func parsePerson(raw string) (ical.Person, error) {
	openIdx := strings.Index(raw, "<")
	closeIdx := strings.Index(raw, ">")
	if openIdx < 0 || closeIdx < openIdx {
		return ical.Person{}, fmt.Errorf("expected \"Name <email>\", got %q", raw)
	}
	return ical.Person{
		Name:  strings.TrimSpace(raw[:openIdx]),
		Email: strings.TrimSpace(raw[openIdx+1 : closeIdx]),
		RSVP:  strings.Contains(strings.ToLower(raw[closeIdx+1:]), "rsvp"),
	}, nil
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List calendars recorded in the generation ledger.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: "./js2ics.db", Usage: "sqlite `DB` holding the ledger"},
			&cli.IntFlag{Name: "limit", Value: 10, Usage: "number of records to show"},
		},
		Action: func(c *cli.Context) error {
			bundb, err := openLedger(c.Context, c.String("db"))
			if err != nil {
				return err
			}
			defer bundb.Close()

			generations, err := model.Recent(c.Context, bundb, c.Int("limit"))
			if err != nil {
				return err
			}
			for _, generation := range generations {
				fmt.Printf("%s  %d event(s)  %s  %s\n",
					time.Unix(generation.CreatedAt, 0).Format(time.RFC3339),
					generation.Events,
					generation.TimeZone,
					generation.Path,
				)
			}
			return nil
		},
	}
}

func recordGeneration(ctx context.Context, dbPath string, path string, events int, timeZone string) error {
	bundb, err := openLedger(ctx, dbPath)
	if err != nil {
		return err
	}
	defer bundb.Close()

	generation := model.Generation{
		ID:        uuid.NewString(),
		Path:      path,
		Events:    events,
		TimeZone:  timeZone,
		CreatedAt: time.Now().Unix(),
	}
	if err := generation.Upsert(ctx, bundb); err != nil {
		return err
	}
	slog.Info("generation recorded", "id", generation.ID, "db", dbPath)
	return nil
}

func openLedger(ctx context.Context, dbPath string) (*bun.DB, error) {
	rawDb, err := sql.Open(sqliteshim.ShimName, dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("can't open sqlite database: %w", err)
	}
	bundb := bun.NewDB(rawDb, sqlitedialect.New())
	if err := model.CreateSchema(ctx, bundb); err != nil {
		bundb.Close()
		return nil, err
	}
	return bundb, nil
}
