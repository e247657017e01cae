package ui

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/blackrosezy/go-athan-dubai/solat"
)

// Source is what the dashboard reads from; *athan.Manager implements it.
type Source interface {
	GetSchedule(ctx context.Context, date time.Time) solat.Schedule
	GetTimezone() string
	GetCachedDate() time.Time
}

type Dashboard struct {
	// Day selects the schedule to render; zero shows the cached one.
	Day time.Time

	source Source
	title  cases.Caser
}

func NewDashboard(source Source) *Dashboard {
	return &Dashboard{
		source: source,
		title:  cases.Title(language.English),
	}
}

// Render prints the current schedule to w.
func (d *Dashboard) Render(ctx context.Context, w io.Writer) error {
	schedule := d.source.GetSchedule(ctx, d.Day)
	return d.Print(w, d.source.GetCachedDate(), d.source.GetTimezone(), schedule)
}

// Print writes one dashboard block for schedule.
func (d *Dashboard) Print(w io.Writer, day time.Time, timezone string, schedule solat.Schedule) error {
	if _, err := fmt.Fprintf(w, "DubaiAthan Dashboard - %s (%s)\n", day.Format("2006-01-02"), timezone); err != nil {
		return err
	}
	for _, name := range Order(schedule) {
		if _, err := fmt.Fprintf(w, " - %s: %s\n", d.title.String(name), schedule[name]); err != nil {
			return err
		}
	}
	return nil
}

// Order lists the keys of schedule with the five prayers first, in the
// order of the day, followed by anything else alphabetically.
func Order(schedule solat.Schedule) []string {
	names := make([]string, 0, len(schedule))
	seen := make(map[string]bool, len(solat.PrayerNames))
	for _, name := range solat.PrayerNames {
		seen[name] = true
		if _, ok := schedule[name]; ok {
			names = append(names, name)
		}
	}

	var extra []string
	for name := range schedule {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
