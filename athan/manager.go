// Package athan keeps the day's prayer schedule and hands it to the
// scheduler and the dashboard.
package athan

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/blackrosezy/go-athan-dubai/config"
	"github.com/blackrosezy/go-athan-dubai/solat"
)

const DefaultTimezone = "Asia/Dubai"

// Fetcher is satisfied by *solat.Client.
type Fetcher interface {
	FetchSchedule(ctx context.Context, date time.Time) solat.Schedule
}

// Manager caches a single day's schedule. It is not safe for concurrent use.
type Manager struct {
	config    config.Config
	fetcher   Fetcher
	scheduler *Scheduler
	settings  map[string]interface{}
	logger    zerolog.Logger

	cachedSchedule solat.Schedule
	cachedDate     time.Time

	now func() time.Time
}

func New(cfg config.Config, fetcher Fetcher, logger zerolog.Logger) *Manager {
	timezone := cfg.Location.Timezone
	if timezone == "" {
		timezone = DefaultTimezone
	}
	return &Manager{
		config:    cfg,
		fetcher:   fetcher,
		scheduler: NewScheduler(timezone),
		settings:  map[string]interface{}{"theme": cfg.UI.Theme},
		logger:    logger,
		now:       time.Now,
	}
}

// NewFromConfig wires a solat.Client built from cfg.
func NewFromConfig(cfg config.Config, logger zerolog.Logger) *Manager {
	client := solat.NewClient(
		cfg.API.BaseURL,
		cfg.Location.CityID,
		cfg.API.Timeout(),
		logger.With().Str("component", "solat").Logger(),
	)
	return New(cfg, client, logger)
}

// GetSchedule serves the cached schedule unless the cache is empty or a
// different day is asked for. A zero date means "whatever is cached".
func (m *Manager) GetSchedule(ctx context.Context, date time.Time) solat.Schedule {
	if len(m.cachedSchedule) == 0 || (!date.IsZero() && !sameDay(date, m.cachedDate)) {
		return m.Refresh(ctx, date)
	}
	return m.cachedSchedule
}

// Refresh fetches date's schedule (today's for a zero date) and replaces
// the cache with it.
func (m *Manager) Refresh(ctx context.Context, date time.Time) solat.Schedule {
	if date.IsZero() {
		date = m.today()
	}

	schedule := m.fetcher.FetchSchedule(ctx, date)
	m.cachedSchedule = schedule
	m.cachedDate = date
	m.scheduler.RecordDay(schedule, date)

	m.logger.Debug().Str("date", date.Format(dateLayout)).Int("prayers", len(schedule)).Msg("schedule refreshed")
	return schedule
}

// GetCachedDate returns the day of the cached schedule, or today if nothing
// has been fetched yet.
func (m *Manager) GetCachedDate() time.Time {
	if m.cachedDate.IsZero() {
		return m.today()
	}
	return m.cachedDate
}

func (m *Manager) GetTimezone() string {
	if tz, ok := m.scheduler.Configuration()["timezone"].(string); ok && tz != "" {
		return tz
	}
	return DefaultTimezone
}

// Location resolves GetTimezone, falling back to the local zone when the
// name is unknown to the tz database.
func (m *Manager) Location() *time.Location {
	name := m.GetTimezone()
	loc, err := time.LoadLocation(name)
	if err != nil {
		m.logger.Warn().Err(err).Str("timezone", name).Msg("unknown timezone, using local time")
		return time.Local
	}
	return loc
}

// ApplySettings stores settings as given and passes them on to the scheduler.
func (m *Manager) ApplySettings(settings map[string]interface{}) {
	for k, v := range settings {
		m.settings[k] = v
	}
	m.scheduler.Configure(settings)
}

func (m *Manager) Settings() map[string]interface{} {
	out := make(map[string]interface{}, len(m.settings))
	for k, v := range m.settings {
		out[k] = v
	}
	return out
}

func (m *Manager) Scheduler() *Scheduler {
	return m.scheduler
}

func (m *Manager) Config() config.Config {
	return m.config
}

func (m *Manager) today() time.Time {
	now := m.now().In(m.Location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
