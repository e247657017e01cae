package solat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

// Client fetches monthly prayer timetables for one city. Copies of a Client
// share nothing mutable and may be used from different goroutines.
type Client struct {
	BaseURL    string
	CityID     int
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

func NewClient(baseURL string, cityID int, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL: baseURL,
		CityID:  cityID,
		Timeout: timeout,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Logger: logger,
	}
}

// BuildURL composes the upstream query. Ranges are not checked; the server
// rejects what it doesn't like.
func (c *Client) BuildURL(month, year, cityID int) string {
	return fmt.Sprintf("%s?month=%d&year=%d&cityid=%d", strings.TrimRight(c.BaseURL, "?"), month, year, cityID)
}

func (c *Client) request(date time.Time) Request {
	return Request{Month: int(date.Month()), Year: date.Year(), CityID: c.CityID}
}

// FetchSchedule returns the schedule for date. Any transport or decoding
// failure is logged and answered with Fallback(); the caller never sees it.
// A payload that parses but holds no matching day gives an empty Schedule.
func (c *Client) FetchSchedule(ctx context.Context, date time.Time) Schedule {
	req := c.request(date)
	payload, err := c.fetch(ctx, req)
	if err != nil {
		c.Logger.Warn().Err(err).Stringer("request", req).Msg("serving fallback schedule")
		return Fallback()
	}

	schedule := Extract(payload, date)
	c.Logger.Debug().Stringer("request", req).Int("day", date.Day()).Int("prayers", len(schedule)).Msg("schedule fetched")
	return schedule
}

func (c *Client) fetch(ctx context.Context, req Request) (interface{}, error) {
	url := c.BuildURL(req.Month, req.Year, req.CityID)

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return payload, nil
}
