package main

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Dubai")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	day, err := parseDate("2024-05-21", loc)
	if err != nil {
		t.Fatalf("parseDate() error: %v", err)
	}
	if day.Year() != 2024 || day.Month() != time.May || day.Day() != 21 || day.Location() != loc {
		t.Errorf("unexpected day %v", day)
	}

	if day, err := parseDate("", loc); err != nil || !day.IsZero() {
		t.Errorf("empty value should give zero time, got %v, %v", day, err)
	}

	if _, err := parseDate("21/05/2024", loc); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestNewAppCommands(t *testing.T) {
	app := newApp()
	for _, name := range []string{"show", "cities", "compare", "url"} {
		if app.Command(name) == nil {
			t.Errorf("missing command %q", name)
		}
	}
}
