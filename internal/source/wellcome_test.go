package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWellcomeParse(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "wellcome.json"))
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	var resp wellcomeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}

	s := NewWellcome(nil)
	events := s.parse(resp, testToday)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	evt := events[0]
	if evt.Title != "The Body Electric: Evening Talk" {
		t.Errorf("unexpected title %q", evt.Title)
	}
	if evt.URL != "https://wellcomecollection.org/events/body-electric-talk" {
		t.Errorf("unexpected URL %q", evt.URL)
	}
	// The first occurrence is in the past; the next one wins.
	if !evt.StartDate.Equal(day(2026, time.February, 19)) {
		t.Errorf("expected start 2026-02-19, got %v", evt.StartDate)
	}
	if evt.Time != "6:30pm" {
		t.Errorf("expected time '6:30pm', got %q", evt.Time)
	}
	if evt.Category != "Talk" {
		t.Errorf("expected format label as category, got %q", evt.Category)
	}
	if !evt.IsFree {
		t.Error("expected event to be marked free")
	}
	if evt.Area != "Euston" {
		t.Errorf("expected area 'Euston', got %q", evt.Area)
	}
}
