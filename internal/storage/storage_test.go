package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/london-culture/internal/event"
)

func TestSaveAndLoadEvents(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	events := []event.Event{
		{
			Title:       "Life Drawing Social",
			Venue:       "Rich Mix",
			URL:         "https://richmix.org.uk/event/life-drawing-social/",
			StartDate:   time.Date(2026, time.January, 25, 0, 0, 0, 0, time.UTC),
			Description: "Untutored life drawing with music and a bar.",
			Category:    "Workshops",
			IsFree:      true,
			Area:        "Shoreditch",
		},
		{
			Title: "Artist Film Season",
			Venue: "Rich Mix",
			URL:   "https://richmix.org.uk/event/now-showing/",
		},
	}

	if err := s.SaveEvents(events); err != nil {
		t.Fatalf("failed to save events: %v", err)
	}

	loaded, err := s.LoadEvents()
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 events, got %d", len(loaded))
	}
	if loaded[0] != events[0] {
		t.Errorf("first event changed in round trip: %+v", loaded[0])
	}
	if !loaded[1].StartDate.IsZero() {
		t.Errorf("expected undated event to stay undated, got %v", loaded[1].StartDate)
	}
}

func TestSaveEventsNullDates(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	if err := s.SaveEvents([]event.Event{{Title: "Undated", Venue: "ICA", URL: "https://www.ica.art/x"}}); err != nil {
		t.Fatalf("failed to save events: %v", err)
	}

	data, err := os.ReadFile(s.EventsPath())
	if err != nil {
		t.Fatalf("failed to read events file: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("events file is not valid JSON: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 record, got %d", len(raw))
	}
	if v, ok := raw[0]["start_date"]; !ok || v != nil {
		t.Errorf("expected start_date to be null, got %v", v)
	}
	if v, ok := raw[0]["end_date"]; !ok || v != nil {
		t.Errorf("expected end_date to be null, got %v", v)
	}
}

func TestLoadEventsMissingFile(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	events, err := s.LoadEvents()
	if err != nil {
		t.Fatalf("expected missing file to be fine, got %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestNewCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := New(dir); err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected data dir to exist: %v", err)
	}
}
