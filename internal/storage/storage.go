// Package storage persists the finalized event list as JSON.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/london-culture/internal/event"
)

const eventsFile = "events.json"

// Storage handles persistence of event runs
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// EventsPath returns the path of the persisted event list.
func (s *Storage) EventsPath() string {
	return filepath.Join(s.dataDir, eventsFile)
}

// record is the on-disk shape of one event. Absent dates are persisted as
// null rather than a zero timestamp so other consumers of the file need no
// Go-specific conventions.
type record struct {
	Title       string  `json:"title"`
	Venue       string  `json:"venue"`
	URL         string  `json:"url"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Time        string  `json:"time"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	IsFree      bool    `json:"is_free"`
	Area        string  `json:"area"`
}

func toRecord(e event.Event) record {
	return record{
		Title:       e.Title,
		Venue:       e.Venue,
		URL:         e.URL,
		StartDate:   dateString(e.StartDate),
		EndDate:     dateString(e.EndDate),
		Time:        e.Time,
		Description: e.Description,
		Category:    e.Category,
		IsFree:      e.IsFree,
		Area:        e.Area,
	}
}

func (r record) toEvent() event.Event {
	return event.Event{
		Title:       r.Title,
		Venue:       r.Venue,
		URL:         r.URL,
		StartDate:   parseDate(r.StartDate),
		EndDate:     parseDate(r.EndDate),
		Time:        r.Time,
		Description: r.Description,
		Category:    r.Category,
		IsFree:      r.IsFree,
		Area:        r.Area,
	}
}

func dateString(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func parseDate(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SaveEvents writes events in their given order.
func (s *Storage) SaveEvents(events []event.Event) error {
	records := make([]record, 0, len(events))
	for _, e := range events {
		records = append(records, toRecord(e))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	if err := os.WriteFile(s.EventsPath(), data, 0644); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// LoadEvents reads the persisted event list. A missing file yields an empty
// list, not an error.
func (s *Storage) LoadEvents() ([]event.Event, error) {
	data, err := os.ReadFile(s.EventsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading events: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing events: %w", err)
	}

	events := make([]event.Event, 0, len(records))
	for _, r := range records {
		events = append(events, r.toEvent())
	}
	return events, nil
}
