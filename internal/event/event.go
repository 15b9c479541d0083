package event

import (
	"strings"
	"time"
)

// Event represents a single listing from a single source. An adapter builds
// it once from one upstream record; the pipeline only drops or reorders
// events after that, except for the two derived display fields attached
// during render preparation.
type Event struct {
	Title       string    `json:"title"`
	Venue       string    `json:"venue"`
	URL         string    `json:"url"`
	StartDate   time.Time `json:"start_date"` // zero when unknown
	EndDate     time.Time `json:"end_date"`   // set only for date-range listings
	Time        string    `json:"time"`       // display string, e.g. "6:30pm"
	Description string    `json:"description"`
	Category    string    `json:"category"` // raw source label(s), comma-separated
	IsFree      bool      `json:"is_free"`
	Area        string    `json:"area"`

	// Derived during render preparation, never set by adapters and never
	// part of the dedup key.
	FilterCategory string `json:"-"`
	Source         string `json:"-"`
}

// Valid reports whether the event carries the fields every adapter must
// populate before emission.
func (e Event) Valid() bool {
	return strings.TrimSpace(e.Title) != "" && e.URL != ""
}

// Key returns the identity used for cross-source deduplication. The same
// physical event surfaced by two sources usually differs in URL and
// description but agrees on title and date, so those are the key.
func (e Event) Key() string {
	d := ""
	if !e.StartDate.IsZero() {
		d = e.StartDate.Format("2006-01-02")
	}
	return strings.ToLower(strings.TrimSpace(e.Title)) + "|" + d
}

// DateDisplay renders the event's date(s) and time for listings, e.g.
// "Tue 17 Feb, 7pm", "6 Feb – 19 Apr 2026" or "Until 28 Feb".
func (e Event) DateDisplay() string {
	var parts []string
	switch {
	case !e.StartDate.IsZero() && !e.EndDate.IsZero() && !e.StartDate.Equal(e.EndDate):
		parts = append(parts, e.StartDate.Format("2 Jan")+" – "+e.EndDate.Format("2 Jan 2006"))
	case !e.StartDate.IsZero():
		parts = append(parts, e.StartDate.Format("Mon 2 Jan"))
	case !e.EndDate.IsZero():
		parts = append(parts, "Until "+e.EndDate.Format("2 Jan"))
	}
	if e.Time != "" {
		parts = append(parts, e.Time)
	}
	return strings.Join(parts, ", ")
}
