package render

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/london-culture/internal/event"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleEvents() []event.Event {
	return Prepare([]event.Event{
		{
			Title:     "In Conversation: Design Futures",
			Venue:     "Barbican",
			URL:       "https://www.barbican.org.uk/e/1",
			StartDate: day(2026, time.February, 17),
			Time:      "7:00pm",
			Category:  "Talks, Architecture",
			Area:      "Barbican",
		},
		{
			Title:     "Life Drawing Social",
			Venue:     "The Old Church Hall",
			URL:       "https://www.eventbrite.co.uk/e/101",
			StartDate: day(2026, time.February, 10),
			Category:  "Visual Arts",
			IsFree:    true,
			Area:      "Dalston",
		},
	})
}

func TestPrepare(t *testing.T) {
	events := sampleEvents()

	if events[0].Source != "Barbican" {
		t.Errorf("expected core venue as source, got %q", events[0].Source)
	}
	if events[0].FilterCategory != "Talks" {
		t.Errorf("expected bucket 'Talks', got %q", events[0].FilterCategory)
	}
	if events[1].Source != "Eventbrite" {
		t.Errorf("expected aggregator venue grouped under Eventbrite, got %q", events[1].Source)
	}
	if events[1].FilterCategory != "Art & Design" {
		t.Errorf("expected bucket 'Art & Design', got %q", events[1].FilterCategory)
	}
}

func TestSourcesKeepsVenueOrder(t *testing.T) {
	events := Prepare([]event.Event{
		{Title: "a", URL: "a", Venue: "The Old Church Hall"},
		{Title: "b", URL: "b", Venue: "ICA"},
		{Title: "c", URL: "c", Venue: "Barbican"},
	})

	got := Sources(events)
	want := []string{"Barbican", "ICA", "Eventbrite"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCategories(t *testing.T) {
	got := Categories()
	if got[0] != "All" {
		t.Errorf("expected 'All' first, got %q", got[0])
	}
	if len(got) != len(event.Buckets)+1 {
		t.Errorf("expected All plus every bucket, got %v", got)
	}
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		day      time.Time
		expected string
	}{
		{day(2026, time.February, 9), "9 February 2026"},  // Monday
		{day(2026, time.February, 12), "9 February 2026"}, // Thursday
		{day(2026, time.February, 15), "9 February 2026"}, // Sunday
		{day(2026, time.February, 16), "16 February 2026"},
	}

	for _, tt := range tests {
		if got := WeekOf(tt.day); got != tt.expected {
			t.Errorf("WeekOf(%v) = %q, expected %q", tt.day, got, tt.expected)
		}
	}
}

func TestPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	out, err := r.Page(sampleEvents())
	if err != nil {
		t.Fatalf("failed to render page: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		"In Conversation: Design Futures",
		"Life Drawing Social",
		`data-source="Barbican"`,
		`data-source="Eventbrite"`,
		`data-category="Talks"`,
		"Tue 17 Feb, 7:00pm",
		"Free",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestPageEmpty(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	out, err := r.Page(nil)
	if err != nil {
		t.Fatalf("failed to render empty page: %v", err)
	}
	if !strings.Contains(string(out), "Nothing found") {
		t.Error("expected the empty-state message")
	}
}

func TestEmailCapsDigest(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	var events []event.Event
	for i := 0; i < DigestCap+5; i++ {
		events = append(events, event.Event{
			Title:     "Event " + strings.Repeat("x", i+1),
			Venue:     "ICA",
			URL:       "https://www.ica.art/e",
			StartDate: day(2026, time.February, 10),
		})
	}
	events = Prepare(events)

	out, err := r.Email(events, day(2026, time.February, 12), "https://example.org/events", 0)
	if err != nil {
		t.Fatalf("failed to render email: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "Week of 9 February 2026") {
		t.Error("expected week-of header")
	}
	if !strings.Contains(html, "https://example.org/events") {
		t.Error("expected page link")
	}
	if !strings.Contains(html, "Showing the first 40 of 45 events") {
		t.Error("expected the digest cap note")
	}
	if strings.Count(html, "https://www.ica.art/e") != DigestCap {
		t.Errorf("expected exactly %d event links", DigestCap)
	}
}
