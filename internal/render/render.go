// Package render produces the listings webpage and the email digest from the
// finalized event list.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/pfrederiksen/london-culture/internal/event"
)

//go:embed templates/*.html
var templatesFS embed.FS

// DigestCap bounds the email digest; the page always shows everything.
const DigestCap = 40

// CoreVenues are the venues scraped directly. Everything else reached the
// list through Eventbrite and is grouped under that label in the source
// filter.
var CoreVenues = map[string]bool{
	"Barbican":                true,
	"Design Museum":           true,
	"Rich Mix":                true,
	"ICA":                     true,
	"Wellcome Collection":     true,
	"Photographers' Gallery":  true,
	"Somerset House":          true,
	"London Review Bookshop":  true,
	"V&A":                     true,
}

// venueOrder is the fixed presentation order of the source filter.
var venueOrder = []string{
	"Barbican", "Design Museum", "Rich Mix", "ICA", "Wellcome Collection",
	"Photographers' Gallery", "Somerset House", "London Review Bookshop",
	"V&A", "Eventbrite",
}

// Prepare attaches the two derived display fields to every event: the
// category bucket the page filters on and the source label.
func Prepare(events []event.Event) []event.Event {
	out := make([]event.Event, len(events))
	for i, e := range events {
		e.FilterCategory = event.NormalizeCategory(e.Category)
		if CoreVenues[e.Venue] {
			e.Source = e.Venue
		} else {
			e.Source = "Eventbrite"
		}
		out[i] = e
	}
	return out
}

// Sources returns the source filter labels in presentation order, limited to
// labels actually present in events. Prepare must have run first.
func Sources(events []event.Event) []string {
	present := make(map[string]bool, len(events))
	for _, e := range events {
		present[e.Source] = true
	}
	var out []string
	for _, v := range venueOrder {
		if present[v] {
			out = append(out, v)
		}
	}
	return out
}

// Categories returns the category filter labels: All plus every bucket.
func Categories() []string {
	return append([]string{"All"}, event.Buckets...)
}

// WeekOf renders the Monday of t's week for digest headers, e.g.
// "9 February 2026".
func WeekOf(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	return monday.Format("2 January 2006")
}

// Renderer holds the parsed page and email templates.
type Renderer struct {
	page  *template.Template
	email *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	page, err := template.ParseFS(templatesFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	email, err := template.ParseFS(templatesFS, "templates/email.html")
	if err != nil {
		return nil, fmt.Errorf("parsing email template: %w", err)
	}
	return &Renderer{page: page, email: email}, nil
}

type pageData struct {
	Events     []event.Event
	Sources    []string
	Categories []string
	Generated  string
}

// Page renders the full listings page. Events must already be prepared.
func (r *Renderer) Page(events []event.Event) ([]byte, error) {
	var buf bytes.Buffer
	err := r.page.Execute(&buf, pageData{
		Events:     events,
		Sources:    Sources(events),
		Categories: Categories(),
		Generated:  time.Now().UTC().Format("2 January 2006, 15:04 MST"),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}

type emailData struct {
	Events  []event.Event
	WeekOf  string
	PageURL string
	Total   int
	Capped  bool
}

// Email renders the digest for the week containing now, capped at limit
// events (DigestCap when limit is zero or negative). Events must already be
// prepared and ordered.
func (r *Renderer) Email(events []event.Event, now time.Time, pageURL string, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = DigestCap
	}
	capped := events
	if len(capped) > limit {
		capped = capped[:limit]
	}

	var buf bytes.Buffer
	err := r.email.Execute(&buf, emailData{
		Events:  capped,
		WeekOf:  WeekOf(now),
		PageURL: pageURL,
		Total:   len(events),
		Capped:  len(events) > limit,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering email: %w", err)
	}
	return buf.Bytes(), nil
}
