package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const somersetHouseBase = "https://www.somersethouse.org.uk"

// somersetHouseInclude are the event-type slugs worth listing; exhibitions,
// music and screenings carry other slugs.
var somersetHouseInclude = map[string]bool{
	"talk": true, "workshop": true, "late-night": true,
	"event": true, "relaxed-session": true, "access-event": true,
}

// SomersetHouse reads the what's-on page's embedded props JSON, the page's
// actual data source.
type SomersetHouse struct {
	client *fetch.Client
	base   string
}

func NewSomersetHouse(client *fetch.Client) *SomersetHouse {
	return &SomersetHouse{client: client, base: somersetHouseBase}
}

func (s *SomersetHouse) Name() string { return "Somerset House" }

type shProps struct {
	Data struct {
		Page struct {
			Items struct {
				Edges []struct {
					Node shNode `json:"node"`
				} `json:"edges"`
			} `json:"items"`
		} `json:"page"`
	} `json:"data"`
}

type shNode struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	EventTypes []struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
	} `json:"eventTypes"`
	DateStart   string `json:"dateStart"`
	ListingText string `json:"listingText"`
	PriceFree   bool   `json:"priceFree"`
}

func (s *SomersetHouse) Fetch(ctx context.Context) ([]event.Event, error) {
	doc, err := s.client.Document(ctx, s.base+"/whats-on")
	if err != nil {
		return nil, err
	}
	return s.parse(doc, time.Now())
}

func (s *SomersetHouse) parse(doc *goquery.Document, today time.Time) ([]event.Event, error) {
	raw := doc.Find(`script#props[type="application/json"]`).First().Text()
	if raw == "" {
		return nil, fmt.Errorf("no props JSON found")
	}

	var props shProps
	if err := json.Unmarshal([]byte(repairJSONEscapes(raw)), &props); err != nil {
		return nil, fmt.Errorf("decoding props JSON: %w", err)
	}

	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var events []event.Event
	for _, edge := range props.Data.Page.Items.Edges {
		node := edge.Node
		if node.Title == "" || node.URL == "" {
			continue
		}

		included := false
		for _, t := range node.EventTypes {
			if somersetHouseInclude[t.Slug] {
				included = true
				break
			}
		}
		if !included {
			continue
		}

		category := ""
		if len(node.EventTypes) > 0 {
			category = node.EventTypes[0].Title
		}

		start := event.ParseDateTimeAt(node.DateStart, today).Date
		if !start.IsZero() && start.Before(today) {
			continue
		}

		events = append(events, event.Event{
			Title:       node.Title,
			Venue:       s.Name(),
			URL:         absoluteURL(s.base, node.URL),
			StartDate:   start,
			Description: truncate(node.ListingText, maxDescription),
			Category:    category,
			IsFree:      node.PriceFree,
			Area:        "Strand",
		})
	}
	return events, nil
}

// repairJSONEscapes doubles any backslash escape JSON does not define. The
// embedded props payload carries stray backslashes from inline HTML
// comments that break a strict decoder.
func repairJSONEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(s) {
			switch s[i+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
				b.WriteByte(c)
				b.WriteByte(s[i+1])
				i++
				continue
			}
		}
		b.WriteString(`\\`)
	}
	return b.String()
}
