package source

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const vamBase = "https://www.vam.ac.uk"

// vamInclude are the event types worth listing; general exhibitions carry
// other labels.
var vamInclude = map[string]bool{
	"talk": true, "drop-in": true, "special event": true,
	"workshop": true, "late": true, "performance": true,
}

var vamTitleCaser = cases.Title(language.BritishEnglish)

// VAM scrapes the V&A what's-on page, which mixes featured cards and
// regular teasers for the same events.
type VAM struct {
	client *fetch.Client
	base   string
}

func NewVAM(client *fetch.Client) *VAM {
	return &VAM{client: client, base: vamBase}
}

func (s *VAM) Name() string { return "V&A" }

func (s *VAM) Fetch(ctx context.Context) ([]event.Event, error) {
	doc, err := s.client.Document(ctx, s.base+"/whatson")
	if err != nil {
		return nil, err
	}
	return s.parse(doc, time.Now()), nil
}

func (s *VAM) parse(doc *goquery.Document, today time.Time) []event.Event {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var events []event.Event
	seen := make(map[string]bool)

	doc.Find("[class*='b-events-featured']").Each(func(_ int, card *goquery.Selection) {
		if evt, ok := s.parseFeatured(card, seen, today); ok {
			events = append(events, evt)
		}
	})
	doc.Find("a[href*='/event/']").Each(func(_ int, card *goquery.Selection) {
		if evt, ok := s.parseTeaser(card, seen, today); ok {
			events = append(events, evt)
		}
	})
	return events
}

func (s *VAM) parseFeatured(card *goquery.Selection, seen map[string]bool, today time.Time) (event.Event, bool) {
	href, _ := card.Find("a[href*='/event/']").First().Attr("href")
	if href == "" || seen[href] {
		return event.Event{}, false
	}
	seen[href] = true

	title := cleanText(card.Find("h3.b-events-featured__title").First().Text())
	if title == "" {
		return event.Event{}, false
	}

	eventType := strings.ToLower(cleanText(card.Find("p.b-events-featured__type").First().Text()))
	if eventType != "" && !vamInclude[eventType] {
		return event.Event{}, false
	}

	start := event.ParseDateTimeAt(cleanText(card.Find("p.b-events-featured__date").First().Text()), today).Date
	if !start.IsZero() && start.Before(today) {
		return event.Event{}, false
	}

	area := cleanText(card.Find("p.b-events-featured__venue").First().Text())
	if area == "" {
		area = "South Kensington"
	}

	return event.Event{
		Title:     title,
		Venue:     s.Name(),
		URL:       absoluteURL(s.base, href),
		StartDate: start,
		Category:  vamCategory(eventType),
		Area:      area,
	}, true
}

func (s *VAM) parseTeaser(card *goquery.Selection, seen map[string]bool, today time.Time) (event.Event, bool) {
	href, _ := card.Attr("href")
	if href == "" || seen[href] {
		return event.Event{}, false
	}
	seen[href] = true

	title := cleanText(card.Find("h2.b-event-teaser__title").First().Text())
	if title == "" {
		return event.Event{}, false
	}

	eventType := strings.ToLower(cleanText(card.Find("div.b-event-teaser__type").First().Text()))
	if eventType != "" && !vamInclude[eventType] {
		return event.Event{}, false
	}

	// Icon list items carry the date first, then the gallery location.
	items := card.Find("p.b-icon-list__item-text")
	dateText := cleanText(items.Eq(0).Text())
	area := cleanText(items.Eq(1).Text())
	if area == "" {
		area = "South Kensington"
	}

	start := event.ParseDateTimeAt(dateText, today).Date
	if !start.IsZero() && start.Before(today) {
		return event.Event{}, false
	}

	return event.Event{
		Title:     title,
		Venue:     s.Name(),
		URL:       absoluteURL(s.base, href),
		StartDate: start,
		Category:  vamCategory(eventType),
		Area:      area,
	}, true
}

func vamCategory(eventType string) string {
	if eventType == "" {
		return ""
	}
	return vamTitleCaser.String(eventType)
}
