package source

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const lrbBase = "https://www.londonreviewbookshop.co.uk"

// LRBBookshop scrapes the London Review Bookshop events page. Tickets are
// sold through Eventbrite, so the listing links out rather than to its own
// event pages.
type LRBBookshop struct {
	client *fetch.Client
	base   string
}

func NewLRBBookshop(client *fetch.Client) *LRBBookshop {
	return &LRBBookshop{client: client, base: lrbBase}
}

func (s *LRBBookshop) Name() string { return "London Review Bookshop" }

func (s *LRBBookshop) Fetch(ctx context.Context) ([]event.Event, error) {
	doc, err := s.client.Document(ctx, s.base+"/events")
	if err != nil {
		return nil, err
	}
	return s.parse(doc, time.Now()), nil
}

func (s *LRBBookshop) parse(doc *goquery.Document, today time.Time) []event.Event {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var events []event.Event
	seen := make(map[string]bool)
	doc.Find("a[href*='eventbrite']").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if href == "" || seen[href] {
			return
		}

		// Each event has several links to the same ticket page; only the
		// rich one carries the title element.
		title := cleanText(link.Find("h2.event-preview--title").First().Text())
		if title == "" {
			return
		}
		seen[href] = true

		// "Wednesday 18 February, 7 p.m."
		p := event.ParseDateTimeAt(cleanText(link.Find("span.event-preview--date").First().Text()), today)
		if !p.Date.IsZero() && p.Date.Before(today) {
			return
		}

		price := cleanText(link.Find("span.event-preview--price").First().Text())

		events = append(events, event.Event{
			Title:     title,
			Venue:     s.Name(),
			URL:       href,
			StartDate: p.Date,
			Time:      p.Clock,
			Category:  "Literary event",
			IsFree:    strings.Contains(strings.ToLower(price), "free"),
			Area:      "Bloomsbury",
		})
	})
	return events
}
