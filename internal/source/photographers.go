package source

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const photographersBase = "https://thephotographersgallery.org.uk"

// photographersInclude is an allow-list: only these post types are events
// worth listing; exhibitions and youth programme cards share the page.
var photographersInclude = map[string]bool{
	"Talks & Events":      true,
	"Workshops & Courses": true,
	"Bookshop Event":      true,
	"Tours":               true,
}

// PhotographersGallery scrapes the what's-on listing.
type PhotographersGallery struct {
	client *fetch.Client
	base   string
}

func NewPhotographersGallery(client *fetch.Client) *PhotographersGallery {
	return &PhotographersGallery{client: client, base: photographersBase}
}

func (s *PhotographersGallery) Name() string { return "Photographers' Gallery" }

func (s *PhotographersGallery) Fetch(ctx context.Context) ([]event.Event, error) {
	doc, err := s.client.Document(ctx, s.base+"/whats-on")
	if err != nil {
		return nil, err
	}
	return s.parse(doc, time.Now()), nil
}

func (s *PhotographersGallery) parse(doc *goquery.Document, today time.Time) []event.Event {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var events []event.Event
	doc.Find("article.o-event").Each(func(_ int, card *goquery.Selection) {
		category := cleanText(card.Find("span.o-teaser__post-type").First().Text())
		if category != "" && !photographersInclude[category] {
			return
		}

		link := card.Find("a.o-teaser__link").First()
		title := cleanText(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return
		}

		// "6:30pm, Thu 19 Feb 2026" or "06 Feb 2026 - 19 Apr 2026".
		p := event.ParseDateTimeAt(cleanText(card.Find("p.o-teaser__date").First().Text()), today)
		if !p.Date.IsZero() && p.Date.Before(today) {
			return
		}

		events = append(events, event.Event{
			Title:       title,
			Venue:       s.Name(),
			URL:         absoluteURL(s.base, href),
			StartDate:   p.Date,
			EndDate:     p.End,
			Time:        p.Clock,
			Description: truncate(cleanText(card.Find("p.o-teaser__body-text").First().Text()), maxDescription),
			Category:    category,
			Area:        "Soho",
		})
	})
	return events
}
