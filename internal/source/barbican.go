package source

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const barbicanBase = "https://www.barbican.org.uk"

// Barbican scrapes the talks & events listing; cinema and exhibitions live
// on other listing pages and are never fetched.
type Barbican struct {
	client *fetch.Client
	base   string
}

func NewBarbican(client *fetch.Client) *Barbican {
	return &Barbican{client: client, base: barbicanBase}
}

func (s *Barbican) Name() string { return "Barbican" }

func (s *Barbican) Fetch(ctx context.Context) ([]event.Event, error) {
	doc, err := s.client.Document(ctx, s.base+"/whats-on/talks-events")
	if err != nil {
		return nil, err
	}
	return s.parse(doc, time.Now()), nil
}

func (s *Barbican) parse(doc *goquery.Document, today time.Time) []event.Event {
	var events []event.Event
	doc.Find("article.listing--event").Each(func(_ int, article *goquery.Selection) {
		link := article.Find("a.search-listing__link").First()
		title := cleanText(article.Find("h2.listing-title").First().Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return
		}

		var tags []string
		article.Find("span.tag__plain").Each(func(_ int, tag *goquery.Selection) {
			if t := cleanText(tag.Text()); t != "" {
				tags = append(tags, t)
			}
		})

		// Intro line carries the date, e.g. "Tue 17 Feb 2026, 19:00".
		p := event.ParseDateTimeAt(cleanText(article.Find("div.search-listing__intro p").First().Text()), today)

		events = append(events, event.Event{
			Title:       title,
			Venue:       s.Name(),
			URL:         absoluteURL(s.base, href),
			StartDate:   p.Date,
			Time:        p.Clock,
			Description: truncate(cleanText(article.Find("div.search-listing__intro div.typography, div.search-listing__description").First().Text()), maxDescription),
			Category:    strings.Join(tags, ", "),
			IsFree:      article.Find(".search-listing__label--promoted").Length() > 0,
			Area:        "Barbican",
		})
	})
	return events
}
