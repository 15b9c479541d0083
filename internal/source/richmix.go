package source

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const richMixBase = "https://richmix.org.uk"

// richMixSkip are listing categories dropped at the adapter boundary;
// the global filter would catch most of them again, but Rich Mix also tags
// family programming the global category deny-set does not cover.
var richMixSkip = map[string]bool{
	"families": true, "kids": true, "children": true,
	"music": true, "cinema": true, "live events": true, "gigs": true,
}

// RichMix scrapes the Rich Mix this-week and next-week listing pages.
type RichMix struct {
	client *fetch.Client
	base   string
}

func NewRichMix(client *fetch.Client) *RichMix {
	return &RichMix{client: client, base: richMixBase}
}

func (s *RichMix) Name() string { return "Rich Mix" }

func (s *RichMix) Fetch(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	for _, path := range []string{"/whats-on/this-week", "/whats-on/next-week"} {
		doc, err := s.client.Document(ctx, s.base+path)
		if err != nil {
			return events, err
		}
		events = append(events, s.parse(doc, time.Now())...)
	}
	return events, nil
}

func (s *RichMix) parse(doc *goquery.Document, today time.Time) []event.Event {
	var events []event.Event
	doc.Find("div.tease").Each(func(_ int, tease *goquery.Selection) {
		titleEl := tease.Find("h3 a").First()
		title := cleanText(titleEl.Text())
		href, _ := titleEl.Attr("href")
		if title == "" || href == "" {
			return
		}

		category := cleanText(tease.Find("span.category").First().Text())
		if richMixSkip[strings.ToLower(category)] {
			return
		}

		dateText := cleanText(tease.Find("span.date").First().Text())
		var start time.Time
		if !strings.Contains(strings.ToUpper(dateText), "NOW SHOWING") {
			p := event.ParseDateTimeAt(dateText, today)
			start = p.Date
			// A listing range here means "runs until"; the end is the
			// boundary that matters.
			if !p.End.IsZero() {
				start = p.End
			}
		}

		events = append(events, event.Event{
			Title:       title,
			Venue:       s.Name(),
			URL:         absoluteURL(s.base, href),
			StartDate:   start,
			Description: truncate(cleanText(tease.Find("p.description, div.description, p.excerpt, div.excerpt").First().Text()), maxDescription),
			Category:    category,
			IsFree:      tease.Find("span.flag").Length() > 0,
			Area:        "Shoreditch",
		})
	})
	return events
}
