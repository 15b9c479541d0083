package source

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const designMuseumBase = "https://designmuseum.org"

// designMuseumSkip covers kids programming plus the navigation chrome the
// listing page mixes in with real events.
var designMuseumSkip = []string{
	"year old", "children", "kids", "family", "toddler", "baby",
	"schools", "sign up", "newsletter", "plan your visit",
	"members enjoy", "membership", "ma curating",
}

var reSoldOut = regexp.MustCompile(`\s*Sold out\..*$`)

// DesignMuseum scrapes the talks, courses & workshops listing.
type DesignMuseum struct {
	client *fetch.Client
	base   string
}

func NewDesignMuseum(client *fetch.Client) *DesignMuseum {
	return &DesignMuseum{client: client, base: designMuseumBase}
}

func (s *DesignMuseum) Name() string { return "Design Museum" }

func (s *DesignMuseum) Fetch(ctx context.Context) ([]event.Event, error) {
	doc, err := s.client.Document(ctx, s.base+"/whats-on/talks-courses-and-workshops")
	if err != nil {
		return nil, err
	}
	return s.parse(doc, time.Now()), nil
}

func (s *DesignMuseum) parse(doc *goquery.Document, today time.Time) []event.Event {
	var events []event.Event
	doc.Find("div.page-item").Each(func(_ int, item *goquery.Selection) {
		title := cleanText(item.Find("h2").First().Text())
		href, _ := item.Find("a[href]").First().Attr("href")
		if title == "" || href == "" {
			return
		}
		if containsAny(strings.ToLower(title), designMuseumSkip) {
			return
		}

		// "Tuesday 17 February, 10:00 – 16:00" and similar.
		dateText := cleanText(item.Find("time.icon-date").First().Text())
		p := event.ParseDateTimeAt(dateText, today)

		desc := cleanText(item.Find("div.rich-text p").First().Text())
		desc = reSoldOut.ReplaceAllString(desc, "")

		events = append(events, event.Event{
			Title:       title,
			Venue:       s.Name(),
			URL:         absoluteURL(s.base, href),
			StartDate:   p.Date,
			Time:        p.Clock,
			Description: truncate(desc, maxDescription),
			Category:    "Talk / Workshop",
			IsFree:      strings.Contains(strings.ToLower(dateText), "free"),
			Area:        "Kensington",
		})
	})
	return events
}
