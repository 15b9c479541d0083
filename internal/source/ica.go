package source

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const icaBase = "https://www.ica.art"

// icaFilmWords mark film screenings that share the talks listing.
var icaFilmWords = []string{"film programme", "screening", "on 35mm", "on 16mm"}

// icaNavLinks are date-navigation links styled like listing items.
var icaNavLinks = map[string]bool{
	"/talks/tomorrow":    true,
	"/talks/next-7-days": true,
	"/talks/today":       true,
	"/talks/2025":        true,
	"/talks/2026":        true,
}

// ICA scrapes the talks listing, which only renders client-side; it is the
// one adapter that needs the browser-driven fetch capability.
type ICA struct {
	browser *fetch.Browser
	base    string
}

func NewICA(browser *fetch.Browser) *ICA {
	return &ICA{browser: browser, base: icaBase}
}

func (s *ICA) Name() string { return "ICA" }

func (s *ICA) Fetch(ctx context.Context) ([]event.Event, error) {
	doc, err := s.browser.Document(ctx, s.base+"/talks", "div.item.talks")
	if err != nil {
		return nil, err
	}
	return s.parse(doc, time.Now()), nil
}

func (s *ICA) parse(doc *goquery.Document, today time.Time) []event.Event {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var events []event.Event
	doc.Find("div.item.talks").Each(func(_ int, item *goquery.Selection) {
		href, ok := item.Find("a[href]").First().Attr("href")
		if !ok || !strings.HasPrefix(href, "/talks/") || icaNavLinks[href] {
			return
		}

		title := icaTitle(item)
		if title == "" {
			return
		}
		if containsAny(strings.ToLower(title), icaFilmWords) {
			return
		}

		p := event.ParseDateTimeAt(cleanText(item.Find(".date").First().Text()), today)
		// Multi-month programmes are not single events.
		if p.Ongoing {
			return
		}
		if !p.Date.IsZero() && p.Date.Before(today) {
			return
		}

		events = append(events, event.Event{
			Title:       title,
			Venue:       s.Name(),
			URL:         absoluteURL(s.base, href),
			StartDate:   p.Date,
			Description: truncate(cleanText(item.Find(".description").First().Text()), maxDescription),
			Category:    "Talks & events",
			Area:        "The Mall",
		})
	})
	return events
}

// icaTitle joins the .title div's text runs. The markup puts a prefix like
// "WORKSHOP" and the actual title on either side of a <br>.
func icaTitle(item *goquery.Selection) string {
	titleEl := item.Find(".title").First()
	if titleEl.Length() == 0 {
		return cleanText(item.Find(".item-info").First().Text())
	}

	var parts []string
	titleEl.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "br" {
			return
		}
		if t := cleanText(c.Text()); t != "" {
			parts = append(parts, strings.TrimSuffix(t, ":"))
		}
	})
	return strings.Join(parts, " — ")
}
