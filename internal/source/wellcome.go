package source

import (
	"context"
	"time"

	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const (
	wellcomeAPIBase   = "https://api.wellcomecollection.org/content/v0"
	wellcomeEventBase = "https://wellcomecollection.org/events/"
)

// Wellcome reads the Wellcome Collection content API, the one source with a
// real JSON API instead of markup.
type Wellcome struct {
	client *fetch.Client
	base   string
}

func NewWellcome(client *fetch.Client) *Wellcome {
	return &Wellcome{client: client, base: wellcomeAPIBase}
}

func (s *Wellcome) Name() string { return "Wellcome Collection" }

type wellcomeResponse struct {
	Results []wellcomeEvent `json:"results"`
}

type wellcomeEvent struct {
	Title  string `json:"title"`
	UID    string `json:"uid"`
	Format struct {
		Label string `json:"label"`
	} `json:"format"`
	Times []struct {
		StartDateTime string `json:"startDateTime"`
	} `json:"times"`
	Promo struct {
		Caption string `json:"caption"`
	} `json:"promo"`
}

func (s *Wellcome) Fetch(ctx context.Context) ([]event.Event, error) {
	url := s.base + "/events" +
		"?format=%21exhibitions" +
		"&timespan=future" +
		"&sort=times.startDateTime" +
		"&sortOrder=asc" +
		"&pageSize=25"

	var resp wellcomeResponse
	if err := s.client.JSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return s.parse(resp, time.Now()), nil
}

func (s *Wellcome) parse(resp wellcomeResponse, today time.Time) []event.Event {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var events []event.Event
	for _, item := range resp.Results {
		if item.Title == "" || item.UID == "" {
			continue
		}

		// First occurrence that has not already happened.
		var start time.Time
		clock := ""
		for _, t := range item.Times {
			p := event.ParseDateTimeAt(t.StartDateTime, today)
			if !p.Date.IsZero() && !p.Date.Before(today) {
				start = p.Date
				clock = p.Clock
				break
			}
		}
		if start.IsZero() {
			continue
		}

		events = append(events, event.Event{
			Title:       item.Title,
			Venue:       s.Name(),
			URL:         wellcomeEventBase + item.UID,
			StartDate:   start,
			Time:        clock,
			Description: truncate(item.Promo.Caption, maxDescription),
			Category:    item.Format.Label,
			IsFree:      true, // Wellcome events are almost all free
			Area:        "Euston",
		})
	}
	return events
}
