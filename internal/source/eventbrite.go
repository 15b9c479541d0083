package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
)

const eventbriteBase = "https://www.eventbrite.co.uk"

// eventbriteSearches are the focused search slugs worth querying: social
// events where you actually meet people.
var eventbriteSearches = []string{
	"life-drawing",
	"gallery-opening",
	"creative-networking",
	"supper-club",
	"print-making-workshop",
	"ceramics-workshop",
	"design-talk",
	"art-opening",
}

// londonAreas filters results to London proper; Eventbrite's "london"
// search radius reaches well into the home counties.
var londonAreas = []string{
	"london", "shoreditch", "dalston", "hackney", "bethnal green",
	"peckham", "brixton", "camden", "islington", "soho", "fitzrovia",
	"clerkenwell", "whitechapel", "bermondsey", "deptford", "lewisham",
	"stratford", "bow", "mile end", "walthamstow", "tottenham",
	"stoke newington", "finsbury park", "king's cross", "angel",
	"south kensington", "chelsea", "fulham", "battersea", "vauxhall",
	"elephant and castle", "waterloo", "southwark", "borough",
	"hoxton", "haggerston", "hackney wick", "homerton",
	"somers town", "marylebone", "mayfair", "covent garden",
}

var eventbriteSkipWords = []string{
	"kids", "children", "family", "toddler", "baby", "under 5",
	"school", "gcse", "a-level", "teen",
}

var reServerData = regexp.MustCompile(`(?s)window\.__SERVER_DATA__\s*=\s*(\{.*?\});\s*\n`)

// Eventbrite queries the public search pages and reads the listing data the
// site embeds as a window.__SERVER_DATA__ script payload.
type Eventbrite struct {
	client *fetch.Client
	base   string
}

func NewEventbrite(client *fetch.Client) *Eventbrite {
	return &Eventbrite{client: client, base: eventbriteBase}
}

func (s *Eventbrite) Name() string { return "Eventbrite" }

// Fetch runs every search even when some fail; one broken search page
// should not cost the results of the rest.
func (s *Eventbrite) Fetch(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	var errs []error
	seen := make(map[string]bool)
	for _, search := range eventbriteSearches {
		url := s.base + "/d/united-kingdom--london/" + search + "/?page=1"
		body, err := s.client.Text(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				errs = append(errs, err)
				break
			}
			errs = append(errs, fmt.Errorf("search %s: %w", search, err))
			continue
		}
		events = append(events, s.parseSearch(body, seen, time.Now())...)
	}
	return events, errors.Join(errs...)
}

type ebServerData struct {
	SearchData struct {
		Events struct {
			Results []ebResult `json:"results"`
		} `json:"events"`
	} `json:"search_data"`
}

type ebResult struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	Summary       string `json:"summary"`
	StartDate     string `json:"start_date"`
	StartTime     string `json:"start_time"`
	IsOnlineEvent bool   `json:"is_online_event"`
	PrimaryVenue  *struct {
		Name    string `json:"name"`
		Address struct {
			City                 string `json:"city"`
			LocalizedAreaDisplay string `json:"localized_area_display"`
		} `json:"address"`
	} `json:"primary_venue"`
	Tags []struct {
		Prefix      string `json:"prefix"`
		DisplayName string `json:"display_name"`
	} `json:"tags"`
}

// parseSearch extracts one search page's embedded results. The seen set is
// shared across searches within a run; overlapping searches surface the
// same listing repeatedly.
func (s *Eventbrite) parseSearch(body string, seen map[string]bool, today time.Time) []event.Event {
	m := reServerData.FindStringSubmatch(body)
	if m == nil {
		return nil
	}

	var data ebServerData
	if err := json.Unmarshal([]byte(m[1]), &data); err != nil {
		return nil
	}

	var events []event.Event
	for _, item := range data.SearchData.Events.Results {
		if item.ID == "" || seen[item.ID] {
			continue
		}
		seen[item.ID] = true

		name := strings.TrimSpace(item.Name)
		if name == "" || item.URL == "" {
			continue
		}
		if item.IsOnlineEvent {
			continue
		}

		nameLower := strings.ToLower(name)
		if containsAny(nameLower, eventbriteSkipWords) {
			continue
		}

		venueName, area, city := "", "", ""
		if item.PrimaryVenue != nil {
			venueName = item.PrimaryVenue.Name
			area = item.PrimaryVenue.Address.LocalizedAreaDisplay
			city = strings.ToLower(item.PrimaryVenue.Address.City)
		}
		if area != "" && city != "" && !inLondon(strings.ToLower(area), city) {
			continue
		}

		start := event.ParseDateTimeAt(item.StartDate, today).Date

		clock := ""
		if len(item.StartTime) >= 5 {
			clock = event.NormalizeClock(item.StartTime[:5])
		}

		category := ""
		for _, tag := range item.Tags {
			if tag.Prefix == "EventbriteCategory" {
				category = tag.DisplayName
				break
			}
		}

		venue := "Eventbrite"
		if venueName != "" {
			venue = venueName
		}

		events = append(events, event.Event{
			Title:       name,
			Venue:       venue,
			URL:         item.URL,
			StartDate:   start,
			Time:        clock,
			Description: truncate(strings.TrimSpace(item.Summary), maxDescription),
			Category:    category,
			Area:        area,
		})
	}
	return events
}

func inLondon(area, city string) bool {
	for _, loc := range londonAreas {
		if strings.Contains(area, loc) || strings.Contains(city, loc) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
