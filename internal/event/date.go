package event

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parsed is the outcome of normalizing one free-text date/time fragment.
// A zero Date means the text matched no known shape; adapters treat that as
// a normal degraded outcome, not an error.
type Parsed struct {
	Date    time.Time // first occurrence, zero when unknown
	End     time.Time // far boundary of a range, zero otherwise
	Clock   string    // display time, e.g. "6:30pm", empty when unknown
	Ongoing bool      // range spans more than about a month
}

const (
	// rolloverWindow is how far in the past a year-less date may fall
	// before it is assumed to mean next year. Listings up to two months
	// stale still resolve to the year they were published for.
	rolloverWindow = 60 * 24 * time.Hour

	// maxBoundedRange separates a single bounded event ("18 – 29 March")
	// from an ongoing multi-month programme. Anything a within-month range
	// can span counts as bounded.
	maxBoundedRange = 31 * 24 * time.Hour
)

var (
	reClockFirst = regexp.MustCompile(`(?i)^(\d{1,2}[:.]\d{2}\s*[ap]\.?m\.?),\s*(.+)$`)
	reRangeSplit = regexp.MustCompile(`\s*[–—]\s*|\s+-\s+`)
	reDayMonth   = regexp.MustCompile(`(?i)^(?:([a-z]+),?\s+)?(\d{1,2})(?:st|nd|rd|th)?\s+([a-z]+\.?)(?:\s+(\d{4}))?(?:,\s*(.+))?$`)
	reSide       = regexp.MustCompile(`(?i)^(?:([a-z]+),?\s+)?(\d{1,2})(?:st|nd|rd|th)?(?:\s+([a-z]+\.?))?(?:\s+(\d{4}))?$`)
	reClock12    = regexp.MustCompile(`(?i)^(\d{1,2})(?:[:.](\d{2}))?\s*([ap])\.?\s*m\.?$`)
	reClock24    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

var shortMonths = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var fullMonths = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var weekdays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true,
	"sat": true, "sun": true, "tues": true, "weds": true, "thur": true,
	"thurs": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true, "sunday": true,
}

// ParseDateTime normalizes a free-text date/time fragment using the current
// day for year inference.
func ParseDateTime(text string) Parsed {
	return ParseDateTimeAt(text, time.Now())
}

// ParseDateTimeAt evaluates the recognized date shapes in priority order
// against text, inferring missing years relative to today. Text that matches
// no shape yields a zero Parsed value rather than an error; upstream markup
// drifts often enough that this is a routine outcome.
func ParseDateTimeAt(text string, today time.Time) Parsed {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Parsed{}
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	// ISO timestamps and dates are unambiguous, try them first.
	if p, ok := parseISO(text); ok {
		return p
	}

	// Time-leading form: "6:30pm, Thu 19 Feb 2026".
	if m := reClockFirst.FindStringSubmatch(text); m != nil {
		p := ParseDateTimeAt(m[2], today)
		p.Clock = NormalizeClock(m[1])
		return p
	}

	// Two-sided date ranges. A failed range parse falls through: the text
	// may still be a single date with a clock range ("..., 10:00 – 16:00").
	if sides := reRangeSplit.Split(text, 2); len(sides) == 2 {
		if p, ok := parseRange(sides[0], sides[1], today); ok {
			return p
		}
	}

	if p, ok := parseDayMonth(text, today); ok {
		return p
	}

	return Parsed{}
}

// parseISO handles ISO-8601 timestamps ("2026-02-19T18:30:00Z", with or
// without offset) and plain ISO dates ("2026-02-19").
func parseISO(text string) (Parsed, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, text); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return Parsed{Date: d, Clock: ClockFromTime(t)}, true
		}
	}
	if t, err := time.Parse("2006-01-02", text); err == nil {
		return Parsed{Date: t}, true
	}
	return Parsed{}, false
}

// parseDayMonth handles "[WEEKDAY[,]] DAY MONTH [YEAR][, TIME]" in all the
// casings and abbreviations the sources use: "SUN 25 JAN", "Tue, 17
// February", "Tue 17 Feb 2026, 19:00", "Friday, 27 February 2026".
func parseDayMonth(text string, today time.Time) (Parsed, bool) {
	m := reDayMonth.FindStringSubmatch(text)
	if m == nil {
		return Parsed{}, false
	}
	if m[1] != "" && !isWeekday(m[1]) {
		return Parsed{}, false
	}
	day, _ := strconv.Atoi(m[2])
	month, ok := monthByName(m[3])
	if !ok {
		return Parsed{}, false
	}
	year, hasYear := 0, false
	if m[4] != "" {
		year, _ = strconv.Atoi(m[4])
		hasYear = true
	}
	d := resolveDate(day, month, year, hasYear, today)
	if d.IsZero() {
		return Parsed{}, false
	}
	return Parsed{Date: d, Clock: NormalizeClock(m[5])}, true
}

// sideDate is one boundary of a range, possibly missing its month or year.
type sideDate struct {
	day      int
	month    time.Month
	hasMonth bool
	year     int
	hasYear  bool
}

func parseSide(text string) (sideDate, bool) {
	m := reSide.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return sideDate{}, false
	}
	if m[1] != "" && !isWeekday(m[1]) {
		return sideDate{}, false
	}
	sd := sideDate{}
	sd.day, _ = strconv.Atoi(m[2])
	if sd.day < 1 || sd.day > 31 {
		return sideDate{}, false
	}
	if m[3] != "" {
		month, ok := monthByName(m[3])
		if !ok {
			return sideDate{}, false
		}
		sd.month, sd.hasMonth = month, true
	}
	if m[4] != "" {
		sd.year, _ = strconv.Atoi(m[4])
		sd.hasYear = true
	}
	return sd, true
}

// parseRange resolves both boundaries of "START – END", letting an
// incomplete left side ("18 – 29 March 2026") borrow month and year from the
// right. Spans longer than maxBoundedRange are flagged as ongoing programmes
// so callers can exclude them instead of emitting a single dated event.
func parseRange(left, right string, today time.Time) (Parsed, bool) {
	ls, lok := parseSide(left)
	rs, rok := parseSide(right)
	if !lok || !rok || !rs.hasMonth {
		return Parsed{}, false
	}
	if !ls.hasMonth {
		ls.month, ls.hasMonth = rs.month, true
	}
	if !ls.hasYear && rs.hasYear {
		ls.year, ls.hasYear = rs.year, true
	}
	if !rs.hasYear && ls.hasYear {
		rs.year, rs.hasYear = ls.year, true
	}

	start := resolveDate(ls.day, ls.month, ls.year, ls.hasYear, today)
	end := resolveDate(rs.day, rs.month, rs.year, rs.hasYear, today)
	if start.IsZero() || end.IsZero() {
		return Parsed{}, false
	}

	// Year-less boundaries can resolve out of order ("10 DEC - 28 FEB"
	// seen in January puts the naive start after the end). The start of a
	// currently-listed range lies in the past, so pull it back first.
	if end.Before(start) {
		switch {
		case !ls.hasYear:
			start = start.AddDate(-1, 0, 0)
		case !rs.hasYear:
			end = end.AddDate(1, 0, 0)
		}
	}
	if end.Before(start) {
		return Parsed{}, false
	}

	return Parsed{Date: start, End: end, Ongoing: end.Sub(start) > maxBoundedRange}, true
}

// resolveDate builds a calendar date, applying the year-rollover rule when
// no year was given: assume the current year, and if that lands strictly
// more than rolloverWindow in the past, the listing means next year. This is
// what lets "SUN 25 JAN" resolve correctly in December.
func resolveDate(day int, month time.Month, year int, hasYear bool, today time.Time) time.Time {
	if !hasYear {
		year = today.Year()
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		// Impossible date like 31 Feb.
		return time.Time{}
	}
	if !hasYear && today.Sub(d) > rolloverWindow {
		d = d.AddDate(1, 0, 0)
	}
	return d
}

// NormalizeClock renders a time-of-day token, or an "A – B" token pair, in
// the lowercase display form used site-wide: "6:30pm", "7pm",
// "10:00am – 4:00pm". Tokens in 24-hour form are converted; minutes are kept
// exactly when the source wrote them. Unrecognized input yields "".
func NormalizeClock(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	parts := reRangeSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		c := normalizeClockOne(p)
		if c == "" {
			return ""
		}
		out = append(out, c)
	}
	return strings.Join(out, " – ")
}

func normalizeClockOne(text string) string {
	text = strings.TrimSpace(text)
	if m := reClock12.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour < 1 || hour > 12 {
			return ""
		}
		suffix := strings.ToLower(m[3]) + "m"
		if m[2] != "" {
			return fmt.Sprintf("%d:%s%s", hour, m[2], suffix)
		}
		return fmt.Sprintf("%d%s", hour, suffix)
	}
	if m := reClock24.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return ""
		}
		suffix := "am"
		if hour >= 12 {
			suffix = "pm"
		}
		switch {
		case hour == 0:
			hour = 12
		case hour > 12:
			hour -= 12
		}
		return fmt.Sprintf("%d:%s%s", hour, m[2], suffix)
	}
	return ""
}

// ClockFromTime renders t's time of day in the same display form, for
// sources that hand us parsed timestamps rather than text.
func ClockFromTime(t time.Time) string {
	hour := t.Hour()
	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
	}
	switch {
	case hour == 0:
		hour = 12
	case hour > 12:
		hour -= 12
	}
	return fmt.Sprintf("%d:%02d%s", hour, t.Minute(), suffix)
}

func monthByName(token string) (time.Month, bool) {
	token = strings.ToLower(strings.TrimSuffix(token, "."))
	if m, ok := fullMonths[token]; ok {
		return m, true
	}
	if token == "sept" {
		return time.September, true
	}
	if m, ok := shortMonths[token]; ok && len(token) == 3 {
		return m, true
	}
	return 0, false
}

func isWeekday(token string) bool {
	return weekdays[strings.ToLower(strings.TrimSuffix(token, "."))]
}
