package event

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateTimeAt(t *testing.T) {
	today := day(2026, time.January, 10)

	tests := []struct {
		name      string
		text      string
		wantDate  time.Time
		wantEnd   time.Time
		wantClock string
		wantGoing bool
	}{
		{
			name:     "uppercase abbreviated weekday day month",
			text:     "SUN 25 JAN",
			wantDate: day(2026, time.January, 25),
		},
		{
			name:     "weekday comma full month",
			text:     "Tue, 17 February",
			wantDate: day(2026, time.February, 17),
		},
		{
			name:      "day month year with 24h clock",
			text:      "Tue 17 Feb 2026, 19:00",
			wantDate:  day(2026, time.February, 17),
			wantClock: "7:00pm",
		},
		{
			name:      "clock first",
			text:      "6:30pm, Thu 19 Feb 2026",
			wantDate:  day(2026, time.February, 19),
			wantClock: "6:30pm",
		},
		{
			name:     "full weekday comma before day",
			text:     "Friday, 27 February 2026",
			wantDate: day(2026, time.February, 27),
		},
		{
			name:      "lowercase dotted meridiem",
			text:      "Wednesday 18 February, 7 p.m.",
			wantDate:  day(2026, time.February, 18),
			wantClock: "7pm",
		},
		{
			name:      "clock range after date",
			text:      "Tuesday 17 February, 10:00 – 16:00",
			wantDate:  day(2026, time.February, 17),
			wantClock: "10:00am – 4:00pm",
		},
		{
			name:      "iso timestamp",
			text:      "2026-02-19T18:30:00Z",
			wantDate:  day(2026, time.February, 19),
			wantClock: "6:30pm",
		},
		{
			name:     "iso date",
			text:     "2026-02-19",
			wantDate: day(2026, time.February, 19),
		},
		{
			name:     "short range within month",
			text:     "18 – 29 March 2026",
			wantDate: day(2026, time.March, 18),
			wantEnd:  day(2026, time.March, 29),
		},
		{
			name:      "long range is ongoing",
			text:      "4 February – 3 June 2026",
			wantDate:  day(2026, time.February, 4),
			wantEnd:   day(2026, time.June, 3),
			wantGoing: true,
		},
		{
			name:      "explicit year range across years",
			text:      "30 April 2025 – 30 April 2026",
			wantDate:  day(2025, time.April, 30),
			wantEnd:   day(2026, time.April, 30),
			wantGoing: true,
		},
		{
			name:      "year-less range straddling new year",
			text:      "WED 10 DEC - SAT 28 FEB",
			wantDate:  day(2025, time.December, 10),
			wantEnd:   day(2026, time.February, 28),
			wantGoing: true,
		},
		{
			name:     "hyphen range with explicit years",
			text:     "06 Feb 2026 - 19 Apr 2026",
			wantDate: day(2026, time.February, 6),
			wantEnd:  day(2026, time.April, 19),
			// 72 days, ongoing by the one-month rule.
			wantGoing: true,
		},
		{
			name: "unknown month token",
			text: "Tue 17 Febtember 2026",
		},
		{
			name: "impossible day of month",
			text: "31 February 2026",
		},
		{
			name: "free text",
			text: "Now showing",
		},
		{
			name: "empty",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateTimeAt(tt.text, today)
			if !got.Date.Equal(tt.wantDate) {
				t.Errorf("Date = %v, want %v", got.Date, tt.wantDate)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", got.End, tt.wantEnd)
			}
			if got.Clock != tt.wantClock {
				t.Errorf("Clock = %q, want %q", got.Clock, tt.wantClock)
			}
			if got.Ongoing != tt.wantGoing {
				t.Errorf("Ongoing = %v, want %v", got.Ongoing, tt.wantGoing)
			}
		})
	}
}

func TestYearRollover(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		today time.Time
		want  time.Time
	}{
		{
			name:  "past beyond window rolls to next year",
			text:  "25 JAN",
			today: day(2026, time.June, 1),
			want:  day(2027, time.January, 25),
		},
		{
			name:  "future date keeps current year",
			text:  "25 JAN",
			today: day(2026, time.January, 1),
			want:  day(2026, time.January, 25),
		},
		{
			name:  "recently past date keeps current year",
			text:  "25 JAN",
			today: day(2026, time.February, 10),
			want:  day(2026, time.January, 25),
		},
		{
			name:  "december to january boundary",
			text:  "SUN 5 JAN",
			today: day(2026, time.December, 20),
			want:  day(2027, time.January, 5),
		},
		{
			name:  "explicit year never rolls",
			text:  "25 Jan 2026",
			today: day(2026, time.June, 1),
			want:  day(2026, time.January, 25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateTimeAt(tt.text, tt.today)
			if !got.Date.Equal(tt.want) {
				t.Errorf("ParseDateTimeAt(%q, %v).Date = %v, want %v", tt.text, tt.today, got.Date, tt.want)
			}
		})
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"19:00", "7:00pm"},
		{"10:00", "10:00am"},
		{"00:15", "12:15am"},
		{"12:30", "12:30pm"},
		{"6:30pm", "6:30pm"},
		{"6.30pm", "6:30pm"},
		{"7 p.m.", "7pm"},
		{"7pm", "7pm"},
		{"11 a.m.", "11am"},
		{"10:00 – 16:00", "10:00am – 4:00pm"},
		{"7pm – 9pm", "7pm – 9pm"},
		{"25:00", ""},
		{"soon", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := NormalizeClock(tt.text); got != tt.want {
				t.Errorf("NormalizeClock(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClockFromTime(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{18, 30, "6:30pm"},
		{19, 0, "7:00pm"},
		{0, 5, "12:05am"},
		{12, 0, "12:00pm"},
		{9, 45, "9:45am"},
	}

	for _, tt := range tests {
		ts := time.Date(2026, time.February, 19, tt.hour, tt.minute, 0, 0, time.UTC)
		if got := ClockFromTime(ts); got != tt.want {
			t.Errorf("ClockFromTime(%02d:%02d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
		}
	}
}
