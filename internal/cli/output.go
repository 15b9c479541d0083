package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/london-culture/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time     `json:"checked_at"`
	Events     []event.Event `json:"events"`
	EventCount int           `json:"event_count"`
	PagePath   string        `json:"page_path"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, evt := range result.Events {
		display := evt.DateDisplay()
		if display == "" {
			display = "Date TBC"
		}
		free := ""
		if evt.IsFree {
			free = " [free]"
		}
		fmt.Fprintf(w, "%s — %s (%s)%s\n", display, evt.Title, evt.Venue, free)
		if verbose {
			fmt.Fprintf(w, "     URL: %s\n", evt.URL)
			if evt.Area != "" {
				fmt.Fprintf(w, "     Area: %s\n", evt.Area)
			}
			if evt.FilterCategory != "" {
				fmt.Fprintf(w, "     Category: %s\n", evt.FilterCategory)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d events\n", result.EventCount)
	if result.PagePath != "" {
		fmt.Fprintf(w, "Page: %s\n", result.PagePath)
	}
	return nil
}
