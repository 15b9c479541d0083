// Package cli implements the london-culture command: one run fetches every
// source, finalizes the event list, persists it, renders the page and
// optionally sends the weekly digest.
package cli
