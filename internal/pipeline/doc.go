// Package pipeline collects events from every source, applies the exclusion
// rules, deduplicates repeat listings and orders what remains by date.
package pipeline
