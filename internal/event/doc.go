// Package event defines the canonical event record every source adapter
// produces, plus the shared normalization rules that make records from
// heterogeneous sources comparable: free-text date/time parsing with the
// year-rollover heuristic, and raw-category-to-bucket mapping.
package event
