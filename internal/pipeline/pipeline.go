package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/logger"
	"github.com/pfrederiksen/london-culture/internal/source"
)

// maxDate sorts undated events after every dated one.
var maxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Pipeline runs the source roster and reduces the combined output to the
// final ordered event list.
type Pipeline struct {
	sources []source.Source
	rules   Rules
	log     *logger.Logger
}

func New(sources []source.Source, rules Rules, log *logger.Logger) *Pipeline {
	return &Pipeline{sources: sources, rules: rules, log: log}
}

// Run fetches every source in order and returns the finalized list. A source
// error never aborts the run: whatever that source managed to parse is kept,
// the error is logged, and the remaining sources still run. Sources run
// sequentially so that first-wins deduplication is deterministic across runs.
func (p *Pipeline) Run(ctx context.Context) []event.Event {
	var collected []event.Event
	for _, src := range p.sources {
		if ctx.Err() != nil {
			p.log.Warn("run cancelled", logger.Fields{"source": src.Name()})
			break
		}

		start := time.Now()
		events, err := src.Fetch(ctx)
		logger.RecordTiming("fetch."+src.Name(), time.Since(start))
		if err != nil {
			p.log.Error("source fetch failed", logger.Fields{
				"source": src.Name(),
				"events": len(events),
			}, err)
		}

		kept := 0
		for _, evt := range events {
			if !evt.Valid() {
				continue
			}
			collected = append(collected, evt)
			kept++
		}
		logger.AddCounter("events."+src.Name(), int64(kept))
		p.log.Info("source complete", logger.Fields{
			"source": src.Name(),
			"events": kept,
		})
	}

	return Finalize(collected, p.rules)
}

// Finalize applies the exclusion rules, deduplicates, and sorts. It is pure:
// the same input always yields the same output, and finalizing twice is a
// no-op.
func Finalize(events []event.Event, rules Rules) []event.Event {
	filtered := make([]event.Event, 0, len(events))
	excluded := 0
	for _, evt := range events {
		if rules.Excluded(evt) {
			excluded++
			continue
		}
		filtered = append(filtered, evt)
	}
	logger.AddCounter("events.excluded", int64(excluded))

	// First occurrence wins: source order is the priority order, and the
	// venue's own listing runs before the aggregators.
	seen := make(map[string]bool, len(filtered))
	deduped := filtered[:0]
	duplicates := 0
	for _, evt := range filtered {
		k := evt.Key()
		if seen[k] {
			duplicates++
			continue
		}
		seen[k] = true
		deduped = append(deduped, evt)
	}
	logger.AddCounter("events.duplicate", int64(duplicates))

	sort.SliceStable(deduped, func(i, j int) bool {
		di, dj := sortDate(deduped[i]), sortDate(deduped[j])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return deduped[i].Time < deduped[j].Time
	})
	return deduped
}

func sortDate(e event.Event) time.Time {
	if e.StartDate.IsZero() {
		return maxDate
	}
	return e.StartDate
}
