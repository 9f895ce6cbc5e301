package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shamikhan005/astrotrack/app/event"
	"github.com/shamikhan005/astrotrack/app/sources"
)

// Aggregator merges all source categories into one chronologically sorted
// event list. Individual source failures degrade the corresponding category
// and never fail the aggregation as a whole.
type Aggregator struct {
	client *sources.Client

	// Default viewing location for pass predictions when the caller has no
	// stored preference.
	Latitude  float64
	Longitude float64

	now func() time.Time
}

func NewAggregator(client *sources.Client, latitude, longitude float64) *Aggregator {
	return &Aggregator{
		client:    client,
		Latitude:  latitude,
		Longitude: longitude,
		now:       time.Now,
	}
}

// fetchResults holds one slot per source category. Each fetch goroutine
// writes only to its own slot, so no locking is needed around the join.
type fetchResults struct {
	neo    *sources.NeoFeedResponse
	neoErr error

	launches    *sources.LaunchListResponse
	launchesErr error

	iss    *sources.ISSPassResponse
	issErr error

	showers      []sources.MeteorShower
	conjunctions []sources.Conjunction
}

// Run fetches every source category concurrently, waits for all of them to
// settle, normalizes the survivors, and returns the merged sorted list.
// A failed category is logged and omitted; the only fatal path is a
// programming error before dispatch.
func (a *Aggregator) Run(ctx context.Context) ([]event.Event, error) {
	if a.client == nil {
		return nil, errors.New("aggregator has no source client")
	}

	now := a.now()
	var results fetchResults

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		results.neo, results.neoErr = a.client.FetchNearEarthObjects(ctx, now, now.AddDate(0, 0, 7))
	}()

	go func() {
		defer wg.Done()
		results.launches, results.launchesErr = a.client.FetchUpcomingLaunches(ctx, 10)
	}()

	go func() {
		defer wg.Done()
		results.iss, results.issErr = a.client.FetchISSPasses(ctx, a.Latitude, a.Longitude, 0, 3)
	}()

	go func() {
		defer wg.Done()
		results.showers = a.client.MeteorShowers(now)
	}()

	go func() {
		defer wg.Done()
		results.conjunctions = a.client.PlanetaryConjunctions(now)
	}()

	wg.Wait()

	var merged []event.Event
	merged = appendCategory(merged, "neo", NormalizeNeoFeed(results.neo), results.neoErr)
	merged = appendCategory(merged, "launches", NormalizeLaunches(results.launches), results.launchesErr)
	merged = appendCategory(merged, "meteor-showers", NormalizeMeteorShowers(results.showers), nil)
	merged = appendCategory(merged, "iss", NormalizeISSPasses(results.iss), results.issErr)
	merged = appendCategory(merged, "conjunctions", NormalizeConjunctions(results.conjunctions), nil)

	event.Sort(merged)

	slog.Info("Aggregation completed", "events", len(merged))

	return merged, nil
}

// appendCategory adds a category's normalized events to the accumulator,
// dropping anything that fails the event invariants. A failed fetch omits
// the category and is observable only through logging.
func appendCategory(accumulator []event.Event, category string, events []event.Event, fetchErr error) []event.Event {
	if fetchErr != nil {
		slog.Warn("Source fetch failed, omitting category", "source", category, "error", fetchErr)
		return accumulator
	}

	for _, e := range events {
		if err := event.Validate(e); err != nil {
			slog.Warn("Dropping malformed event", "source", category, "error", err)
			continue
		}
		accumulator = append(accumulator, e)
	}

	return accumulator
}
