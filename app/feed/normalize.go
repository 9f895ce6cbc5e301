package feed

import (
	"fmt"
	"math"
	"sort"

	"github.com/shamikhan005/astrotrack/app/event"
	"github.com/shamikhan005/astrotrack/app/sources"
)

// Per-category caps keep minor bodies and repeat passes from flooding the
// merged feed.
const (
	maxNeosPerDate = 3
	maxISSPasses   = 2
)

// NormalizeNeoFeed maps a NeoWs response into unified events, surfacing at
// most maxNeosPerDate objects per native date bucket. Records missing an id,
// a name, or any usable date are skipped.
func NormalizeNeoFeed(feed *sources.NeoFeedResponse) []event.Event {
	if feed == nil {
		return nil
	}

	// Map iteration order is not stable; walk buckets sorted by date so the
	// per-bucket cap always keeps the same objects.
	dates := make([]string, 0, len(feed.NearEarthObjects))
	for date := range feed.NearEarthObjects {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var events []event.Event
	for _, date := range dates {
		objects := feed.NearEarthObjects[date]
		if len(objects) > maxNeosPerDate {
			objects = objects[:maxNeosPerDate]
		}

		for _, neo := range objects {
			if neo.ID == "" || neo.Name == "" {
				continue
			}

			eventDate := date
			if len(neo.CloseApproachData) > 0 && neo.CloseApproachData[0].CloseApproachDate != "" {
				eventDate = neo.CloseApproachData[0].CloseApproachDate
			}
			if eventDate == "" {
				continue
			}

			description := fmt.Sprintf("Close approach of asteroid %s.", neo.Name)
			if neo.IsHazardous {
				description += " ⚠️ Potentially hazardous asteroid"
			}

			events = append(events, event.Event{
				ID:          "neo-" + neo.ID,
				Name:        neo.Name,
				Description: description,
				Type:        event.TypeOther,
				Date:        eventDate,
				Visibility: &event.Visibility{
					VisibleToNakedEye: false,
					Equipment:         "Telescope recommended",
				},
				Source:      "NASA NeoWs",
				ExternalURL: neo.NasaJplURL,
			})
		}
	}

	return events
}

// NormalizeLaunches maps a Launch Library response into unified events, one
// per launch. The mission description falls back to "<mission name> mission"
// when the provider supplies none.
func NormalizeLaunches(list *sources.LaunchListResponse) []event.Event {
	if list == nil {
		return nil
	}

	var events []event.Event
	for _, launch := range list.Results {
		if launch.ID == "" || launch.Name == "" || launch.Net == "" {
			continue
		}

		description := launch.Mission.Description
		if description == "" {
			description = fmt.Sprintf("%s mission", launch.Mission.Name)
		}

		source := "Launch Library"
		if launch.ServiceProvider.Name != "" {
			source = fmt.Sprintf("%s via Launch Library", launch.ServiceProvider.Name)
		}

		events = append(events, event.Event{
			ID:          "launch-" + launch.ID,
			Name:        launch.Name,
			Description: description,
			Type:        event.TypeSpaceMission,
			Date:        launch.Net,
			Visibility: &event.Visibility{
				VisibleToNakedEye: true,
				BestViewingTime:   "Launch time",
			},
			Source:      source,
			ExternalURL: launch.URL,
			ImageURL:    launch.Image,
		})
	}

	return events
}

// NormalizeMeteorShowers maps almanac rows into unified events keyed by
// peak date, with the active window carried as a display duration.
func NormalizeMeteorShowers(showers []sources.MeteorShower) []event.Event {
	var events []event.Event
	for _, shower := range showers {
		if shower.ID == "" || shower.Name == "" || shower.PeakDate == "" {
			continue
		}

		events = append(events, event.Event{
			ID:   shower.ID,
			Name: shower.Name,
			Description: fmt.Sprintf("%s. Peak ZHR: %d meteors/hour. Radiant: %s",
				shower.Description, shower.ZHR, shower.Radiant),
			Type:     event.TypeMeteorShower,
			Date:     shower.PeakDate,
			Duration: fmt.Sprintf("Active: %s to %s", shower.ActiveStart, shower.ActiveEnd),
			Visibility: &event.Visibility{
				VisibleToNakedEye: true,
				BestViewingTime:   "After midnight",
				Hemisphere:        "both",
			},
			Source: "Astronomical Calendar",
		})
	}

	return events
}

// NormalizeISSPasses maps pass predictions into unified events, surfacing at
// most maxISSPasses per run. Pass durations come in seconds and are shown in
// whole minutes. Predicted (fallback) passes carry a distinct source label.
func NormalizeISSPasses(result *sources.ISSPassResponse) []event.Event {
	if result == nil {
		return nil
	}

	passes := result.Passes
	if len(passes) > maxISSPasses {
		passes = passes[:maxISSPasses]
	}

	source := "Open Notify API"
	if result.Predicted {
		source = "Open Notify API (predicted)"
	}

	var events []event.Event
	for i, pass := range passes {
		if pass.Date == "" {
			continue
		}

		minutes := int(math.Round(float64(pass.Duration) / 60))

		events = append(events, event.Event{
			ID:   fmt.Sprintf("iss-%d", i),
			Name: "International Space Station Flyover",
			Description: fmt.Sprintf("ISS visible flyover lasting %d minutes. Maximum elevation: %.0f°",
				minutes, pass.MaxElevation),
			Type:     event.TypeISSFlyover,
			Date:     pass.Date,
			Duration: fmt.Sprintf("%d minutes", minutes),
			Visibility: &event.Visibility{
				VisibleToNakedEye: true,
				BestViewingTime:   "During pass time",
				Equipment:         "None required",
				Coordinates: &event.Coordinates{
					Latitude:  result.Request.Latitude,
					Longitude: result.Request.Longitude,
				},
			},
			Source:      source,
			ExternalURL: "https://spotthestation.nasa.gov/",
		})
	}

	return events
}

// NormalizeConjunctions maps almanac rows into unified events with the
// angular separation and constellation appended to the description.
func NormalizeConjunctions(conjunctions []sources.Conjunction) []event.Event {
	var events []event.Event
	for _, conjunction := range conjunctions {
		if conjunction.ID == "" || conjunction.Name == "" || conjunction.Date == "" {
			continue
		}

		events = append(events, event.Event{
			ID:   conjunction.ID,
			Name: conjunction.Name,
			Description: fmt.Sprintf("%s. Angular separation: %g° in %s",
				conjunction.Description, conjunction.Separation, conjunction.Constellation),
			Type: event.TypePlanetaryConjunction,
			Date: conjunction.Date,
			Visibility: &event.Visibility{
				VisibleToNakedEye: true,
				BestViewingTime:   "Dawn or dusk",
				Equipment:         "Binoculars recommended",
			},
			Source: "Astronomical Calculations",
		})
	}

	return events
}
