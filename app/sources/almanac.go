package sources

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shamikhan005/astrotrack/app/event"
)

//go:embed almanac.yml
var almanacYAML []byte

// Almanac holds the static reference tables for event categories that are
// not computed or fetched: meteor showers and planetary conjunctions.
type Almanac struct {
	Showers      []MeteorShower `yaml:"meteor_showers"`
	Conjunctions []Conjunction  `yaml:"planetary_conjunctions"`
}

// LoadAlmanac parses the embedded reference tables. A malformed table is a
// build/config defect and fails startup.
func LoadAlmanac() (*Almanac, error) {
	var almanac Almanac
	if err := yaml.Unmarshal(almanacYAML, &almanac); err != nil {
		return nil, fmt.Errorf("failed to parse almanac: %w", err)
	}
	return &almanac, nil
}

// MeteorShowers returns rows with a peak date in [now, now+12 months].
func (a *Almanac) MeteorShowers(now time.Time) []MeteorShower {
	horizon := now.Add(365 * 24 * time.Hour)

	var active []MeteorShower
	for _, shower := range a.Showers {
		peak, err := event.ParseDate(shower.PeakDate)
		if err != nil {
			continue
		}
		if !peak.Before(now) && !peak.After(horizon) {
			active = append(active, shower)
		}
	}
	return active
}

// PlanetaryConjunctions returns rows with a date in [now, now+6 months].
// The horizon uses six 30-day months, matching the display window.
func (a *Almanac) PlanetaryConjunctions(now time.Time) []Conjunction {
	horizon := now.Add(6 * 30 * 24 * time.Hour)

	var upcoming []Conjunction
	for _, conjunction := range a.Conjunctions {
		date, err := event.ParseDate(conjunction.Date)
		if err != nil {
			continue
		}
		if !date.Before(now) && !date.After(horizon) {
			upcoming = append(upcoming, conjunction)
		}
	}
	return upcoming
}
