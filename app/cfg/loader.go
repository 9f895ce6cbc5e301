package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./astrotrack.db" description:"Path to the SQLite database file"`

	// Upstream source configuration
	NASAAPIKey    string `long:"nasa-api-key" env:"NASA_API_KEY" default:"DEMO_KEY" description:"NASA API key for the NeoWs feed"`
	NeoWsURL      string `long:"neows-url" env:"NEOWS_URL" default:"https://api.nasa.gov/neo/rest/v1" description:"NASA NeoWs API base URL"`
	LaunchLibURL  string `long:"launchlib-url" env:"LAUNCHLIB_URL" default:"https://ll.thespacedevs.com/2.2.0" description:"Launch Library API base URL"`
	OpenNotifyURL string `long:"opennotify-url" env:"OPENNOTIFY_URL" default:"http://api.open-notify.org" description:"Open Notify API base URL for ISS passes"`

	// Observer location for ISS pass lookups
	Latitude  float64 `long:"latitude" env:"LATITUDE" default:"40.7128" description:"Observer latitude for ISS pass predictions"`
	Longitude float64 `long:"longitude" env:"LONGITUDE" default:"-74.0060" description:"Observer longitude for ISS pass predictions"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for reminder endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"astrotrack/1.0" description:"User agent string for upstream HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	// Populate the environment from a local .env file when one exists
	_ = godotenv.Load()

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:        raw.DBPath,
		NASAAPIKey:    raw.NASAAPIKey,
		NeoWsURL:      raw.NeoWsURL,
		LaunchLibURL:  raw.LaunchLibURL,
		OpenNotifyURL: raw.OpenNotifyURL,
		Latitude:      raw.Latitude,
		Longitude:     raw.Longitude,
		Port:          raw.Port,
		APIAccessKey:  raw.APIAccessKey,
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
