package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Upstream source configuration
	NASAAPIKey    string
	NeoWsURL      string
	LaunchLibURL  string
	OpenNotifyURL string

	// Observer location for ISS pass lookups
	Latitude  float64
	Longitude float64

	// Application configuration
	Port         string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
