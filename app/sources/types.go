package sources

// Native response shapes, one per upstream provider. Loosely-typed provider
// JSON is decoded into these at the client boundary and never leaks past it.

// NeoFeedResponse is the NASA NeoWs feed response. Objects are grouped by
// calendar date.
type NeoFeedResponse struct {
	ElementCount     int                          `json:"element_count"`
	NearEarthObjects map[string][]NearEarthObject `json:"near_earth_objects"`
}

type NearEarthObject struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	NasaJplURL        string          `json:"nasa_jpl_url"`
	IsHazardous       bool            `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData []CloseApproach `json:"close_approach_data"`
}

type CloseApproach struct {
	CloseApproachDate string `json:"close_approach_date"`
	OrbitingBody      string `json:"orbiting_body"`
}

// LaunchListResponse is the Launch Library 2 upcoming-launches response.
type LaunchListResponse struct {
	Count   int      `json:"count"`
	Results []Launch `json:"results"`
}

type Launch struct {
	ID              string         `json:"id"`
	URL             string         `json:"url"`
	Name            string         `json:"name"`
	Net             string         `json:"net"`
	ServiceProvider LaunchProvider `json:"launch_service_provider"`
	Mission         LaunchMission  `json:"mission"`
	Image           string         `json:"image"`
}

type LaunchProvider struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type LaunchMission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// ISSPassResponse is the Open Notify pass-prediction response, with rise
// times already converted to RFC 3339 by the client.
type ISSPassResponse struct {
	Request ISSPassRequest `json:"request"`
	Passes  []ISSPass      `json:"passes"`

	// Predicted is true when the passes were synthesized locally because the
	// live service was unavailable.
	Predicted bool `json:"predicted"`
}

type ISSPassRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Passes    int     `json:"passes"`
}

type ISSPass struct {
	Date         string  `json:"date"`
	Duration     int     `json:"duration"` // seconds
	MaxElevation float64 `json:"max_elevation"`
	Appears      string  `json:"appears"`
	Disappears   string  `json:"disappears"`
	Magnitude    float64 `json:"mag"`
}

// MeteorShower is one almanac row. Dates are bare YYYY-MM-DD.
type MeteorShower struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ActiveStart string `yaml:"active_start"`
	ActiveEnd   string `yaml:"active_end"`
	PeakDate    string `yaml:"peak_date"`
	Radiant     string `yaml:"radiant"`
	ZHR         int    `yaml:"zhr"`
	Velocity    int    `yaml:"velocity"`
	ParentComet string `yaml:"parent_comet"`
}

// Conjunction is one planetary-conjunction almanac row.
type Conjunction struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Date          string   `yaml:"date"`
	Planets       []string `yaml:"planets"`
	Separation    float64  `yaml:"separation"`
	Magnitude     float64  `yaml:"magnitude"`
	Constellation string   `yaml:"constellation"`
}
