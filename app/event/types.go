package event

// EventType classifies a unified event. Every normalizer maps its source
// records to exactly one of these.
type EventType string

const (
	TypeMeteorShower          EventType = "meteor-shower"
	TypeEclipse               EventType = "eclipse"
	TypePlanetaryAlignment    EventType = "planetary-alignment"
	TypeSpaceMission          EventType = "space-mission"
	TypePlanetObservation     EventType = "planet-observation"
	TypeComet                 EventType = "comet"
	TypeISSFlyover            EventType = "iss-flyover"
	TypePlanetaryConjunction  EventType = "planetary-conjunction"
	TypeOther                 EventType = "other"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case TypeMeteorShower, TypeEclipse, TypePlanetaryAlignment, TypeSpaceMission,
		TypePlanetObservation, TypeComet, TypeISSFlyover, TypePlanetaryConjunction,
		TypeOther:
		return true
	}
	return false
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Visibility struct {
	Hemisphere        string       `json:"hemisphere,omitempty"`
	BestViewingTime   string       `json:"bestViewingTime,omitempty"`
	VisibleToNakedEye bool         `json:"visibleToNakedEye"`
	Equipment         string       `json:"equipment,omitempty"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
}

// Event is the unified record every source category is normalized into.
// Date keeps the upstream representation verbatim: either a full RFC 3339
// timestamp or a bare YYYY-MM-DD when the provider supplies no time of day.
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        EventType   `json:"type"`
	Date        string      `json:"date"`
	Duration    string      `json:"duration,omitempty"`
	Visibility  *Visibility `json:"visibility,omitempty"`
	Source      string      `json:"source"`
	ExternalURL string      `json:"externalUrl,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
}
