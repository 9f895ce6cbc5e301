package reminder

import (
	"fmt"
	"time"
)

// Timing is the relative lead time before an event at which a reminder
// fires. TimingCustom takes an explicit offset in milliseconds.
type Timing string

const (
	Timing15Min  Timing = "15min"
	Timing1Hour  Timing = "1hour"
	Timing1Day   Timing = "1day"
	Timing1Week  Timing = "1week"
	TimingCustom Timing = "custom"
)

// Offset converts a timing to its duration before the event start.
func (t Timing) Offset(customMs int64) (time.Duration, error) {
	switch t {
	case Timing15Min:
		return 15 * time.Minute, nil
	case Timing1Hour:
		return time.Hour, nil
	case Timing1Day:
		return 24 * time.Hour, nil
	case Timing1Week:
		return 7 * 24 * time.Hour, nil
	case TimingCustom:
		if customMs <= 0 {
			return 0, fmt.Errorf("custom timing requires a positive offset, got %dms", customMs)
		}
		return time.Duration(customMs) * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("unknown reminder timing %q", t)
	}
}

type Channel string

const ChannelBrowser Channel = "browser"

// Reminder associates an event with an absolute trigger instant. JSON field
// names match the persisted schema.
type Reminder struct {
	ID        string    `json:"notificationId"`
	EventID   string    `json:"eventId"`
	TriggerAt time.Time `json:"reminderTime"`
	Channel   Channel   `json:"reminderType"`
	Message   string    `json:"message"`
	Active    bool      `json:"isActive"`
}

// Settings control reminder behavior. Persisted independently of the
// reminder list.
type Settings struct {
	Enabled                   bool     `json:"enabled"`
	DefaultTiming             []Timing `json:"defaultTiming"`
	AllowBrowserNotifications bool     `json:"allowBrowserNotifications"`
}

func DefaultSettings() Settings {
	return Settings{
		Enabled:                   true,
		DefaultTiming:             []Timing{Timing1Hour},
		AllowBrowserNotifications: true,
	}
}
