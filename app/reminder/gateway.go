package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// PermissionState mirrors the host notification capability: not yet
// requested, granted, or denied.
type PermissionState string

const (
	PermissionDefault PermissionState = "default"
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
)

// Notification is a fired reminder as delivered through the gateway.
type Notification struct {
	EventID string    `json:"eventId"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	FiredAt time.Time `json:"firedAt"`
}

// Gateway abstracts the notification delivery channel. Requesting
// permission is a blocking operation awaited before a reminder is armed.
type Gateway interface {
	Permission() PermissionState
	RequestPermission(ctx context.Context) (PermissionState, error)
	Push(n Notification) error
}

var _ Gateway = (*LogGateway)(nil)

// LogGateway is the default delivery channel: fired notifications are
// logged and kept in a bounded recent-history buffer that the API exposes.
// The permission handshake follows the host tri-state model, with the
// grant decision fixed at construction.
type LogGateway struct {
	mu        sync.Mutex
	state     PermissionState
	grant     bool
	recent    []Notification
	maxRecent int
}

func NewLogGateway(grant bool) *LogGateway {
	return &LogGateway{
		state:     PermissionDefault,
		grant:     grant,
		maxRecent: 50,
	}
}

func (g *LogGateway) Permission() PermissionState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *LogGateway) RequestPermission(ctx context.Context) (PermissionState, error) {
	select {
	case <-ctx.Done():
		return PermissionDefault, ctx.Err()
	default:
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == PermissionDefault {
		if g.grant {
			g.state = PermissionGranted
		} else {
			g.state = PermissionDenied
		}
		slog.Info("Notification permission requested", "state", g.state)
	}

	return g.state, nil
}

func (g *LogGateway) Push(n Notification) error {
	g.mu.Lock()
	g.recent = append(g.recent, n)
	if len(g.recent) > g.maxRecent {
		g.recent = g.recent[len(g.recent)-g.maxRecent:]
	}
	g.mu.Unlock()

	slog.Info("Notification fired", "event", n.EventID, "title", n.Title)
	return nil
}

// Recent returns the most recently delivered notifications, oldest first.
func (g *LogGateway) Recent() []Notification {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Notification, len(g.recent))
	copy(out, g.recent)
	return out
}
