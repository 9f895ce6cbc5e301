package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/shamikhan005/astrotrack/app/event"
)

var (
	// ErrTooSoon is returned when the computed trigger instant is not in
	// the future: the event's lead time has already elapsed.
	ErrTooSoon = errors.New("reminder trigger is in the past")

	// ErrPermissionDenied is returned when the notification channel refuses
	// permission; no reminder is created.
	ErrPermissionDenied = errors.New("notification permission denied")

	// ErrDisabled is returned when reminders are switched off in settings.
	ErrDisabled = errors.New("reminders are disabled")
)

// sweepSchedule prunes expired reminders once per minute.
const sweepSchedule = "@every 1m"

// Scheduler validates, arms, fires, and expires reminders. State is held in
// memory and written through to the store on every mutation, so reminders
// survive process restarts.
type Scheduler struct {
	store   *Store
	gateway Gateway

	mu        sync.Mutex
	reminders []Reminder
	settings  Settings
	timers    map[string]*time.Timer

	cron *cron.Cron
	now  func() time.Time
}

// NewScheduler loads persisted state. Reminders already past their trigger
// are discarded rather than fired late; the rest are re-armed.
func NewScheduler(store *Store, gateway Gateway) *Scheduler {
	s := &Scheduler{
		store:    store,
		gateway:  gateway,
		settings: store.LoadSettings(),
		timers:   make(map[string]*time.Timer),
		cron:     cron.New(),
		now:      time.Now,
	}

	loaded := store.LoadReminders()
	now := s.now()

	for _, r := range loaded {
		if !r.TriggerAt.After(now) {
			slog.Debug("Discarding expired reminder on load", "reminder", r.ID, "event", r.EventID)
			continue
		}
		s.reminders = append(s.reminders, r)
		s.armLocked(r)
	}

	if len(s.reminders) != len(loaded) {
		if err := store.SaveReminders(s.reminders); err != nil {
			slog.Warn("Failed to persist pruned reminders", "error", err)
		}
	}

	return s
}

// Start begins the periodic expiry sweep.
func (s *Scheduler) Start() {
	s.cron.AddFunc(sweepSchedule, s.ClearExpired)
	s.cron.Start()
	slog.Info("Reminder scheduler started", "active", len(s.List()), "sweep", sweepSchedule)
}

// Stop halts the sweep and disarms all pending timers without removing the
// persisted reminders.
func (s *Scheduler) Stop() {
	s.cron.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Add validates and arms a reminder for the event at the given lead time.
// The trigger must lie strictly in the future and, for the browser channel,
// notification permission must be granted (requesting it if still
// undecided) before anything is persisted.
func (s *Scheduler) Add(ctx context.Context, e event.Event, timing Timing, customMs int64) (*Reminder, error) {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()

	if !settings.Enabled {
		return nil, ErrDisabled
	}

	start, err := event.ParseDate(e.Date)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", e.ID, err)
	}

	offset, err := timing.Offset(customMs)
	if err != nil {
		return nil, err
	}

	trigger := start.Add(-offset)
	now := s.now()
	if !trigger.After(now) {
		return nil, fmt.Errorf("event %s starts %s, trigger %s: %w",
			e.ID, start.Format(time.RFC3339), trigger.Format(time.RFC3339), ErrTooSoon)
	}

	if settings.AllowBrowserNotifications && s.gateway.Permission() != PermissionGranted {
		state, err := s.gateway.RequestPermission(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to request notification permission: %w", err)
		}
		if state != PermissionGranted {
			return nil, ErrPermissionDenied
		}
	}

	r := Reminder{
		ID:        uuid.NewString(),
		EventID:   e.ID,
		TriggerAt: trigger,
		Channel:   ChannelBrowser,
		Message:   fmt.Sprintf("%s is starting soon!", e.Name),
		Active:    true,
	}

	s.mu.Lock()
	s.reminders = append(s.reminders, r)
	s.armLocked(r)
	err = s.store.SaveReminders(s.reminders)
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	slog.Info("Reminder armed", "reminder", r.ID, "event", r.EventID, "trigger", r.TriggerAt)
	return &r, nil
}

// Remove cancels a reminder by id before it fires.
func (s *Scheduler) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reminders {
		if r.ID == id {
			s.disarmLocked(id)
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return s.store.SaveReminders(s.reminders)
		}
	}

	return fmt.Errorf("reminder %s not found", id)
}

// List returns the currently armed reminders.
func (s *Scheduler) List() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// Settings returns the current reminder settings.
func (s *Scheduler) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the settings and writes them through.
func (s *Scheduler) UpdateSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	return s.store.SaveSettings(settings)
}

// ClearExpired drops reminders whose trigger instant has passed. Safe to
// call repeatedly; removing an already-removed entry is a no-op.
func (s *Scheduler) ClearExpired() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.reminders[:0]
	removed := 0
	for _, r := range s.reminders {
		if r.TriggerAt.After(now) {
			kept = append(kept, r)
		} else {
			s.disarmLocked(r.ID)
			removed++
		}
	}

	if removed == 0 {
		return
	}

	s.reminders = kept
	if err := s.store.SaveReminders(s.reminders); err != nil {
		slog.Warn("Failed to persist swept reminders", "error", err)
	}
	slog.Debug("Expired reminders removed", "count", removed)
}

// armLocked schedules the one-shot fire timer. Caller holds s.mu (or owns s
// exclusively during construction).
func (s *Scheduler) armLocked(r Reminder) {
	delay := r.TriggerAt.Sub(s.now())
	s.timers[r.ID] = time.AfterFunc(delay, func() { s.fire(r.ID) })
}

func (s *Scheduler) disarmLocked(id string) {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
}

// fire delivers the notification and removes the reminder. The delivery is
// the observable effect; failures are logged, not returned.
func (s *Scheduler) fire(id string) {
	s.mu.Lock()

	var fired *Reminder
	for i, r := range s.reminders {
		if r.ID == id {
			fired = &r
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			break
		}
	}
	delete(s.timers, id)

	if fired != nil {
		if err := s.store.SaveReminders(s.reminders); err != nil {
			slog.Warn("Failed to persist reminders after firing", "error", err)
		}
	}
	s.mu.Unlock()

	if fired == nil {
		return
	}

	err := s.gateway.Push(Notification{
		EventID: fired.EventID,
		Title:   "Astronomical Event Reminder",
		Body:    fired.Message,
		FiredAt: s.now(),
	})
	if err != nil {
		slog.Warn("Failed to deliver notification", "reminder", id, "error", err)
	}
}
