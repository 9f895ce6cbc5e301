package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shamikhan005/astrotrack/app/event"
)

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(key string) (string, bool, error) {
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *fakeKV) Set(key, value string) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(key string) error {
	delete(f.data, key)
	return nil
}

type fakeGateway struct {
	state  PermissionState
	grant  bool
	pushed []Notification
}

func (g *fakeGateway) Permission() PermissionState { return g.state }

func (g *fakeGateway) RequestPermission(ctx context.Context) (PermissionState, error) {
	if g.state == PermissionDefault {
		if g.grant {
			g.state = PermissionGranted
		} else {
			g.state = PermissionDenied
		}
	}
	return g.state, nil
}

func (g *fakeGateway) Push(n Notification) error {
	g.pushed = append(g.pushed, n)
	return nil
}

var testNow = time.Date(2025, 12, 13, 1, 0, 0, 0, time.UTC)

func newTestScheduler(kv *fakeKV, gateway Gateway) *Scheduler {
	s := NewScheduler(NewStore(kv), gateway)
	s.now = func() time.Time { return testNow }
	return s
}

func TestTimingOffset(t *testing.T) {
	cases := []struct {
		timing   Timing
		customMs int64
		expected time.Duration
	}{
		{Timing15Min, 0, 15 * time.Minute},
		{Timing1Hour, 0, time.Hour},
		{Timing1Day, 0, 24 * time.Hour},
		{Timing1Week, 0, 7 * 24 * time.Hour},
		{TimingCustom, 90000, 90 * time.Second},
	}

	for _, c := range cases {
		offset, err := c.timing.Offset(c.customMs)
		if err != nil {
			t.Errorf("%s: expected no error, got %v", c.timing, err)
		}
		if offset != c.expected {
			t.Errorf("%s: expected %v, got %v", c.timing, c.expected, offset)
		}
	}

	if _, err := TimingCustom.Offset(0); err == nil {
		t.Error("Expected error for custom timing without offset")
	}
	if _, err := Timing("2hours").Offset(0); err == nil {
		t.Error("Expected error for unknown timing")
	}
}

func TestAdd_ComputesTrigger(t *testing.T) {
	gateway := &fakeGateway{state: PermissionGranted}
	s := newTestScheduler(newFakeKV(), gateway)

	// Event two hours away, one hour lead time.
	e := event.Event{
		ID:   "iss-0",
		Name: "International Space Station Flyover",
		Date: testNow.Add(2 * time.Hour).Format(time.RFC3339),
	}

	r, err := s.Add(context.Background(), e, Timing1Hour, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := testNow.Add(time.Hour)
	if !r.TriggerAt.Equal(expected) {
		t.Errorf("Expected trigger %v, got %v", expected, r.TriggerAt)
	}
	if r.Message != "International Space Station Flyover is starting soon!" {
		t.Errorf("Unexpected message: %q", r.Message)
	}
	if !r.Active || r.Channel != ChannelBrowser || r.ID == "" {
		t.Errorf("Incomplete reminder: %+v", r)
	}

	if len(s.List()) != 1 {
		t.Errorf("Expected 1 armed reminder, got %d", len(s.List()))
	}
}

func TestAdd_RejectsPastTrigger(t *testing.T) {
	s := newTestScheduler(newFakeKV(), &fakeGateway{state: PermissionGranted})

	// Geminids peak 2025-12-14T00:00:00Z with a 1-day lead time puts the
	// trigger at 2025-12-13T00:00:00Z; "now" is an hour past that.
	e := event.Event{ID: "geminids-2025", Name: "Geminids", Date: "2025-12-14T00:00:00Z"}

	_, err := s.Add(context.Background(), e, Timing1Day, 0)
	if !errors.Is(err, ErrTooSoon) {
		t.Fatalf("Expected ErrTooSoon, got %v", err)
	}

	if len(s.List()) != 0 {
		t.Error("No reminder may be created for a past trigger")
	}
}

func TestAdd_RequestsPermissionBeforeArming(t *testing.T) {
	gateway := &fakeGateway{state: PermissionDefault, grant: true}
	s := newTestScheduler(newFakeKV(), gateway)

	e := event.Event{ID: "x", Name: "X", Date: testNow.Add(3 * time.Hour).Format(time.RFC3339)}

	if _, err := s.Add(context.Background(), e, Timing15Min, 0); err != nil {
		t.Fatalf("Expected grant then success, got %v", err)
	}
	if gateway.state != PermissionGranted {
		t.Error("Expected permission to have been requested")
	}
}

func TestAdd_PermissionDenied(t *testing.T) {
	kv := newFakeKV()
	s := newTestScheduler(kv, &fakeGateway{state: PermissionDefault, grant: false})

	e := event.Event{ID: "x", Name: "X", Date: testNow.Add(3 * time.Hour).Format(time.RFC3339)}

	_, err := s.Add(context.Background(), e, Timing15Min, 0)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Expected ErrPermissionDenied, got %v", err)
	}

	if raw, ok := kv.data["astrotrack-reminders"]; ok && raw != "[]" {
		t.Errorf("Nothing may be persisted on denial, got %q", raw)
	}
}

func TestAdd_DisabledSettings(t *testing.T) {
	s := newTestScheduler(newFakeKV(), &fakeGateway{state: PermissionGranted})
	if err := s.UpdateSettings(Settings{Enabled: false}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	e := event.Event{ID: "x", Name: "X", Date: testNow.Add(3 * time.Hour).Format(time.RFC3339)}

	if _, err := s.Add(context.Background(), e, Timing1Hour, 0); !errors.Is(err, ErrDisabled) {
		t.Fatalf("Expected ErrDisabled, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := newTestScheduler(newFakeKV(), &fakeGateway{state: PermissionGranted})

	e := event.Event{ID: "x", Name: "X", Date: testNow.Add(3 * time.Hour).Format(time.RFC3339)}
	r, err := s.Add(context.Background(), e, Timing1Hour, 0)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := s.Remove(r.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(s.List()) != 0 {
		t.Error("Expected reminder to be cancelled")
	}

	if err := s.Remove(r.ID); err == nil {
		t.Error("Expected error removing unknown reminder")
	}
}

func TestClearExpired_Idempotent(t *testing.T) {
	kv := newFakeKV()
	s := newTestScheduler(kv, &fakeGateway{state: PermissionGranted})

	future := event.Event{ID: "future", Name: "F", Date: testNow.Add(3 * time.Hour).Format(time.RFC3339)}
	if _, err := s.Add(context.Background(), future, Timing1Hour, 0); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Move the clock past the trigger.
	s.now = func() time.Time { return testNow.Add(4 * time.Hour) }

	s.ClearExpired()
	if len(s.List()) != 0 {
		t.Fatalf("Expected reminder swept, got %d", len(s.List()))
	}

	// Sweeping again must be a no-op.
	s.ClearExpired()
	if len(s.List()) != 0 {
		t.Error("Second sweep changed state")
	}
}

func TestNewScheduler_DiscardsPastRemindersOnLoad(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv)

	// NewScheduler prunes against the wall clock, so build these relative
	// to real time rather than the fixed test instant.
	past := Reminder{ID: "past", EventID: "e1", TriggerAt: time.Now().Add(-time.Hour), Channel: ChannelBrowser, Active: true}
	upcoming := Reminder{ID: "upcoming", EventID: "e2", TriggerAt: time.Now().Add(48 * time.Hour), Channel: ChannelBrowser, Active: true}
	if err := store.SaveReminders([]Reminder{past, upcoming}); err != nil {
		t.Fatalf("SaveReminders failed: %v", err)
	}

	s := NewScheduler(store, &fakeGateway{state: PermissionGranted})
	defer s.Stop()

	reminders := s.List()
	if len(reminders) != 1 {
		t.Fatalf("Expected only the upcoming reminder, got %d", len(reminders))
	}
	if reminders[0].ID != "upcoming" {
		t.Errorf("Wrong reminder survived: %s", reminders[0].ID)
	}
}

func TestStore_CorruptJSONFallsBack(t *testing.T) {
	kv := newFakeKV()
	kv.data["astrotrack-reminders"] = "{not json"
	kv.data["astrotrack-reminder-settings"] = "also not json"

	store := NewStore(kv)

	if reminders := store.LoadReminders(); len(reminders) != 0 {
		t.Errorf("Expected empty reminders for corrupt record, got %d", len(reminders))
	}

	settings := store.LoadSettings()
	if !settings.Enabled || !settings.AllowBrowserNotifications {
		t.Errorf("Expected default settings for corrupt record, got %+v", settings)
	}
}
