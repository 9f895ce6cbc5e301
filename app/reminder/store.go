package reminder

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shamikhan005/astrotrack/app/storage"
)

// Store persists the reminder list and settings as JSON documents in the
// key-value store. A corrupt or missing document falls back to the empty
// default; startup never fails on bad stored state.
type Store struct {
	kv storage.KVRepository
}

func NewStore(kv storage.KVRepository) *Store {
	return &Store{kv: kv}
}

func (s *Store) LoadReminders() []Reminder {
	raw, ok, err := s.kv.Get(storage.KeyReminders)
	if err != nil {
		slog.Warn("Failed to read stored reminders, starting empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var reminders []Reminder
	if err := json.Unmarshal([]byte(raw), &reminders); err != nil {
		slog.Warn("Stored reminders are corrupt, starting empty", "error", err)
		return nil
	}
	return reminders
}

func (s *Store) SaveReminders(reminders []Reminder) error {
	if reminders == nil {
		reminders = []Reminder{}
	}

	raw, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}
	return s.kv.Set(storage.KeyReminders, string(raw))
}

func (s *Store) LoadSettings() Settings {
	raw, ok, err := s.kv.Get(storage.KeyReminderSettings)
	if err != nil {
		slog.Warn("Failed to read reminder settings, using defaults", "error", err)
		return DefaultSettings()
	}
	if !ok {
		return DefaultSettings()
	}

	settings := DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		slog.Warn("Stored reminder settings are corrupt, using defaults", "error", err)
		return DefaultSettings()
	}
	return settings
}

func (s *Store) SaveSettings(settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return s.kv.Set(storage.KeyReminderSettings, string(raw))
}
