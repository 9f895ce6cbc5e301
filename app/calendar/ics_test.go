package calendar

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/shamikhan005/astrotrack/app/event"
)

func TestBuildICS_RoundTrip(t *testing.T) {
	events := []event.Event{
		{
			ID:          "geminids-2025",
			Name:        "Geminids",
			Description: "The year's best meteor shower, visible almost all night. Radiant: Gemini",
			Type:        event.TypeMeteorShower,
			Date:        "2025-12-14T00:00:00Z",
		},
	}

	payload, err := BuildICS(events, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(payload, "BEGIN:VCALENDAR") || !strings.Contains(payload, "END:VCALENDAR") {
		t.Error("Missing calendar envelope")
	}
	if !strings.Contains(payload, "PRODID:") || !strings.Contains(payload, "VERSION:2.0") {
		t.Error("Missing required headers")
	}

	cal, err := ics.ParseCalendar(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Generated payload failed to parse back: %v", err)
	}

	parsed := cal.Events()
	if len(parsed) != 1 {
		t.Fatalf("Expected 1 VEVENT, got %d", len(parsed))
	}

	vevent := parsed[0]
	if got := vevent.GetProperty(ics.ComponentPropertyUniqueId).Value; got != "geminids-2025@astrotrack" {
		t.Errorf("Expected stable UID, got %q", got)
	}
	if got := vevent.GetProperty(ics.ComponentPropertySummary).Value; got != "Geminids" {
		t.Errorf("Expected summary round-trip, got %q", got)
	}

	start, err := vevent.GetStartAt()
	if err != nil {
		t.Fatalf("Expected parseable DTSTART, got %v", err)
	}
	expected := time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC)
	if !start.Equal(expected) {
		t.Errorf("Expected start %v, got %v", expected, start)
	}

	end, err := vevent.GetEndAt()
	if err != nil {
		t.Fatalf("Expected parseable DTEND, got %v", err)
	}
	if !end.Equal(expected.Add(time.Hour)) {
		t.Errorf("Expected derived end one hour after start, got %v", end)
	}

	description := vevent.GetProperty(ics.ComponentPropertyDescription).Value
	if !strings.Contains(description, "meteor shower") {
		t.Errorf("Expected description round-trip, got %q", description)
	}
}

func TestBuildICS_EscapesReservedCharacters(t *testing.T) {
	events := []event.Event{
		{
			ID:          "x",
			Name:        "Mars, Saturn; and friends",
			Description: "line one\nline two",
			Type:        event.TypePlanetaryConjunction,
			Date:        "2025-04-16",
		},
	}

	payload, err := BuildICS(events, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(payload, `\,`) {
		t.Error("Expected escaped comma in SUMMARY")
	}
	if !strings.Contains(payload, `\n`) {
		t.Error("Expected escaped newline in DESCRIPTION")
	}

	if _, err := ics.ParseCalendar(strings.NewReader(payload)); err != nil {
		t.Errorf("Escaped payload failed to parse back: %v", err)
	}
}

func TestBuildICS_FoldsLongLines(t *testing.T) {
	events := []event.Event{
		{
			ID:          "long",
			Name:        "Event",
			Description: strings.Repeat("very long description ", 30),
			Type:        event.TypeOther,
			Date:        "2025-12-14",
		},
	}

	payload, err := BuildICS(events, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, line := range strings.Split(payload, "\r\n") {
		if len(line) > 75 {
			t.Errorf("Unfolded line of %d octets: %.80q", len(line), line)
		}
	}
}

func TestBuildICS_UnparseableDateNamesEvent(t *testing.T) {
	events := []event.Event{
		{ID: "ok", Name: "Fine", Type: event.TypeOther, Date: "2025-12-14"},
		{ID: "broken-event", Name: "Broken", Type: event.TypeOther, Date: "sometime soon"},
	}

	_, err := BuildICS(events, false)
	if err == nil {
		t.Fatal("Expected error for unparseable date")
	}
	if !strings.Contains(err.Error(), "broken-event") {
		t.Errorf("Expected error to identify the event, got %q", err)
	}
}

func TestBuildICS_IncludesReminders(t *testing.T) {
	events := []event.Event{
		{ID: "x", Name: "Event", Type: event.TypeOther, Date: "2025-12-14"},
	}

	payload, err := BuildICS(events, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(payload, "BEGIN:VALARM") || !strings.Contains(payload, "-PT1H") {
		t.Error("Expected a display alarm one hour before the event")
	}
}
