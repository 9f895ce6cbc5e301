package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/shamikhan005/astrotrack/app/event"
)

const (
	// DefaultEventDuration is applied when an event has no explicit end.
	DefaultEventDuration = time.Hour

	// MIMEType is the media type for the portable calendar payload.
	MIMEType = "text/calendar"

	productID = "-//astrotrack//Astronomical Events//EN"
	uidDomain = "astrotrack"
)

// BuildICS renders events into an iCalendar payload. The library handles
// RFC 5545 text escaping, 75-octet line folding, and the VCALENDAR
// envelope. An event with an unparseable date aborts the build with an
// error naming the event, so a corrupt file is never emitted.
func BuildICS(events []event.Event, includeReminders bool) (string, error) {
	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodPublish)

	now := time.Now().UTC()

	for _, e := range events {
		start, err := event.ParseDate(e.Date)
		if err != nil {
			return "", fmt.Errorf("cannot export event %s: %w", e.ID, err)
		}

		vevent := cal.AddEvent(fmt.Sprintf("%s@%s", e.ID, uidDomain))
		vevent.SetDtStampTime(now)
		vevent.SetStartAt(start.UTC())
		vevent.SetEndAt(start.UTC().Add(DefaultEventDuration))
		vevent.SetSummary(e.Name)
		vevent.SetDescription(e.Description)
		vevent.SetProperty(ics.ComponentPropertyCategories, string(e.Type))
		if e.ExternalURL != "" {
			vevent.SetURL(e.ExternalURL)
		}

		if includeReminders {
			alarm := vevent.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger("-PT1H")
		}
	}

	return cal.Serialize(), nil
}
