package calendar

import (
	"fmt"
	"net/url"
	"time"

	"github.com/shamikhan005/astrotrack/app/event"
)

// Deep-link builders for single-event "add to calendar" actions. Both carry
// the same semantic content in each provider's documented parameter scheme.

const googleBasicFormat = "20060102T150405Z"

// GoogleCalendarURL builds a Google Calendar event-template link.
func GoogleCalendarURL(e event.Event) (string, error) {
	start, err := event.ParseDate(e.Date)
	if err != nil {
		return "", fmt.Errorf("cannot build calendar link for event %s: %w", e.ID, err)
	}
	end := start.Add(DefaultEventDuration)

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", e.Name)
	params.Set("dates", fmt.Sprintf("%s/%s",
		start.UTC().Format(googleBasicFormat), end.UTC().Format(googleBasicFormat)))
	params.Set("details", e.Description)
	if e.ExternalURL != "" {
		params.Set("location", e.ExternalURL)
	}

	return "https://calendar.google.com/calendar/render?" + params.Encode(), nil
}

// OutlookCalendarURL builds an Outlook web compose deep link.
func OutlookCalendarURL(e event.Event) (string, error) {
	start, err := event.ParseDate(e.Date)
	if err != nil {
		return "", fmt.Errorf("cannot build calendar link for event %s: %w", e.ID, err)
	}
	end := start.Add(DefaultEventDuration)

	params := url.Values{}
	params.Set("path", "/calendar/action/compose")
	params.Set("rru", "addevent")
	params.Set("subject", e.Name)
	params.Set("startdt", start.UTC().Format(time.RFC3339))
	params.Set("enddt", end.UTC().Format(time.RFC3339))
	params.Set("body", e.Description)
	if e.ExternalURL != "" {
		params.Set("location", e.ExternalURL)
	}

	return "https://outlook.live.com/calendar/0/deeplink/compose?" + params.Encode(), nil
}
