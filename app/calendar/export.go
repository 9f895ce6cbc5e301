package calendar

import (
	"fmt"
	"time"

	"github.com/shamikhan005/astrotrack/app/event"
)

type Format string

const (
	FormatICS     Format = "ics"
	FormatGoogle  Format = "google"
	FormatOutlook Format = "outlook"
)

// ExportRequest selects which events to export and how. An empty type set
// means no type filtering; nil range bounds mean no date filtering.
type ExportRequest struct {
	Format           Format
	EventTypes       []event.EventType
	RangeStart       *time.Time
	RangeEnd         *time.Time
	IncludeReminders bool
}

// ExportResult is either a browser-navigable URL (deep-link formats) or a
// downloadable payload with filename and MIME type (ics).
type ExportResult struct {
	URL      string
	Payload  string
	Filename string
	MIMEType string
}

// Export filters events by the request's type set and inclusive date range,
// then delegates to the format-specific builder. The deep-link formats are
// defined for exactly one event; a filtered set of any other size is
// rejected before any output is produced.
func Export(events []event.Event, req ExportRequest) (*ExportResult, error) {
	filtered, err := filterEvents(events, req)
	if err != nil {
		return nil, err
	}

	switch req.Format {
	case FormatICS:
		payload, err := BuildICS(filtered, req.IncludeReminders)
		if err != nil {
			return nil, err
		}

		filename := "astronomical-events.ics"
		if len(filtered) == 1 {
			filename = Filename(filtered[0].Name)
		}

		return &ExportResult{Payload: payload, Filename: filename, MIMEType: MIMEType}, nil

	case FormatGoogle, FormatOutlook:
		if len(filtered) != 1 {
			return nil, fmt.Errorf("%s format exports a single event, %d matched the filter",
				req.Format, len(filtered))
		}

		var link string
		if req.Format == FormatGoogle {
			link, err = GoogleCalendarURL(filtered[0])
		} else {
			link, err = OutlookCalendarURL(filtered[0])
		}
		if err != nil {
			return nil, err
		}

		return &ExportResult{URL: link}, nil

	default:
		return nil, fmt.Errorf("unsupported export format %q", req.Format)
	}
}

func filterEvents(events []event.Event, req ExportRequest) ([]event.Event, error) {
	typeSet := map[event.EventType]bool{}
	for _, t := range req.EventTypes {
		typeSet[t] = true
	}

	var filtered []event.Event
	for _, e := range events {
		if len(typeSet) > 0 && !typeSet[e.Type] {
			continue
		}

		if req.RangeStart != nil || req.RangeEnd != nil {
			date, err := event.ParseDate(e.Date)
			if err != nil {
				return nil, fmt.Errorf("cannot filter event %s: %w", e.ID, err)
			}
			if req.RangeStart != nil && date.Before(*req.RangeStart) {
				continue
			}
			if req.RangeEnd != nil && date.After(*req.RangeEnd) {
				continue
			}
		}

		filtered = append(filtered, e)
	}

	return filtered, nil
}
