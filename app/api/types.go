package api

import (
	"context"
	"sync/atomic"

	"github.com/shamikhan005/astrotrack/app/event"
	"github.com/shamikhan005/astrotrack/app/feed"
	"github.com/shamikhan005/astrotrack/app/reminder"
)

type AggregatorInterface interface {
	Run(ctx context.Context) ([]event.Event, error)
}

var _ AggregatorInterface = (*feed.Aggregator)(nil)

type Handler struct {
	aggregator AggregatorInterface
	scheduler  *reminder.Scheduler
	gateway    *reminder.LogGateway

	// size of the most recent successful aggregation, for /stats
	lastAggregation atomic.Int64
}

// exportRequest is the POST /export body.
type exportRequest struct {
	Format           string   `json:"format" binding:"required"`
	EventTypes       []string `json:"eventTypes"`
	RangeStart       string   `json:"rangeStart"`
	RangeEnd         string   `json:"rangeEnd"`
	IncludeReminders bool     `json:"includeReminders"`
}

// reminderRequest is the POST /reminders body. The event fields are echoed
// back by the client so the server does not need to re-aggregate.
type reminderRequest struct {
	EventID   string `json:"eventId" binding:"required"`
	EventName string `json:"eventName" binding:"required"`
	EventDate string `json:"eventDate" binding:"required"`
	Timing    string `json:"timing" binding:"required"`
	CustomMs  int64  `json:"customMs"`
}
