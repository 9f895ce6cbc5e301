package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shamikhan005/astrotrack/app/calendar"
	"github.com/shamikhan005/astrotrack/app/event"
	"github.com/shamikhan005/astrotrack/app/reminder"
)

func NewHandler(aggregator AggregatorInterface, scheduler *reminder.Scheduler,
	gateway *reminder.LogGateway) *Handler {
	return &Handler{
		aggregator: aggregator,
		scheduler:  scheduler,
		gateway:    gateway,
	}
}

func (h *Handler) GetEvents(c *gin.Context) {
	events, err := h.aggregator.Run(c.Request.Context())
	if err != nil {
		slog.Error("Aggregation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aggregation failed"})
		return
	}
	h.lastAggregation.Store(int64(len(events)))

	c.JSON(http.StatusOK, gin.H{
		"events":       events,
		"total":        len(events),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetEventCalendarLink(c *gin.Context) {
	id := c.Param("id")
	format := calendar.Format(c.DefaultQuery("format", "google"))
	if format != calendar.FormatGoogle && format != calendar.FormatOutlook {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format must be google or outlook"})
		return
	}

	events, err := h.aggregator.Run(c.Request.Context())
	if err != nil {
		slog.Error("Aggregation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aggregation failed"})
		return
	}

	for _, e := range events {
		if e.ID != id {
			continue
		}

		var link string
		if format == calendar.FormatGoogle {
			link, err = calendar.GoogleCalendarURL(e)
		} else {
			link, err = calendar.OutlookCalendarURL(e)
		}
		if err != nil {
			slog.Error("Calendar link generation failed", "event", id, "error", err)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": link})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Event %s not found", id)})
}

func (h *Handler) ExportEvents(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid export request", "details": err.Error()})
		return
	}

	exportReq := calendar.ExportRequest{
		Format:           calendar.Format(req.Format),
		IncludeReminders: req.IncludeReminders,
	}

	for _, t := range req.EventTypes {
		eventType := event.EventType(t)
		if !eventType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown event type %q", t)})
			return
		}
		exportReq.EventTypes = append(exportReq.EventTypes, eventType)
	}

	if req.RangeStart != "" {
		start, err := event.ParseDate(req.RangeStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rangeStart", "details": err.Error()})
			return
		}
		exportReq.RangeStart = &start
	}
	if req.RangeEnd != "" {
		end, err := event.ParseDate(req.RangeEnd)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rangeEnd", "details": err.Error()})
			return
		}
		exportReq.RangeEnd = &end
	}

	events, err := h.aggregator.Run(c.Request.Context())
	if err != nil {
		slog.Error("Aggregation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aggregation failed"})
		return
	}

	result, err := calendar.Export(events, exportReq)
	if err != nil {
		slog.Error("Export failed", "format", req.Format, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if result.URL != "" {
		c.JSON(http.StatusOK, gin.H{"url": result.URL})
		return
	}

	c.Header("Content-Type", result.MIMEType+"; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.String(http.StatusOK, result.Payload)
}

func (h *Handler) ListReminders(c *gin.Context) {
	reminders := h.scheduler.List()
	c.JSON(http.StatusOK, gin.H{"reminders": reminders, "total": len(reminders)})
}

func (h *Handler) CreateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder request", "details": err.Error()})
		return
	}

	e := event.Event{ID: req.EventID, Name: req.EventName, Date: req.EventDate}

	r, err := h.scheduler.Add(c.Request.Context(), e, reminder.Timing(req.Timing), req.CustomMs)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrTooSoon), errors.Is(err, reminder.ErrDisabled):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, reminder.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, r)
}

func (h *Handler) DeleteReminder(c *gin.Context) {
	id := c.Param("id")
	if err := h.scheduler.Remove(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListNotifications(c *gin.Context) {
	notifications := h.gateway.Recent()
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "total": len(notifications)})
}

func (h *Handler) GetReminderSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Settings())
}

func (h *Handler) UpdateReminderSettings(c *gin.Context) {
	var settings reminder.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings", "details": err.Error()})
		return
	}

	if err := h.scheduler.UpdateSettings(settings); err != nil {
		slog.Error("Failed to persist settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp":               time.Now().In(time.Local).Format(time.RFC3339),
		"reminders":               len(h.scheduler.List()),
		"notification_permission": h.gateway.Permission(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	settings := h.scheduler.Settings()

	c.JSON(http.StatusOK, gin.H{
		"events": gin.H{
			"last_aggregation": h.lastAggregation.Load(),
		},
		"reminders": gin.H{
			"active":  len(h.scheduler.List()),
			"enabled": settings.Enabled,
		},
		"notifications": gin.H{
			"delivered":  len(h.gateway.Recent()),
			"permission": h.gateway.Permission(),
		},
	})
}
