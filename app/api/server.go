package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured.
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	// Aggregated feed and export endpoints
	r.GET("/events", handler.GetEvents)
	r.GET("/events/:id/calendar", handler.GetEventCalendarLink)
	r.POST("/export", handler.ExportEvents)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	// Reminder endpoints (mutations behind the API key when one is set)
	reminders := r.Group("/")
	if apiAccessKey != "" {
		reminders.Use(authMiddleware(apiAccessKey))
		slog.Info("Reminder endpoints enabled with authentication")
	}
	{
		reminders.GET("/reminders", handler.ListReminders)
		reminders.POST("/reminders", handler.CreateReminder)
		reminders.DELETE("/reminders/:id", handler.DeleteReminder)
		reminders.GET("/notifications", handler.ListNotifications)
		reminders.GET("/settings/reminders", handler.GetReminderSettings)
		reminders.PUT("/settings/reminders", handler.UpdateReminderSettings)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "astrotrack",
			"description": "Astronomical event aggregator with calendar export and reminders",
			"endpoints": map[string]string{
				"events":    "/events",
				"calendar":  "/events/<id>/calendar?format=google|outlook",
				"export":    "/export (POST)",
				"reminders": "/reminders",
				"health":    "/health",
				"stats":     "/stats",
			},
		})
	})
}

// authMiddleware validates the X-API-Key header.
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-API-Key") != apiAccessKey {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid or missing API key"})
			return
		}
		c.Next()
	}
}
