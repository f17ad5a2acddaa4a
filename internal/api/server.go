// Package api exposes the tracker as a local JSON HTTP API for a web front end.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/jagruk/internal/logger"
	"github.com/julianstephens/jagruk/internal/tracker"
)

type options struct {
	debug bool
}

type Option func(*options)

// WithDebug runs gin in debug mode.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// Server holds the handlers for one tracker.
type Server struct {
	t *tracker.Tracker
}

// New builds the gin engine with every route registered.
func New(t *tracker.Tracker, opts ...Option) *gin.Engine {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case o.debug:
		gin.SetMode(gin.DebugMode)
	case gin.Mode() != gin.TestMode:
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{t: t}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	s.routes(engine)
	return engine
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/state", s.getState)
		api.GET("/status", s.getStatus)
		api.PATCH("/entries/:date", s.patchEntry)

		api.GET("/habits", s.listHabits)
		api.POST("/habits", s.createHabit)
		api.DELETE("/habits/:id", s.deleteHabit)

		api.POST("/transactions", s.createTransaction)
		api.GET("/finance/month", s.financeMonth)
		api.GET("/finance/week", s.financeWeek)

		api.POST("/goals", s.createGoal)
		api.PATCH("/goals/:id", s.patchGoal)
		api.POST("/goals/:id/toggle", s.toggleGoal)

		api.POST("/import", s.importState)
		api.GET("/export", s.exportJSON)
		api.GET("/export.csv", s.exportCSV)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("api request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
