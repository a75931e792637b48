// Package server exposes the services as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/services"
)

// Server provides HTTP handlers for the project board backend.
type Server struct {
	engine  *gin.Engine
	app     *app.App
	logger  *slog.Logger
	bus     *events.Bus
	metrics *Metrics
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithBus lets the server report bus metrics and count change events
func WithBus(bus *events.Bus) Option {
	return func(s *Server) {
		s.bus = bus
	}
}

// New constructs the HTTP server with routes and middleware configured.
func New(a *app.App, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	srv := &Server{
		engine:  router,
		app:     a,
		logger:  slog.Default(),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	router.Use(gin.Recovery())
	router.Use(srv.requestLogger())

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Metrics exposes the request and change counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// registerRoutes wires all API handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.GET("/metrics", s.handleMetrics)

		api.GET("/dashboard", s.handleDashboard)
		api.GET("/board", s.handleBoard)
		api.GET("/gantt", s.handleGantt)
		api.GET("/stats/tasks", s.handleTaskStats)
		api.GET("/stats/projects", s.handleProjectStats)

		projects := api.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.POST("", s.handleCreateProject)
			projects.GET("/:id", s.handleGetProject)
			projects.PATCH("/:id", s.handleUpdateProject)
			projects.DELETE("/:id", s.handleDeleteProject)
			projects.GET("/:id/users", s.handleProjectUsers)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.GET("/:id", s.handleGetTask)
			tasks.PATCH("/:id", s.handleUpdateTask)
			tasks.DELETE("/:id", s.handleDeleteTask)
			tasks.POST("/:id/move", s.handleMoveTask)
			tasks.POST("/:id/attachments", s.handleAddAttachment)
			tasks.DELETE("/:id/attachments/:attachmentID", s.handleRemoveAttachment)
			tasks.GET("/:id/comments", s.handleListComments)
			tasks.POST("/:id/comments", s.handleCreateComment)
		}

		comments := api.Group("/comments")
		{
			comments.PATCH("/:id", s.handleUpdateComment)
			comments.DELETE("/:id", s.handleDeleteComment)
		}

		users := api.Group("/users")
		{
			users.GET("", s.handleListUsers)
			users.POST("", s.handleCreateUser)
			users.GET("/:id", s.handleGetUser)
			users.PATCH("/:id", s.handleUpdateUser)
			users.DELETE("/:id", s.handleDeleteUser)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", s.handleListNotifications)
			notifications.POST("", s.handleCreateNotification)
			notifications.GET("/counts", s.handleNotificationCounts)
			notifications.GET("/unread-count", s.handleUnreadCount)
			notifications.POST("/bulk-read", s.handleBulkRead)
			notifications.GET("/:id", s.handleGetNotification)
			notifications.PATCH("/:id", s.handleUpdateNotification)
			notifications.DELETE("/:id", s.handleDeleteNotification)
			notifications.POST("/:id/read", s.handleMarkRead)
			notifications.POST("/:id/archive", s.handleArchive)
		}
	}
}

// Run serves on addr until ctx is cancelled, then shuts down within
// shutdownTimeout. Change events from the bus are counted while running.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	if s.bus != nil {
		changes, cancel := s.bus.Subscribe(events.Subscription{})
		defer cancel()
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.countChanges(ctx, changes)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("failed to shutdown server", slog.String("error", err.Error()))
		runErr = errors.Join(runErr, err)
	}
	wg.Wait()

	s.logger.Info("server stopped")
	return runErr
}

// countChanges tallies bus events until ctx ends or the bus closes
func (s *Server) countChanges(ctx context.Context, changes <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-changes:
			if !ok {
				return
			}
			s.metrics.recordChange(ev.Type)
		}
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int with error handling.
func parseID(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case services.IsNotFound(err):
		return http.StatusNotFound
	case services.IsValidation(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError logs server-side failures and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, err error) {
	s.respondStatus(c, statusFor(err), err)
}

// respondStatus responds with an explicit status.
func (s *Server) respondStatus(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

// requestLogger records every request through slog and the counters
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		s.metrics.recordRequest(status)
		s.logger.Debug("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)))
	}
}
