package app

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/notify"
	commentservice "github.com/thenoetrevino/tablero/internal/services/comment"
	dashboardservice "github.com/thenoetrevino/tablero/internal/services/dashboard"
	notificationservice "github.com/thenoetrevino/tablero/internal/services/notification"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
	userservice "github.com/thenoetrevino/tablero/internal/services/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher

	logger  *slog.Logger
	closers []io.Closer

	// Service layer (business logic)
	TaskService         taskservice.Service
	ProjectService      projectservice.Service
	UserService         userservice.Service
	CommentService      commentservice.Service
	NotificationService notificationservice.Service
	DashboardService    dashboardservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tasks := taskservice.NewService(repo, cfg.eventClient, taskservice.WithClock(cfg.now))
	projects := projectservice.NewService(repo.Projects(), cfg.eventClient)
	users := userservice.NewService(repo.Users(), cfg.eventClient)

	return &App{
		repo:                repo,
		eventClient:         cfg.eventClient,
		logger:              cfg.logger,
		closers:             cfg.closers,
		TaskService:         tasks,
		ProjectService:      projects,
		UserService:         users,
		CommentService:      commentservice.NewService(repo.Comments(), repo.Tasks(), cfg.eventClient),
		NotificationService: notificationservice.NewService(repo.Notifications(), cfg.eventClient),
		DashboardService:    dashboardservice.NewService(tasks, projects, users),
	}
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// NotificationSync binds a fresh notification store to recipientID
func (a *App) NotificationSync(recipientID int) *notify.Sync {
	return notify.NewSync(notify.NewStore(), a.NotificationService, recipientID, notify.WithLogger(a.logger))
}

// Close releases every registered resource, last registered first
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
