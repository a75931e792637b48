package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

func setupServer(t *testing.T) (*Server, *app.App) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	a := app.New(repo, app.WithClock(func() time.Time {
		return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	}))
	return New(a), a
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// ============================================================================
// Health & metrics
// ============================================================================

func TestHealth(t *testing.T) {
	s, _ := setupServer(t)

	rec := do(t, s, http.MethodGet, "/api/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetrics_CountsErrors(t *testing.T) {
	s, _ := setupServer(t)

	do(t, s, http.MethodGet, "/api/healthz", nil)
	do(t, s, http.MethodGet, "/api/tasks/abc", nil)
	do(t, s, http.MethodGet, "/api/tasks/999", nil)

	assert.EqualValues(t, 3, s.Metrics().Requests.Load())
	assert.EqualValues(t, 2, s.Metrics().ClientErrors.Load())
	assert.EqualValues(t, 0, s.Metrics().ServerErrors.Load())

	rec := do(t, s, http.MethodGet, "/api/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.EqualValues(t, 3, body["requests"])
	assert.NotContains(t, body, "events")
}

// ============================================================================
// Tasks
// ============================================================================

func TestCreateTask(t *testing.T) {
	s, a := setupServer(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")

	rec := do(t, s, http.MethodPost, "/api/tasks", map[string]any{
		"title":      "Design login",
		"project_id": projectID,
		"due_date":   "2024-01-20",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := decode[struct {
		Task models.Task `json:"task"`
	}](t, rec)
	assert.Equal(t, "Design login", got.Task.Title)
	assert.Equal(t, models.StatusTodo, got.Task.Status)
	assert.Equal(t, models.PriorityMedium, got.Task.Priority)
	assert.True(t, got.Task.DueDate.Equal(testutil.Date(2024, time.January, 20)))
}

func TestCreateTask_Errors(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"empty title", map[string]any{"title": "", "due_date": "2024-01-20"}, http.StatusBadRequest},
		{"bad date", map[string]any{"title": "x", "due_date": "next week"}, http.StatusBadRequest},
		{"unknown project", map[string]any{"title": "x", "due_date": "2024-01-20", "project_id": 42}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := setupServer(t)
			rec := do(t, s, http.MethodPost, "/api/tasks", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestGetTask_NotFound(t *testing.T) {
	s, _ := setupServer(t)

	rec := do(t, s, http.MethodGet, "/api/tasks/12", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTask_InvalidID(t *testing.T) {
	s, _ := setupServer(t)

	for _, id := range []string{"abc", "0", "-3"} {
		rec := do(t, s, http.MethodGet, "/api/tasks/"+id, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestUpdateAndDeleteTask(t *testing.T) {
	s, a := setupServer(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Draft", models.StatusTodo)

	rec := do(t, s, http.MethodPatch, "/api/tasks/"+itoa(task.ID), map[string]any{"progress": 40})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[struct {
		Task models.Task `json:"task"`
	}](t, rec)
	assert.Equal(t, 40, got.Task.Progress)
	assert.Equal(t, "Draft", got.Task.Title)

	rec = do(t, s, http.MethodDelete, "/api/tasks/"+itoa(task.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/tasks/"+itoa(task.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMoveTask(t *testing.T) {
	s, a := setupServer(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Ship", models.StatusTodo)

	rec := do(t, s, http.MethodPost, "/api/tasks/"+itoa(task.ID)+"/move", map[string]any{"status": "in-progress"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	board := do(t, s, http.MethodGet, "/api/board", nil)
	require.Equal(t, http.StatusOK, board.Code)
	got := decode[struct {
		Columns []struct {
			Status models.Status `json:"status"`
			Tasks  []models.Task `json:"tasks"`
		} `json:"columns"`
	}](t, board)
	require.Len(t, got.Columns, 3)
	assert.Empty(t, got.Columns[0].Tasks)
	require.Len(t, got.Columns[1].Tasks, 1)
	assert.Equal(t, task.ID, got.Columns[1].Tasks[0].ID)
}

func TestMoveTask_BadStatus(t *testing.T) {
	s, a := setupServer(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Ship", models.StatusTodo)

	rec := do(t, s, http.MethodPost, "/api/tasks/"+itoa(task.ID)+"/move", map[string]any{"status": "blocked"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttachments(t *testing.T) {
	s, a := setupServer(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Spec", models.StatusTodo)

	rec := do(t, s, http.MethodPost, "/api/tasks/"+itoa(task.ID)+"/attachments", map[string]any{
		"name":      "brief.pdf",
		"size":      2048,
		"mime_type": "application/pdf",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := decode[struct {
		Task models.Task `json:"task"`
	}](t, rec)
	require.Len(t, got.Task.Attachments, 1)
	attID := got.Task.Attachments[0].ID
	assert.NotEmpty(t, attID)

	rec = do(t, s, http.MethodDelete, "/api/tasks/"+itoa(task.ID)+"/attachments/"+attID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/tasks/"+itoa(task.ID)+"/attachments/"+attID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// Views
// ============================================================================

func TestGantt(t *testing.T) {
	s, a := setupServer(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	testutil.CreateTestTask(t, a.Repo(), projectID, "Plan", models.StatusTodo)

	rec := do(t, s, http.MethodGet, "/api/gantt?week_start=monday", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[struct {
		Layout struct {
			StartDate  time.Time         `json:"start_date"`
			ChartTasks []json.RawMessage `json:"chart_tasks"`
		} `json:"layout"`
		TotalDays int `json:"total_days"`
	}](t, rec)
	assert.Equal(t, time.Monday, got.Layout.StartDate.Weekday())
	assert.Len(t, got.Layout.ChartTasks, 1)
	assert.Equal(t, 0, got.TotalDays%7)
}

func TestGantt_Empty(t *testing.T) {
	s, _ := setupServer(t)

	rec := do(t, s, http.MethodGet, "/api/gantt", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"chart_tasks":[]`)
}

func TestStats(t *testing.T) {
	s, a := setupServer(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	testutil.CreateTestTask(t, a.Repo(), projectID, "A", models.StatusTodo)
	testutil.CreateTestTask(t, a.Repo(), projectID, "B", models.StatusDone)

	rec := do(t, s, http.MethodGet, "/api/stats/tasks?project_id="+itoa(projectID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.TaskStats](t, rec)
	assert.Equal(t, 2, stats.TotalTasks)
	assert.Equal(t, 1, stats.DoneTasks)

	rec = do(t, s, http.MethodGet, "/api/stats/tasks?project_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/stats/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[models.ProjectStats](t, rec).TotalProjects)
}

func TestDashboard(t *testing.T) {
	s, a := setupServer(t)
	testutil.CreateTestUser(t, a.Repo(), "ana")

	rec := do(t, s, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"team_size":1`)
}

// ============================================================================
// Projects, users & comments
// ============================================================================

func TestProjectLifecycle(t *testing.T) {
	s, _ := setupServer(t)

	rec := do(t, s, http.MethodPost, "/api/projects", map[string]any{"name": "Mobile", "due_date": "2024-03-01"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		Project models.Project `json:"project"`
	}](t, rec).Project
	assert.Equal(t, models.ProjectActive, created.Status)

	rec = do(t, s, http.MethodPatch, "/api/projects/"+itoa(created.ID), map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/projects?status=completed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Projects []models.Project `json:"projects"`
	}](t, rec).Projects
	require.Len(t, list, 1)
	assert.Equal(t, "Mobile", list[0].Name)

	rec = do(t, s, http.MethodDelete, "/api/projects/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUsers(t *testing.T) {
	s, _ := setupServer(t)

	rec := do(t, s, http.MethodPost, "/api/users", map[string]any{"name": "Ana", "email": "ANA@Example.com", "role": "Designer"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	u := decode[struct {
		User models.User `json:"user"`
	}](t, rec).User
	assert.Equal(t, "ana@example.com", u.Email)

	rec = do(t, s, http.MethodPost, "/api/users", map[string]any{"name": "Bob", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/users/"+itoa(u.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestComments(t *testing.T) {
	s, a := setupServer(t)
	userID := testutil.CreateTestUser(t, a.Repo(), "ana")
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Review", models.StatusTodo)

	path := "/api/tasks/" + itoa(task.ID) + "/comments"
	rec := do(t, s, http.MethodPost, path, map[string]any{"author_id": userID, "content": "  looks good  "})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[struct {
		Comment models.Comment `json:"comment"`
	}](t, rec).Comment
	assert.Equal(t, "looks good", c.Content)

	rec = do(t, s, http.MethodPatch, "/api/comments/"+itoa(c.ID), map[string]any{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[struct {
		Comments []models.Comment `json:"comments"`
	}](t, rec).Comments, 1)

	rec = do(t, s, http.MethodDelete, "/api/comments/"+itoa(c.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// ============================================================================
// Notifications
// ============================================================================

func TestNotifications(t *testing.T) {
	s, a := setupServer(t)
	userID := testutil.CreateTestUser(t, a.Repo(), "ana")
	first := testutil.CreateTestNotification(t, a.Repo(), userID, "first")
	second := testutil.CreateTestNotification(t, a.Repo(), userID, "second")

	rec := do(t, s, http.MethodGet, "/api/notifications/unread-count?recipient_id="+itoa(userID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unread":2}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/api/notifications/"+itoa(first)+"/archive", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/notifications/bulk-read", map[string]any{"ids": []int{first, second}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"updated":1}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/notifications/counts?recipient_id="+itoa(userID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	counts := decode[models.NotificationCounts](t, rec)
	assert.Equal(t, models.NotificationCounts{Unread: 0, Read: 1, Archived: 1}, counts)

	rec = do(t, s, http.MethodPatch, "/api/notifications/"+itoa(first), map[string]any{"status": "unread"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotifications_Pagination(t *testing.T) {
	s, a := setupServer(t)
	userID := testutil.CreateTestUser(t, a.Repo(), "ana")
	for _, msg := range []string{"a", "b", "c"} {
		testutil.CreateTestNotification(t, a.Repo(), userID, msg)
	}

	rec := do(t, s, http.MethodGet, "/api/notifications?limit=2&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[struct {
		Notifications []models.Notification `json:"notifications"`
	}](t, rec).Notifications, 1)

	rec = do(t, s, http.MethodGet, "/api/notifications?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/notifications/counts", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Run
// ============================================================================

func TestRun_ShutsDownAndCountsChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	repo := testutil.SetupTestRepo(t)
	bus := events.NewBus()
	a := app.New(repo, app.WithEventPublisher(bus))
	s := New(a, WithBus(bus))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0", time.Second) }()

	require.Eventually(t, func() bool {
		return bus.Metrics().Subscribers.Load() == 1
	}, time.Second, time.Millisecond)

	_, err := a.UserService.CreateUser(ctx, userRequest("ana"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return s.Metrics().Changes()[events.EventUserChanged] == 1
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	require.NoError(t, bus.Close())
}
