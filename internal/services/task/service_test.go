package task

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func setupService(t *testing.T) (Service, *database.Repository, *recordingPublisher) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	pub := &recordingPublisher{}
	now := func() time.Time { return testutil.Date(2024, time.January, 15) }
	return NewService(repo, pub, WithClock(now)), repo, pub
}

func validRequest(projectID int) CreateTaskRequest {
	return CreateTaskRequest{
		Title:     "Write docs",
		DueDate:   testutil.Date(2024, time.February, 1),
		ProjectID: projectID,
	}
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreateTask(t *testing.T) {
	svc, repo, pub := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")

	task, err := svc.CreateTask(ctx, validRequest(projectID))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if task.ID == 0 {
		t.Error("Expected task ID to be set")
	}
	if task.Status != models.StatusTodo {
		t.Errorf("Expected default status todo, got %s", task.Status)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Expected default priority medium, got %s", task.Priority)
	}
	if task.Position != models.FirstPosition {
		t.Errorf("Expected position %d, got %d", models.FirstPosition, task.Position)
	}
	if pub.count() != 1 {
		t.Errorf("Expected 1 event, got %d", pub.count())
	}
}

func TestCreateTask_AppendsToColumn(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")

	first, err := svc.CreateTask(ctx, validRequest(projectID))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	second, err := svc.CreateTask(ctx, validRequest(projectID))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if second.Position <= first.Position {
		t.Errorf("Expected second position > %d, got %d", first.Position, second.Position)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	svc, repo, pub := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, "Project")

	tests := []struct {
		name    string
		mutate  func(*CreateTaskRequest)
		wantErr error
	}{
		{"empty title", func(r *CreateTaskRequest) { r.Title = "   " }, ErrEmptyTitle},
		{"title too long", func(r *CreateTaskRequest) { r.Title = strings.Repeat("a", 256) }, ErrTitleTooLong},
		{"missing due date", func(r *CreateTaskRequest) { r.DueDate = time.Time{} }, ErrMissingDueDate},
		{"invalid project id", func(r *CreateTaskRequest) { r.ProjectID = 0 }, ErrInvalidProjectID},
		{"progress above 100", func(r *CreateTaskRequest) { r.Progress = 101 }, ErrInvalidProgress},
		{"negative progress", func(r *CreateTaskRequest) { r.Progress = -1 }, ErrInvalidProgress},
		{"invalid status", func(r *CreateTaskRequest) { r.Status = "blocked" }, ErrInvalidStatus},
		{"invalid priority", func(r *CreateTaskRequest) { r.Priority = "urgent" }, ErrInvalidPriority},
		{"unknown project", func(r *CreateTaskRequest) { r.ProjectID = 999 }, ErrProjectNotFound},
		{"unknown assignee", func(r *CreateTaskRequest) { r.AssigneeID = testutil.IntPtr(999) }, ErrAssigneeNotFound},
		{
			"attachment too large",
			func(r *CreateTaskRequest) {
				r.Attachments = []models.Attachment{{Name: "big.pdf", Size: 11 * 1024 * 1024, MimeType: "application/pdf"}}
			},
			ErrAttachmentTooLarge,
		},
		{
			"unsupported attachment",
			func(r *CreateTaskRequest) {
				r.Attachments = []models.Attachment{{Name: "run.exe", Size: 10, MimeType: "application/x-msdownload"}}
			},
			ErrUnsupportedAttachment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(projectID)
			tt.mutate(&req)
			_, err := svc.CreateTask(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if pub.count() != 0 {
		t.Errorf("Expected no events for rejected creates, got %d", pub.count())
	}
}

func TestCreateTask_AttachmentsGetIDs(t *testing.T) {
	svc, repo, _ := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, "Project")

	req := validRequest(projectID)
	req.Attachments = []models.Attachment{{Name: "design.pdf", Size: 1024, MimeType: "application/pdf"}}

	task, err := svc.CreateTask(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if len(task.Attachments) != 1 {
		t.Fatalf("Expected 1 attachment, got %d", len(task.Attachments))
	}
	if task.Attachments[0].ID == "" {
		t.Error("Expected attachment ID to be generated")
	}
	if task.Attachments[0].UploadedAt.IsZero() {
		t.Error("Expected upload time to be stamped")
	}
}

// ============================================================================
// READ
// ============================================================================

func TestGetTask_InvalidID(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.GetTask(context.Background(), 0)
	if !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("Expected ErrInvalidTaskID, got %v", err)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.GetTask(context.Background(), 42)
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetBoard(t *testing.T) {
	svc, repo, _ := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, "Project")
	testutil.CreateTestTask(t, repo, projectID, "a", models.StatusTodo)
	testutil.CreateTestTask(t, repo, projectID, "b", models.StatusTodo)
	testutil.CreateTestTask(t, repo, projectID, "c", models.StatusDone)

	// the status filter is ignored for boards
	columns, err := svc.GetBoard(context.Background(), models.TaskFilter{ProjectID: projectID, Status: models.StatusDone})
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}

	if len(columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(columns))
	}
	if got := len(columns[0].Tasks); got != 2 {
		t.Errorf("Expected 2 todo tasks, got %d", got)
	}
	if got := len(columns[1].Tasks); got != 0 {
		t.Errorf("Expected 0 in-progress tasks, got %d", got)
	}
	if got := len(columns[2].Tasks); got != 1 {
		t.Errorf("Expected 1 done task, got %d", got)
	}
}

func TestGetGantt(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")
	userID := testutil.CreateTestUser(t, repo, "alice")

	req := validRequest(projectID)
	req.AssigneeID = &userID
	if _, err := svc.CreateTask(ctx, req); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	layout, err := svc.GetGantt(ctx, models.TaskFilter{ProjectID: projectID})
	if err != nil {
		t.Fatalf("GetGantt failed: %v", err)
	}
	if len(layout.ChartTasks) != 1 {
		t.Fatalf("Expected 1 chart task, got %d", len(layout.ChartTasks))
	}
	if layout.ChartTasks[0].Assignee == nil || layout.ChartTasks[0].Assignee.ID != userID {
		t.Errorf("Expected assignee %d to be resolved", userID)
	}
	if len(layout.Weeks) == 0 {
		t.Error("Expected at least one week")
	}
}

func TestGetGantt_Empty(t *testing.T) {
	svc, _, _ := setupService(t)

	layout, err := svc.GetGantt(context.Background(), models.TaskFilter{})
	if err != nil {
		t.Fatalf("GetGantt failed: %v", err)
	}
	if !layout.Empty() {
		t.Error("Expected empty layout")
	}
}

func TestComputeStats(t *testing.T) {
	now := testutil.Date(2024, time.January, 15)
	past := testutil.Date(2024, time.January, 1)
	future := testutil.Date(2024, time.February, 1)

	tasks := []models.Task{
		{Status: models.StatusTodo, DueDate: past},
		{Status: models.StatusTodo, DueDate: future},
		{Status: models.StatusInProgress, DueDate: past},
		{Status: models.StatusDone, DueDate: past},
	}

	got := ComputeStats(tasks, now)
	want := models.TaskStats{TotalTasks: 4, TodoTasks: 2, InProgressTasks: 1, DoneTasks: 1, OverdueTasks: 2}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestGetStats(t *testing.T) {
	svc, repo, _ := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, "Project")
	otherID := testutil.CreateTestProject(t, repo, "Other")
	testutil.CreateTestTask(t, repo, projectID, "a", models.StatusTodo)
	testutil.CreateTestTask(t, repo, projectID, "b", models.StatusDone)
	testutil.CreateTestTask(t, repo, otherID, "c", models.StatusInProgress)

	stats, err := svc.GetStats(context.Background(), projectID)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	// seeded tasks are due Jan 20, the clock says Jan 15
	want := models.TaskStats{TotalTasks: 2, TodoTasks: 1, DoneTasks: 1}
	if stats != want {
		t.Errorf("Expected %+v, got %+v", want, stats)
	}

	all, err := svc.GetStats(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if all.TotalTasks != 3 {
		t.Errorf("Expected 3 tasks overall, got %d", all.TotalTasks)
	}
}

func TestRecentTasks(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, CreatedAt: testutil.Date(2024, time.January, 1)},
		{ID: 2, CreatedAt: testutil.Date(2024, time.January, 3)},
		{ID: 3, CreatedAt: testutil.Date(2024, time.January, 2)},
	}

	recent := RecentTasks(tasks, 2)
	if len(recent) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(recent))
	}
	if recent[0].ID != 2 || recent[1].ID != 3 {
		t.Errorf("Expected IDs [2 3], got [%d %d]", recent[0].ID, recent[1].ID)
	}
	if tasks[0].ID != 1 {
		t.Error("RecentTasks must not reorder its input")
	}
}

// ============================================================================
// UPDATE / DELETE
// ============================================================================

func TestUpdateTask(t *testing.T) {
	svc, repo, pub := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")
	task := testutil.CreateTestTask(t, repo, projectID, "Old", models.StatusTodo)

	title := "New"
	progress := 40
	updated, err := svc.UpdateTask(ctx, task.ID, models.TaskPatch{Title: &title, Progress: &progress})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	if updated.Title != "New" || updated.Progress != 40 {
		t.Errorf("Expected title New and progress 40, got %q and %d", updated.Title, updated.Progress)
	}
	if pub.count() != 1 {
		t.Errorf("Expected 1 event, got %d", pub.count())
	}
}

func TestUpdateTask_EmptyTitle(t *testing.T) {
	svc, repo, _ := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, "Project")
	task := testutil.CreateTestTask(t, repo, projectID, "Old", models.StatusTodo)

	empty := ""
	_, err := svc.UpdateTask(context.Background(), task.ID, models.TaskPatch{Title: &empty})
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
}

func TestUpdateTask_ClearAssignee(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")
	userID := testutil.CreateTestUser(t, repo, "bob")
	task := testutil.CreateTestTask(t, repo, projectID, "Task", models.StatusTodo)

	assigned, err := svc.UpdateTask(ctx, task.ID, models.TaskPatch{AssigneeID: &userID})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if assigned.AssigneeID == nil || *assigned.AssigneeID != userID {
		t.Fatalf("Expected assignee %d", userID)
	}

	cleared, err := svc.UpdateTask(ctx, task.ID, models.TaskPatch{ClearAssignee: true})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if cleared.AssigneeID != nil {
		t.Errorf("Expected no assignee, got %d", *cleared.AssigneeID)
	}
}

func TestUpdateTask_InvalidID(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.UpdateTask(context.Background(), -1, models.TaskPatch{})
	if !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("Expected ErrInvalidTaskID, got %v", err)
	}
}

func TestUpdateTask_StatusChangeAppendsToColumn(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")
	done := testutil.CreateTestTask(t, repo, projectID, "Shipped", models.StatusDone)
	task := testutil.CreateTestTask(t, repo, projectID, "Finish me", models.StatusTodo)

	status := models.StatusDone
	updated, err := svc.UpdateTask(ctx, task.ID, models.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	if updated.Status != models.StatusDone {
		t.Errorf("Expected status done, got %s", updated.Status)
	}
	if updated.Position != done.Position+1 {
		t.Errorf("Expected position %d, got %d", done.Position+1, updated.Position)
	}
}

func TestUpdateTask_ProjectChangeAppendsToColumn(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	fromID := testutil.CreateTestProject(t, repo, "From")
	toID := testutil.CreateTestProject(t, repo, "To")
	resident := testutil.CreateTestTask(t, repo, toID, "Resident", models.StatusTodo)
	task := testutil.CreateTestTask(t, repo, fromID, "Traveller", models.StatusTodo)

	updated, err := svc.UpdateTask(ctx, task.ID, models.TaskPatch{ProjectID: &toID})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	if updated.ProjectID != toID {
		t.Errorf("Expected project %d, got %d", toID, updated.ProjectID)
	}
	if updated.Position == resident.Position {
		t.Errorf("Expected a position other than %d", resident.Position)
	}

	column, err := svc.ListTasks(ctx, models.TaskFilter{ProjectID: toID, Status: models.StatusTodo})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	seen := map[int]bool{}
	for _, task := range column {
		if seen[task.Position] {
			t.Errorf("Duplicate position %d in column", task.Position)
		}
		seen[task.Position] = true
	}
}

func TestUpdateTask_SameColumnKeepsPosition(t *testing.T) {
	svc, repo, _ := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, "Project")
	testutil.CreateTestTask(t, repo, projectID, "First", models.StatusTodo)
	task := testutil.CreateTestTask(t, repo, projectID, "Second", models.StatusTodo)

	title := "Renamed"
	updated, err := svc.UpdateTask(context.Background(), task.ID, models.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.Position != task.Position {
		t.Errorf("Expected position %d unchanged, got %d", task.Position, updated.Position)
	}
}

func TestUpdateTask_PositionTaken(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")
	first := testutil.CreateTestTask(t, repo, projectID, "First", models.StatusTodo)
	second := testutil.CreateTestTask(t, repo, projectID, "Second", models.StatusTodo)

	position := first.Position
	_, err := svc.UpdateTask(ctx, second.ID, models.TaskPatch{Position: &position})
	if !errors.Is(err, ErrPositionTaken) {
		t.Fatalf("Expected ErrPositionTaken, got %v", err)
	}

	unchanged, err := svc.GetTask(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if unchanged.Position != second.Position {
		t.Errorf("Expected position %d kept, got %d", second.Position, unchanged.Position)
	}

	// a free slot in another column is fine
	status := models.StatusDone
	moved, err := svc.UpdateTask(ctx, second.ID, models.TaskPatch{Status: &status, Position: &position})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if moved.Position != position {
		t.Errorf("Expected position %d, got %d", position, moved.Position)
	}
}

func TestDeleteTask(t *testing.T) {
	svc, repo, pub := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")
	task := testutil.CreateTestTask(t, repo, projectID, "Doomed", models.StatusTodo)

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, err := svc.GetTask(ctx, task.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected task to be gone, got %v", err)
	}
	if pub.count() != 1 {
		t.Errorf("Expected 1 event, got %d", pub.count())
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	svc, _, _ := setupService(t)

	err := svc.DeleteTask(context.Background(), 77)
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// ============================================================================
// MOVE
// ============================================================================

func TestMoveTask(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")
	existing := testutil.CreateTestTask(t, repo, projectID, "Already done", models.StatusDone)
	task := testutil.CreateTestTask(t, repo, projectID, "Finish me", models.StatusTodo)

	moved, err := svc.MoveTask(ctx, task.ID, models.StatusDone)
	if err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}

	if moved.Status != models.StatusDone {
		t.Errorf("Expected status done, got %s", moved.Status)
	}
	if moved.Position <= existing.Position {
		t.Errorf("Expected moved task after position %d, got %d", existing.Position, moved.Position)
	}
}

func TestMoveTask_SameColumn(t *testing.T) {
	svc, repo, pub := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, "Project")
	task := testutil.CreateTestTask(t, repo, projectID, "Stay", models.StatusInProgress)

	moved, err := svc.MoveTask(context.Background(), task.ID, models.StatusInProgress)
	if err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}
	if moved.Position != task.Position {
		t.Errorf("Expected position %d unchanged, got %d", task.Position, moved.Position)
	}
	if pub.count() != 0 {
		t.Errorf("Expected no events for a no-op move, got %d", pub.count())
	}
}

func TestMoveTask_InvalidStatus(t *testing.T) {
	svc, repo, _ := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, "Project")
	task := testutil.CreateTestTask(t, repo, projectID, "Task", models.StatusTodo)

	_, err := svc.MoveTask(context.Background(), task.ID, "review")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

// ============================================================================
// ATTACHMENTS
// ============================================================================

func TestAddAndRemoveAttachment(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Project")
	task := testutil.CreateTestTask(t, repo, projectID, "Task", models.StatusTodo)

	withFile, err := svc.AddAttachment(ctx, task.ID, models.Attachment{
		Name:     "notes.txt",
		Size:     12,
		MimeType: "text/plain",
	})
	if err != nil {
		t.Fatalf("AddAttachment failed: %v", err)
	}
	if len(withFile.Attachments) != 1 {
		t.Fatalf("Expected 1 attachment, got %d", len(withFile.Attachments))
	}

	id := withFile.Attachments[0].ID
	without, err := svc.RemoveAttachment(ctx, task.ID, id)
	if err != nil {
		t.Fatalf("RemoveAttachment failed: %v", err)
	}
	if len(without.Attachments) != 0 {
		t.Errorf("Expected no attachments, got %d", len(without.Attachments))
	}

	_, err = svc.RemoveAttachment(ctx, task.ID, id)
	if !errors.Is(err, ErrAttachmentNotFound) {
		t.Errorf("Expected ErrAttachmentNotFound, got %v", err)
	}
}

func TestAddAttachment_Rejected(t *testing.T) {
	svc, repo, _ := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, "Project")
	task := testutil.CreateTestTask(t, repo, projectID, "Task", models.StatusTodo)

	_, err := svc.AddAttachment(context.Background(), task.ID, models.Attachment{Name: "", MimeType: "text/plain"})
	if !errors.Is(err, ErrEmptyAttachmentName) {
		t.Errorf("Expected ErrEmptyAttachmentName, got %v", err)
	}
}
