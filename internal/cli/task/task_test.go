package task

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

func setupCLITest(t *testing.T) (*app.App, context.Context) {
	t.Helper()
	a := app.New(testutil.SetupTestRepo(t))
	return a, cli.WithApp(context.Background(), a)
}

func execute(t *testing.T, ctx context.Context, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	cmd.SetContext(ctx)
	return testutil.ExecuteCommand(t, cmd, args...)
}

func quietID(t *testing.T, output string) int {
	t.Helper()
	id, err := strconv.Atoi(strings.TrimSpace(output))
	require.NoError(t, err, "expected numeric ID, got %q", output)
	return id
}

// ============================================================================
// create
// ============================================================================

func TestCreateTaskCommand(t *testing.T) {
	a, ctx := setupCLITest(t)
	projectID := strconv.Itoa(testutil.CreateTestProject(t, a.Repo(), "Web"))

	t.Run("quiet prints the ID", func(t *testing.T) {
		out, err := execute(t, ctx, CreateCmd(), "--title", "Login", "--project", projectID, "--due", "2024-02-01", "--quiet")
		require.NoError(t, err)

		task, err := a.TaskService.GetTask(ctx, quietID(t, out))
		require.NoError(t, err)
		assert.Equal(t, "Login", task.Title)
		assert.Equal(t, models.StatusTodo, task.Status)
		assert.Equal(t, models.PriorityMedium, task.Priority)
	})

	t.Run("json output", func(t *testing.T) {
		out, err := execute(t, ctx, CreateCmd(), "--title", "API", "--project", projectID, "--due", "2024-02-01",
			"--status", "in_progress", "--priority", "HIGH", "--json")
		require.NoError(t, err)

		result := testutil.ParseJSON(t, out)
		assert.Equal(t, true, result["success"])
		task := result["task"].(map[string]any)
		assert.Equal(t, "in-progress", task["status"])
		assert.Equal(t, "high", task["priority"])
	})

	t.Run("description from stdin", func(t *testing.T) {
		cmd := CreateCmd()
		cmd.SetIn(strings.NewReader("from *stdin*"))
		out, err := execute(t, ctx, cmd, "--title", "Docs", "--project", projectID, "--due", "2024-02-01", "--description", "-", "--quiet")
		require.NoError(t, err)

		task, err := a.TaskService.GetTask(ctx, quietID(t, out))
		require.NoError(t, err)
		assert.Equal(t, "from *stdin*", task.Description)
	})

	t.Run("human output", func(t *testing.T) {
		out, err := execute(t, ctx, CreateCmd(), "--title", "Readme", "--project", projectID, "--due", "2024-02-01")
		require.NoError(t, err)
		assert.Contains(t, out, "Task 'Readme' created successfully")
	})
}

func TestCreateTaskCommand_Errors(t *testing.T) {
	a, ctx := setupCLITest(t)
	projectID := strconv.Itoa(testutil.CreateTestProject(t, a.Repo(), "Web"))

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing due date", []string{"--title", "x", "--project", projectID}, cli.ExitValidation},
		{"empty title", []string{"--title", " ", "--project", projectID, "--due", "2024-02-01"}, cli.ExitValidation},
		{"bad status", []string{"--title", "x", "--project", projectID, "--due", "2024-02-01", "--status", "blocked"}, cli.ExitValidation},
		{"bad priority", []string{"--title", "x", "--project", projectID, "--due", "2024-02-01", "--priority", "urgent"}, cli.ExitValidation},
		{"bad date", []string{"--title", "x", "--project", projectID, "--due", "Feb 1"}, cli.ExitDataErr},
		{"unknown project", []string{"--title", "x", "--project", "999", "--due", "2024-02-01"}, cli.ExitValidation},
		{"unknown assignee", []string{"--title", "x", "--project", projectID, "--due", "2024-02-01", "--assignee", "55"}, cli.ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, ctx, CreateCmd(), tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCode(err))
		})
	}

	tasks, err := a.TaskService.ListTasks(ctx, models.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks, "failed creates store nothing")
}

func TestCreateTaskCommand_RequiresProject(t *testing.T) {
	_, ctx := setupCLITest(t)

	_, err := execute(t, ctx, CreateCmd(), "--title", "x", "--due", "2024-02-01")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "project")
}

// ============================================================================
// list / show
// ============================================================================

func TestListTasksCommand(t *testing.T) {
	a, ctx := setupCLITest(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	todo := testutil.CreateTestTask(t, a.Repo(), projectID, "Todo task", models.StatusTodo)
	done := testutil.CreateTestTask(t, a.Repo(), projectID, "Done task", models.StatusDone)

	out, err := execute(t, ctx, ListCmd(), "--quiet")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{strconv.Itoa(todo.ID), strconv.Itoa(done.ID)}, strings.Fields(out))

	out, err = execute(t, ctx, ListCmd(), "--status", "done", "--json")
	require.NoError(t, err)
	var result struct {
		Tasks []models.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, done.ID, result.Tasks[0].ID)

	out, err = execute(t, ctx, ListCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Todo task")

	out, err = execute(t, ctx, ListCmd(), "--search", "nothing-matches")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found")
}

func TestShowTaskCommand(t *testing.T) {
	a, ctx := setupCLITest(t)
	userID := testutil.CreateTestUser(t, a.Repo(), "ana")
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Review", models.StatusTodo)
	_, err := a.Repo().Comments().Create(ctx, models.Comment{TaskID: task.ID, AuthorID: userID, Content: "ship it"})
	require.NoError(t, err)

	out, err := execute(t, ctx, ShowCmd(), strconv.Itoa(task.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Review")
	assert.Contains(t, out, "No description")
	assert.Contains(t, out, "ship it")

	out, err = execute(t, ctx, ShowCmd(), strconv.Itoa(task.ID), "--json")
	require.NoError(t, err)
	result := testutil.ParseJSON(t, out)
	detail := result["task"].(map[string]any)
	assert.Equal(t, "Review", detail["title"])
	assert.Len(t, detail["comments"], 1)

	_, err = execute(t, ctx, ShowCmd(), "404")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	_, err = execute(t, ctx, ShowCmd(), "abc")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

// ============================================================================
// update / delete / move
// ============================================================================

func TestUpdateTaskCommand(t *testing.T) {
	a, ctx := setupCLITest(t)
	userID := testutil.CreateTestUser(t, a.Repo(), "ana")
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Draft", models.StatusTodo)
	id := strconv.Itoa(task.ID)

	_, err := execute(t, ctx, UpdateCmd(), id, "--progress", "60", "--assignee", strconv.Itoa(userID), "--due", "2024-03-01")
	require.NoError(t, err)

	got, err := a.TaskService.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, got.Progress)
	assert.Equal(t, "Draft", got.Title, "untouched fields keep their value")
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, userID, *got.AssigneeID)
	assert.Equal(t, testutil.Date(2024, 3, 1), got.DueDate.UTC())

	_, err = execute(t, ctx, UpdateCmd(), id, "--unassign")
	require.NoError(t, err)
	got, err = a.TaskService.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID)

	_, err = execute(t, ctx, UpdateCmd(), id, "--progress", "101")
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	_, err = execute(t, ctx, UpdateCmd(), id, "--assignee", "1", "--unassign")
	assert.Error(t, err, "assignee and unassign are exclusive")
}

func TestDeleteTaskCommand(t *testing.T) {
	a, ctx := setupCLITest(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Old", models.StatusTodo)

	out, err := execute(t, ctx, DeleteCmd(), strconv.Itoa(task.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, err = execute(t, ctx, DeleteCmd(), strconv.Itoa(task.ID))
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestMoveTaskCommand(t *testing.T) {
	a, ctx := setupCLITest(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	first := testutil.CreateTestTask(t, a.Repo(), projectID, "First", models.StatusDone)
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Second", models.StatusTodo)

	out, err := execute(t, ctx, MoveCmd(), strconv.Itoa(task.ID), "done", "--json")
	require.NoError(t, err)

	var result struct {
		Task models.Task `json:"task"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, models.StatusDone, result.Task.Status)
	assert.Greater(t, result.Task.Position, first.Position, "moved tasks go to the end of the column")

	_, err = execute(t, ctx, MoveCmd(), strconv.Itoa(task.ID), "archived")
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

// ============================================================================
// stats / attachments
// ============================================================================

func TestStatsCommand(t *testing.T) {
	a, ctx := setupCLITest(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	testutil.CreateTestTask(t, a.Repo(), projectID, "A", models.StatusTodo)
	testutil.CreateTestTask(t, a.Repo(), projectID, "B", models.StatusInProgress)

	out, err := execute(t, ctx, StatsCmd(), "--json")
	require.NoError(t, err)

	var result struct {
		Stats models.TaskStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Stats.TotalTasks)
	assert.Equal(t, 1, result.Stats.InProgressTasks)
}

func TestAttachAndDetachCommands(t *testing.T) {
	a, ctx := setupCLITest(t)
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Spec", models.StatusTodo)
	id := strconv.Itoa(task.ID)

	path := filepath.Join(t.TempDir(), "brief.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	out, err := execute(t, ctx, AttachCmd(), id, path, "--json")
	require.NoError(t, err)
	var result struct {
		Attachment models.Attachment `json:"attachment"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "brief.pdf", result.Attachment.Name)
	assert.Equal(t, "application/pdf", result.Attachment.MimeType)
	assert.EqualValues(t, 8, result.Attachment.Size)
	assert.True(t, strings.HasPrefix(result.Attachment.URL, "file://"))

	_, err = execute(t, ctx, DetachCmd(), id, result.Attachment.ID)
	require.NoError(t, err)

	_, err = execute(t, ctx, DetachCmd(), id, result.Attachment.ID)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	exe := filepath.Join(t.TempDir(), "tool.bin")
	require.NoError(t, os.WriteFile(exe, []byte{0}, 0o600))
	_, err = execute(t, ctx, AttachCmd(), id, exe)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}
