package comment

import (
	"context"
	"encoding/json"
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

type fixture struct {
	app    *app.App
	ctx    context.Context
	taskID string
	userID int
}

func setup(t *testing.T) fixture {
	t.Helper()
	a := app.New(testutil.SetupTestRepo(t))
	userID := testutil.CreateTestUser(t, a.Repo(), "ana")
	projectID := testutil.CreateTestProject(t, a.Repo(), "Web")
	task := testutil.CreateTestTask(t, a.Repo(), projectID, "Review", models.StatusTodo)
	return fixture{
		app:    a,
		ctx:    cli.WithApp(context.Background(), a),
		taskID: strconv.Itoa(task.ID),
		userID: userID,
	}
}

func (fx fixture) run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	cmd.SetContext(fx.ctx)
	return testutil.ExecuteCommand(t, cmd, args...)
}

func TestAddCommentCommand(t *testing.T) {
	fx := setup(t)

	t.Run("explicit author", func(t *testing.T) {
		out, err := fx.run(t, AddCmd(), fx.taskID, "  first  ", "--author", strconv.Itoa(fx.userID), "--json")
		require.NoError(t, err)

		var result struct {
			Comment models.Comment `json:"comment"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, "first", result.Comment.Content)
		assert.Equal(t, fx.userID, result.Comment.AuthorID)
	})

	t.Run("author from login", func(t *testing.T) {
		t.Setenv(cli.LoginEnv, "ana")
		_, err := fx.run(t, AddCmd(), fx.taskID, "second")
		require.NoError(t, err)
	})

	t.Run("unknown login", func(t *testing.T) {
		t.Setenv(cli.LoginEnv, "ghost")
		_, err := fx.run(t, AddCmd(), fx.taskID, "third")
		assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := fx.run(t, AddCmd(), "999", "hello", "--author", strconv.Itoa(fx.userID))
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})

	t.Run("blank content", func(t *testing.T) {
		_, err := fx.run(t, AddCmd(), fx.taskID, "   ", "--author", strconv.Itoa(fx.userID))
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})

	out, err := fx.run(t, ListCmd(), fx.taskID)
	require.NoError(t, err)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.NotContains(t, out, "third")
}

func TestListCommentsCommand_Empty(t *testing.T) {
	fx := setup(t)

	out, err := fx.run(t, ListCmd(), fx.taskID)
	require.NoError(t, err)
	assert.Contains(t, out, "No comments")
}

func TestUpdateAndDeleteCommentCommands(t *testing.T) {
	fx := setup(t)
	out, err := fx.run(t, AddCmd(), fx.taskID, "draft", "--author", strconv.Itoa(fx.userID), "--quiet")
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	_, err = fx.run(t, UpdateCmd(), id, "final")
	require.NoError(t, err)

	out, err = fx.run(t, ListCmd(), fx.taskID, "--json")
	require.NoError(t, err)
	var result struct {
		Comments []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Comments, 1)
	assert.Equal(t, "final", result.Comments[0].Content)
	require.NotNil(t, result.Comments[0].Author)
	assert.Equal(t, "ana", result.Comments[0].Author.Name)

	_, err = fx.run(t, DeleteCmd(), id)
	require.NoError(t, err)

	_, err = fx.run(t, DeleteCmd(), id)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}
