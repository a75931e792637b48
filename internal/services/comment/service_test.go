package comment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

type fixture struct {
	svc      Service
	repo     *database.Repository
	taskID   int
	authorID int
}

func setup(t *testing.T) fixture {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	projectID := testutil.CreateTestProject(t, repo, "P")
	task := testutil.CreateTestTask(t, repo, projectID, "Discuss", models.StatusTodo)
	return fixture{
		svc:      NewService(repo.Comments(), repo.Tasks(), nil),
		repo:     repo,
		taskID:   task.ID,
		authorID: testutil.CreateTestUser(t, repo, "fay"),
	}
}

func TestCreateAndListComments(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, text := range []string{"first", "  second  "} {
		_, err := f.svc.CreateComment(ctx, CreateCommentRequest{TaskID: f.taskID, AuthorID: f.authorID, Content: text})
		require.NoError(t, err)
	}

	comments, err := f.svc.ListComments(ctx, f.taskID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "fay", comments[0].Author.Name)
}

func TestCreateComment_Validation(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name    string
		req     CreateCommentRequest
		wantErr error
	}{
		{"empty content", CreateCommentRequest{TaskID: f.taskID, AuthorID: f.authorID, Content: "   "}, ErrEmptyContent},
		{"too long", CreateCommentRequest{TaskID: f.taskID, AuthorID: f.authorID, Content: strings.Repeat("é", 1001)}, ErrContentTooLong},
		{"no task", CreateCommentRequest{AuthorID: f.authorID, Content: "x"}, ErrInvalidTaskID},
		{"no author", CreateCommentRequest{TaskID: f.taskID, Content: "x"}, ErrInvalidAuthorID},
		{"unknown task", CreateCommentRequest{TaskID: 999, AuthorID: f.authorID, Content: "x"}, ErrTaskNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateComment(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateComment_MaxLengthAccepted(t *testing.T) {
	f := setup(t)

	_, err := f.svc.CreateComment(context.Background(), CreateCommentRequest{
		TaskID:   f.taskID,
		AuthorID: f.authorID,
		Content:  strings.Repeat("é", 1000),
	})
	assert.NoError(t, err)
}

func TestUpdateAndDeleteComment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c, err := f.svc.CreateComment(ctx, CreateCommentRequest{TaskID: f.taskID, AuthorID: f.authorID, Content: "draft"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateComment(ctx, c.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)

	_, err = f.svc.UpdateComment(ctx, c.ID, "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	require.NoError(t, f.svc.DeleteComment(ctx, c.ID))
	err = f.svc.DeleteComment(ctx, c.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
