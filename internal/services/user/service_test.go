package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

func setupService(t *testing.T) (Service, *database.Repository) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	return NewService(repo.Users(), nil), repo
}

func TestCreateUser(t *testing.T) {
	svc, _ := setupService(t)

	u, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Name:  " Ada Lovelace ",
		Email: "Ada@Example.com",
		Role:  "Designer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Designer", u.Role)
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _ := setupService(t)

	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr error
	}{
		{"empty name", CreateUserRequest{Name: "", Email: "a@b.c"}, ErrEmptyName},
		{"missing at", CreateUserRequest{Name: "A", Email: "nobody"}, ErrInvalidEmail},
		{"display name form", CreateUserRequest{Name: "A", Email: "A <a@b.c>"}, ErrInvalidEmail},
		{"empty email", CreateUserRequest{Name: "A"}, ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Bo", Email: "bo@example.com"})
	require.NoError(t, err)

	email := "BO@work.example"
	updated, err := svc.UpdateUser(ctx, u.ID, models.UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "bo@work.example", updated.Email)
	assert.Equal(t, "Bo", updated.Name)
}

func TestDeleteUser_UnassignsTasks(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	userID := testutil.CreateTestUser(t, repo, "carol")
	projectID := testutil.CreateTestProject(t, repo, "P")
	task := testutil.CreateTestTask(t, repo, projectID, "assigned", models.StatusTodo)
	_, err := repo.Tasks().Update(ctx, task.ID, models.TaskPatch{AssigneeID: &userID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, userID))

	got, err := repo.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID)
}

func TestGetUsersByProject(t *testing.T) {
	svc, repo := setupService(t)
	testutil.CreateTestUser(t, repo, "dan")
	testutil.CreateTestUser(t, repo, "eve")

	users, err := svc.GetUsersByProject(context.Background(), 123)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestGetUser_InvalidID(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.GetUser(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidUserID)
}
