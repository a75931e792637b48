package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/models"
)

func TestUserRepo_CRUD(t *testing.T) {
	repo := setupTestRepo(t).Users()
	ctx := context.Background()

	ana, err := repo.Create(ctx, models.User{Name: "Ana", Email: "ana@example.com", Role: "Designer"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.User{Name: "Bruno", Email: "bruno@example.com", Role: "Developer"})
	require.NoError(t, err)

	all, err := repo.GetAll(ctx, models.UserFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana", all[0].Name)

	devs, err := repo.GetAll(ctx, models.UserFilter{Role: "developer"})
	require.NoError(t, err)
	require.Len(t, devs, 1)
	assert.Equal(t, "Bruno", devs[0].Name)

	byEmail, err := repo.GetAll(ctx, models.UserFilter{Search: "ANA@"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	avatar := "https://img.example/ana.png"
	updated, err := repo.Update(ctx, ana.ID, models.UserPatch{AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, avatar, updated.AvatarURL)
	assert.Equal(t, "Designer", updated.Role)

	require.NoError(t, repo.Delete(ctx, ana.ID))
	assert.ErrorIs(t, repo.Delete(ctx, ana.ID), ErrNotFound)
}
