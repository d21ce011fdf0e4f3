package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gradebook/internal/model"
)

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", PasswordHash: "hash"}))

	user, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.PasswordHash)

	_, err = repo.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Create(ctx, &model.User{Username: "alice", PasswordHash: "other"})
	assert.Error(t, err)
}
