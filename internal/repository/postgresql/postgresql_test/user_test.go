package postgresql_test

import (
	"context"
	"testing"

	"github.com/emsportal/ems/internal/domain/user"
	"github.com/emsportal/ems/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, user.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		FirstName:    "Ada",
		LastName:     "Admin",
		Email:        "ada@acme.io",
		PasswordHash: "hash",
		Role:         user.RoleAdmin,
		Company:      user.Company{Name: "Acme", EstablishedYear: "2001"},
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByEmail(ctx, "ADA@acme.io")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Acme", got.Company.Name)
	assert.Equal(t, user.RoleAdmin, got.Role)

	exists, err := repo.ExistsByEmail(ctx, "ada@acme.io")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Create(ctx, user.User{ID: uuid.Must(uuid.NewV7()).String(), Email: "ada@acme.io", PasswordHash: "x", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = repo.GetByEmail(ctx, "nobody@acme.io")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
