package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/emsportal/ems/internal/domain/employee"
	"github.com/emsportal/ems/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_CRUD(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	join := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, employee.Employee{
		ID:           uuid.Must(uuid.NewV7()).String(),
		EmployeeCode: "EMP001",
		Name:         "Ann Lee",
		Email:        "ann@acme.io",
		Department:   employee.DepartmentEngineering,
		Position:     "Developer",
		Status:       employee.StatusActive,
		Salary:       decimal.RequireFromString("85000.50"),
		JoinDate:     &join,
	})
	require.NoError(t, err)
	assert.True(t, created.Salary.Equal(decimal.RequireFromString("85000.50")))
	require.NotNil(t, created.JoinDate)
	assert.Equal(t, "2024-01-15", created.JoinDate.Format("2006-01-02"))

	codes, err := repo.ListCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EMP001"}, codes)

	exists, err := repo.ExistsByCode(ctx, "EMP001", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, "EMP001", &created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	created.Status = employee.StatusOnLeave
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusOnLeave, updated.Status)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	err := postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		_, err := repo.Create(ctx, employee.Employee{
			ID:           uuid.Must(uuid.NewV7()).String(),
			EmployeeCode: "EMP001",
			Name:         "Ann Lee",
			Email:        "ann@acme.io",
			Department:   employee.DepartmentSales,
			Position:     "Rep",
			Status:       employee.StatusActive,
		})
		require.NoError(t, err)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
