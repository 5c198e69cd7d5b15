package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/emsportal/ems/internal/domain/user"
	"github.com/emsportal/ems/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `
	id, first_name, last_name, email, phone, password_hash, role,
	company_name, company_email, company_phone, website, company_address,
	industry_type, company_size, registration_number, established_year,
	created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash, &u.Role,
		&u.Company.Name, &u.Company.Email, &u.Company.Phone, &u.Company.Website, &u.Company.Address,
		&u.Company.IndustryType, &u.Company.Size, &u.Company.RegistrationNumber, &u.Company.EstablishedYear,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, first_name, last_name, email, phone, password_hash, role,
			company_name, company_email, company_phone, website, company_address,
			industry_type, company_size, registration_number, established_year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.ID, newUser.FirstName, newUser.LastName, newUser.Email, newUser.Phone,
		newUser.PasswordHash, newUser.Role,
		newUser.Company.Name, newUser.Company.Email, newUser.Company.Phone, newUser.Company.Website,
		newUser.Company.Address, newUser.Company.IndustryType, newUser.Company.Size,
		newUser.Company.RegistrationNumber, newUser.Company.EstablishedYear,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id %s: %w", id, err)
	}
	return u, nil
}
