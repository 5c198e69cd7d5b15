package auth

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/emsportal/ems/internal/domain/auth"
	"github.com/emsportal/ems/internal/domain/user"
	"github.com/emsportal/ems/internal/pkg/jwt"
	"github.com/emsportal/ems/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]user.User)}
}

func (m *memoryUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memoryUserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(newUser.Email)
	if _, ok := m.users[key]; ok {
		return user.User{}, user.ErrUserEmailExists
	}
	m.users[key] = newUser
	return newUser, nil
}

func (m *memoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[strings.ToLower(email)]
	return ok, nil
}

func newTestAuthService(t *testing.T) (auth.AuthService, *memoryUserRepository, jwt.Service) {
	t.Helper()
	jwtService, err := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)
	repo := newMemoryUserRepository()
	return NewAuthService(repo, jwtService), repo, jwtService
}

func registerRequest(email string) auth.RegisterRequest {
	return auth.RegisterRequest{
		FirstName:   "Ada",
		LastName:    "Admin",
		Email:       email,
		Password:    "password123",
		CompanyName: "Acme",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest("ada@acme.io"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.UserID)
	assert.Equal(t, "admin", resp.Role)

	stored, err := repo.GetByEmail(ctx, "ada@acme.io")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.Equal(t, "Acme", stored.Company.Name)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("ada@acme.io"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("ADA@acme.io"))
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{Email: "bad"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "firstName")
	assert.Contains(t, m, "companyName")
	assert.Equal(t, "Email must be a valid email address", m["email"])
}

func TestAuthService_Login(t *testing.T) {
	svc, _, jwtService := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("ada@acme.io"))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "ada@acme.io", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.Role)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada@acme.io", token.PrivateClaims()["email"])
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("ada@acme.io"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "ada@acme.io", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "nobody@acme.io", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
