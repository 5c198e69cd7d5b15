package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emsportal/ems/internal/domain/auth"
	"github.com/emsportal/ems/internal/domain/user"
	"github.com/emsportal/ems/internal/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	email := strings.TrimSpace(req.Email)
	exists, err := a.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.RegisterResponse{}, user.ErrUserEmailExists
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	role := user.Role(req.Role)
	if role == "" {
		role = user.RoleAdmin
	}

	created, err := a.userRepo.Create(ctx, user.User{
		ID:           id.String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hashed,
		Role:         role,
		Company: user.Company{
			Name:               req.CompanyName,
			Email:              req.CompanyEmail,
			Phone:              req.CompanyPhone,
			Website:            req.Website,
			Address:            req.CompanyAddress,
			IndustryType:       req.IndustryType,
			Size:               req.CompanySize,
			RegistrationNumber: req.RegistrationNumber,
			EstablishedYear:    req.EstablishedYear,
		},
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return auth.RegisterResponse{}, err
		}
		return auth.RegisterResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User registered", "user_id", created.ID, "company", created.Company.Name)

	return auth.RegisterResponse{
		UserID: created.ID,
		Email:  created.Email,
		Role:   string(created.Role),
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		UserID:      userData.ID,
		Email:       userData.Email,
		Role:        string(userData.Role),
	}, nil
}
