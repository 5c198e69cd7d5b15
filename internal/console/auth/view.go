// Package auth implements the console login and registration screen.
package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/emsportal/ems/internal/client"
	"github.com/emsportal/ems/internal/console/session"
	domainAuth "github.com/emsportal/ems/internal/domain/auth"
	"github.com/emsportal/ems/internal/domain/user"
)

const (
	AdminDashboard    = "/admin-dashboard"
	EmployeeDashboard = "/employee-dashboard"

	RegistrationConfirmation = "Registration successful! Please log in."
)

type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// API is the subset of the EMS client used by this view.
type API interface {
	Login(ctx context.Context, req domainAuth.LoginRequest) (string, domainAuth.LoginResponse, error)
	Register(ctx context.Context, req domainAuth.RegisterRequest) (string, error)
}

// Form is the field bag shared by both modes.
type Form struct {
	Email    string
	Password string

	CompanyName        string
	CompanyEmail       string
	CompanyPhone       string
	CompanyAddress     string
	CompanyWebsite     string
	IndustryType       string
	CompanySize        string
	RegistrationNumber string
	EstablishedYear    string

	AdminFirstName  string
	AdminLastName   string
	AdminEmail      string
	AdminPhone      string
	AdminPassword   string
	ConfirmPassword string
}

type LoginResult struct {
	Message     string
	Role        string
	Destination string
}

type View struct {
	api     API
	session *session.Session

	mode         Mode
	Form         Form
	ShowPassword bool
	ShowConfirm  bool
}

func NewView(api API, sess *session.Session) *View {
	return &View{api: api, session: sess}
}

func (v *View) Mode() Mode {
	return v.mode
}

// ToggleMode switches between login and registration and clears the form.
func (v *View) ToggleMode() {
	if v.mode == ModeLogin {
		v.mode = ModeRegister
	} else {
		v.mode = ModeLogin
	}
	v.Form = Form{}
}

// SubmitLogin authenticates and stores the issued token in the session.
func (v *View) SubmitLogin(ctx context.Context, email, password string) (LoginResult, error) {
	msg, resp, err := v.api.Login(ctx, domainAuth.LoginRequest{Email: email, Password: password})
	if err != nil {
		slog.Error("Login failed", "error", err)
		return LoginResult{}, err
	}
	if !strings.Contains(strings.ToLower(msg), "successful") || resp.AccessToken == "" {
		return LoginResult{}, &client.Error{Kind: client.KindUnknown, Message: "unexpected login response: " + msg}
	}

	if err := v.session.Login(resp.AccessToken, resp.Role); err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Message:     msg,
		Role:        resp.Role,
		Destination: Destination(resp.Role, email),
	}, nil
}

// Destination picks the dashboard for a signed-in user. The server role wins;
// without one, emails containing "admin" go to the admin dashboard.
func Destination(role, email string) string {
	switch {
	case role == string(user.RoleAdmin):
		return AdminDashboard
	case role != "":
		return EmployeeDashboard
	case strings.Contains(email, "admin"):
		return AdminDashboard
	default:
		return EmployeeDashboard
	}
}

// SubmitRegistration registers a company administrator. Mismatched passwords
// are rejected before any request is made.
func (v *View) SubmitRegistration(ctx context.Context, form Form) (string, error) {
	if form.AdminPassword != form.ConfirmPassword {
		return "", client.ValidationError("Passwords do not match!", map[string]string{
			"confirmPassword": "Passwords do not match!",
		})
	}

	_, err := v.api.Register(ctx, domainAuth.RegisterRequest{
		FirstName:          form.AdminFirstName,
		LastName:           form.AdminLastName,
		Email:              form.AdminEmail,
		Phone:              form.AdminPhone,
		Password:           form.AdminPassword,
		Role:               string(user.RoleAdmin),
		CompanyName:        form.CompanyName,
		CompanyEmail:       form.CompanyEmail,
		CompanyPhone:       form.CompanyPhone,
		Website:            form.CompanyWebsite,
		CompanyAddress:     form.CompanyAddress,
		IndustryType:       form.IndustryType,
		CompanySize:        form.CompanySize,
		RegistrationNumber: form.RegistrationNumber,
		EstablishedYear:    form.EstablishedYear,
	})
	if err != nil {
		slog.Error("Registration failed", "error", err)
		return "", err
	}

	v.mode = ModeLogin
	v.Form = Form{}
	return RegistrationConfirmation, nil
}
