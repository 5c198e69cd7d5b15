package auth

import "github.com/emsportal/ems/internal/pkg/validator"

const (
	MessageLoginSuccessful    = "Login successful"
	MessageRegisterSuccessful = "User registered successfully"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r)
}

// RegisterRequest is the company registration form. The password is chosen
// by the company administrator; role defaults to admin when omitted.
type RegisterRequest struct {
	FirstName          string `json:"firstName" validate:"required,max=100"`
	LastName           string `json:"lastName" validate:"required,max=100"`
	Email              string `json:"email" validate:"required,email,max=254"`
	Phone              string `json:"phone" validate:"max=50"`
	Password           string `json:"password" validate:"required,max=72"`
	Role               string `json:"role" validate:"omitempty,oneof=admin employee"`
	CompanyName        string `json:"companyName" validate:"required,max=255"`
	CompanyEmail       string `json:"companyEmail" validate:"omitempty,email"`
	CompanyPhone       string `json:"companyPhone" validate:"max=50"`
	Website            string `json:"website" validate:"max=255"`
	CompanyAddress     string `json:"companyAddress"`
	IndustryType       string `json:"industryType" validate:"max=100"`
	CompanySize        string `json:"companySize" validate:"max=50"`
	RegistrationNumber string `json:"registrationNumber" validate:"max=100"`
	EstablishedYear    string `json:"establishedYear" validate:"max=4"`
}

func (r *RegisterRequest) Validate() error {
	return validator.Struct(r)
}

type RegisterResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   int64  `json:"expiresAt"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}
