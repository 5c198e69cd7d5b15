package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages roster and payroll
	RoleEmployee Role = "employee" // Read-only access
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User is a registered account. Registration captures the company profile
// alongside the administrator's own details.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Company      Company
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Company struct {
	Name               string
	Email              string
	Phone              string
	Website            string
	Address            string
	IndustryType       string
	Size               string
	RegistrationNumber string
	EstablishedYear    string
}

// IsAdmin checks if user may mutate roster and payroll data
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
