package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already in use")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
