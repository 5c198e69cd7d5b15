package attendance

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee has no attendance records")
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrInvalidStatus    = errors.New("invalid attendance status")
	ErrInvalidTime      = errors.New("time must be HH:MM")
)
