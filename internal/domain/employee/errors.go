package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrInvalidGender    = errors.New("gender must be male or female")
	ErrMinimumAge       = errors.New("employee must be at least 14 years old")
)
