package auth

import "errors"

var (
	ErrAlreadyExists      = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnavailable        = errors.New("credential store unavailable")
)
