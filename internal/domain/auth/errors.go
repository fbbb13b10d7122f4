package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
