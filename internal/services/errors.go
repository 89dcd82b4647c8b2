package services

import "errors"

// Ошибки, которые хендлеры отдают клиенту как есть (коды таксономии API).
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResetTokenInvalid  = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
)
