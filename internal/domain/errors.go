package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("id already exists")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrInvalidToken   = errors.New("invalid reset token")
	ErrExpiredToken   = errors.New("reset token has expired")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
)
