package services

import (
	"errors"

	"vibe-todo/vibetodo/apperrors"
)

// Common errors
var (
	ErrValidation = apperrors.ErrValidation
	ErrNotFound   = apperrors.ErrNotFound
	ErrConflict   = apperrors.ErrConflict
	ErrStorage    = apperrors.ErrStorage

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthDisabled       = errors.New("authentication is not configured")
)
