package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNoAssistant     = errors.New("no assistant configured")
	ErrNoActiveSession = errors.New("no active study session")
)
