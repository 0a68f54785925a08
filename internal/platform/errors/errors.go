package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrCorruptState       = errors.New("corrupt state record")
	ErrInsufficientTokens = errors.New("not enough tokens")
	ErrNoAlarm            = errors.New("no alarm set")
)
