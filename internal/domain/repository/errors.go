package repository

import "errors"

// Store-level errors every repository implementation maps its driver errors to.
var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("duplicate key")
	ErrUnavailable = errors.New("store unavailable")
)
