package service

import "errors"

// Error kinds. Callers wrap these with fmt.Errorf("%w: …") so transport can
// map the kind with errors.Is while the message stays descriptive.
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)
