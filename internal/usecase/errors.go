package usecase

import "errors"

// Every rejection an operation can produce wraps exactly one of these
// sentinels, so transports can map them mechanically and callers can decide
// retryability: ErrConflict after a lost race means re-read status and try
// again; ErrForbidden and ErrInvalidState will not succeed on retry.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrNotFound              = errors.New("resource not found")
	ErrPreconditionFailed    = errors.New("precondition failed")
	ErrInvalidState          = errors.New("invalid state")
	ErrConflict              = errors.New("conflict")
	ErrInternal              = errors.New("internal inconsistency")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
