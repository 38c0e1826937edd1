package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Configuration failures. These are always reported wrapped together with
// ErrInvalidConfig so callers can test for either.
var (
	ErrMissingParam    = errors.New("missing required parameter")
	ErrUnknownMeasure  = errors.New("unknown similarity measure")
	ErrMalformedFile   = errors.New("malformed file")
	ErrVersionMismatch = errors.New("wordnet version mismatch")
)

// Lookup failures, reported per call.
var (
	ErrInvalidTag   = errors.New("invalid POS tag")
	ErrInvalidToken = errors.New("invalid word token")
)
