package apperr

import "errors"

// Application error taxonomy. Proxy and service code wraps one of these
// sentinels so handlers can map failures to a status code without knowing
// which dependency failed.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream request failed")
	ErrConfig     = errors.New("missing configuration")
	ErrConflict   = errors.New("conflict")
)
