package binder

import "errors"

var (
	ErrMissingContentType   = errors.New("missing content-type header")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse json body")
	ErrBodyTooLarge         = errors.New("request body too large")
)
