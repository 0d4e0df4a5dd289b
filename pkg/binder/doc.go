// Package binder decodes HTTP request payloads into Go structs.
//
// Binders are plain functions with the signature
// func(r *http.Request, v any) error, so handlers can hold one as a field
// and tests can substitute their own.
package binder
