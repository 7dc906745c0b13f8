package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input, caught before any write reaches the store
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Is lets errors.Is match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// NewValidationError builds a ValidationError from a format string
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (location, area)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// LoadError reports that one of the asset tree fetches failed.
// The caller keeps displaying its previous snapshot.
type LoadError struct {
	Source string // "hierarchy", "devices", "data points", "seed"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load asset tree: %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MoveError reports a rejected reparent request
type MoveError struct {
	NodeID      string
	NewParentID string
	Err         error
}

func (e *MoveError) Error() string {
	parent := e.NewParentID
	if parent == "" {
		parent = "root"
	}
	return fmt.Sprintf("move %s under %s: %v", e.NodeID, parent, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// CreateError reports a rejected create request
type CreateError struct {
	Name string
	Err  error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("create %q: %v", e.Name, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// DeleteError reports a rejected cascading delete
type DeleteError struct {
	NodeID string
	Err    error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.NodeID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
