package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a slashhub error code.
type ErrorCode string

const (
	ErrInvalidRequest     ErrorCode = "INVALID_REQUEST"      // 400
	ErrNotFound           ErrorCode = "NOT_FOUND"            // 404
	ErrRouteAlreadyExists ErrorCode = "ROUTE_ALREADY_EXISTS" // 409
	ErrRouteReserved      ErrorCode = "ROUTE_RESERVED"       // 409
	ErrLimitExceeded      ErrorCode = "LIMIT_EXCEEDED"       // 422
	ErrInternal           ErrorCode = "INTERNAL"             // 500
)

// HubError represents a structured error with code, status, and details.
// A route that does not resolve is not an error; only bad requests and
// collaborator failures are reported this way.
type HubError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *HubError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *HubError {
	return &HubError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error. kind names what was looked up ("chat", "ato", "route").
func NewNotFound(kind, identifier string) *HubError {
	return &HubError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewRouteAlreadyExists creates a 409 error when an owner already has a custom route with this key.
func NewRouteAlreadyExists(ownerID, routeKey string) *HubError {
	return &HubError{
		Code:    ErrRouteAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("route %q already exists for owner %q", routeKey, ownerID),
		Details: map[string]any{"owner_id": ownerID, "route": routeKey},
	}
}

// NewRouteReserved creates a 409 error when a custom route would shadow an official route.
func NewRouteReserved(routeKey string) *HubError {
	return &HubError{
		Code:    ErrRouteReserved,
		Status:  409,
		Message: fmt.Sprintf("route %q is reserved by an official route", routeKey),
		Details: map[string]any{"route": routeKey},
	}
}

// NewLimitExceeded creates a 422 error when an owner hits the custom route cap.
func NewLimitExceeded(max int) *HubError {
	return &HubError{
		Code:    ErrLimitExceeded,
		Status:  422,
		Message: fmt.Sprintf("custom route limit reached (max %d)", max),
		Details: map[string]any{"max": max},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *HubError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &HubError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a HubError with the given code.
func Is(err error, code ErrorCode) bool {
	var hErr *HubError
	if stderrors.As(err, &hErr) {
		return hErr.Code == code
	}
	return false
}
