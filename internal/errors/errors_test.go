package errors

import (
	"fmt"
	"testing"
)

func TestHubError_Error(t *testing.T) {
	err := &HubError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "chat not found: 01ABC",
	}

	expected := "NOT_FOUND: chat not found: 01ABC"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("owner_id is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "owner_id is required" {
		t.Errorf("Message = %q, want %q", err.Message, "owner_id is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("ato", "01XYZ")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Message != "ato not found: 01XYZ" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["identifier"] != "01XYZ" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "01XYZ")
	}
	if err.Details["kind"] != "ato" {
		t.Errorf("Details[kind] = %v, want %q", err.Details["kind"], "ato")
	}
}

func TestNewRouteAlreadyExists(t *testing.T) {
	err := NewRouteAlreadyExists("u1", "/scout/")

	if err.Code != ErrRouteAlreadyExists {
		t.Errorf("Code = %q, want %q", err.Code, ErrRouteAlreadyExists)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
	if err.Details["owner_id"] != "u1" || err.Details["route"] != "/scout/" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestNewRouteReserved(t *testing.T) {
	err := NewRouteReserved("/namc/")

	if err.Code != ErrRouteReserved {
		t.Errorf("Code = %q, want %q", err.Code, ErrRouteReserved)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
}

func TestNewLimitExceeded(t *testing.T) {
	err := NewLimitExceeded(5)

	if err.Code != ErrLimitExceeded {
		t.Errorf("Code = %q, want %q", err.Code, ErrLimitExceeded)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
	if err.Details["max"] != 5 {
		t.Errorf("Details[max] = %v, want 5", err.Details["max"])
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("disk full"))
	if err.Code != ErrInternal || err.Status != 500 || err.Message != "disk full" {
		t.Errorf("NewInternal = %+v", err)
	}

	err = NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("Message = %q, want %q", err.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{name: "matching code", err: NewRouteReserved("/x/"), code: ErrRouteReserved, want: true},
		{name: "different code", err: NewRouteReserved("/x/"), code: ErrNotFound, want: false},
		{name: "wrapped", err: fmt.Errorf("ctx: %w", NewNotFound("chat", "c")), code: ErrNotFound, want: true},
		{name: "plain error", err: fmt.Errorf("boom"), code: ErrInternal, want: false},
		{name: "nil", err: nil, code: ErrInternal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}
