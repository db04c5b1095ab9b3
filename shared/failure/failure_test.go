package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hostel/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusConflict,
		Message: "no available beds in room 101",
	}

	if f.Error() != "no available beds in room 101" {
		t.Errorf("unexpected message %q", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
	}{
		{name: "InvalidPageParam", failure: failure.InvalidPageParam, code: http.StatusBadRequest},
		{name: "InvalidLimitParam", failure: failure.InvalidLimitParam, code: http.StatusBadRequest},
		{name: "ForbiddenError", failure: failure.ForbiddenError, code: http.StatusForbidden},
		{name: "ResourceRestrictedError", failure: failure.ResourceRestrictedError, code: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, tt.failure.Code)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("check_in is required")),
			code:    http.StatusBadRequest,
			message: "check_in is required",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("invalid date"),
			code:    http.StatusBadRequest,
			message: "invalid date",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "internal",
			err:     failure.InternalError(errors.New("connection reset")),
			code:    http.StatusInternalServerError,
			message: "connection reset",
		},
		{
			name:    "unimplemented",
			err:     failure.Unimplemented("ExportBookings"),
			code:    http.StatusNotImplemented,
			message: "ExportBookings",
		},
		{
			name:    "not found",
			err:     failure.NotFound("room not found"),
			code:    http.StatusNotFound,
			message: "room not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("room is at full capacity"),
			code:    http.StatusConflict,
			message: "room is at full capacity",
		},
		{
			name:    "invalid state",
			err:     failure.InvalidState("invalid booking status: Pending"),
			code:    http.StatusUnprocessableEntity,
			message: "invalid booking status: Pending",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("access denied"),
			code:    http.StatusForbidden,
			message: "access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code || f.Message != tt.message {
				t.Errorf("expected %d %q, got %d %q", tt.code, tt.message, f.Code, f.Message)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    failure.NotFound("booking not found"),
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to create booking: %w", failure.Conflict("no available beds")),
			expected: http.StatusConflict,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := failure.GetCode(tt.input); result != tt.expected {
				t.Errorf("expected code %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", failure.Conflict("duplicate room number"))

	if !failure.Is(err, http.StatusConflict) {
		t.Error("expected wrapped conflict to match")
	}

	if failure.Is(err, http.StatusNotFound) {
		t.Error("expected conflict not to match not found")
	}

	if failure.Is(errors.New("plain"), http.StatusConflict) {
		t.Error("expected plain error not to match")
	}
}
