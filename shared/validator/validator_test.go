package validator_test

import (
	"hostel/shared/failure"
	"hostel/shared/validator"
	"net/http"
	"strings"
	"testing"
)

type stayRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Guests     int    `json:"guests"      validate:"gte=1,lte=12"`
	CheckIn    string `json:"check_in"    validate:"required,date"`
	CheckOut   string `json:"check_out"   validate:"required,date"`
	RoomID     string `json:"room_id"     validate:"omitempty,seqid=R"`
}

func validStay() *stayRequest {
	return &stayRequest{
		RoomNumber: "101",
		Email:      "ana@example.com",
		Guests:     1,
		CheckIn:    "2025-05-01",
		CheckOut:   "2025-05-03",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(req *stayRequest)
		expectError bool
	}{
		{
			name:        "valid request",
			mutate:      func(_ *stayRequest) {},
			expectError: false,
		},
		{
			name:        "missing room number",
			mutate:      func(req *stayRequest) { req.RoomNumber = "" },
			expectError: true,
		},
		{
			name:        "invalid email",
			mutate:      func(req *stayRequest) { req.Email = "ana" },
			expectError: true,
		},
		{
			name:        "zero guests",
			mutate:      func(req *stayRequest) { req.Guests = 0 },
			expectError: true,
		},
		{
			name:        "check in not a calendar date",
			mutate:      func(req *stayRequest) { req.CheckIn = "01.05.2025" },
			expectError: true,
		},
		{
			name:        "impossible date",
			mutate:      func(req *stayRequest) { req.CheckOut = "2025-02-30" },
			expectError: true,
		},
		{
			name:        "room id with the right prefix",
			mutate:      func(req *stayRequest) { req.RoomID = "R12" },
			expectError: false,
		},
		{
			name:        "room id with a foreign prefix",
			mutate:      func(req *stayRequest) { req.RoomID = "B12" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(req)

			err := validator.ValidateStruct(req)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}

			if err != nil && failure.GetCode(err) != http.StatusBadRequest {
				t.Errorf("expected bad request, got %d", failure.GetCode(err))
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{name: "valid date", field: "2025-05-01", tag: "date", expectError: false},
		{name: "datetime is not a date", field: "2025-05-01T10:00:00Z", tag: "date", expectError: true},
		{name: "valid payment type", field: "CREDIT_CARD", tag: "oneof=CREDIT_CARD PAYPAL CASH", expectError: false},
		{name: "invalid payment type", field: "BITCOIN", tag: "oneof=CREDIT_CARD PAYPAL CASH", expectError: true},
		{name: "booking id", field: "BK7", tag: "seqid=BK", expectError: false},
		{name: "booking id without digits", field: "BK", tag: "seqid=BK", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"room_number":"101","email":"ana@example.com","guests":2,"check_in":"2025-05-01","check_out":"2025-05-03"}`,
			expectError: false,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"room_number":"101","email":"ana@example.com","guests":2,"check_in":"tomorrow","check_out":"2025-05-03"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"room_number":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data stayRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *stayRequest)
		expected string
	}{
		{
			name:     "required uses json name",
			mutate:   func(req *stayRequest) { req.RoomNumber = "" },
			expected: "room_number is required",
		},
		{
			name:     "date format",
			mutate:   func(req *stayRequest) { req.CheckIn = "May 1st" },
			expected: "check_in must be a date formatted as YYYY-MM-DD",
		},
		{
			name:     "sequence id",
			mutate:   func(req *stayRequest) { req.RoomID = "X1" },
			expected: "room_id must look like R<number>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(req)

			err := validator.ValidateStruct(req)
			if err == nil {
				t.Fatal("expected validation error")
			}

			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
		})
	}
}
