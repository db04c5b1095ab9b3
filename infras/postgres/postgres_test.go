package postgres_test

import (
	"errors"
	"fmt"
	"hostel/infras/postgres"
	"hostel/shared/failure"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		conflict bool
	}{
		{
			name:     "overlapping booking on the same bed",
			input:    &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"},
			conflict: true,
		},
		{
			name:     "duplicate room number",
			input:    fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "rooms_room_number_key"}),
			conflict: true,
		},
		{
			name:     "room still referenced by a booking",
			input:    &pq.Error{Code: "23503", Constraint: "bookings_room_id_fkey"},
			conflict: true,
		},
		{
			name:     "syntax error passes through",
			input:    &pq.Error{Code: "42601"},
			conflict: false,
		},
		{
			name:     "plain error passes through",
			input:    errors.New("connection reset"),
			conflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := postgres.TranslateError(tt.input)

			assert.Equal(t, tt.conflict, failure.Is(got, http.StatusConflict))

			if !tt.conflict {
				assert.Equal(t, tt.input, got)
			}
		})
	}
}
