package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	require.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
	assert.False(t, data.Skip)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		path     string
		method   string
		wantSkip bool
		wantRole string
	}{
		{name: "public reservation from mounted pattern", path: "/v1/reservations/", method: http.MethodPost, wantSkip: true},
		{name: "public availability", path: "/v1/rooms/available", method: http.MethodGet, wantSkip: true},
		{name: "login", path: "/v1/auth/login", method: http.MethodPost, wantSkip: true},
		{name: "room list with trailing slash", path: "/v1/rooms/", method: http.MethodGet, wantRole: "staff"},
		{name: "admin creation", path: "/v1/admins/", method: http.MethodPost, wantRole: "superadmin"},
		{name: "booking delete", path: "/v1/bookings/{id}", method: http.MethodDelete, wantRole: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)

			if tt.wantRole != "" {
				assert.Contains(t, permission.Permissions, tt.wantRole)
			}
		})
	}

	t.Run("unknown endpoint", func(t *testing.T) {
		permission := data.FindPermissions("/v1/unknown", http.MethodGet)

		assert.Empty(t, permission.Path)
		assert.False(t, permission.Skip)
	})

	t.Run("method must match", func(t *testing.T) {
		permission := data.FindPermissions("/v1/reservations", http.MethodGet)

		assert.False(t, permission.Skip)
	})
}
