package session_test

import (
	"testing"

	"github.com/openbadger/badgekit/pkg/session"

	"github.com/stretchr/testify/assert"
)

func TestSessionIsAuthenticated(t *testing.T) {
	t.Parallel()

	assert.False(t, session.Session{}.IsAuthenticated())
	assert.False(t, session.Session{Email: "user@example.com"}.IsAuthenticated())
	assert.True(t, session.Session{Token: "abc123"}.IsAuthenticated())
}

func TestDisplayNameFromEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"local part", "a@b.com", "a"},
		{"dotted local part", "jane.doe@example.com", "jane.doe"},
		{"no at sign", "nodomain", "nodomain"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, session.DisplayNameFromEmail(tt.email))
		})
	}
}
