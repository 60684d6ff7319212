package authservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, expiresAt, err := newToken(secret, 1, "root", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	c, err := parseToken(secret, token)
	assert.NoError(t, err)
	assert.Equal(t, 1, c.UserID)
	assert.Equal(t, "root", c.Username)
}

func TestParseTokenFailures(t *testing.T) {
	secret := []byte("test-secret")

	expired, _, err := newToken(secret, 1, "root", -time.Minute)
	assert.NoError(t, err)

	wrongKey, _, err := newToken([]byte("other-secret"), 1, "root", time.Hour)
	assert.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "expired token", token: expired},
		{name: "wrong signing key", token: wrongKey},
		{name: "malformed token", token: "not.a.jwt"},
		{name: "empty token", token: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := parseToken(secret, tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, c)
		})
	}
}

func TestExtractBearer(t *testing.T) {
	testCases := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{name: "valid header", header: "Bearer abc123", token: "abc123", ok: true},
		{name: "lowercase scheme", header: "bearer abc123", token: "abc123", ok: true},
		{name: "missing header", header: "", ok: false},
		{name: "missing token", header: "Bearer ", ok: false},
		{name: "wrong scheme", header: "Basic abc123", ok: false},
		{name: "no scheme", header: "abc123", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, ok := extractBearer(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.token, token)
		})
	}
}
