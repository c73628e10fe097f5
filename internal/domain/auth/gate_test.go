package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	creds, err := ParseCredentials(" admin:ADMIN:$2a$10$hash , viewer:standard:$2a$10$other,")
	require.NoError(t, err)
	require.Len(t, creds, 2)
	assert.Equal(t, Credential{Username: "admin", Role: RoleAdmin, PasswordHash: "$2a$10$hash"}, creds[0])
	assert.Equal(t, RoleStandard, creds[1].Role)
}

func TestParseCredentialsRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "admin:admin", "admin:root:hash", ":admin:hash", "admin:admin: "} {
		_, err := ParseCredentials(raw)
		assert.Truef(t, errors.Is(err, ErrMalformedUsers), "input %q", raw)
	}
}

func TestGateAuthenticate(t *testing.T) {
	hash, err := HashPassword("1234")
	require.NoError(t, err)
	gate, err := NewGate([]Credential{{Username: "admin", Role: RoleAdmin, PasswordHash: hash}})
	require.NoError(t, err)

	session, err := gate.Authenticate(" admin ", "1234")
	require.NoError(t, err)
	assert.Equal(t, Session{Username: "admin", Role: RoleAdmin}, session)
	assert.True(t, session.IsAdmin())
	assert.NoError(t, RequireAdmin(session))

	_, err = gate.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = gate.Authenticate("nobody", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewGateRejectsDuplicates(t *testing.T) {
	_, err := NewGate([]Credential{
		{Username: "a", Role: RoleAdmin, PasswordHash: "x"},
		{Username: "a", Role: RoleStandard, PasswordHash: "y"},
	})
	assert.ErrorIs(t, err, ErrMalformedUsers)
}

func TestRequireAdminRejectsStandard(t *testing.T) {
	assert.ErrorIs(t, RequireAdmin(Session{Username: "v", Role: RoleStandard}), ErrForbidden)
}
