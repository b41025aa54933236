package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndAuthenticate(t *testing.T) {
	gate := NewGate("test-secret", time.Hour)

	token, err := gate.Issue("alice", RoleOwner)
	require.NoError(t, err)

	id, err := gate.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.UserID)
	assert.Equal(t, RoleOwner, id.Role)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	gate := NewGate("test-secret", time.Hour)

	_, err := gate.Authenticate("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = gate.Authenticate("not-a-jwt")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	issuer := NewGate("secret-a", time.Hour)
	verifier := NewGate("secret-b", time.Hour)

	token, err := issuer.Issue("alice", RoleStaff)
	require.NoError(t, err)

	_, err = verifier.Authenticate(token)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestAuthenticate_Expired(t *testing.T) {
	gate := NewGate("test-secret", -time.Minute)

	token, err := gate.Issue("alice", RoleStaff)
	require.NoError(t, err)

	_, err = gate.Authenticate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestAuthenticate_UnknownRole(t *testing.T) {
	gate := NewGate("test-secret", time.Hour)

	token, err := gate.Issue("alice", Role("superadmin"))
	require.NoError(t, err)

	_, err = gate.Authenticate(token)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestRequireRole(t *testing.T) {
	staff := Identity{UserID: "bob", Role: RoleStaff}
	owner := Identity{UserID: "alice", Role: RoleOwner}

	assert.NoError(t, RequireRole(staff, RoleOwner, RoleStaff))
	assert.NoError(t, RequireRole(owner, RoleOwner))
	assert.ErrorIs(t, RequireRole(staff, RoleOwner), ErrInsufficientRole)
}
