package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/internal/domain/user"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)

	token, expiresAt, err := issuer.Issue(42, "usr_a1b2c3d4e5f6", user.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "usr_a1b2c3d4e5f6", claims.UserSID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTIssuer("secret-a", time.Hour).Issue(42, "usr_x", user.RoleUser)
	require.NoError(t, err)

	_, err = NewJWTIssuer("secret-b", time.Hour).Parse(token)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Nanosecond)
	token, _, err := issuer.Issue(42, "usr_x", user.RoleUser)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = issuer.Parse(token)
	require.Error(t, err)
}
