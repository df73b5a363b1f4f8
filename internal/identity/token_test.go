package identity

import (
	"testing"
	"time"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	team := int64(3)
	u := &User{ID: 7, Phone: "+79990000000", Name: "Иванов И.И.", Role: RoleBrigade, TeamID: &team}

	tok, err := svc.Issue(u)
	require.NoError(t, err)

	claims, err := svc.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, RoleBrigade, claims.Role)
	require.NotNil(t, claims.TeamID)
	assert.Equal(t, int64(3), *claims.TeamID)
	assert.Equal(t, "Иванов И.И.", claims.Name)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("secret", -time.Minute)
	tok, err := svc.Issue(&User{ID: 1, Role: RoleAdmin})
	require.NoError(t, err)

	_, err = svc.Parse(tok)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := NewTokenService("one", time.Hour).Issue(&User{ID: 1, Role: RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokenService("two", time.Hour).Parse(tok)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenService("s", time.Hour).Parse("not-a-token")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
