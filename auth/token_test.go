package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("alice", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("right-secret", time.Hour).Issue("bob", false)
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", -time.Minute)
	token, err := svc.Issue("bob", false)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", time.Hour)

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", bad)
	}
}
