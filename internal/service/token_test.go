package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssueAndValidate(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Minute)

	tokenString, expirationTime, err := tokens.Issue("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expirationTime, 5*time.Second)

	subject, err := tokens.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenManager("test-secret", -time.Minute)

	tokenString, _, err := tokens.Issue("alice")
	require.NoError(t, err)

	_, err = tokens.Validate(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Minute)
	verifier := NewTokenManager("secret-two", time.Minute)

	tokenString, _, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Validate(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMalformed(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Minute)

	for _, tokenString := range []string{"", "not-a-token", "aaaa.bbbb.cccc"} {
		_, err := tokens.Validate(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenString)
	}
}

func TestTokenEmptySubject(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Minute)

	tokenString, _, err := tokens.Issue("")
	require.NoError(t, err)

	_, err = tokens.Validate(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
