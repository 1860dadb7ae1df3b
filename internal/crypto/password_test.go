package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
	assert.NotContains(t, digest, "s3cret")

	assert.True(t, VerifyPassword(digest, "s3cret"))
	assert.False(t, VerifyPassword(digest, "s3cret "))
	assert.False(t, VerifyPassword(digest, "S3cret"))
	assert.False(t, VerifyPassword(digest, ""))
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword(first, "same-password"))
	assert.True(t, VerifyPassword(second, "same-password"))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	digests := []string{
		"",
		"plaintext",
		"$argon2id$",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g",
		"$argon2id$v=19$m=abc,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdHNhbHQ$aGFzaGhhc2g",
		"$argon2id$v=19$m=65536,t=1,p=4$!!notbase64!!$aGFzaGhhc2g",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdHNhbHQ$!!notbase64!!",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g$extra",
	}
	for _, digest := range digests {
		assert.False(t, VerifyPassword(digest, "whatever"), "digest %q should not verify", digest)
	}
}
