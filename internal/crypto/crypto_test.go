package crypto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)

	assert.NoError(t, CheckPassword(hash, "pw123"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrPasswordMismatch)
}

func TestPasswordHashing_SaltedOutput(t *testing.T) {
	first, err := HashPassword("same")
	require.NoError(t, err)
	second, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, CheckPassword(first, "same"))
	assert.NoError(t, CheckPassword(second, "same"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("not-a-bcrypt-hash", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestCheckPasswordForUnknownAccount(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)
	require.ErrorIs(t, CheckPasswordForUnknownAccount("warm-up"), ErrPasswordMismatch)

	for _, pw := range []string{"", "pw123", "tutoring-service/unknown-account-x"} {
		assert.ErrorIs(t, CheckPasswordForUnknownAccount(pw), ErrPasswordMismatch, pw)
	}

	start := time.Now()
	_ = CheckPassword(hash, "wrong")
	known := time.Since(start)

	start = time.Now()
	_ = CheckPasswordForUnknownAccount("wrong")
	unknown := time.Since(start)

	assert.GreaterOrEqual(t, unknown, known/4, "unknown=%s known=%s", unknown, known)
}

func TestConfirmationToken(t *testing.T) {
	secret, fingerprint, err := NewConfirmationToken()
	require.NoError(t, err)

	assert.NotEmpty(t, secret)
	assert.NotEqual(t, secret, fingerprint)
	assert.Equal(t, fingerprint, HashToken(secret))
	assert.True(t, TokenMatches(secret, fingerprint))
	assert.False(t, TokenMatches(secret+"x", fingerprint))
	assert.False(t, TokenMatches("", fingerprint))
	assert.False(t, TokenMatches(secret, ""))
}

func TestConfirmationToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		secret, _, err := NewConfirmationToken()
		require.NoError(t, err)
		_, dup := seen[secret]
		require.False(t, dup)
		seen[secret] = struct{}{}
	}
}
