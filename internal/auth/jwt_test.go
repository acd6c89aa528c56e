package auth

import (
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "tutoring-service", time.Hour)

	token, err := m.Issue("65f000000000000000000001", entity.KindUser)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "65f000000000000000000001", claims.AccountID)
	assert.Equal(t, entity.KindUser, claims.Kind)
	assert.Equal(t, "tutoring-service", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret", "iss", time.Hour).Issue("id", entity.KindTeacher)
	require.NoError(t, err)

	_, err = NewJWTManager("other", "iss", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := NewJWTManager("secret", "iss", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.Issue("id", entity.KindUser)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewJWTManager("secret", "iss", time.Hour).Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		AccountID: "id",
		Kind:      entity.KindUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", "iss", time.Hour).Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_MissingKind(t *testing.T) {
	claims := Claims{
		AccountID: "id",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTManager("secret", "iss", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
