package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret", time.Hour)

	tok, err := m.Generate(42, "nemo@reef.io")
	require.NoError(t, err)

	p, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), p.UserID)
	assert.Equal(t, "nemo@reef.io", p.Email)
	assert.Equal(t, RoleUser, p.Role)
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	tok, err := m.Generate(1, "a@b.c")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("right", time.Hour).Generate(7, "x@y.z")
	require.NoError(t, err)

	_, err = NewTokenManager("wrong", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Validate(s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("secret", time.Hour).Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("guppy123")
	require.NoError(t, err)
	assert.NotEqual(t, "guppy123", hash)

	assert.NoError(t, CheckPassword(hash, "guppy123"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}
