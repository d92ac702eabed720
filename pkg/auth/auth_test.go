package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	BcryptCost = bcrypt.MinCost
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!pass", hash)

	ok, err := CheckPassword(hash, "s3cret!pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-hash", "x")
	assert.Error(t, err)
}

func TestNewTokensValidation(t *testing.T) {
	_, err := NewTokens("", "HS256", time.Hour)
	assert.Error(t, err)

	_, err = NewTokens("secret", "RS256", time.Hour)
	assert.Error(t, err)

	_, err = NewTokens("secret", "HS256", 0)
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens, err := NewTokens("secret", "HS256", time.Hour)
	require.NoError(t, err)
	tokens = tokens.WithClock(fixedClock(now))

	token, expires, err := tokens.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expires)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, now, claims.IssuedAt.UTC())
	assert.Equal(t, expires, claims.ExpiresAt.UTC())
}

func TestVerifyExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens, err := NewTokens("secret", "HS256", time.Minute)
	require.NoError(t, err)

	token, _, err := tokens.WithClock(fixedClock(now)).Issue(1)
	require.NoError(t, err)

	_, err = tokens.WithClock(fixedClock(now.Add(2 * time.Minute))).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer, _ := NewTokens("one", "HS256", time.Hour)
	verifier, _ := NewTokens("two", "HS256", time.Hour)

	token, _, err := issuer.Issue(1)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithm(t *testing.T) {
	issuer, _ := NewTokens("secret", "HS512", time.Hour)
	verifier, _ := NewTokens("secret", "HS256", time.Hour)

	token, _, err := issuer.Issue(1)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsNonNumericSubject(t *testing.T) {
	tokens, _ := NewTokens("secret", "HS256", time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingExpiry(t *testing.T) {
	tokens, _ := NewTokens("secret", "HS256", time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	tokens, _ := NewTokens("secret", "HS256", time.Hour)
	_, err := tokens.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
