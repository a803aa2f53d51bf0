package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func lowCostHash(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestTokens_IssueParse(t *testing.T) {
	tok := NewTokens("s3cret", time.Hour)

	signed, exp, err := tok.Issue("user-1", RoleUser, "jane@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tok.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestTokens_ParseRejects(t *testing.T) {
	tok := NewTokens("s3cret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		signed, _, err := NewTokens("other", time.Hour).Issue("x", RoleAdmin, "")
		require.NoError(t, err)
		_, err = tok.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		signed, _, err := NewTokens("s3cret", -time.Minute).Issue("x", RoleAdmin, "")
		require.NoError(t, err)
		_, err = tok.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: RoleAdmin})
		s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tok.Parse(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tok.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "anything"))

	unusable := UnusableHash()
	cost, err := bcrypt.Cost([]byte(unusable))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
	assert.Equal(t, unusable, UnusableHash())
	assert.False(t, CheckPassword(unusable, ""))
}

func TestGate(t *testing.T) {
	tokens := NewTokens("s3cret", time.Hour)
	g := NewGate(lowCostHash(t, "letmein"), tokens)

	token, exp, err := g.Login("letmein")
	require.NoError(t, err)
	assert.False(t, exp.IsZero())
	assert.True(t, g.Authenticate(token))

	_, _, err = g.Login("nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.False(t, g.Authenticate(""))
	assert.False(t, g.Authenticate("junk"))

	userToken, err := tokens.IssueUser("u1", "jane@example.com")
	require.NoError(t, err)
	assert.False(t, g.Authenticate(userToken), "user tokens must not open the admin gate")
}

func TestGate_DisabledWithoutHash(t *testing.T) {
	g := NewGate("", NewTokens("s3cret", time.Hour))
	_, _, err := g.Login("")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
