package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := GenerateToken("alice", secret, time.Now(), time.Hour)
	require.NoError(t, err)

	got, err := ParseToken(tok, secret, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret, nil)
	require.ErrorIs(t, err, common.ErrTokenExpired)
	require.ErrorIs(t, err, common.ErrAuthorization)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"), nil)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not-a-jwt", []byte("s"), nil)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Username: "u3"}).SignedString(secret)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret, nil)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_MissingUsername(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("", secret, time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret, nil)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_UsesGivenClock(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	issued := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	tok, err := GenerateToken("u4", secret, issued, time.Hour)
	require.NoError(t, err)

	got, err := ParseToken(tok, secret, func() time.Time { return issued.Add(30 * time.Minute) })
	require.NoError(t, err)
	assert.Equal(t, "u4", got)

	_, err = ParseToken(tok, secret, func() time.Time { return issued.Add(2 * time.Hour) })
	require.ErrorIs(t, err, common.ErrTokenExpired)
}
