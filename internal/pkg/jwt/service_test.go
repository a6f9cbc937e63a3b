package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	s := NewHMACService("s3cret", "")
	tok, err := s.GenerateAdminToken("ops", time.Hour)
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.True(t, c.IsAdmin())
	assert.Equal(t, "ops", c.Subject)
	assert.Equal(t, DefaultIssuer, c.Issuer)
	assert.NotEmpty(t, c.ID)
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("s3cret", "")
	past := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return past }
	tok, err := s.GenerateAdminToken("ops", time.Minute)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecretOrIssuer(t *testing.T) {
	tok, err := NewHMACService("one", "").GenerateAdminToken("ops", time.Hour)
	require.NoError(t, err)

	_, err = NewHMACService("two", "").ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("one", "other-site").ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RejectsOtherAlgorithms(t *testing.T) {
	c := Claims{Role: RoleAdmin, RegisteredClaims: jwtlib.RegisteredClaims{
		Issuer:    DefaultIssuer,
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, c).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = NewHMACService("s3cret", "").ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_NoSecret(t *testing.T) {
	s := NewHMACService("", "")
	_, err := s.GenerateAdminToken("ops", time.Hour)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = s.ValidateToken("x.y.z")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
