package service

import (
	"testing"
	"time"

	"github.com/carspot/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	s, err := NewTokenService([]byte(secret))
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestTokenService(t, "test-secret")

	token, err := s.Issue(TokenClaims{UserID: 7, Name: "Doe", Role: model.RoleUser}, time.Hour)
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "Doe", claims.Name)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.True(t, claims.IssuedAt.Equal(fixedNow))
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestTokenExpired(t *testing.T) {
	s := newTestTokenService(t, "test-secret")

	token, err := s.Issue(TokenClaims{UserID: 7, Role: model.RoleUser}, time.Hour)
	require.NoError(t, err)

	s.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
	claims, err := s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestTokenForgedAndExpiredIsInvalid(t *testing.T) {
	forger := newTestTokenService(t, "secret-a")
	token, err := forger.Issue(TokenClaims{UserID: 7, Role: model.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	s := newTestTokenService(t, "secret-b")
	s.now = func() time.Time { return fixedNow.Add(3 * time.Hour) }
	claims, err := s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NotErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestTokenTamperedAnywhereIsInvalid(t *testing.T) {
	s := newTestTokenService(t, "test-secret")

	token, err := s.Issue(TokenClaims{UserID: 7, Name: "Doe", Role: model.RoleUser}, time.Hour)
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		b := []byte(token)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}

		claims, err := s.Verify(string(b))
		require.ErrorIsf(t, err, ErrTokenInvalid, "byte %d", i)
		require.Nilf(t, claims, "byte %d", i)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-a")
	verifier := newTestTokenService(t, "secret-b")

	token, err := issuer.Issue(TokenClaims{UserID: 7}, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	s := newTestTokenService(t, "test-secret")
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			IssuedAt:  jwt.NewNumericDate(fixedNow),
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Verify(none)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = s.Verify(hs512)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenRequiresExpiryAndNumericSubject(t *testing.T) {
	s := newTestTokenService(t, "test-secret")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "7"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = s.Verify(noExp)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = s.Verify(badSubject)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenServiceConfiguration(t *testing.T) {
	_, err := NewTokenService(nil)
	assert.ErrorIs(t, err, ErrMisconfigured)

	s := newTestTokenService(t, "test-secret")
	_, err = s.Issue(TokenClaims{UserID: 1}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Verify("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
