package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusbites_back_end/internal/auth"
)

const testSecret = "secret_de_test"

func TestVerify_RoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, "uid-123", "etudiant@campus.edu", time.Hour)
	require.NoError(t, err)

	v := auth.NewJWTVerifier(testSecret)
	identity, err := v.Verify("Bearer " + token)
	require.NoError(t, err)
	require.Equal(t, "uid-123", identity.UID)
	require.Equal(t, "etudiant@campus.edu", identity.Email)
}

func TestVerify_MissingHeader(t *testing.T) {
	v := auth.NewJWTVerifier(testSecret)

	_, err := v.Verify("")
	require.ErrorIs(t, err, auth.ErrMissingToken)
}

func TestVerify_BadPrefix(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, "uid-123", "", time.Hour)
	require.NoError(t, err)

	v := auth.NewJWTVerifier(testSecret)

	_, err = v.Verify("Basic " + token)
	require.ErrorIs(t, err, auth.ErrMissingToken)

	_, err = v.Verify(token)
	require.ErrorIs(t, err, auth.ErrMissingToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("autre_secret", "uid-123", "", time.Hour)
	require.NoError(t, err)

	v := auth.NewJWTVerifier(testSecret)
	_, err = v.Verify("Bearer " + token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_ExpiredToken(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, "uid-123", "", -time.Minute)
	require.NoError(t, err)

	v := auth.NewJWTVerifier(testSecret)
	_, err = v.Verify("Bearer " + token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
