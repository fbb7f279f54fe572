package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateAccessToken(42, "Maria Doadora", "Donor", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Maria Doadora", claims.Name)
	assert.Equal(t, "Donor", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidate_Expired(t *testing.T) {
	token, err := GenerateAccessToken(1, "x", "Donor", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "x", "Donor", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   "Administrator",
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
