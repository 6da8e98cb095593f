package utils

import (
	"testing"

	"github.com/calltechcare/backend-go/config"
	"github.com/stretchr/testify/assert"
)

func TestJWTRoundTrip(t *testing.T) {
	config.C.JWTSecret = "test-secret"

	token, err := GenerateJWT("64f1b2c3d4e5f60718293a4b", "pat@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "64f1b2c3d4e5f60718293a4b", claims.UserID)
	assert.Equal(t, "pat@example.com", claims.Email)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	config.C.JWTSecret = "test-secret"
	token, err := GenerateJWT("64f1b2c3d4e5f60718293a4b", "pat@example.com")
	assert.NoError(t, err)

	config.C.JWTSecret = "different-secret"
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	config.C.JWTSecret = "test-secret"
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
