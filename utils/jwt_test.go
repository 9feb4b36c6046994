package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("64b0c1f2a1b2c3d4e5f60718", "farmer")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "64b0c1f2a1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "farmer", claims.Role)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("64b0c1f2a1b2c3d4e5f60718", "consumer")
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWT_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
