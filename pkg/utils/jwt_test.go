package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-32-chars"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-42", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-42", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("another-secret-key-entirely-0000000000", token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-42", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(testSecret, token)
	assert.Error(t, err)
}
