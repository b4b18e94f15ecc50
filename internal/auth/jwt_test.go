package auth_test

import (
	"testing"
	"time"

	"taskboard/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()

	token, err := auth.GenerateToken(testSecret, userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, err := auth.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken("another-secret", token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := auth.ParseToken(testSecret, "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
