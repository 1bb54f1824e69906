package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/auth"
)

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := auth.NewJWTService("test-secret", "identity")
	userID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		token, expiresAt, err := svc.GenerateAccessToken(userID, time.Minute)
		require.NoError(t, err)
		assert.True(t, expiresAt.After(time.Now()))

		got, err := svc.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("expired token", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken(userID, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := auth.NewJWTService("other", "identity").GenerateAccessToken(userID, time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, _, err := auth.NewJWTService("test-secret", "someone-else").GenerateAccessToken(userID, time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("subject only", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "identity",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		got, err := svc.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})
}
