package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
)

const (
	UserIDKey    = "user_id"
	BearerPrefix = "Bearer "
)

// AuthMiddleware verifies access tokens minted by the identity service.
// The token subject is the user id.
type AuthMiddleware struct {
	jwtSvc *auth.JWTService
}

func NewAuthMiddleware(jwtSvc *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.Abort(c, apperror.Unauthorized("authorization header required"))
			return
		}

		userID, err := m.authenticate(authHeader)
		if err != nil {
			httputil.Abort(c, err)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid bearer token is present
// and lets anonymous requests through otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := m.authenticate(c.GetHeader("Authorization")); err == nil {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(header string) (uuid.UUID, error) {
	token, ok := strings.CutPrefix(header, BearerPrefix)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("invalid authorization format")
	}

	userID, err := m.jwtSvc.ValidateAccessToken(token)
	if errors.Is(err, domain.ErrTokenExpired) {
		return uuid.Nil, apperror.Unauthorized("token expired")
	}
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("invalid token")
	}
	return userID, nil
}
