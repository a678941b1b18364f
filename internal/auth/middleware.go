// Package auth verifies tokens issued by the hosted auth provider. This
// service never issues or refreshes credentials; it only checks the HS256
// signature with the shared secret and lifts the subject into the request
// context.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"LearnScout/be/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key holding the verified subject.
const UserIDKey = "userId"

// AnonymousID identifies unauthenticated callers, used as the rate-limit
// key when no token is presented.
const AnonymousID = "anonymous"

type Middleware struct {
	config config.JWTConfig
}

func NewMiddleware(config config.JWTConfig) *Middleware {
	return &Middleware{config: config}
}

// Optional attaches the verified user id when a valid token is present and
// falls back to anonymous otherwise. Search and chat accept both.
func (m *Middleware) Optional() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, err := m.subject(ctx.GetHeader("Authorization"))
		if err != nil {
			userID = AnonymousID
		}
		ctx.Set(UserIDKey, userID)
		ctx.Next()
	}
}

// Required rejects requests without a valid token. Per-user CRUD
// (notes, tracking, history) lives behind this.
func (m *Middleware) Required() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, err := m.subject(ctx.GetHeader("Authorization"))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		ctx.Set(UserIDKey, userID)
		ctx.Next()
	}
}

func (m *Middleware) subject(header string) (string, error) {
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return "", errors.New("missing bearer token")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("token has no subject")
	}
	return subject, nil
}

// UserID extracts the subject set by Optional or Required.
func UserID(ctx *gin.Context) string {
	if id, ok := ctx.Get(UserIDKey); ok {
		if s, ok := id.(string); ok && s != "" {
			return s
		}
	}
	return AnonymousID
}
