package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Marga-Ghale/ora-member-service/internal/logger"
	"github.com/Marga-Ghale/ora-member-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	claimsKey = "claims"
	userIDKey = "userID"
)

type claimsContextKey struct{}

// TokenExtractor pulls a raw credential from a request, returning "" when
// the request carries none.
type TokenExtractor func(r *http.Request) string

// FromAuthHeaderAsBearerToken reads "Authorization: Bearer <token>". The
// scheme is matched case-insensitively.
func FromAuthHeaderAsBearerToken() TokenExtractor {
	return func(r *http.Request) string {
		parts := strings.Fields(r.Header.Get("Authorization"))
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return parts[1]
	}
}

// FromHeader reads a raw token from the named header.
func FromHeader(name string) TokenExtractor {
	return func(r *http.Request) string {
		return strings.TrimSpace(r.Header.Get(name))
	}
}

// DefaultExtractors is the lookup order used by AuthMiddleware.
func DefaultExtractors() []TokenExtractor {
	return []TokenExtractor{
		FromAuthHeaderAsBearerToken(),
		FromHeader("authentication"),
	}
}

// ExtractToken returns the first non-empty token produced by extractors.
func ExtractToken(r *http.Request, extractors ...TokenExtractor) string {
	for _, extract := range extractors {
		if token := extract(r); token != "" {
			return token
		}
	}
	return ""
}

// AuthMiddleware verifies the bearer credential and exposes its claims to
// downstream handlers via the gin context and the request context.
func AuthMiddleware(authService service.AuthService, extractors ...TokenExtractor) gin.HandlerFunc {
	if len(extractors) == 0 {
		extractors = DefaultExtractors()
	}
	log := logger.Component("auth")

	return func(c *gin.Context) {
		tokenString := ExtractToken(c.Request, extractors...)
		if tokenString == "" {
			log.Debug().Str("path", c.Request.URL.Path).Msg("missing credential")
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("invalid credential")
			abortUnauthorized(c)
			return
		}

		c.Set(claimsKey, claims)
		if sub, ok := claims["sub"].(string); ok && sub != "" {
			c.Set(userIDKey, sub)
		}
		ctx := context.WithValue(c.Request.Context(), claimsContextKey{}, claims)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

// GetClaims returns the verified claims stored by AuthMiddleware.
func GetClaims(c *gin.Context) (jwt.MapClaims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(jwt.MapClaims)
	return claims, ok
}

// ClaimsFromContext returns the verified claims carried by ctx.
func ClaimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(jwt.MapClaims)
	return claims, ok
}

// GetUserID extracts user ID from gin context
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
