package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Marga-Ghale/ora-member-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.GET("/protected", AuthMiddleware(service.NewAuthService(testSecret)), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c.Request.Context())
		require.True(t, ok)
		ginClaims, ok := GetClaims(c)
		require.True(t, ok)
		assert.Equal(t, claims["sub"], ginClaims["sub"])
		c.JSON(http.StatusOK, gin.H{"user": GetUserID(c)})
	})
	return r
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter(t)
	valid, err := service.NewAuthService(testSecret).GenerateToken("user-1", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "BearerHeader",
			headers:    map[string]string{"Authorization": "Bearer " + valid},
			wantStatus: http.StatusOK,
		},
		{
			name:       "LowercaseScheme",
			headers:    map[string]string{"Authorization": "bearer " + valid},
			wantStatus: http.StatusOK,
		},
		{
			name:       "AuthenticationHeaderFallback",
			headers:    map[string]string{"authentication": valid},
			wantStatus: http.StatusOK,
		},
		{
			name: "BearerWinsOverFallback",
			headers: map[string]string{
				"Authorization":  "Bearer " + valid,
				"authentication": "garbage",
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing",
			headers:    nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongScheme",
			headers:    map[string]string{"Authorization": "Basic " + valid},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage",
			headers:    map[string]string{"Authorization": "Bearer not.a.jwt"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongSecret",
			headers:    map[string]string{"Authorization": "Bearer " + signedToken(t, "other", jwt.MapClaims{"sub": "x"})},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired",
			headers: map[string]string{"Authorization": "Bearer " + signedToken(t, testSecret, jwt.MapClaims{
				"sub": "x",
				"exp": time.Now().Add(-time.Minute).Unix(),
			})},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
			} else {
				assert.JSONEq(t, `{"user":"user-1"}`, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_TokenWithoutSubject(t *testing.T) {
	r := newAuthRouter(t)
	token := signedToken(t, testSecret, jwt.MapClaims{"role": "admin"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":""}`, w.Body.String())
}

func TestExtractToken_Order(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("authentication", "raw")
	assert.Equal(t, "raw", ExtractToken(req, DefaultExtractors()...))

	req.Header.Set("Authorization", "Bearer first")
	assert.Equal(t, "first", ExtractToken(req, DefaultExtractors()...))

	assert.Equal(t, "", ExtractToken(httptest.NewRequest(http.MethodGet, "/", nil), DefaultExtractors()...))
}
