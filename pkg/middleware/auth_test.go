package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/private", RequireAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(ContextUserID),
			"role":    c.GetString(ContextRole),
		})
	})
	router.GET("/admin", RequireAuth(secret), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func sign(t *testing.T, secret, role string, method jwt.SigningMethod) string {
	t.Helper()
	claims := Claims{
		UserID: "64f000000000000000000001",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func do(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := newAuthRouter("s3cret")
	assert.Equal(t, http.StatusUnauthorized, do(router, "/private", "").Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router := newAuthRouter("s3cret")
	assert.Equal(t, http.StatusUnauthorized, do(router, "/private", "Token abc").Code)
}

func TestRequireAuthBadSignature(t *testing.T) {
	router := newAuthRouter("s3cret")
	token := sign(t, "other-secret", "user", jwt.SigningMethodHS256)
	assert.Equal(t, http.StatusUnauthorized, do(router, "/private", "Bearer "+token).Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	router := newAuthRouter("s3cret")
	claims := Claims{
		UserID: "64f000000000000000000001",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(router, "/private", "Bearer "+token).Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	router := newAuthRouter("s3cret")
	token := sign(t, "s3cret", "user", jwt.SigningMethodHS256)

	w := do(router, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "64f000000000000000000001")
}

func TestRequireAdmin(t *testing.T) {
	router := newAuthRouter("s3cret")

	userToken := sign(t, "s3cret", "user", jwt.SigningMethodHS256)
	assert.Equal(t, http.StatusForbidden, do(router, "/admin", "Bearer "+userToken).Code)

	adminToken := sign(t, "s3cret", "admin", jwt.SigningMethodHS256)
	assert.Equal(t, http.StatusOK, do(router, "/admin", "Bearer "+adminToken).Code)
}
