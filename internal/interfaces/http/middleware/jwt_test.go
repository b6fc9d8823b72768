package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-middleware",
		Expiration: time.Hour,
		Issuer:     "wms-test",
	})
}

func newProtectedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(JWTAuth(cfg))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c)})
	})
	return router
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	cfg := DefaultJWTConfig(newTestJWTService())
	router := newProtectedRouter(cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	cfg := DefaultJWTConfig(newTestJWTService())
	router := newProtectedRouter(cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_UNAUTHORIZED", errInfo["code"])
	assert.NotEmpty(t, errInfo["request_id"])
}

func TestJWTAuth_WrongScheme(t *testing.T) {
	cfg := DefaultJWTConfig(newTestJWTService())
	router := newProtectedRouter(cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	cfg := DefaultJWTConfig(svc)
	router := newProtectedRouter(cfg)

	userID := uuid.New()
	token, _, err := svc.GenerateToken(userID, "operator-1", auth.RoleOperator)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID.String(), resp["user_id"])
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-middleware",
		Expiration: -time.Minute,
		Issuer:     "wms-test",
	})
	cfg := DefaultJWTConfig(newTestJWTService())
	router := newProtectedRouter(cfg)

	token, _, err := expired.GenerateToken(uuid.New(), "operator-1", auth.RoleOperator)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "ERR_TOKEN_EXPIRED", errInfo["code"])
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestJWTService()
	cfg := DefaultJWTConfig(svc)

	router := gin.New()
	router.Use(RequestID())
	router.Use(JWTAuth(cfg))
	router.POST("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("operator is rejected", func(t *testing.T) {
		token, _, err := svc.GenerateToken(uuid.New(), "operator-1", auth.RoleOperator)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin is allowed", func(t *testing.T) {
		token, _, err := svc.GenerateToken(uuid.New(), "admin-1", auth.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetOperatorID(t *testing.T) {
	svc := newTestJWTService()
	cfg := DefaultJWTConfig(svc)

	userID := uuid.New()
	var got uuid.UUID
	router := gin.New()
	router.Use(JWTAuth(cfg))
	router.GET("/whoami", func(c *gin.Context) {
		id, err := GetOperatorID(c)
		require.NoError(t, err)
		got = id
		c.Status(http.StatusOK)
	})

	token, _, err := svc.GenerateToken(userID, "operator-1", auth.RoleOperator)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, got)
}
