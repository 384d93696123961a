package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"astralis-ops-backend/internal/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	svc, err := NewService("test-secret", "astralis-ops-backend", time.Hour)
	require.NoError(t, err)
	return svc
}

func testUser() *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Email:     "ops@astralis.dev",
		FirstName: "Ada",
		LastName:  "Ops",
		Role:      models.UserRoleAdmin,

		OrganizationID: uuid.New(),
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)
	user := testUser()

	token, expiresAt, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.OrganizationID.String(), claims.OrgID)
	assert.Equal(t, string(models.UserRoleAdmin), claims.Role)
	assert.Equal(t, user.OrganizationID.String(), claims.OrganizationID())
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, err := NewService("other-secret", "astralis-ops-backend", time.Hour)
	require.NoError(t, err)

	token, _, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService("", "issuer", time.Hour)
	assert.Error(t, err)
}

func TestRequireAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService(t)
	mw := NewMiddleware(svc)

	router := gin.New()
	router.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		orgID, ok := GetOrgID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"org_id": orgID})
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := svc.GenerateToken(testUser())
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService(t)
	mw := NewMiddleware(svc)

	router := gin.New()
	router.GET("/admin", mw.RequireAuth(), mw.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	user := testUser()
	user.Role = models.UserRoleStaff
	staffToken, _, err := svc.GenerateToken(user)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, _, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
