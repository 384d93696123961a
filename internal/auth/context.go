package auth

import (
	"github.com/gin-gonic/gin"
)

// GetClaims returns the validated token claims set by the auth middleware.
func GetClaims(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get("auth_claims")
	if !exists {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// GetUserID returns the authenticated user's id from the request context.
func GetUserID(c *gin.Context) (string, bool) {
	return getString(c, "user_id")
}

// GetEmail returns the authenticated user's email from the request context.
func GetEmail(c *gin.Context) (string, bool) {
	return getString(c, "email")
}

// GetOrgID returns the acting organization id from the request context.
func GetOrgID(c *gin.Context) (string, bool) {
	return getString(c, "org_id")
}

func getString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
