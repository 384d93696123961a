package handlers

import (
	"errors"
	"net/http"

	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/logger"
	"astralis-ops-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication and password reset
type AuthHandler struct {
	service service.AuthServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles POST /api/v1/auth/signup
// @Summary Create an account
// @Description Register a new user under an existing organization
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body service.SignupRequest true "Signup data"
// @Success 201 {object} service.AuthResponse "Successfully created account"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.service.Signup(&req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/v1/auth/login
// @Summary Sign in
// @Description Exchange email and password for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body service.LoginRequest true "Credentials"
// @Success 200 {object} service.AuthResponse "Successfully signed in"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.service.Login(&req)
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
// @Summary Request a password reset
// @Description Send a reset link if the email is registered. The response does not reveal whether the email exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body service.ForgotPasswordRequest true "Email"
// @Success 200 {object} service.ForgotPasswordResponse "Reset requested"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req service.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.service.RequestPasswordReset(&req)
	if err != nil {
		logger.WithContext(c).WithError(err).Error("Failed to process password reset request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password reset request"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ResetPassword handles POST /api/v1/auth/reset-password
// @Summary Reset a password
// @Description Consume a reset token and set a new password. Tokens are single-use and time-bound.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body service.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} map[string]string "Password updated"
// @Failure 400 {object} map[string]interface{} "Invalid or expired token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req service.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.ResetPassword(&req); err != nil {
		if errors.Is(err, apperrors.ErrResetTokenExpired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has expired"})
			return
		}
		if errors.Is(err, apperrors.ErrInvalidResetToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reset token"})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
