package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"astralis-ops-backend/internal/auth"
	"astralis-ops-backend/internal/database/models"
	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/mailer"
	"astralis-ops-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// resetMessage is the anti-enumeration response for forgot-password: the
// same payload is returned whether or not the email is registered.
const resetMessage = "If an account exists for that email, a reset link has been sent."

// AuthService handles sign-up, sign-in and the password reset token lifecycle
type AuthService struct {
	userRepo  repository.UserRepositoryInterface
	tokenRepo repository.PasswordResetTokenRepositoryInterface
	orgRepo   repository.OrganizationRepositoryInterface
	tokens    *auth.Service
	mailer    mailer.Mailer
	validator *validator.Validate

	resetTokenTTL time.Duration
	resetBaseURL  string
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repository.UserRepositoryInterface,
	tokenRepo repository.PasswordResetTokenRepositoryInterface,
	orgRepo repository.OrganizationRepositoryInterface,
	tokens *auth.Service,
	m mailer.Mailer,
	validator *validator.Validate,
	resetTokenTTL time.Duration,
	resetBaseURL string,
) *AuthService {
	if resetTokenTTL <= 0 {
		resetTokenTTL = time.Hour
	}
	return &AuthService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		orgRepo:       orgRepo,
		tokens:        tokens,
		mailer:        m,
		validator:     validator,
		resetTokenTTL: resetTokenTTL,
		resetBaseURL:  resetBaseURL,
	}
}

// SignupRequest represents the data needed to create an account
type SignupRequest struct {
	Email          string    `json:"email" validate:"required,email,max=255"`
	Password       string    `json:"password" validate:"required,min=8,max=72"`
	FirstName      string    `json:"first_name" validate:"required,max=100"`
	LastName       string    `json:"last_name" validate:"required,max=100"`
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
}

// LoginRequest represents the credentials for sign-in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest represents a password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse is always the same shape regardless of whether the
// email is registered
type ForgotPasswordResponse struct {
	Message string `json:"message"`
}

// ResetPasswordRequest represents a password reset consumption
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// AuthResponse represents a successful sign-up or sign-in
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// Signup creates a new user account with a bcrypt-hashed password
func (s *AuthService) Signup(req *SignupRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Organization must exist before a user can be stamped with its id
	if _, err := s.orgRepo.GetByID(req.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to look up organization: %w", err)
	}

	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, apperrors.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Self-service accounts always start as staff; only an admin can
	// promote them through the user update endpoint.
	user := &models.User{
		OrganizationID: req.OrganizationID,
		Email:          req.Email,
		PasswordHash:   string(hash),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           models.UserRoleStaff,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse(user)
}

// Login verifies credentials and returns a signed JWT
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// RequestPasswordReset issues a single-use reset token and emails a reset
// link. An unknown email yields the exact same response as a known one and
// creates no token.
func (s *AuthService) RequestPasswordReset(req *ForgotPasswordRequest) (*ForgotPasswordResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ForgotPasswordResponse{Message: resetMessage}, nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	tokenStr, err := generateResetToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     tokenStr,
		ExpiresAt: time.Now().Add(s.resetTokenTTL),
		Used:      false,
	}

	if err := s.tokenRepo.Create(token); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s?token=%s", s.resetBaseURL, tokenStr)
	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your Astralis account.</p>
		<p>If you made this request, click the link below to choose a new password:</p>
		<p><a href="%s">%s</a></p>
		<p>This link expires in %s. If you did not request a reset, you can safely ignore this email.</p>
		<p>The Astralis Team</p>
	`, user.FirstName, resetLink, resetLink, s.resetTokenTTL)

	if err := s.mailer.SendHTML([]string{user.Email}, "Reset your Astralis password", htmlBody); err != nil {
		return nil, fmt.Errorf("failed to send reset email: %w", err)
	}

	return &ForgotPasswordResponse{Message: resetMessage}, nil
}

// ResetPassword consumes a reset token and replaces the user's password.
// A token succeeds at most once; expired and used tokens leave the
// credentials untouched.
func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.tokenRepo.Consume(req.Token, string(hash), time.Now())
}

// SweepResetTokens deletes tokens that are expired or already used
func (s *AuthService) SweepResetTokens() (int64, error) {
	return s.tokenRepo.DeleteExpiredOrUsed(time.Now())
}

func (s *AuthService) authResponse(user *models.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      *convertUserToResponse(user),
	}, nil
}

// generateResetToken returns an unguessable opaque token string
func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
