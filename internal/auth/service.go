package auth

import (
	"fmt"
	"time"

	"astralis-ops-backend/internal/database/models"
	apperrors "astralis-ops-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT token claims carrying actor identity and tenant.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	OrgID  string `json:"org_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// OrganizationID returns the tenant id carried by the claims. It satisfies
// the session shape the tenant guard narrows on.
func (c *Claims) OrganizationID() string {
	return c.OrgID
}

// Service issues and validates the HS256 JWTs used by the API.
type Service struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

// NewService creates a new authentication token service
func NewService(secret, issuer string, lifetime time.Duration) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &Service{
		secret:   []byte(secret),
		issuer:   issuer,
		lifetime: lifetime,
	}, nil
}

// GenerateToken creates a signed JWT for the given user. The token embeds
// the user's organization id so every downstream call is tenant-annotated.
func (s *Service) GenerateToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.lifetime)

	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		OrgID:  user.OrganizationID.String(),
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a JWT, returning its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.NewAuthenticationError(fmt.Sprintf("invalid token: %v", err))
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidAuthToken
	}

	return claims, nil
}

// Lifetime returns the configured token lifetime.
func (s *Service) Lifetime() time.Duration {
	return s.lifetime
}
