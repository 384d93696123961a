package repository

import (
	"time"

	"astralis-ops-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetByName(name string) (*models.Organization, error)
	GetByDomain(domain string) (*models.Organization, error)
	GetAll(limit, offset int) ([]models.Organization, int64, error)
	Update(org *models.Organization) error
	Delete(id uuid.UUID) error
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// PasswordResetTokenRepositoryInterface defines the interface for password reset token operations
type PasswordResetTokenRepositoryInterface interface {
	Create(token *models.PasswordResetToken) error
	GetByToken(token string) (*models.PasswordResetToken, error)
	// Consume atomically marks the token used, replaces the owning user's
	// password hash, and invalidates the user's other outstanding tokens.
	Consume(token, newPasswordHash string, now time.Time) error
	GetByUserID(userID uuid.UUID) ([]models.PasswordResetToken, error)
	DeleteExpiredOrUsed(now time.Time) (int64, error)
}

// BookingRepositoryInterface defines the interface for booking repository operations
type BookingRepositoryInterface interface {
	Create(booking *models.Booking) error
	GetByID(orgID, id uuid.UUID) (*models.Booking, error)
	GetAll(orgID uuid.UUID, limit, offset int) ([]models.Booking, int64, error)
	GetByStatus(orgID uuid.UUID, status models.BookingStatus, limit, offset int) ([]models.Booking, int64, error)
	Update(booking *models.Booking) error
	UpdateStatus(orgID, id uuid.UUID, status models.BookingStatus) error
	Delete(orgID, id uuid.UUID) error
}

// PostRepositoryInterface defines the interface for post repository operations
type PostRepositoryInterface interface {
	Create(post *models.Post) error
	GetByID(orgID, id uuid.UUID) (*models.Post, error)
	GetBySlug(orgID uuid.UUID, slug string) (*models.Post, error)
	GetAll(orgID uuid.UUID, published *bool, limit, offset int) ([]models.Post, int64, error)
	Update(post *models.Post) error
	Delete(orgID, id uuid.UUID) error
}
