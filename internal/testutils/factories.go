package testutils

import (
	"fmt"
	"time"

	"astralis-ops-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create() *models.Organization {
	id := uuid.New()
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "test-org-" + id.String()[:8],
		DisplayName: "Test Organization",
		Description: "A test organization",
		Domain:      id.String()[:8] + ".test.example",
	}
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	org.DisplayName = name
	return org
}

// WithDomain sets a custom domain for the organization
func (f *OrganizationFactory) WithDomain(domain string) *models.Organization {
	org := f.Create()
	org.Domain = domain
	return org
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User belonging to the given organization
func (f *UserFactory) Create(orgID uuid.UUID) *models.User {
	id := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: orgID,
		Email:          fmt.Sprintf("user-%s@test.example", id.String()[:8]),
		PasswordHash:   string(hash),
		FirstName:      "Test",
		LastName:       "User",
		Role:           models.UserRoleStaff,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(orgID uuid.UUID, email string) *models.User {
	user := f.Create(orgID)
	user.Email = email
	return user
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(orgID uuid.UUID, role models.UserRole) *models.User {
	user := f.Create(orgID)
	user.Role = role
	return user
}

// PasswordResetTokenFactory provides methods to create test PasswordResetToken data
type PasswordResetTokenFactory struct{}

// NewPasswordResetTokenFactory creates a new PasswordResetTokenFactory
func NewPasswordResetTokenFactory() *PasswordResetTokenFactory {
	return &PasswordResetTokenFactory{}
}

// Create creates an unused token for the given user expiring in one hour
func (f *PasswordResetTokenFactory) Create(userID uuid.UUID) *models.PasswordResetToken {
	id := uuid.New()
	return &models.PasswordResetToken{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     "tok-" + id.String(),
		ExpiresAt: time.Now().Add(time.Hour),
		Used:      false,
	}
}

// Expired creates a token whose expiry is already in the past
func (f *PasswordResetTokenFactory) Expired(userID uuid.UUID) *models.PasswordResetToken {
	token := f.Create(userID)
	token.ExpiresAt = time.Now().Add(-time.Hour)
	return token
}

// Used creates a token that has already been consumed
func (f *PasswordResetTokenFactory) Used(userID uuid.UUID) *models.PasswordResetToken {
	token := f.Create(userID)
	token.Used = true
	return token
}

// BookingFactory provides methods to create test Booking data
type BookingFactory struct{}

// NewBookingFactory creates a new BookingFactory
func NewBookingFactory() *BookingFactory {
	return &BookingFactory{}
}

// Create creates a pending booking for the given organization
func (f *BookingFactory) Create(orgID uuid.UUID) *models.Booking {
	id := uuid.New()
	return &models.Booking{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID:  orgID,
		ContactName:     "Test Contact",
		ContactEmail:    fmt.Sprintf("contact-%s@client.example", id.String()[:8]),
		ScheduledAt:     time.Now().Add(48 * time.Hour),
		DurationMinutes: 30,
		Status:          models.BookingStatusPending,
	}
}

// WithStatus sets a custom status for the booking
func (f *BookingFactory) WithStatus(orgID uuid.UUID, status models.BookingStatus) *models.Booking {
	booking := f.Create(orgID)
	booking.Status = status
	return booking
}

// PostFactory provides methods to create test Post data
type PostFactory struct{}

// NewPostFactory creates a new PostFactory
func NewPostFactory() *PostFactory {
	return &PostFactory{}
}

// Create creates a draft post for the given organization
func (f *PostFactory) Create(orgID uuid.UUID) *models.Post {
	id := uuid.New()
	return &models.Post{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: orgID,
		Slug:           "test-post-" + id.String()[:8],
		Title:          "Test Post",
		Body:           "Test post body.",
		Published:      false,
	}
}

// Published creates a post that is already published
func (f *PostFactory) Published(orgID uuid.UUID) *models.Post {
	post := f.Create(orgID)
	now := time.Now()
	post.Published = true
	post.PublishedAt = &now
	return post
}

// WithSlug sets a custom slug for the post
func (f *PostFactory) WithSlug(orgID uuid.UUID, slug string) *models.Post {
	post := f.Create(orgID)
	post.Slug = slug
	return post
}
