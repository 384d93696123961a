package service

import (
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// AuthServiceInterface defines the interface for the authentication service
type AuthServiceInterface interface {
	Signup(req *SignupRequest) (*AuthResponse, error)
	Login(req *LoginRequest) (*AuthResponse, error)
	RequestPasswordReset(req *ForgotPasswordRequest) (*ForgotPasswordResponse, error)
	ResetPassword(req *ResetPasswordRequest) error
	SweepResetTokens() (int64, error)
}

// OrganizationServiceInterface defines the interface for the organization service
type OrganizationServiceInterface interface {
	Create(req *CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByID(id uuid.UUID) (*OrganizationResponse, error)
	List(limit, offset int) ([]OrganizationResponse, int64, error)
	Update(id uuid.UUID, req *UpdateOrganizationRequest) (*OrganizationResponse, error)
}

// UserServiceInterface defines the interface for the user service
type UserServiceInterface interface {
	GetByID(id uuid.UUID) (*UserResponse, error)
	ListByOrganization(orgID string, limit, offset int) ([]UserResponse, int64, error)
	Update(orgID string, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
	Delete(orgID string, id uuid.UUID) error
}

// BookingServiceInterface defines the interface for the booking service
type BookingServiceInterface interface {
	Create(orgID string, req *CreateBookingRequest) (*BookingResponse, error)
	GetByID(orgID string, id uuid.UUID) (*BookingResponse, error)
	List(orgID string, status string, limit, offset int) ([]BookingResponse, int64, error)
	UpdateStatus(orgID string, id uuid.UUID, status string) (*BookingResponse, error)
	Cancel(orgID string, id uuid.UUID) (*BookingResponse, error)
}

// PostServiceInterface defines the interface for the post service
type PostServiceInterface interface {
	Create(orgID string, req *CreatePostRequest) (*PostResponse, error)
	GetBySlug(orgID string, slug string) (*PostResponse, error)
	List(orgID string, published *bool, limit, offset int) ([]PostResponse, int64, error)
	Update(orgID string, id uuid.UUID, req *UpdatePostRequest) (*PostResponse, error)
	Publish(orgID string, id uuid.UUID) (*PostResponse, error)
	Unpublish(orgID string, id uuid.UUID) (*PostResponse, error)
	Delete(orgID string, id uuid.UUID) error
}
