package service

import (
	"errors"
	"fmt"

	"astralis-ops-backend/internal/database/models"
	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/repository"
	"astralis-ops-backend/internal/tenant"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles business logic for back-office users
type UserService struct {
	repo      repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, validator *validator.Validate) *UserService {
	return &UserService{
		repo:      repo,
		validator: validator,
	}
}

// UpdateUserRequest represents the data needed to update a user
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Role      *string `json:"role"`
}

// UserResponse represents the response data for a user
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           string    `json:"role"`
}

// UsersListResponse is the swagger schema for GET /users
type UsersListResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return convertUserToResponse(user), nil
}

// ListByOrganization retrieves users for the acting organization
func (s *UserService) ListByOrganization(orgID string, limit, offset int) ([]UserResponse, int64, error) {
	orgUUID, err := parseOrgID(orgID)
	if err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.GetByOrganizationID(orgUUID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *convertUserToResponse(&users[i])
	}
	return responses, total, nil
}

// Update updates a user within the acting organization
func (s *UserService) Update(orgID string, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	orgUUID, err := parseOrgID(orgID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Cross-tenant updates are indistinguishable from not-found
	if user.OrganizationID != orgUUID {
		return nil, apperrors.ErrUserNotFound
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		switch role {
		case models.UserRoleAdmin, models.UserRoleEditor, models.UserRoleStaff:
			user.Role = role
		default:
			return nil, apperrors.NewValidationError("role", "invalid role")
		}
	}

	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return convertUserToResponse(user), nil
}

// Delete removes a user within the acting organization
func (s *UserService) Delete(orgID string, id uuid.UUID) error {
	orgUUID, err := parseOrgID(orgID)
	if err != nil {
		return err
	}

	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.OrganizationID != orgUUID {
		return apperrors.ErrUserNotFound
	}

	return s.repo.Delete(id)
}

// parseOrgID runs the tenant guard and parses the organization id.
func parseOrgID(orgID string) (uuid.UUID, error) {
	validated, err := tenant.RequireOrgID(orgID)
	if err != nil {
		return uuid.Nil, err
	}
	orgUUID, err := uuid.Parse(validated)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("org_id", "must be a valid UUID")
	}
	return orgUUID, nil
}

func convertUserToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:             user.ID,
		OrganizationID: user.OrganizationID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           string(user.Role),
	}
}
