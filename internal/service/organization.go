package service

import (
	"errors"
	"fmt"
	"time"

	"astralis-ops-backend/internal/database/models"
	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationService handles business logic for organizations
type OrganizationService struct {
	repo      repository.OrganizationRepositoryInterface
	validator *validator.Validate
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(repo repository.OrganizationRepositoryInterface, validator *validator.Validate) *OrganizationService {
	return &OrganizationService{
		repo:      repo,
		validator: validator,
	}
}

// CreateOrganizationRequest represents the data needed to create an organization
type CreateOrganizationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	DisplayName string `json:"display_name" validate:"required,max=200"`
	Domain      string `json:"domain" validate:"required,max=100"`
	Description string `json:"description"`
}

// UpdateOrganizationRequest represents the data needed to update an organization
type UpdateOrganizationRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=200"`
	Description *string `json:"description"`
}

// OrganizationResponse represents the response data for an organization
type OrganizationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Domain      string    `json:"domain"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// OrganizationsListResponse is the swagger schema for GET /organizations
type OrganizationsListResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
	Total         int64                  `json:"total"`
	Limit         int                    `json:"limit"`
	Offset        int                    `json:"offset"`
}

// Create creates a new organization
func (s *OrganizationService) Create(req *CreateOrganizationRequest) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if existing, err := s.repo.GetByName(req.Name); err == nil && existing != nil {
		return nil, apperrors.ErrOrganizationExists
	}
	if existing, err := s.repo.GetByDomain(req.Domain); err == nil && existing != nil {
		return nil, apperrors.ErrOrganizationExists
	}

	org := &models.Organization{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Domain:      req.Domain,
		Description: req.Description,
	}

	if err := s.repo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return convertOrganizationToResponse(org), nil
}

// GetByID retrieves an organization by ID
func (s *OrganizationService) GetByID(id uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return convertOrganizationToResponse(org), nil
}

// List retrieves all organizations with pagination
func (s *OrganizationService) List(limit, offset int) ([]OrganizationResponse, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orgs, total, err := s.repo.GetAll(limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list organizations: %w", err)
	}

	responses := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = *convertOrganizationToResponse(&orgs[i])
	}
	return responses, total, nil
}

// Update updates an organization
func (s *OrganizationService) Update(id uuid.UUID, req *UpdateOrganizationRequest) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	org, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	if req.DisplayName != nil {
		org.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		org.Description = *req.Description
	}

	if err := s.repo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return convertOrganizationToResponse(org), nil
}

func convertOrganizationToResponse(org *models.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		DisplayName: org.DisplayName,
		Domain:      org.Domain,
		Description: org.Description,
		CreatedAt:   org.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   org.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
