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

// PostService handles business logic for blog posts
type PostService struct {
	repo      repository.PostRepositoryInterface
	validator *validator.Validate
}

// NewPostService creates a new post service
func NewPostService(repo repository.PostRepositoryInterface, validator *validator.Validate) *PostService {
	return &PostService{
		repo:      repo,
		validator: validator,
	}
}

// CreatePostRequest represents the data needed to create a post
type CreatePostRequest struct {
	Slug  string `json:"slug" validate:"required,max=200"`
	Title string `json:"title" validate:"required,max=300"`
	Body  string `json:"body"`
}

// UpdatePostRequest represents the data needed to update a post
type UpdatePostRequest struct {
	Title *string `json:"title" validate:"omitempty,max=300"`
	Body  *string `json:"body"`
}

// PostResponse represents the response data for a post
type PostResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Published      bool      `json:"published"`
	PublishedAt    string    `json:"published_at,omitempty"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
}

// PostsListResponse is the swagger schema for GET /posts
type PostsListResponse struct {
	Posts  []PostResponse `json:"posts"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// Create creates a new post. The slug must be unique within the organization.
func (s *PostService) Create(orgID string, req *CreatePostRequest) (*PostResponse, error) {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if existing, err := s.repo.GetBySlug(oid, req.Slug); err == nil && existing != nil {
		return nil, apperrors.ErrPostExists
	}

	post := &models.Post{
		OrganizationID: oid,
		Slug:           req.Slug,
		Title:          req.Title,
		Body:           req.Body,
	}

	if err := s.repo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return convertPostToResponse(post), nil
}

// GetBySlug retrieves a post by its slug within the organization
func (s *PostService) GetBySlug(orgID string, slug string) (*PostResponse, error) {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetBySlug(oid, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return convertPostToResponse(post), nil
}

// List retrieves the organization's posts, optionally filtered by published state
func (s *PostService) List(orgID string, published *bool, limit, offset int) ([]PostResponse, int64, error) {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	posts, total, err := s.repo.GetAll(oid, published, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	responses := make([]PostResponse, len(posts))
	for i := range posts {
		responses[i] = *convertPostToResponse(&posts[i])
	}
	return responses, total, nil
}

// Update updates a post's title and body
func (s *PostService) Update(orgID string, id uuid.UUID, req *UpdatePostRequest) (*PostResponse, error) {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	post, err := s.repo.GetByID(oid, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}

	if err := s.repo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return convertPostToResponse(post), nil
}

// Publish marks a post as published and stamps the publication time
func (s *PostService) Publish(orgID string, id uuid.UUID) (*PostResponse, error) {
	return s.setPublished(orgID, id, true)
}

// Unpublish marks a post as unpublished and clears the publication time
func (s *PostService) Unpublish(orgID string, id uuid.UUID) (*PostResponse, error) {
	return s.setPublished(orgID, id, false)
}

func (s *PostService) setPublished(orgID string, id uuid.UUID, published bool) (*PostResponse, error) {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(oid, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.Published = published
	if published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	} else {
		post.PublishedAt = nil
	}

	if err := s.repo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return convertPostToResponse(post), nil
}

// Delete removes a post within the organization
func (s *PostService) Delete(orgID string, id uuid.UUID) error {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return err
	}

	if _, err := s.repo.GetByID(oid, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("failed to get post: %w", err)
	}

	if err := s.repo.Delete(oid, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func convertPostToResponse(post *models.Post) *PostResponse {
	resp := &PostResponse{
		ID:             post.ID,
		OrganizationID: post.OrganizationID,
		Slug:           post.Slug,
		Title:          post.Title,
		Body:           post.Body,
		Published:      post.Published,
		CreatedAt:      post.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      post.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if post.PublishedAt != nil {
		resp.PublishedAt = post.PublishedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
