package repository

import (
	"astralis-ops-backend/internal/database/models"
	"astralis-ops-backend/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRepository handles database operations for posts. Every query is
// forced through the tenant scope.
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create creates a new post
func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post by ID within an organization
func (r *PostRepository) GetByID(orgID, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.Scopes(tenant.Scope(orgID.String())).First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post by slug within an organization
func (r *PostRepository) GetBySlug(orgID uuid.UUID, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Scopes(tenant.Scope(orgID.String())).First(&post, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAll retrieves posts for an organization, optionally filtered by
// published state, with pagination
func (r *PostRepository) GetAll(orgID uuid.UUID, published *bool, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.Model(&models.Post{}).Scopes(tenant.Scope(orgID.String()))
	if published != nil {
		query = query.Where("published = ?", *published)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Update updates a post
func (r *PostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete deletes a post within an organization
func (r *PostRepository) Delete(orgID, id uuid.UUID) error {
	return r.db.Scopes(tenant.Scope(orgID.String())).Delete(&models.Post{}, "id = ?", id).Error
}
