package repository

import (
	"astralis-ops-backend/internal/database/models"
	"astralis-ops-backend/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRepository handles database operations for bookings. Every query is
// forced through the tenant scope.
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// GetByID retrieves a booking by ID within an organization
func (r *BookingRepository) GetByID(orgID, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Scopes(tenant.Scope(orgID.String())).First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetAll retrieves all bookings for an organization with pagination
func (r *BookingRepository) GetAll(orgID uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	var bookings []models.Booking
	var total int64

	scoped := r.db.Model(&models.Booking{}).Scopes(tenant.Scope(orgID.String()))
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Scopes(tenant.Scope(orgID.String())).
		Order("scheduled_at").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// GetByStatus retrieves bookings with a specific status for an organization
func (r *BookingRepository) GetByStatus(orgID uuid.UUID, status models.BookingStatus, limit, offset int) ([]models.Booking, int64, error) {
	var bookings []models.Booking
	var total int64

	query := r.db.Model(&models.Booking{}).
		Where(tenant.WithOrgID(orgID.String(), map[string]any{"status": status}))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("scheduled_at").Limit(limit).Offset(offset).Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// Update updates a booking
func (r *BookingRepository) Update(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

// UpdateStatus updates a booking's status within an organization
func (r *BookingRepository) UpdateStatus(orgID, id uuid.UUID, status models.BookingStatus) error {
	return r.db.Model(&models.Booking{}).
		Scopes(tenant.Scope(orgID.String())).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete deletes a booking within an organization
func (r *BookingRepository) Delete(orgID, id uuid.UUID) error {
	return r.db.Scopes(tenant.Scope(orgID.String())).Delete(&models.Booking{}, "id = ?", id).Error
}
