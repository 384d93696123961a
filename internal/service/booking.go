package service

import (
	"errors"
	"fmt"
	"time"

	"astralis-ops-backend/internal/database/models"
	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/mailer"
	"astralis-ops-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingService handles business logic for consultation bookings
type BookingService struct {
	repo      repository.BookingRepositoryInterface
	mailer    mailer.Mailer
	validator *validator.Validate
}

// NewBookingService creates a new booking service
func NewBookingService(repo repository.BookingRepositoryInterface, m mailer.Mailer, validator *validator.Validate) *BookingService {
	return &BookingService{
		repo:      repo,
		mailer:    m,
		validator: validator,
	}
}

// CreateBookingRequest represents the data needed to schedule a booking
type CreateBookingRequest struct {
	ContactName     string    `json:"contact_name" validate:"required,max=200"`
	ContactEmail    string    `json:"contact_email" validate:"required,email,max=255"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=15,max=240"`
	Notes           string    `json:"notes" validate:"max=2000"`
}

// BookingResponse represents the response data for a booking
type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	OrganizationID  uuid.UUID `json:"organization_id"`
	ContactName     string    `json:"contact_name"`
	ContactEmail    string    `json:"contact_email"`
	ScheduledAt     string    `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       string    `json:"created_at"`
}

// BookingsListResponse is the swagger schema for GET /bookings
type BookingsListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// statusTransitions maps each booking status to the states it may move to.
var statusTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled},
	models.BookingStatusCancelled: {},
	models.BookingStatusCompleted: {},
}

// Create schedules a new booking for the organization
func (s *BookingService) Create(orgID string, req *CreateBookingRequest) (*BookingResponse, error) {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.ErrBookingTimeInPast
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 30
	}

	booking := &models.Booking{
		OrganizationID:  oid,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: duration,
		Status:          models.BookingStatusPending,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return convertBookingToResponse(booking), nil
}

// GetByID retrieves a booking within the organization
func (s *BookingService) GetByID(orgID string, id uuid.UUID) (*BookingResponse, error) {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.GetByID(oid, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return convertBookingToResponse(booking), nil
}

// List retrieves the organization's bookings, optionally filtered by status
func (s *BookingService) List(orgID string, status string, limit, offset int) ([]BookingResponse, int64, error) {
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

	var (
		bookings []models.Booking
		total    int64
	)
	if status != "" {
		bs, verr := parseBookingStatus(status)
		if verr != nil {
			return nil, 0, verr
		}
		bookings, total, err = s.repo.GetByStatus(oid, bs, limit, offset)
	} else {
		bookings, total, err = s.repo.GetAll(oid, limit, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *convertBookingToResponse(&bookings[i])
	}
	return responses, total, nil
}

// UpdateStatus moves a booking to a new status, enforcing the allowed
// transitions. Confirming a booking sends a confirmation email.
func (s *BookingService) UpdateStatus(orgID string, id uuid.UUID, status string) (*BookingResponse, error) {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return nil, err
	}

	target, err := parseBookingStatus(status)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.GetByID(oid, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if !transitionAllowed(booking.Status, target) {
		if booking.Status == models.BookingStatusCancelled {
			return nil, apperrors.ErrBookingAlreadyCancelled
		}
		return nil, apperrors.ErrInvalidBookingStatus
	}

	if err := s.repo.UpdateStatus(oid, id, target); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = target

	if target == models.BookingStatusConfirmed {
		if err := s.sendConfirmationEmail(booking); err != nil {
			logrus.WithError(err).WithField("booking_id", booking.ID).Warn("Failed to send booking confirmation email")
		}
	}

	return convertBookingToResponse(booking), nil
}

// Cancel cancels a booking regardless of its current non-terminal state
func (s *BookingService) Cancel(orgID string, id uuid.UUID) (*BookingResponse, error) {
	oid, err := parseOrgID(orgID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.GetByID(oid, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil, apperrors.ErrBookingAlreadyCancelled
	}
	if booking.Status == models.BookingStatusCompleted {
		return nil, apperrors.ErrInvalidBookingStatus
	}

	if err := s.repo.UpdateStatus(oid, id, models.BookingStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	booking.Status = models.BookingStatusCancelled

	return convertBookingToResponse(booking), nil
}

func (s *BookingService) sendConfirmationEmail(booking *models.Booking) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your consultation is confirmed for <strong>%s</strong> (%d minutes).</p><p>We look forward to speaking with you.</p>",
		booking.ContactName,
		booking.ScheduledAt.UTC().Format("Monday, 2 January 2006 at 15:04 MST"),
		booking.DurationMinutes,
	)
	return s.mailer.SendHTML([]string{booking.ContactEmail}, "Your consultation is confirmed", body)
}

func transitionAllowed(from, to models.BookingStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func parseBookingStatus(status string) (models.BookingStatus, error) {
	switch models.BookingStatus(status) {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled, models.BookingStatusCompleted:
		return models.BookingStatus(status), nil
	default:
		return "", apperrors.ErrInvalidBookingStatus
	}
}

func convertBookingToResponse(booking *models.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              booking.ID,
		OrganizationID:  booking.OrganizationID,
		ContactName:     booking.ContactName,
		ContactEmail:    booking.ContactEmail,
		ScheduledAt:     booking.ScheduledAt.UTC().Format(time.RFC3339),
		DurationMinutes: booking.DurationMinutes,
		Status:          string(booking.Status),
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt.UTC().Format(time.RFC3339),
	}
}
