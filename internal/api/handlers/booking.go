package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles HTTP requests for consultation bookings
type BookingHandler struct {
	service service.BookingServiceInterface
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service service.BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: service}
}

// CreateBooking handles POST /api/v1/bookings
// @Summary Schedule a booking
// @Description Schedule a consultation booking for the caller's organization
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body service.CreateBookingRequest true "Booking data"
// @Success 201 {object} service.BookingResponse "Successfully scheduled booking"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 403 {object} map[string]interface{} "Missing organization id"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.service.Create(orgID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookingTimeInPast) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBooking handles GET /api/v1/bookings/:id
// @Summary Get booking by ID
// @Description Get a booking within the caller's organization
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID (UUID)"
// @Success 200 {object} service.BookingResponse "Successfully retrieved booking"
// @Failure 400 {object} map[string]interface{} "Invalid booking ID"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID: invalid UUID format"})
		return
	}

	booking, err := h.service.GetByID(orgID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get booking", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListBookings handles GET /api/v1/bookings
// @Summary List bookings
// @Description Get the caller's organization's bookings, optionally filtered by status
// @Tags bookings
// @Accept json
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, confirmed, cancelled, completed)
// @Param limit query int false "Maximum number of results" default(20)
// @Param offset query int false "Number of results to skip" default(0)
// @Success 200 {object} service.BookingsListResponse "Successfully retrieved bookings"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	status := c.Query("status")

	bookings, total, err := h.service.List(orgID, status, limit, offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidBookingStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, service.BookingsListResponse{
		Bookings: bookings,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

// UpdateBookingStatus handles PATCH /api/v1/bookings/:id/status
// @Summary Update booking status
// @Description Move a booking to a new status. Confirming sends a confirmation email.
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID (UUID)"
// @Param status body map[string]string true "New status"
// @Success 200 {object} service.BookingResponse "Successfully updated booking"
// @Failure 400 {object} map[string]interface{} "Invalid transition"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID: invalid UUID format"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.service.UpdateStatus(orgID, id, req.Status)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrInvalidBookingStatus) || errors.Is(err, apperrors.ErrBookingAlreadyCancelled) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
// @Summary Cancel a booking
// @Description Cancel a pending or confirmed booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID (UUID)"
// @Success 200 {object} service.BookingResponse "Successfully cancelled booking"
// @Failure 400 {object} map[string]interface{} "Booking cannot be cancelled"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	orgID, ok := actingOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID: invalid UUID format"})
		return
	}

	booking, err := h.service.Cancel(orgID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrBookingAlreadyCancelled) || errors.Is(err, apperrors.ErrInvalidBookingStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}
