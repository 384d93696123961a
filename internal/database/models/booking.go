package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a consultation booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking represents a scheduled consultation, scoped to an organization.
type Booking struct {
	BaseModel
	OrganizationID  uuid.UUID     `json:"organization_id" gorm:"column:org_id;type:uuid;not null;index"`
	ContactName     string        `json:"contact_name" gorm:"not null;size:200" validate:"required,max=200"`
	ContactEmail    string        `json:"contact_email" gorm:"not null;size:255" validate:"required,email,max=255"`
	ScheduledAt     time.Time     `json:"scheduled_at" gorm:"not null;index"`
	DurationMinutes int           `json:"duration_minutes" gorm:"not null;default:30"`
	Status          BookingStatus `json:"status" gorm:"type:varchar(50);not null;default:'pending';index"`
	Notes           string        `json:"notes" gorm:"type:text"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}
