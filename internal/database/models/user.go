package models

import (
	"github.com/google/uuid"
)

// UserRole represents the role of a user within their organization
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleEditor UserRole = "editor"
	UserRoleStaff  UserRole = "staff"
)

// User represents an authenticated back-office user. The password is stored
// as a bcrypt hash and never serialized.
type User struct {
	BaseModel
	OrganizationID uuid.UUID `json:"organization_id" gorm:"column:org_id;type:uuid;not null;index"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash   string    `json:"-" gorm:"not null;size:255"`
	FirstName      string    `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName       string    `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`
	Role           UserRole  `json:"role" gorm:"type:varchar(50);not null;default:'staff'"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
