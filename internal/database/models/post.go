package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a blog/marketplace entry managed through the back-office,
// scoped to an organization. Slug is unique per organization.
type Post struct {
	BaseModel
	OrganizationID uuid.UUID  `json:"organization_id" gorm:"column:org_id;type:uuid;not null;uniqueIndex:idx_posts_org_slug"`
	Slug           string     `json:"slug" gorm:"not null;size:200;uniqueIndex:idx_posts_org_slug" validate:"required,max=200"`
	Title          string     `json:"title" gorm:"not null;size:300" validate:"required,max=300"`
	Body           string     `json:"body" gorm:"type:text"`
	Published      bool       `json:"published" gorm:"not null;default:false;index"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for Post
func (Post) TableName() string {
	return "posts"
}
