// Package tenant enforces organization scoping on data access. Every
// persisted business record and every query must carry the acting
// organization's id; these helpers make that annotation explicit at call
// sites instead of ad hoc map spreads.
package tenant

import (
	"strings"

	apperrors "astralis-ops-backend/internal/errors"

	"gorm.io/gorm"
)

// Context identifies the acting tenant and, optionally, the acting user for
// audit purposes.
type Context struct {
	OrgID  string
	UserID string
	Role   string
}

// RequireOrgID returns the organization id unchanged when it is non-empty,
// and ErrOrganizationIDMissing otherwise. It is the single failure point of
// this package; all other helpers are total.
func RequireOrgID(orgID string) (string, error) {
	if strings.TrimSpace(orgID) == "" {
		return "", apperrors.ErrOrganizationIDMissing
	}
	return orgID, nil
}

// WithOrgID returns a copy of the filter with org_id forced to the given
// value. A caller-supplied org_id is overwritten, never trusted. The input
// map is not mutated; a nil filter is treated as empty.
func WithOrgID(orgID string, where map[string]any) map[string]any {
	out := make(map[string]any, len(where)+1)
	for k, v := range where {
		out[k] = v
	}
	out["org_id"] = orgID
	return out
}

// WithOrgIDData is WithOrgID for create payloads: it stamps the organization
// id onto the record attributes before persistence.
func WithOrgIDData(orgID string, data map[string]any) map[string]any {
	return WithOrgID(orgID, data)
}

// orgClaims is the typed session shape produced by the auth layer.
type orgClaims interface {
	OrganizationID() string
}

// HasOrgID reports whether an opaque session-like value carries a non-empty
// organization id. Typed claims are checked first; the map fallback covers
// session payloads decoded from JSON ({"user": {"orgId": ...}}). It never
// panics and never errors.
func HasOrgID(session any) bool {
	if session == nil {
		return false
	}

	if claims, ok := session.(orgClaims); ok {
		return strings.TrimSpace(claims.OrganizationID()) != ""
	}

	m, ok := session.(map[string]any)
	if !ok {
		return false
	}
	user, ok := m["user"].(map[string]any)
	if !ok {
		return false
	}
	orgID, ok := user["orgId"].(string)
	return ok && strings.TrimSpace(orgID) != ""
}

// Scope returns a GORM scope restricting a query to one organization.
// Repositories apply it to every tenant-owned query so cross-tenant reads
// cannot be expressed.
func Scope(orgID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("org_id = ?", orgID)
	}
}
