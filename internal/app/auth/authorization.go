// Package auth holds the role gate applied to protected operations.
package auth

import (
	"github.com/middleway/middleway/internal/app/models"
)

// Capability names a gated group of operations
type Capability string

const (
	// CapAdmin covers user administration: full listings and role changes
	CapAdmin Capability = "admin"
	// CapModeration covers the unfiltered meetup listing
	CapModeration Capability = "moderation"
)

// capabilityRoles is the single source of truth for which roles hold which
// capability. Admin holds every moderator capability by inclusion here, not by
// ad hoc checks at call sites.
var capabilityRoles = map[Capability][]models.Role{
	CapAdmin:      {models.RoleAdmin},
	CapModeration: {models.RoleModerator, models.RoleAdmin},
}

// HasCapability reports whether the role holds the capability
func HasCapability(role models.Role, cap Capability) bool {
	for _, allowed := range capabilityRoles[cap] {
		if role == allowed {
			return true
		}
	}
	return false
}
