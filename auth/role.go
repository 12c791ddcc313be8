package auth

import (
	"log"

	"github.com/zakirnaim/storefront-api/models"
	"gorm.io/gorm"
)

// roleLookup fetches a user's role by id. Split out so the fail-closed
// policy in ResolveRole can be tested without a database.
type roleLookup func(userID string) (string, error)

func dbRoleLookup(db *gorm.DB) roleLookup {
	return func(userID string) (string, error) {
		var user models.User
		if err := db.Select("role").First(&user, "id = ?", userID).Error; err != nil {
			return "", err
		}
		return user.Role, nil
	}
}

// resolveRole runs the role lookup for an identity. Any failure — missing
// record, bad value, database error — resolves to the plain user role, never
// to admin and never to an empty role (fail-closed).
func resolveRole(lookup roleLookup, userID string) (role string, isAdmin bool) {
	r, err := lookup(userID)
	if err != nil {
		log.Printf("⚠️ Role lookup failed for %s: %v (defaulting to user)", userID, err)
		return models.RoleUser, false
	}
	if r != models.RoleAdmin {
		return models.RoleUser, false
	}
	return models.RoleAdmin, true
}

// ResolveRole is the DB-backed entry point used on every auth-state change.
func ResolveRole(db *gorm.DB, userID string) (string, bool) {
	return resolveRole(dbRoleLookup(db), userID)
}
