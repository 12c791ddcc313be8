package auth

import (
	"errors"
	"testing"

	"github.com/zakirnaim/storefront-api/models"
)

func TestResolveRoleAdmin(t *testing.T) {
	lookup := func(userID string) (string, error) { return models.RoleAdmin, nil }

	role, isAdmin := resolveRole(lookup, "u1")
	if role != models.RoleAdmin || !isAdmin {
		t.Errorf("resolveRole = (%q, %v), want (admin, true)", role, isAdmin)
	}
}

func TestResolveRolePlainUser(t *testing.T) {
	lookup := func(userID string) (string, error) { return models.RoleUser, nil }

	role, isAdmin := resolveRole(lookup, "u1")
	if role != models.RoleUser || isAdmin {
		t.Errorf("resolveRole = (%q, %v), want (user, false)", role, isAdmin)
	}
}

func TestResolveRoleFailsClosed(t *testing.T) {
	// A lookup error must never yield admin, and never an empty role.
	lookup := func(userID string) (string, error) { return "", errors.New("db down") }

	role, isAdmin := resolveRole(lookup, "u1")
	if role != models.RoleUser || isAdmin {
		t.Errorf("resolveRole on error = (%q, %v), want (user, false)", role, isAdmin)
	}
}

func TestResolveRoleUnknownValueFailsClosed(t *testing.T) {
	lookup := func(userID string) (string, error) { return "superuser", nil }

	role, isAdmin := resolveRole(lookup, "u1")
	if role != models.RoleUser || isAdmin {
		t.Errorf("resolveRole on unknown value = (%q, %v), want (user, false)", role, isAdmin)
	}
}
