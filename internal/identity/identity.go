package identity

import "fleetworks/internal/models"

// EffectiveIdentity is the identity every permission check runs against.
// "View as" (a superadmin simulating a lower role) is resolved here once,
// so authorization is a pure function of this value instead of ambient
// session state.
type EffectiveIdentity struct {
	UserID     uint
	Role       models.UserRole // role used for permission checks
	ActualRole models.UserRole
	ViewingAs  bool
}

// Resolve builds the effective identity for a user. Only a superadmin may
// assume another role; for everyone else viewAs is ignored.
func Resolve(user models.User, viewAs models.UserRole) EffectiveIdentity {
	id := EffectiveIdentity{
		UserID:     user.ID,
		Role:       user.Role,
		ActualRole: user.Role,
	}
	if user.Role == models.RoleSuperadmin && viewAs != "" && viewAs != models.RoleSuperadmin && viewAs.Valid() {
		id.Role = viewAs
		id.ViewingAs = true
	}
	return id
}

// Can reports whether the effective role is one of the given roles. A
// superadmin not in view-as mode passes every check; a superadmin viewing
// as a lower role is held to that role's permissions.
func (id EffectiveIdentity) Can(roles ...models.UserRole) bool {
	if id.Role == models.RoleSuperadmin {
		return true
	}
	for _, r := range roles {
		if id.Role == r {
			return true
		}
	}
	return false
}
