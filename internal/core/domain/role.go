package domain

// Role is the caller's permission tier. Roles form a total order:
// RolePublic < RoleClinicStaff < RoleSuperAdmin, and a higher role always
// satisfies a requirement stated in terms of a lower one.
type Role string

const (
	RolePublic      Role = "public"
	RoleClinicStaff Role = "clinic_staff"
	RoleSuperAdmin  Role = "super_admin"
)

// Level returns the position of the role in the hierarchy. Unknown role
// strings degrade to the public level rather than failing, so a stale or
// malformed claim can never grant elevated access.
func (r Role) Level() int {
	switch r {
	case RoleSuperAdmin:
		return 2
	case RoleClinicStaff:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r satisfies a requirement of at least min.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level()
}

// MinRequired returns the lowest role among accepted that still satisfies
// the operation. An empty accepted list means the operation is open to
// everyone and RolePublic is returned.
func MinRequired(accepted ...Role) Role {
	min := RoleSuperAdmin
	if len(accepted) == 0 {
		return RolePublic
	}
	for _, role := range accepted {
		if role.Level() < min.Level() {
			min = role
		}
	}
	return min
}

// Authorize decides access for a caller against the roles an operation
// accepts. The caller pointer is nil for anonymous requests.
func Authorize(caller *Role, accepted ...Role) error {
	required := MinRequired(accepted...)
	if required == RolePublic {
		return nil
	}
	if caller == nil {
		return ErrNotAuthenticated
	}
	if !caller.AtLeast(required) {
		return ErrInsufficientRole
	}
	return nil
}
