package user

import "fmt"

type Role string

const (
	RoleStudent       Role = "Student"
	RoleTeacher       Role = "Teacher"
	RoleSpecialist    Role = "Specialist"
	RoleAdministrator Role = "Administrator"
)

// Roles lists every valid role.
var Roles = []Role{RoleStudent, RoleTeacher, RoleSpecialist, RoleAdministrator}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleSpecialist, RoleAdministrator:
		return true
	default:
		return false
	}
}

// CanAuthor reports whether the role may create and edit courses.
func (r Role) CanAuthor() bool {
	return r == RoleTeacher || r == RoleSpecialist
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", invalidRole(r)
	}
	return r, nil
}

func invalidRole(r Role) error {
	return fmt.Errorf("%w: %q must be one of %v", ErrInvalidRole, string(r), Roles)
}
