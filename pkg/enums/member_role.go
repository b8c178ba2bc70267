package enums

import "fmt"

// MemberRole is the access level assigned to a staff account.
type MemberRole string

const (
	MemberRoleEmployee MemberRole = "employee"
	MemberRoleAdmin    MemberRole = "admin"
	MemberRoleOwner    MemberRole = "owner"
)

var validMemberRoles = []MemberRole{
	MemberRoleEmployee,
	MemberRoleAdmin,
	MemberRoleOwner,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsElevated reports whether the role may perform admin-only operations.
func (m MemberRole) IsElevated() bool {
	return m == MemberRoleAdmin || m == MemberRoleOwner
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
