package domain

import "time"

const (
	RoleAdmin         = "admin"
	RoleDoctor        = "doctor"
	RoleNurse         = "nurse"
	RoleReceptionist  = "receptionist"
	RolePharmacist    = "pharmacist"
	RoleLabTechnician = "lab_technician"
)

// StaffRoles enumerates every non-admin role an account may carry.
var StaffRoles = []string{
	RoleDoctor,
	RoleNurse,
	RoleReceptionist,
	RolePharmacist,
	RoleLabTechnician,
}

// IsStaffRole reports whether role is one of the enumerated staff roles.
func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Account models a credential record identifying a user with a role.
// Admin and staff accounts share a single username namespace.
type Account struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	SecretHash string    `json:"-"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	LastLogin  time.Time `json:"last_login,omitempty"`
}

// IsAdmin reports whether the account carries the administrator role.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
