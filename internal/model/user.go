package model

import "time"

// Roles a user can register with.  The role is fixed at registration
// time and selects which profile table the user owns a row in.
const (
	RoleRestaurant   = "restaurant"
	RoleOrganization = "organization"
	RoleVolunteer    = "volunteer"
)

// ValidRole reports whether s is one of the three registration roles.
func ValidRole(s string) bool {
	switch s {
	case RoleRestaurant, RoleOrganization, RoleVolunteer:
		return true
	}
	return false
}

// User mirrors the `users` table.  Each user owns exactly one profile
// record matching their role.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	Role         string    `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        *string   `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
