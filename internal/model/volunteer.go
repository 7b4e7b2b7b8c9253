package model

import "time"

// Volunteer is the profile record for a delivery volunteer.  One row per
// user with the volunteer role.
type Volunteer struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user_id"`
	Phone          *string   `json:"phone"`
	Availability   *string   `json:"availability"`   // free-form schedule text
	Transportation *string   `json:"transportation"` // car, bike, ...
	Skills         *string   `json:"skills"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
