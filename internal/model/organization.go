package model

import "time"

// Organization is the profile record for a claimant organization such as
// a shelter or food bank.  One row per user with the organization role.
type Organization struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Name      string    `json:"name"`
	Type      *string   `json:"type"` // shelter, food bank, ...
	Address   string    `json:"address"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Phone     *string   `json:"phone"`
	Capacity  *int64    `json:"capacity"` // servings it can handle
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
