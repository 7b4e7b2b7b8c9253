package model

import "time"

// Restaurant is the profile record for a user with the restaurant role.
// One row per user, created or replaced through the profile upsert.
// This struct corresponds to a row in the `restaurants` table.
//
// Fields:
//
//	ID             – primary key identifier.
//	UserID         – owning user (unique).
//	Name           – display name of the restaurant.
//	Address        – street address used for pickups.
//	Latitude       – location latitude (nil when not geocoded).
//	Longitude      – location longitude (nil when not geocoded).
//	Phone          – contact phone number.
//	CuisineType    – free-form cuisine description.
//	OperatingHours – free-form opening hours text.
//	IsActive       – whether the restaurant appears in public browse.
type Restaurant struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	Phone          *string   `json:"phone"`
	CuisineType    *string   `json:"cuisine_type"`
	OperatingHours *string   `json:"operating_hours"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
