package model

import "time"

// Food listing statuses.  A listing starts out available, becomes claimed
// when a restaurant approves a claim on it, and completed when the claiming
// organization confirms the pickup happened.
const (
	ListingAvailable = "available"
	ListingClaimed   = "claimed"
	ListingCompleted = "completed"
)

// ValidListingStatus reports whether s is a known listing status.
func ValidListingStatus(s string) bool {
	switch s {
	case ListingAvailable, ListingClaimed, ListingCompleted:
		return true
	}
	return false
}

// FoodListing represents a restaurant-posted offer of surplus food with a
// pickup window.  It corresponds to a row in the `food_listings` table.
//
// Fields:
//
//	ID                  – primary key identifier.
//	RestaurantID        – owning restaurant profile.
//	Title               – short label shown in browse lists.
//	Description         – longer free-form description.
//	FoodType            – category (produce, baked goods, prepared, ...).
//	Quantity            – amount on offer, in Unit.
//	Unit                – unit of measure (servings, kg, boxes, ...).
//	ExpiryDate          – when the food is no longer safe to distribute.
//	PickupTimeStart     – start of the pickup window.
//	PickupTimeEnd       – end of the pickup window.
//	SpecialInstructions – pickup notes for the claimant (nullable).
//	Status              – available | claimed | completed.
type FoodListing struct {
	ID                  uint64    `json:"id"`
	RestaurantID        uint64    `json:"restaurant_id"`
	Title               string    `json:"title"`
	Description         *string   `json:"description"`
	FoodType            string    `json:"food_type"`
	Quantity            int64     `json:"quantity"`
	Unit                string    `json:"unit"`
	ExpiryDate          time.Time `json:"expiry_date"`
	PickupTimeStart     time.Time `json:"pickup_time_start"`
	PickupTimeEnd       time.Time `json:"pickup_time_end"`
	SpecialInstructions *string   `json:"special_instructions"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
