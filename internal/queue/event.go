// Package queue defines the claim event payloads exchanged over the
// message broker and the background consumer that turns them into
// notification emails.
package queue

// Event types carried in ClaimEvent.Type.  One queue, one payload shape;
// the type field selects the template and the recipient.
const (
	EventClaimCreated  = "claim.created"  // organization claimed -> notify restaurant
	EventClaimApproved = "claim.approved" // restaurant approved  -> notify organization
	EventClaimRejected = "claim.rejected" // restaurant rejected  -> notify organization
)

// ClaimEvent is published whenever a claim is created or its status is
// decided.  It carries enough denormalized context for consumers to
// render a complete email without querying the primary database.
type ClaimEvent struct {
	Type                string `json:"type"`
	ClaimID             uint64 `json:"claim_id"`
	ListingTitle        string `json:"listing_title"`
	ClaimedQuantity     int64  `json:"claimed_quantity"`
	Unit                string `json:"unit"`
	PickupScheduledTime string `json:"pickup_scheduled_time,omitempty"`
	Notes               string `json:"notes,omitempty"`
	RestaurantName      string `json:"restaurant_name"`
	RestaurantAddress   string `json:"restaurant_address"`
	RestaurantPhone     string `json:"restaurant_phone,omitempty"`
	RestaurantEmail     string `json:"restaurant_email"`
	OrganizationName    string `json:"organization_name"`
	OrganizationEmail   string `json:"organization_email"`
	OccurredAt          string `json:"occurred_at"`
}
