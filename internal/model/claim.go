package model

import "time"

// Claim statuses.  A claim is created pending.  The restaurant that owns
// the listing decides pending claims (approved or rejected); the claiming
// organization closes out approved ones (completed or cancelled).
// Rejected, completed and cancelled are terminal.
const (
	ClaimPending   = "pending"
	ClaimApproved  = "approved"
	ClaimRejected  = "rejected"
	ClaimCompleted = "completed"
	ClaimCancelled = "cancelled"
)

// FoodClaim is an organization's request to receive a quantity from a food
// listing.  It corresponds to a row in the `food_claims` table.  A given
// organization can hold at most one claim per listing, enforced by a
// unique key on (food_listing_id, organization_id).
type FoodClaim struct {
	ID                  uint64     `json:"id"`
	FoodListingID       uint64     `json:"food_listing_id"`
	OrganizationID      uint64     `json:"organization_id"`
	ClaimedQuantity     int64      `json:"claimed_quantity"`
	PickupScheduledTime *time.Time `json:"pickup_scheduled_time"`
	Notes               *string    `json:"notes"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ValidClaimStatus reports whether s is a known claim status.
func ValidClaimStatus(s string) bool {
	switch s {
	case ClaimPending, ClaimApproved, ClaimRejected, ClaimCompleted, ClaimCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a caller with the given role may move a
// claim from its current status to next.  Restaurants may only decide
// pending claims; organizations may only close out approved ones.  A
// pending claim can never jump straight to completed, and terminal
// statuses never transition again.
func CanTransition(role, current, next string) bool {
	switch role {
	case RoleRestaurant:
		return current == ClaimPending && (next == ClaimApproved || next == ClaimRejected)
	case RoleOrganization:
		return current == ClaimApproved && (next == ClaimCompleted || next == ClaimCancelled)
	}
	return false
}

// ListingStatusAfter returns the listing status a claim transition cascades
// to, or "" when the transition leaves the listing untouched.  Approval
// marks the listing claimed so it drops out of the available browse;
// completion marks it completed.
func ListingStatusAfter(claimStatus string) string {
	switch claimStatus {
	case ClaimApproved:
		return ListingClaimed
	case ClaimCompleted:
		return ListingCompleted
	}
	return ""
}
