package model

import "time"

// Assignment statuses.  An assignment is created assigned and becomes
// completed when the volunteer confirms the delivery, which also cascades
// the claim and its listing to completed in the same transaction.
const (
	AssignmentAssigned  = "assigned"
	AssignmentCompleted = "completed"
)

// Assignment is a volunteer's commitment to handle pickup and delivery for
// an approved claim.  A claim can carry at most one assignment, enforced
// by a unique key on claim_id.  Corresponds to a row in the `assignments`
// table.
type Assignment struct {
	ID          uint64     `json:"id"`
	ClaimID     uint64     `json:"claim_id"`
	VolunteerID uint64     `json:"volunteer_id"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
