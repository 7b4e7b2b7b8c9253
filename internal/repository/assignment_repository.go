package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mealbridge/mealbridge/internal/model"
)

// AssignmentRepo provides persistence for volunteer delivery assignments.
// An assignment binds one volunteer to one approved claim; the unique key
// on claim_id guarantees at most one volunteer per claim.
type AssignmentRepo struct{ db *sql.DB }

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// DB exposes the underlying handle for transaction control.
func (r *AssignmentRepo) DB() *sql.DB { return r.db }

// OpportunityRow is an approved, unassigned claim as shown to volunteers
// browsing for deliveries: pickup at the restaurant, dropoff at the
// organization.
type OpportunityRow struct {
	ClaimID             uint64     `json:"claim_id"`
	ClaimedQuantity     int64      `json:"claimed_quantity"`
	PickupScheduledTime *time.Time `json:"pickup_scheduled_time"`
	Title               string     `json:"title"`
	FoodType            string     `json:"food_type"`
	Unit                string     `json:"unit"`
	PickupTimeStart     time.Time  `json:"pickup_time_start"`
	PickupTimeEnd       time.Time  `json:"pickup_time_end"`
	RestaurantName      string     `json:"restaurant_name"`
	RestaurantAddress   string     `json:"restaurant_address"`
	RestaurantLatitude  *float64   `json:"restaurant_latitude"`
	RestaurantLongitude *float64   `json:"restaurant_longitude"`
	OrganizationName    string     `json:"organization_name"`
	OrganizationAddress string     `json:"organization_address"`
	OrgLatitude         *float64   `json:"organization_latitude"`
	OrgLongitude        *float64   `json:"organization_longitude"`
}

// Opportunities returns approved claims that no volunteer has picked up
// yet, soonest pickup window first.
func (r *AssignmentRepo) Opportunities(ctx context.Context) ([]OpportunityRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT fc.id, fc.claimed_quantity, fc.pickup_scheduled_time,
		        fl.title, fl.food_type, fl.unit, fl.pickup_time_start, fl.pickup_time_end,
		        res.name, res.address, res.latitude, res.longitude,
		        o.name, o.address, o.latitude, o.longitude
		 FROM food_claims fc
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants res ON res.id = fl.restaurant_id
		 JOIN organizations o ON o.id = fc.organization_id
		 LEFT JOIN assignments a ON a.claim_id = fc.id
		 WHERE fc.status = 'approved' AND a.id IS NULL AND fl.pickup_time_end > NOW()
		 ORDER BY fl.pickup_time_start ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []OpportunityRow{}
	for rows.Next() {
		var d OpportunityRow
		if err := rows.Scan(&d.ClaimID, &d.ClaimedQuantity, &d.PickupScheduledTime,
			&d.Title, &d.FoodType, &d.Unit, &d.PickupTimeStart, &d.PickupTimeEnd,
			&d.RestaurantName, &d.RestaurantAddress, &d.RestaurantLatitude, &d.RestaurantLongitude,
			&d.OrganizationName, &d.OrganizationAddress, &d.OrgLatitude, &d.OrgLongitude); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ClaimSignupRow is what signup needs to know about the claim: its state
// and whether a volunteer already took it.
type ClaimSignupRow struct {
	ClaimID  uint64
	Status   string
	Assigned bool
}

// GetClaimForSignupTx locks the claim row for the signup transaction and
// reports whether it is already assigned.
func (r *AssignmentRepo) GetClaimForSignupTx(ctx context.Context, tx *sql.Tx, claimID uint64) (ClaimSignupRow, error) {
	var s ClaimSignupRow
	err := tx.QueryRowContext(ctx,
		"SELECT id, status FROM food_claims WHERE id = ? FOR UPDATE", claimID).
		Scan(&s.ClaimID, &s.Status)
	if err != nil {
		return s, err
	}
	var aid uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM assignments WHERE claim_id = ?", claimID).Scan(&aid)
	switch {
	case err == sql.ErrNoRows:
		s.Assigned = false
	case err != nil:
		return s, err
	default:
		s.Assigned = true
	}
	return s, nil
}

// CreateTx inserts an assignment for claimID.  The unique key on
// claim_id turns a lost race into ErrConflict.
func (r *AssignmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, claimID, volunteerID uint64, notes *string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO assignments (claim_id, volunteer_id, status, notes)
		 VALUES (?,?,?,?)`,
		claimID, volunteerID, model.AssignmentAssigned, notes)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// VolunteerAssignmentRow is an assignment as shown to the volunteer who
// holds it, with both pickup and dropoff details.
type VolunteerAssignmentRow struct {
	ID                  uint64     `json:"id"`
	ClaimID             uint64     `json:"claim_id"`
	Status              string     `json:"status"`
	Notes               *string    `json:"notes"`
	AssignedAt          time.Time  `json:"assigned_at"`
	CompletedAt         *time.Time `json:"completed_at"`
	ClaimedQuantity     int64      `json:"claimed_quantity"`
	PickupScheduledTime *time.Time `json:"pickup_scheduled_time"`
	ClaimStatus         string     `json:"claim_status"`
	Title               string     `json:"title"`
	FoodType            string     `json:"food_type"`
	Unit                string     `json:"unit"`
	PickupTimeStart     time.Time  `json:"pickup_time_start"`
	PickupTimeEnd       time.Time  `json:"pickup_time_end"`
	RestaurantName      string     `json:"restaurant_name"`
	RestaurantAddress   string     `json:"restaurant_address"`
	RestaurantPhone     *string    `json:"restaurant_phone"`
	OrganizationName    string     `json:"organization_name"`
	OrganizationAddress string     `json:"organization_address"`
	OrganizationPhone   *string    `json:"organization_phone"`
}

// ListByVolunteer returns the assignments held by the volunteer profile
// of userID, newest first.
func (r *AssignmentRepo) ListByVolunteer(ctx context.Context, userID uint64) ([]VolunteerAssignmentRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.claim_id, a.status, a.notes, a.assigned_at, a.completed_at,
		        fc.claimed_quantity, fc.pickup_scheduled_time, fc.status,
		        fl.title, fl.food_type, fl.unit, fl.pickup_time_start, fl.pickup_time_end,
		        res.name, res.address, res.phone,
		        o.name, o.address, o.phone
		 FROM assignments a
		 JOIN volunteers v ON v.id = a.volunteer_id
		 JOIN food_claims fc ON fc.id = a.claim_id
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants res ON res.id = fl.restaurant_id
		 JOIN organizations o ON o.id = fc.organization_id
		 WHERE v.user_id = ?
		 ORDER BY a.assigned_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []VolunteerAssignmentRow{}
	for rows.Next() {
		var d VolunteerAssignmentRow
		if err := rows.Scan(&d.ID, &d.ClaimID, &d.Status, &d.Notes, &d.AssignedAt, &d.CompletedAt,
			&d.ClaimedQuantity, &d.PickupScheduledTime, &d.ClaimStatus,
			&d.Title, &d.FoodType, &d.Unit, &d.PickupTimeStart, &d.PickupTimeEnd,
			&d.RestaurantName, &d.RestaurantAddress, &d.RestaurantPhone,
			&d.OrganizationName, &d.OrganizationAddress, &d.OrganizationPhone); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// AssignmentAuthzRow carries what completion needs: the assignment's
// state, the ids to cascade, and the volunteer's user id for ownership.
type AssignmentAuthzRow struct {
	ID              uint64
	Status          string
	ClaimID         uint64
	FoodListingID   uint64
	VolunteerUserID uint64
}

// GetForUpdateTx locks the assignment row and resolves the cascade ids.
// Returns sql.ErrNoRows when the assignment does not exist.
func (r *AssignmentRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (AssignmentAuthzRow, error) {
	var a AssignmentAuthzRow
	err := tx.QueryRowContext(ctx,
		`SELECT a.id, a.status, a.claim_id, fc.food_listing_id, v.user_id
		 FROM assignments a
		 JOIN food_claims fc ON fc.id = a.claim_id
		 JOIN volunteers v ON v.id = a.volunteer_id
		 WHERE a.id = ? FOR UPDATE`, id).
		Scan(&a.ID, &a.Status, &a.ClaimID, &a.FoodListingID, &a.VolunteerUserID)
	return a, err
}

// CompleteTx marks the assignment completed and stamps completed_at.
// Callers cascade the claim and listing rows in the same transaction.
func (r *AssignmentRepo) CompleteTx(ctx context.Context, tx *sql.Tx, id uint64, notes *string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE assignments SET status=?, notes=COALESCE(?, notes), completed_at=NOW() WHERE id=?`,
		model.AssignmentCompleted, notes, id)
	return err
}
