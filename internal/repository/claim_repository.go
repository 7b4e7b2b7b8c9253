package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mealbridge/mealbridge/internal/model"
)

// ClaimRepo provides persistence for food claims.  State-changing
// operations run inside caller-supplied transactions because claim
// transitions cascade to the listing row.
type ClaimRepo struct{ db *sql.DB }

func NewClaimRepo(db *sql.DB) *ClaimRepo { return &ClaimRepo{db: db} }

// DB exposes the underlying handle for transaction control.
func (r *ClaimRepo) DB() *sql.DB { return r.db }

// ExistsTx reports whether organizationID already claimed the listing.
// Runs inside the claim-creation transaction; the unique key on
// (food_listing_id, organization_id) remains the backstop under races.
func (r *ClaimRepo) ExistsTx(ctx context.Context, tx *sql.Tx, listingID, organizationID uint64) (bool, error) {
	var id uint64
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM food_claims WHERE food_listing_id=? AND organization_id=?", listingID, organizationID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateTx inserts a pending claim and returns its id.  A duplicate-key
// failure maps to ErrConflict.
func (r *ClaimRepo) CreateTx(ctx context.Context, tx *sql.Tx, listingID, organizationID uint64, quantity int64, pickupTime *time.Time, notes *string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO food_claims (food_listing_id, organization_id, claimed_quantity, pickup_scheduled_time, notes, status)
		 VALUES (?,?,?,?,?,?)`,
		listingID, organizationID, quantity, pickupTime, notes, model.ClaimPending)
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

// ClaimAuthzRow carries the fields needed to validate a status update:
// the claim's current state plus the user ids on both sides of it.
type ClaimAuthzRow struct {
	ID                 uint64
	Status             string
	FoodListingID      uint64
	RestaurantUserID   uint64
	OrganizationUserID uint64
}

// GetForUpdateTx locks the claim row and resolves its owners.  Returns
// sql.ErrNoRows when the claim does not exist.
func (r *ClaimRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (ClaimAuthzRow, error) {
	var a ClaimAuthzRow
	err := tx.QueryRowContext(ctx,
		`SELECT fc.id, fc.status, fc.food_listing_id, r.user_id, o.user_id
		 FROM food_claims fc
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants r ON r.id = fl.restaurant_id
		 JOIN organizations o ON o.id = fc.organization_id
		 WHERE fc.id = ? FOR UPDATE`, id).
		Scan(&a.ID, &a.Status, &a.FoodListingID, &a.RestaurantUserID, &a.OrganizationUserID)
	return a, err
}

// UpdateStatusTx sets the claim status and, when notes is non-nil,
// replaces the notes.
func (r *ClaimRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string, notes *string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE food_claims SET status=?, notes=COALESCE(?, notes), updated_at=NOW() WHERE id=?",
		status, notes, id)
	return err
}

// OrgClaimRow is a claim as shown to the claiming organization, joined
// with the listing and the restaurant's contact details.
type OrgClaimRow struct {
	ID                  uint64     `json:"id"`
	FoodListingID       uint64     `json:"food_listing_id"`
	ClaimedQuantity     int64      `json:"claimed_quantity"`
	PickupScheduledTime *time.Time `json:"pickup_scheduled_time"`
	Notes               *string    `json:"notes"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	Title               string     `json:"title"`
	Description         *string    `json:"description"`
	FoodType            string     `json:"food_type"`
	TotalQuantity       int64      `json:"total_quantity"`
	Unit                string     `json:"unit"`
	ExpiryDate          time.Time  `json:"expiry_date"`
	PickupTimeStart     time.Time  `json:"pickup_time_start"`
	PickupTimeEnd       time.Time  `json:"pickup_time_end"`
	RestaurantName      string     `json:"restaurant_name"`
	RestaurantAddress   string     `json:"restaurant_address"`
	RestaurantPhone     *string    `json:"restaurant_phone"`
	ContactFirstName    string     `json:"contact_first_name"`
	ContactLastName     string     `json:"contact_last_name"`
	ContactEmail        string     `json:"contact_email"`
}

// ListByOrganization returns the claims made by the organization profile
// of userID, newest first.
func (r *ClaimRepo) ListByOrganization(ctx context.Context, userID uint64) ([]OrgClaimRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT fc.id, fc.food_listing_id, fc.claimed_quantity, fc.pickup_scheduled_time, fc.notes, fc.status, fc.created_at,
		        fl.title, fl.description, fl.food_type, fl.quantity, fl.unit,
		        fl.expiry_date, fl.pickup_time_start, fl.pickup_time_end,
		        r.name, r.address, r.phone,
		        ru.first_name, ru.last_name, ru.email
		 FROM food_claims fc
		 JOIN organizations o ON o.id = fc.organization_id
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants r ON r.id = fl.restaurant_id
		 JOIN users ru ON ru.id = r.user_id
		 WHERE o.user_id = ?
		 ORDER BY fc.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []OrgClaimRow{}
	for rows.Next() {
		var d OrgClaimRow
		if err := rows.Scan(&d.ID, &d.FoodListingID, &d.ClaimedQuantity, &d.PickupScheduledTime, &d.Notes, &d.Status, &d.CreatedAt,
			&d.Title, &d.Description, &d.FoodType, &d.TotalQuantity, &d.Unit,
			&d.ExpiryDate, &d.PickupTimeStart, &d.PickupTimeEnd,
			&d.RestaurantName, &d.RestaurantAddress, &d.RestaurantPhone,
			&d.ContactFirstName, &d.ContactLastName, &d.ContactEmail); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// RestaurantClaimRow is a claim as shown to the restaurant whose listing
// it targets, joined with the claiming organization's contact details.
type RestaurantClaimRow struct {
	ID                  uint64     `json:"id"`
	FoodListingID       uint64     `json:"food_listing_id"`
	ClaimedQuantity     int64      `json:"claimed_quantity"`
	PickupScheduledTime *time.Time `json:"pickup_scheduled_time"`
	Notes               *string    `json:"notes"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	Title               string     `json:"title"`
	FoodType            string     `json:"food_type"`
	TotalQuantity       int64      `json:"total_quantity"`
	Unit                string     `json:"unit"`
	ExpiryDate          time.Time  `json:"expiry_date"`
	PickupTimeStart     time.Time  `json:"pickup_time_start"`
	PickupTimeEnd       time.Time  `json:"pickup_time_end"`
	OrganizationName    string     `json:"organization_name"`
	OrganizationType    *string    `json:"organization_type"`
	OrganizationAddress string     `json:"organization_address"`
	OrganizationPhone   *string    `json:"organization_phone"`
	ContactFirstName    string     `json:"contact_first_name"`
	ContactLastName     string     `json:"contact_last_name"`
	ContactEmail        string     `json:"contact_email"`
}

// ListByRestaurant returns the claims on listings owned by the restaurant
// profile of userID, newest first.
func (r *ClaimRepo) ListByRestaurant(ctx context.Context, userID uint64) ([]RestaurantClaimRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT fc.id, fc.food_listing_id, fc.claimed_quantity, fc.pickup_scheduled_time, fc.notes, fc.status, fc.created_at,
		        fl.title, fl.food_type, fl.quantity, fl.unit,
		        fl.expiry_date, fl.pickup_time_start, fl.pickup_time_end,
		        o.name, o.type, o.address, o.phone,
		        ou.first_name, ou.last_name, ou.email
		 FROM food_claims fc
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants r ON r.id = fl.restaurant_id
		 JOIN organizations o ON o.id = fc.organization_id
		 JOIN users ou ON ou.id = o.user_id
		 WHERE r.user_id = ?
		 ORDER BY fc.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RestaurantClaimRow{}
	for rows.Next() {
		var d RestaurantClaimRow
		if err := rows.Scan(&d.ID, &d.FoodListingID, &d.ClaimedQuantity, &d.PickupScheduledTime, &d.Notes, &d.Status, &d.CreatedAt,
			&d.Title, &d.FoodType, &d.TotalQuantity, &d.Unit,
			&d.ExpiryDate, &d.PickupTimeStart, &d.PickupTimeEnd,
			&d.OrganizationName, &d.OrganizationType, &d.OrganizationAddress, &d.OrganizationPhone,
			&d.ContactFirstName, &d.ContactLastName, &d.ContactEmail); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// EmailContext holds everything the notification events need about a
// claim so consumers never have to query the database.
type EmailContext struct {
	ClaimID             uint64
	ClaimedQuantity     int64
	Unit                string
	PickupScheduledTime *time.Time
	Notes               *string
	ListingTitle        string
	RestaurantName      string
	RestaurantAddress   string
	RestaurantPhone     *string
	RestaurantEmail     string
	OrganizationName    string
	OrganizationEmail   string
}

// GetEmailContext loads the claim with both parties' names and emails.
func (r *ClaimRepo) GetEmailContext(ctx context.Context, claimID uint64) (EmailContext, error) {
	var e EmailContext
	err := r.db.QueryRowContext(ctx,
		`SELECT fc.id, fc.claimed_quantity, fl.unit, fc.pickup_scheduled_time, fc.notes, fl.title,
		        r.name, r.address, r.phone, ru.email,
		        o.name, ou.email
		 FROM food_claims fc
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants r ON r.id = fl.restaurant_id
		 JOIN users ru ON ru.id = r.user_id
		 JOIN organizations o ON o.id = fc.organization_id
		 JOIN users ou ON ou.id = o.user_id
		 WHERE fc.id = ?`, claimID).
		Scan(&e.ClaimID, &e.ClaimedQuantity, &e.Unit, &e.PickupScheduledTime, &e.Notes, &e.ListingTitle,
			&e.RestaurantName, &e.RestaurantAddress, &e.RestaurantPhone, &e.RestaurantEmail,
			&e.OrganizationName, &e.OrganizationEmail)
	return e, err
}
