package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mealbridge/mealbridge/internal/model"
)

// ListingRepo provides CRUD operations for food listings.  Ownership is
// always enforced through the restaurants table: a listing can only be
// modified by the user whose restaurant profile owns it.
type ListingRepo struct{ db *sql.DB }

func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span claims, assignments and listings.
func (r *ListingRepo) DB() *sql.DB { return r.db }

// ListingParams carries the writable listing fields.
type ListingParams struct {
	Title               string    `json:"title"`
	Description         *string   `json:"description"`
	FoodType            string    `json:"food_type"`
	Quantity            int64     `json:"quantity"`
	Unit                string    `json:"unit"`
	ExpiryDate          time.Time `json:"expiry_date"`
	PickupTimeStart     time.Time `json:"pickup_time_start"`
	PickupTimeEnd       time.Time `json:"pickup_time_end"`
	SpecialInstructions *string   `json:"special_instructions"`
}

// Create inserts a listing owned by restaurantID with status available and
// returns the stored row.
func (r *ListingRepo) Create(ctx context.Context, restaurantID uint64, p ListingParams) (model.FoodListing, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO food_listings
		 (restaurant_id, title, description, food_type, quantity, unit, expiry_date, pickup_time_start, pickup_time_end, special_instructions, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		restaurantID, p.Title, p.Description, p.FoodType, p.Quantity, p.Unit,
		p.ExpiryDate.UTC(), p.PickupTimeStart.UTC(), p.PickupTimeEnd.UTC(), p.SpecialInstructions, model.ListingAvailable)
	if err != nil {
		return model.FoodListing{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.FoodListing{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID loads one listing row without joins.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (model.FoodListing, error) {
	var m model.FoodListing
	err := r.db.QueryRowContext(ctx,
		`SELECT id, restaurant_id, title, description, food_type, quantity, unit,
		        expiry_date, pickup_time_start, pickup_time_end, special_instructions, status, created_at, updated_at
		 FROM food_listings WHERE id=? LIMIT 1`, id).
		Scan(&m.ID, &m.RestaurantID, &m.Title, &m.Description, &m.FoodType, &m.Quantity, &m.Unit,
			&m.ExpiryDate, &m.PickupTimeStart, &m.PickupTimeEnd, &m.SpecialInstructions, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// MyListingRow is a listing as shown to its owner, annotated with claim
// counts so the dashboard list can show pending work at a glance.
type MyListingRow struct {
	model.FoodListing
	RestaurantName string `json:"restaurant_name"`
	TotalClaims    int64  `json:"total_claims"`
	PendingClaims  int64  `json:"pending_claims"`
	ApprovedClaims int64  `json:"approved_claims"`
}

// ListByOwner returns the listings belonging to the restaurant profile of
// userID, newest first, optionally filtered by status.
func (r *ListingRepo) ListByOwner(ctx context.Context, userID uint64, status string) ([]MyListingRow, error) {
	q := `SELECT fl.id, fl.restaurant_id, fl.title, fl.description, fl.food_type, fl.quantity, fl.unit,
	             fl.expiry_date, fl.pickup_time_start, fl.pickup_time_end, fl.special_instructions, fl.status,
	             fl.created_at, fl.updated_at, r.name,
	             COUNT(fc.id),
	             COALESCE(SUM(fc.status = 'pending'), 0),
	             COALESCE(SUM(fc.status = 'approved'), 0)
	      FROM food_listings fl
	      JOIN restaurants r ON r.id = fl.restaurant_id
	      LEFT JOIN food_claims fc ON fc.food_listing_id = fl.id
	      WHERE r.user_id = ?`
	args := []any{userID}
	if status != "" {
		q += " AND fl.status = ?"
		args = append(args, status)
	}
	q += " GROUP BY fl.id ORDER BY fl.created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MyListingRow{}
	for rows.Next() {
		var d MyListingRow
		if err := rows.Scan(&d.ID, &d.RestaurantID, &d.Title, &d.Description, &d.FoodType, &d.Quantity, &d.Unit,
			&d.ExpiryDate, &d.PickupTimeStart, &d.PickupTimeEnd, &d.SpecialInstructions, &d.Status,
			&d.CreatedAt, &d.UpdatedAt, &d.RestaurantName,
			&d.TotalClaims, &d.PendingClaims, &d.ApprovedClaims); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateParams is ListingParams plus the status field, which owners may
// set directly when editing a listing.
type UpdateParams struct {
	ListingParams
	Status string `json:"status"`
}

// Update rewrites the listing fields.  It verifies ownership first and
// returns ErrForbidden when the listing belongs to someone else, or
// sql.ErrNoRows when the listing does not exist.
func (r *ListingRepo) Update(ctx context.Context, id, userID uint64, p UpdateParams) (model.FoodListing, error) {
	var ownerUserID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT r.user_id FROM food_listings fl JOIN restaurants r ON r.id = fl.restaurant_id WHERE fl.id = ?`, id).
		Scan(&ownerUserID)
	if err != nil {
		return model.FoodListing{}, err
	}
	if ownerUserID != userID {
		return model.FoodListing{}, ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE food_listings
		 SET title=?, description=?, food_type=?, quantity=?, unit=?, expiry_date=?,
		     pickup_time_start=?, pickup_time_end=?, status=?, special_instructions=?, updated_at=NOW()
		 WHERE id=?`,
		p.Title, p.Description, p.FoodType, p.Quantity, p.Unit, p.ExpiryDate.UTC(),
		p.PickupTimeStart.UTC(), p.PickupTimeEnd.UTC(), p.Status, p.SpecialInstructions, id)
	if err != nil {
		return model.FoodListing{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a listing owned by userID.  Hard delete; returns
// sql.ErrNoRows when nothing matched (missing or not owned, collapsed so
// existence is not leaked).
func (r *ListingRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE fl FROM food_listings fl
		 JOIN restaurants r ON r.id = fl.restaurant_id
		 WHERE fl.id = ? AND r.user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetForUpdateTx locks the listing row for the duration of tx.  Claim
// creation uses this so the availability check and the insert see a
// consistent row under concurrent claims.
func (r *ListingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.FoodListing, error) {
	var m model.FoodListing
	err := tx.QueryRowContext(ctx,
		`SELECT id, restaurant_id, title, description, food_type, quantity, unit,
		        expiry_date, pickup_time_start, pickup_time_end, special_instructions, status, created_at, updated_at
		 FROM food_listings WHERE id=? FOR UPDATE`, id).
		Scan(&m.ID, &m.RestaurantID, &m.Title, &m.Description, &m.FoodType, &m.Quantity, &m.Unit,
			&m.ExpiryDate, &m.PickupTimeStart, &m.PickupTimeEnd, &m.SpecialInstructions, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// UpdateStatusTx sets the listing status inside an existing transaction.
// Used by the cascades from claim and assignment transitions.
func (r *ListingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE food_listings SET status=?, updated_at=NOW() WHERE id=?", status, id)
	return err
}
