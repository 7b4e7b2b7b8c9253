package repository

import (
	"context"
	"database/sql"

	"github.com/mealbridge/mealbridge/internal/model"
)

// RestaurantRepo provides persistence for restaurant profiles.  Profiles
// are keyed by user_id; the upsert selects first and then updates or
// inserts, mirroring how the profile endpoints behave.
type RestaurantRepo struct{ db *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// RestaurantParams carries the writable profile fields.
type RestaurantParams struct {
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Phone          *string  `json:"phone"`
	CuisineType    *string  `json:"cuisine_type"`
	OperatingHours *string  `json:"operating_hours"`
}

// Upsert creates or replaces the profile for userID and returns the stored
// row.  The second return value is true when a new row was inserted.
func (r *RestaurantRepo) Upsert(ctx context.Context, userID uint64, p RestaurantParams) (model.Restaurant, bool, error) {
	var existing uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM restaurants WHERE user_id=?", userID).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO restaurants (user_id, name, address, latitude, longitude, phone, cuisine_type, operating_hours)
			 VALUES (?,?,?,?,?,?,?,?)`,
			userID, p.Name, p.Address, p.Latitude, p.Longitude, p.Phone, p.CuisineType, p.OperatingHours)
		if err != nil {
			return model.Restaurant{}, false, err
		}
		rest, err := r.GetByUserID(ctx, userID)
		return rest, true, err
	case err != nil:
		return model.Restaurant{}, false, err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE restaurants SET name=?, address=?, latitude=?, longitude=?, phone=?, cuisine_type=?, operating_hours=?, updated_at=NOW()
		 WHERE user_id=?`,
		p.Name, p.Address, p.Latitude, p.Longitude, p.Phone, p.CuisineType, p.OperatingHours, userID)
	if err != nil {
		return model.Restaurant{}, false, err
	}
	rest, err := r.GetByUserID(ctx, userID)
	return rest, false, err
}

// GetByUserID loads the profile owned by userID.  sql.ErrNoRows passes
// through when no profile exists yet.
func (r *RestaurantRepo) GetByUserID(ctx context.Context, userID uint64) (model.Restaurant, error) {
	var m model.Restaurant
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, address, latitude, longitude, phone, cuisine_type, operating_hours, is_active, created_at, updated_at
		 FROM restaurants WHERE user_id=? LIMIT 1`, userID).
		Scan(&m.ID, &m.UserID, &m.Name, &m.Address, &m.Latitude, &m.Longitude, &m.Phone, &m.CuisineType, &m.OperatingHours, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// IDByUserID resolves the profile id for a user.  Handlers use this to
// reject listing and claim operations until a profile exists.
func (r *RestaurantRepo) IDByUserID(ctx context.Context, userID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM restaurants WHERE user_id=?", userID).Scan(&id)
	return id, err
}

// PublicRestaurantRow is the sanitized shape returned by the public browse
// endpoints: profile fields plus the contact person from the users table.
type PublicRestaurantRow struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Phone          *string  `json:"phone"`
	CuisineType    *string  `json:"cuisine_type"`
	OperatingHours *string  `json:"operating_hours"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	CreatedAt      string   `json:"created_at"`
}

// ListActive returns all active restaurants, newest first.
func (r *RestaurantRepo) ListActive(ctx context.Context) ([]PublicRestaurantRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.address, r.latitude, r.longitude, r.phone, r.cuisine_type, r.operating_hours,
		        u.first_name, u.last_name, u.email,
		        DATE_FORMAT(r.created_at, '%Y-%m-%d %T')
		 FROM restaurants r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.is_active = 1
		 ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []PublicRestaurantRow{}
	for rows.Next() {
		var d PublicRestaurantRow
		if err := rows.Scan(&d.ID, &d.Name, &d.Address, &d.Latitude, &d.Longitude, &d.Phone, &d.CuisineType, &d.OperatingHours,
			&d.FirstName, &d.LastName, &d.Email, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetPublicByID returns one active restaurant for the public detail page.
func (r *RestaurantRepo) GetPublicByID(ctx context.Context, id uint64) (PublicRestaurantRow, error) {
	var d PublicRestaurantRow
	err := r.db.QueryRowContext(ctx,
		`SELECT r.id, r.name, r.address, r.latitude, r.longitude, r.phone, r.cuisine_type, r.operating_hours,
		        u.first_name, u.last_name, u.email,
		        DATE_FORMAT(r.created_at, '%Y-%m-%d %T')
		 FROM restaurants r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.id = ? AND r.is_active = 1`, id).
		Scan(&d.ID, &d.Name, &d.Address, &d.Latitude, &d.Longitude, &d.Phone, &d.CuisineType, &d.OperatingHours,
			&d.FirstName, &d.LastName, &d.Email, &d.CreatedAt)
	return d, err
}
