package repository

import (
	"context"
	"database/sql"

	"github.com/mealbridge/mealbridge/internal/model"
)

// OrganizationRepo provides persistence for claimant organization
// profiles.  Same select-then-write upsert pattern as RestaurantRepo.
type OrganizationRepo struct{ db *sql.DB }

func NewOrganizationRepo(db *sql.DB) *OrganizationRepo { return &OrganizationRepo{db: db} }

// OrganizationParams carries the writable profile fields.
type OrganizationParams struct {
	Name      string   `json:"name"`
	Type      *string  `json:"type"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Phone     *string  `json:"phone"`
	Capacity  *int64   `json:"capacity"`
}

// Upsert creates or replaces the profile for userID.  The second return
// value is true when a new row was inserted.
func (r *OrganizationRepo) Upsert(ctx context.Context, userID uint64, p OrganizationParams) (model.Organization, bool, error) {
	var existing uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM organizations WHERE user_id=?", userID).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO organizations (user_id, name, type, address, latitude, longitude, phone, capacity)
			 VALUES (?,?,?,?,?,?,?,?)`,
			userID, p.Name, p.Type, p.Address, p.Latitude, p.Longitude, p.Phone, p.Capacity)
		if err != nil {
			return model.Organization{}, false, err
		}
		org, err := r.GetByUserID(ctx, userID)
		return org, true, err
	case err != nil:
		return model.Organization{}, false, err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE organizations SET name=?, type=?, address=?, latitude=?, longitude=?, phone=?, capacity=?, updated_at=NOW()
		 WHERE user_id=?`,
		p.Name, p.Type, p.Address, p.Latitude, p.Longitude, p.Phone, p.Capacity, userID)
	if err != nil {
		return model.Organization{}, false, err
	}
	org, err := r.GetByUserID(ctx, userID)
	return org, false, err
}

func (r *OrganizationRepo) GetByUserID(ctx context.Context, userID uint64) (model.Organization, error) {
	var m model.Organization
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, type, address, latitude, longitude, phone, capacity, is_active, created_at, updated_at
		 FROM organizations WHERE user_id=? LIMIT 1`, userID).
		Scan(&m.ID, &m.UserID, &m.Name, &m.Type, &m.Address, &m.Latitude, &m.Longitude, &m.Phone, &m.Capacity, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// IDByUserID resolves the profile id for a user.
func (r *OrganizationRepo) IDByUserID(ctx context.Context, userID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM organizations WHERE user_id=?", userID).Scan(&id)
	return id, err
}

// PublicOrganizationRow is the sanitized browse shape.
type PublicOrganizationRow struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Type      *string  `json:"type"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Phone     *string  `json:"phone"`
	Capacity  *int64   `json:"capacity"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	CreatedAt string   `json:"created_at"`
}

// ListActive returns all active organizations, newest first.
func (r *OrganizationRepo) ListActive(ctx context.Context) ([]PublicOrganizationRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.id, o.name, o.type, o.address, o.latitude, o.longitude, o.phone, o.capacity,
		        u.first_name, u.last_name, u.email,
		        DATE_FORMAT(o.created_at, '%Y-%m-%d %T')
		 FROM organizations o
		 JOIN users u ON u.id = o.user_id
		 WHERE o.is_active = 1
		 ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []PublicOrganizationRow{}
	for rows.Next() {
		var d PublicOrganizationRow
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.Address, &d.Latitude, &d.Longitude, &d.Phone, &d.Capacity,
			&d.FirstName, &d.LastName, &d.Email, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetPublicByID returns one active organization for the public detail page.
func (r *OrganizationRepo) GetPublicByID(ctx context.Context, id uint64) (PublicOrganizationRow, error) {
	var d PublicOrganizationRow
	err := r.db.QueryRowContext(ctx,
		`SELECT o.id, o.name, o.type, o.address, o.latitude, o.longitude, o.phone, o.capacity,
		        u.first_name, u.last_name, u.email,
		        DATE_FORMAT(o.created_at, '%Y-%m-%d %T')
		 FROM organizations o
		 JOIN users u ON u.id = o.user_id
		 WHERE o.id = ? AND o.is_active = 1`, id).
		Scan(&d.ID, &d.Name, &d.Type, &d.Address, &d.Latitude, &d.Longitude, &d.Phone, &d.Capacity,
			&d.FirstName, &d.LastName, &d.Email, &d.CreatedAt)
	return d, err
}
