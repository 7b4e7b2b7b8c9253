package repository

import (
	"context"
	"database/sql"

	"github.com/mealbridge/mealbridge/internal/model"
)

// VolunteerRepo provides persistence for volunteer profiles.
type VolunteerRepo struct{ db *sql.DB }

func NewVolunteerRepo(db *sql.DB) *VolunteerRepo { return &VolunteerRepo{db: db} }

// VolunteerParams carries the writable profile fields.
type VolunteerParams struct {
	Phone          *string `json:"phone"`
	Availability   *string `json:"availability"`
	Transportation *string `json:"transportation"`
	Skills         *string `json:"skills"`
}

// Upsert creates or replaces the profile for userID.  The second return
// value is true when a new row was inserted.
func (r *VolunteerRepo) Upsert(ctx context.Context, userID uint64, p VolunteerParams) (model.Volunteer, bool, error) {
	var existing uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM volunteers WHERE user_id=?", userID).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO volunteers (user_id, phone, availability, transportation, skills)
			 VALUES (?,?,?,?,?)`,
			userID, p.Phone, p.Availability, p.Transportation, p.Skills)
		if err != nil {
			return model.Volunteer{}, false, err
		}
		v, err := r.GetByUserID(ctx, userID)
		return v, true, err
	case err != nil:
		return model.Volunteer{}, false, err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE volunteers SET phone=?, availability=?, transportation=?, skills=?, updated_at=NOW()
		 WHERE user_id=?`,
		p.Phone, p.Availability, p.Transportation, p.Skills, userID)
	if err != nil {
		return model.Volunteer{}, false, err
	}
	v, err := r.GetByUserID(ctx, userID)
	return v, false, err
}

func (r *VolunteerRepo) GetByUserID(ctx context.Context, userID uint64) (model.Volunteer, error) {
	var m model.Volunteer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, phone, availability, transportation, skills, is_active, created_at, updated_at
		 FROM volunteers WHERE user_id=? LIMIT 1`, userID).
		Scan(&m.ID, &m.UserID, &m.Phone, &m.Availability, &m.Transportation, &m.Skills, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// IDByUserID resolves the profile id for a user.
func (r *VolunteerRepo) IDByUserID(ctx context.Context, userID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM volunteers WHERE user_id=?", userID).Scan(&id)
	return id, err
}

// PublicVolunteerRow is the shape exposed for coordination between the
// other roles: profile plus contact info from the users table.
type PublicVolunteerRow struct {
	ID             uint64  `json:"id"`
	Phone          *string `json:"phone"`
	Availability   *string `json:"availability"`
	Transportation *string `json:"transportation"`
	Skills         *string `json:"skills"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	CreatedAt      string  `json:"created_at"`
}

// ListActive returns all active volunteers, newest first.
func (r *VolunteerRepo) ListActive(ctx context.Context) ([]PublicVolunteerRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT v.id, v.phone, v.availability, v.transportation, v.skills,
		        u.first_name, u.last_name, u.email,
		        DATE_FORMAT(v.created_at, '%Y-%m-%d %T')
		 FROM volunteers v
		 JOIN users u ON u.id = v.user_id
		 WHERE v.is_active = 1
		 ORDER BY v.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []PublicVolunteerRow{}
	for rows.Next() {
		var d PublicVolunteerRow
		if err := rows.Scan(&d.ID, &d.Phone, &d.Availability, &d.Transportation, &d.Skills,
			&d.FirstName, &d.LastName, &d.Email, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
