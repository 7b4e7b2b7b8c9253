package repository

import (
	"context"
	"database/sql"
	"time"
)

// DashboardRepo computes the aggregate views behind the dashboard
// endpoints.  Everything here is read-only and built on conditional
// aggregates (SUM over boolean expressions) so each dashboard costs a
// fixed small number of queries.
type DashboardRepo struct{ db *sql.DB }

func NewDashboardRepo(db *sql.DB) *DashboardRepo { return &DashboardRepo{db: db} }

// RestaurantStats summarizes a restaurant's donation activity.
type RestaurantStats struct {
	TotalListings     int64   `json:"total_listings"`
	ActiveListings    int64   `json:"active_listings"`
	ClaimedListings   int64   `json:"claimed_listings"`
	CompletedListings int64   `json:"completed_listings"`
	TotalQuantity     float64 `json:"total_quantity"`
	PendingClaims     int64   `json:"pending_claims"`
	ApprovedClaims    int64   `json:"approved_claims"`
	CompletedClaims   int64   `json:"completed_claims"`
}

// RecentListingRow is the compact listing shape used in dashboard lists.
type RecentListingRow struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	FoodType   string    `json:"food_type"`
	Quantity   int64     `json:"quantity"`
	Unit       string    `json:"unit"`
	Status     string    `json:"status"`
	ExpiryDate time.Time `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// RestaurantDashboard returns the stats block plus the five most recent
// listings for the restaurant profile of userID.
func (r *DashboardRepo) RestaurantDashboard(ctx context.Context, userID uint64) (RestaurantStats, []RecentListingRow, error) {
	var s RestaurantStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(fl.id),
		        COALESCE(SUM(fl.status = 'available'), 0),
		        COALESCE(SUM(fl.status = 'claimed'), 0),
		        COALESCE(SUM(fl.status = 'completed'), 0),
		        COALESCE(SUM(fl.quantity), 0)
		 FROM food_listings fl
		 JOIN restaurants r ON r.id = fl.restaurant_id
		 WHERE r.user_id = ?`, userID).
		Scan(&s.TotalListings, &s.ActiveListings, &s.ClaimedListings, &s.CompletedListings, &s.TotalQuantity)
	if err != nil {
		return s, nil, err
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(fc.status = 'pending'), 0),
		        COALESCE(SUM(fc.status = 'approved'), 0),
		        COALESCE(SUM(fc.status = 'completed'), 0)
		 FROM food_claims fc
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants r ON r.id = fl.restaurant_id
		 WHERE r.user_id = ?`, userID).
		Scan(&s.PendingClaims, &s.ApprovedClaims, &s.CompletedClaims)
	if err != nil {
		return s, nil, err
	}

	recent, err := r.recentListings(ctx,
		`SELECT fl.id, fl.title, fl.food_type, fl.quantity, fl.unit, fl.status, fl.expiry_date, fl.created_at
		 FROM food_listings fl
		 JOIN restaurants r ON r.id = fl.restaurant_id
		 WHERE r.user_id = ?
		 ORDER BY fl.created_at DESC LIMIT 5`, userID)
	return s, recent, err
}

// OrganizationStats summarizes an organization's claim activity.
type OrganizationStats struct {
	TotalClaims      int64   `json:"total_claims"`
	PendingClaims    int64   `json:"pending_claims"`
	ApprovedClaims   int64   `json:"approved_claims"`
	CompletedClaims  int64   `json:"completed_claims"`
	QuantityReceived float64 `json:"quantity_received"`
}

// RecentClaimRow is the compact claim shape used in dashboard lists.
type RecentClaimRow struct {
	ID                  uint64     `json:"id"`
	Status              string     `json:"status"`
	ClaimedQuantity     int64      `json:"claimed_quantity"`
	PickupScheduledTime *time.Time `json:"pickup_scheduled_time"`
	Title               string     `json:"title"`
	Unit                string     `json:"unit"`
	RestaurantName      string     `json:"restaurant_name"`
	CreatedAt           time.Time  `json:"created_at"`
}

// OrganizationDashboard returns the stats block, the five most recent
// claims, and the next five approved pickups for the organization profile
// of userID.
func (r *DashboardRepo) OrganizationDashboard(ctx context.Context, userID uint64) (OrganizationStats, []RecentClaimRow, []RecentClaimRow, error) {
	var s OrganizationStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(fc.id),
		        COALESCE(SUM(fc.status = 'pending'), 0),
		        COALESCE(SUM(fc.status = 'approved'), 0),
		        COALESCE(SUM(fc.status = 'completed'), 0),
		        COALESCE(SUM(IF(fc.status = 'completed', fc.claimed_quantity, 0)), 0)
		 FROM food_claims fc
		 JOIN organizations o ON o.id = fc.organization_id
		 WHERE o.user_id = ?`, userID).
		Scan(&s.TotalClaims, &s.PendingClaims, &s.ApprovedClaims, &s.CompletedClaims, &s.QuantityReceived)
	if err != nil {
		return s, nil, nil, err
	}

	recent, err := r.recentClaims(ctx,
		`SELECT fc.id, fc.status, fc.claimed_quantity, fc.pickup_scheduled_time,
		        fl.title, fl.unit, res.name, fc.created_at
		 FROM food_claims fc
		 JOIN organizations o ON o.id = fc.organization_id
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants res ON res.id = fl.restaurant_id
		 WHERE o.user_id = ?
		 ORDER BY fc.created_at DESC LIMIT 5`, userID)
	if err != nil {
		return s, nil, nil, err
	}

	upcoming, err := r.recentClaims(ctx,
		`SELECT fc.id, fc.status, fc.claimed_quantity, fc.pickup_scheduled_time,
		        fl.title, fl.unit, res.name, fc.created_at
		 FROM food_claims fc
		 JOIN organizations o ON o.id = fc.organization_id
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants res ON res.id = fl.restaurant_id
		 WHERE o.user_id = ? AND fc.status = 'approved' AND fl.pickup_time_end > NOW()
		 ORDER BY fl.pickup_time_start ASC LIMIT 5`, userID)
	return s, recent, upcoming, err
}

// VolunteerStats summarizes a volunteer's delivery activity.
type VolunteerStats struct {
	TotalAssignments     int64 `json:"total_assignments"`
	ActiveAssignments    int64 `json:"active_assignments"`
	CompletedAssignments int64 `json:"completed_assignments"`
}

// UpcomingDeliveryRow is an active assignment in dashboard form.
type UpcomingDeliveryRow struct {
	ID                  uint64     `json:"id"`
	ClaimID             uint64     `json:"claim_id"`
	PickupScheduledTime *time.Time `json:"pickup_scheduled_time"`
	Title               string     `json:"title"`
	PickupTimeStart     time.Time  `json:"pickup_time_start"`
	PickupTimeEnd       time.Time  `json:"pickup_time_end"`
	RestaurantName      string     `json:"restaurant_name"`
	RestaurantAddress   string     `json:"restaurant_address"`
	OrganizationName    string     `json:"organization_name"`
	OrganizationAddress string     `json:"organization_address"`
}

// VolunteerDashboard returns the stats block and the next five active
// deliveries for the volunteer profile of userID.
func (r *DashboardRepo) VolunteerDashboard(ctx context.Context, userID uint64) (VolunteerStats, []UpcomingDeliveryRow, error) {
	var s VolunteerStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(a.id),
		        COALESCE(SUM(a.status = 'assigned'), 0),
		        COALESCE(SUM(a.status = 'completed'), 0)
		 FROM assignments a
		 JOIN volunteers v ON v.id = a.volunteer_id
		 WHERE v.user_id = ?`, userID).
		Scan(&s.TotalAssignments, &s.ActiveAssignments, &s.CompletedAssignments)
	if err != nil {
		return s, nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.claim_id, fc.pickup_scheduled_time,
		        fl.title, fl.pickup_time_start, fl.pickup_time_end,
		        res.name, res.address, o.name, o.address
		 FROM assignments a
		 JOIN volunteers v ON v.id = a.volunteer_id
		 JOIN food_claims fc ON fc.id = a.claim_id
		 JOIN food_listings fl ON fl.id = fc.food_listing_id
		 JOIN restaurants res ON res.id = fl.restaurant_id
		 JOIN organizations o ON o.id = fc.organization_id
		 WHERE v.user_id = ? AND a.status = 'assigned'
		 ORDER BY fl.pickup_time_start ASC LIMIT 5`, userID)
	if err != nil {
		return s, nil, err
	}
	defer rows.Close()
	out := []UpcomingDeliveryRow{}
	for rows.Next() {
		var d UpcomingDeliveryRow
		if err := rows.Scan(&d.ID, &d.ClaimID, &d.PickupScheduledTime,
			&d.Title, &d.PickupTimeStart, &d.PickupTimeEnd,
			&d.RestaurantName, &d.RestaurantAddress, &d.OrganizationName, &d.OrganizationAddress); err != nil {
			return s, nil, err
		}
		out = append(out, d)
	}
	return s, out, rows.Err()
}

// OverviewStats is the public platform-wide summary.
type OverviewStats struct {
	Restaurants       int64   `json:"restaurants"`
	Organizations     int64   `json:"organizations"`
	Volunteers        int64   `json:"volunteers"`
	TotalListings     int64   `json:"total_listings"`
	ActiveListings    int64   `json:"active_listings"`
	CompletedListings int64   `json:"completed_listings"`
	TotalClaims       int64   `json:"total_claims"`
	CompletedClaims   int64   `json:"completed_claims"`
	QuantitySaved     float64 `json:"quantity_saved"`
}

// Overview returns platform-wide counts and the ten most recent listings.
// roleCounts comes from UserRepo.CountByRole so the two repos stay on
// their own tables.
func (r *DashboardRepo) Overview(ctx context.Context, roleCounts map[string]int64) (OverviewStats, []RecentListingRow, error) {
	s := OverviewStats{
		Restaurants:   roleCounts["restaurant"],
		Organizations: roleCounts["organization"],
		Volunteers:    roleCounts["volunteer"],
	}
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id),
		        COALESCE(SUM(status = 'available'), 0),
		        COALESCE(SUM(status = 'completed'), 0)
		 FROM food_listings`).
		Scan(&s.TotalListings, &s.ActiveListings, &s.CompletedListings)
	if err != nil {
		return s, nil, err
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(id),
		        COALESCE(SUM(status = 'completed'), 0),
		        COALESCE(SUM(IF(status = 'completed', claimed_quantity, 0)), 0)
		 FROM food_claims`).
		Scan(&s.TotalClaims, &s.CompletedClaims, &s.QuantitySaved)
	if err != nil {
		return s, nil, err
	}

	recent, err := r.recentListings(ctx,
		`SELECT id, title, food_type, quantity, unit, status, expiry_date, created_at
		 FROM food_listings
		 ORDER BY created_at DESC LIMIT 10`)
	return s, recent, err
}

func (r *DashboardRepo) recentListings(ctx context.Context, query string, args ...any) ([]RecentListingRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RecentListingRow{}
	for rows.Next() {
		var d RecentListingRow
		if err := rows.Scan(&d.ID, &d.Title, &d.FoodType, &d.Quantity, &d.Unit, &d.Status, &d.ExpiryDate, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DashboardRepo) recentClaims(ctx context.Context, query string, args ...any) ([]RecentClaimRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RecentClaimRow{}
	for rows.Next() {
		var d RecentClaimRow
		if err := rows.Scan(&d.ID, &d.Status, &d.ClaimedQuantity, &d.PickupScheduledTime,
			&d.Title, &d.Unit, &d.RestaurantName, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
