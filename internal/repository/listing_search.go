package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mealbridge/mealbridge/internal/utils"
)

// ListingSearchQuery defines the filters accepted by the public available
// listings endpoint.  Zero values mean "not set".
type ListingSearchQuery struct {
	Search      string   // case-insensitive substring over title and description
	FoodType    string
	MinQuantity int64
	MaxQuantity int64
	Latitude    *float64 // both coordinates must be present for distance handling
	Longitude   *float64
	MaxDistance float64 // kilometres; applied only when coordinates are set
	SortBy      string  // created (default) | expiry | quantity | distance
}

// AvailableListingRow is a browsable listing with its restaurant and
// contact details.  DistanceKm is populated only when the caller supplied
// coordinates and the restaurant is geocoded.
type AvailableListingRow struct {
	ID                  uint64    `json:"id"`
	Title               string    `json:"title"`
	Description         *string   `json:"description"`
	FoodType            string    `json:"food_type"`
	Quantity            int64     `json:"quantity"`
	Unit                string    `json:"unit"`
	ExpiryDate          time.Time `json:"expiry_date"`
	PickupTimeStart     time.Time `json:"pickup_time_start"`
	PickupTimeEnd       time.Time `json:"pickup_time_end"`
	SpecialInstructions *string   `json:"special_instructions"`
	CreatedAt           time.Time `json:"created_at"`
	RestaurantName      string    `json:"restaurant_name"`
	RestaurantAddress   string    `json:"restaurant_address"`
	RestaurantLatitude  *float64  `json:"restaurant_latitude"`
	RestaurantLongitude *float64  `json:"restaurant_longitude"`
	RestaurantPhone     *string   `json:"restaurant_phone"`
	ContactFirstName    string    `json:"contact_first_name"`
	ContactLastName     string    `json:"contact_last_name"`
	ContactEmail        string    `json:"contact_email"`
	DistanceKm          *float64  `json:"distance_km,omitempty"`
}

// SearchAvailable returns available listings whose expiry and pickup
// window are still in the future, applying the text and quantity filters
// in SQL and the distance filter in memory (the haversine computation
// needs both endpoints' coordinates, which MySQL holds as plain columns).
func (r *ListingRepo) SearchAvailable(ctx context.Context, q ListingSearchQuery) ([]AvailableListingRow, error) {
	where := []string{
		"fl.status = 'available'",
		"fl.expiry_date > NOW()",
		"fl.pickup_time_end > NOW()",
	}
	args := []any{}

	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where, "(LOWER(fl.title) LIKE ? OR LOWER(fl.description) LIKE ?)")
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat)
	}
	if q.FoodType != "" {
		where = append(where, "fl.food_type = ?")
		args = append(args, q.FoodType)
	}
	if q.MinQuantity > 0 {
		where = append(where, "fl.quantity >= ?")
		args = append(args, q.MinQuantity)
	}
	if q.MaxQuantity > 0 {
		where = append(where, "fl.quantity <= ?")
		args = append(args, q.MaxQuantity)
	}

	sql := `SELECT fl.id, fl.title, fl.description, fl.food_type, fl.quantity, fl.unit,
	               fl.expiry_date, fl.pickup_time_start, fl.pickup_time_end, fl.special_instructions, fl.created_at,
	               r.name, r.address, r.latitude, r.longitude, r.phone,
	               u.first_name, u.last_name, u.email
	        FROM food_listings fl
	        JOIN restaurants r ON r.id = fl.restaurant_id
	        JOIN users u ON u.id = r.user_id
	        WHERE ` + strings.Join(where, " AND ")

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AvailableListingRow{}
	for rows.Next() {
		var d AvailableListingRow
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.FoodType, &d.Quantity, &d.Unit,
			&d.ExpiryDate, &d.PickupTimeStart, &d.PickupTimeEnd, &d.SpecialInstructions, &d.CreatedAt,
			&d.RestaurantName, &d.RestaurantAddress, &d.RestaurantLatitude, &d.RestaurantLongitude, &d.RestaurantPhone,
			&d.ContactFirstName, &d.ContactLastName, &d.ContactEmail); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if q.Latitude != nil && q.Longitude != nil {
		out = annotateDistance(out, *q.Latitude, *q.Longitude, q.MaxDistance)
	}
	sortAvailable(out, q.SortBy)
	return out, nil
}

// annotateDistance fills DistanceKm on geocoded rows and, when maxKm > 0,
// drops rows outside the radius.  Rows without coordinates keep a nil
// distance and survive radius filtering only when no radius is set.
func annotateDistance(rows []AvailableListingRow, lat, lon, maxKm float64) []AvailableListingRow {
	out := rows[:0]
	for _, d := range rows {
		if d.RestaurantLatitude != nil && d.RestaurantLongitude != nil {
			km := utils.Haversine(lat, lon, *d.RestaurantLatitude, *d.RestaurantLongitude)
			d.DistanceKm = &km
		}
		if maxKm > 0 {
			if d.DistanceKm == nil || *d.DistanceKm > maxKm {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

// sortAvailable orders rows by the requested key.  Unknown or empty keys
// fall back to newest first.  Rows lacking a distance sort last under the
// distance key.  Ties keep their relative order so identical requests
// return identical result sets.
func sortAvailable(rows []AvailableListingRow, key string) {
	switch key {
	case "expiry":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ExpiryDate.Before(rows[j].ExpiryDate)
		})
	case "quantity":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Quantity > rows[j].Quantity
		})
	case "distance":
		sort.SliceStable(rows, func(i, j int) bool {
			di, dj := rows[i].DistanceKm, rows[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	default:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		})
	}
}

// PublicListingRow is the detail shape for one listing, public variant of
// AvailableListingRow including the cuisine type.
type PublicListingRow struct {
	AvailableListingRow
	CuisineType *string `json:"cuisine_type"`
	Status      string  `json:"status"`
}

// GetPublicByID returns one listing with restaurant and contact details,
// regardless of status (the detail page shows claimed listings too).
func (r *ListingRepo) GetPublicByID(ctx context.Context, id uint64) (PublicListingRow, error) {
	var d PublicListingRow
	err := r.db.QueryRowContext(ctx,
		`SELECT fl.id, fl.title, fl.description, fl.food_type, fl.quantity, fl.unit,
		        fl.expiry_date, fl.pickup_time_start, fl.pickup_time_end, fl.special_instructions, fl.created_at,
		        r.name, r.address, r.latitude, r.longitude, r.phone, r.cuisine_type,
		        u.first_name, u.last_name, u.email, fl.status
		 FROM food_listings fl
		 JOIN restaurants r ON r.id = fl.restaurant_id
		 JOIN users u ON u.id = r.user_id
		 WHERE fl.id = ?`, id).
		Scan(&d.ID, &d.Title, &d.Description, &d.FoodType, &d.Quantity, &d.Unit,
			&d.ExpiryDate, &d.PickupTimeStart, &d.PickupTimeEnd, &d.SpecialInstructions, &d.CreatedAt,
			&d.RestaurantName, &d.RestaurantAddress, &d.RestaurantLatitude, &d.RestaurantLongitude, &d.RestaurantPhone, &d.CuisineType,
			&d.ContactFirstName, &d.ContactLastName, &d.ContactEmail, &d.Status)
	return d, err
}
