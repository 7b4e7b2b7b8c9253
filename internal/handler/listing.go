package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/model"
	"github.com/mealbridge/mealbridge/internal/repository"
)

// ListingHandler serves food listing CRUD for restaurants and the public
// browse endpoints.
type ListingHandler struct {
	Listings    *repository.ListingRepo
	Restaurants *repository.RestaurantRepo
}

func NewListingHandler(l *repository.ListingRepo, r *repository.RestaurantRepo) *ListingHandler {
	return &ListingHandler{Listings: l, Restaurants: r}
}

// validateListingParams returns a client-facing message when the payload
// is unusable, empty string otherwise.
func validateListingParams(p *repository.ListingParams) string {
	p.Title = strings.TrimSpace(p.Title)
	p.FoodType = strings.TrimSpace(p.FoodType)
	p.Unit = strings.TrimSpace(p.Unit)
	switch {
	case p.Title == "" || p.FoodType == "" || p.Unit == "":
		return "title, food_type and unit are required"
	case p.Quantity <= 0:
		return "quantity must be positive"
	case p.ExpiryDate.IsZero() || p.PickupTimeStart.IsZero() || p.PickupTimeEnd.IsZero():
		return "expiry_date, pickup_time_start and pickup_time_end are required"
	case !p.PickupTimeEnd.After(p.PickupTimeStart):
		return "pickup_time_end must be after pickup_time_start"
	case !p.ExpiryDate.After(time.Now()):
		return "expiry_date must be in the future"
	}
	return ""
}

// Create posts a new listing under the caller's restaurant profile.
// A profile is required first; its absence is a 400, not a 404, because
// the resource being requested is the listing, not the profile.
func (h *ListingHandler) Create(c echo.Context) error {
	var p repository.ListingParams
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validateListingParams(&p); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	restaurantID, err := h.Restaurants.IDByUserID(ctx, getUserID(c))
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant profile required before creating listings"})
	}
	if err != nil {
		c.Logger().Errorf("listing create: resolve profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create listing"})
	}

	listing, err := h.Listings.Create(ctx, restaurantID, p)
	if err != nil {
		c.Logger().Errorf("listing create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create listing"})
	}
	return c.JSON(http.StatusCreated, listing)
}

// MyListings returns the caller's listings with claim counts, optionally
// filtered by ?status=.
func (h *ListingHandler) MyListings(c echo.Context) error {
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Listings.ListByOwner(ctx, getUserID(c), status)
	if err != nil {
		c.Logger().Errorf("my listings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load listings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": out})
}

// Available is the public browse endpoint with filtering and sorting.
// All filters are optional; invalid numbers are rejected rather than
// silently ignored.
func (h *ListingHandler) Available(c echo.Context) error {
	q := repository.ListingSearchQuery{
		Search:   c.QueryParam("search"),
		FoodType: strings.TrimSpace(c.QueryParam("food_type")),
		SortBy:   strings.ToLower(strings.TrimSpace(c.QueryParam("sort_by"))),
	}
	if s := c.QueryParam("min_quantity"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_quantity"})
		}
		q.MinQuantity = n
	}
	if s := c.QueryParam("max_quantity"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_quantity"})
		}
		q.MaxQuantity = n
	}
	latStr, lonStr := c.QueryParam("latitude"), c.QueryParam("longitude")
	if (latStr == "") != (lonStr == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "latitude and longitude must be provided together"})
	}
	if latStr != "" {
		lat, err1 := strconv.ParseFloat(latStr, 64)
		lon, err2 := strconv.ParseFloat(lonStr, 64)
		if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coordinates"})
		}
		q.Latitude, q.Longitude = &lat, &lon
	}
	if s := c.QueryParam("max_distance"); s != "" {
		if q.Latitude == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_distance requires latitude and longitude"})
		}
		km, err := strconv.ParseFloat(s, 64)
		if err != nil || km <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_distance"})
		}
		q.MaxDistance = km
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Listings.SearchAvailable(ctx, q)
	if err != nil {
		c.Logger().Errorf("available listings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load listings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": out, "count": len(out)})
}

// GetPublic returns one listing's detail with restaurant contact info.
func (h *ListingHandler) GetPublic(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listing, err := h.Listings.GetPublicByID(ctx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}
	if err != nil {
		c.Logger().Errorf("listing get public: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load listing"})
	}
	return c.JSON(http.StatusOK, listing)
}

// Update rewrites one of the caller's listings.  Status may be omitted
// to leave it unchanged.
func (h *ListingHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	var p repository.UpdateParams
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validateListingParams(&p.ListingParams); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
	if p.Status == "" {
		current, err := h.Listings.GetByID(ctx, id)
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		if err != nil {
			c.Logger().Errorf("listing update: load current: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update listing"})
		}
		p.Status = current.Status
	} else if !model.ValidListingStatus(p.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	listing, err := h.Listings.Update(ctx, id, getUserID(c), p)
	switch {
	case err == sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	case err == repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
	case err != nil:
		c.Logger().Errorf("listing update: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update listing"})
	}
	return c.JSON(http.StatusOK, listing)
}

// Delete removes one of the caller's listings.  Missing and not-owned
// both read as 404.
func (h *ListingHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Listings.Delete(ctx, id, getUserID(c)); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		c.Logger().Errorf("listing delete: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete listing"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "listing deleted"})
}
