package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/repository"
)

// DashboardHandler serves the per-role dashboards and the public
// platform overview.
type DashboardHandler struct {
	Dashboards *repository.DashboardRepo
	Users      *repository.UserRepo
}

func NewDashboardHandler(d *repository.DashboardRepo, u *repository.UserRepo) *DashboardHandler {
	return &DashboardHandler{Dashboards: d, Users: u}
}

// Restaurant returns the caller restaurant's stats and recent listings.
func (h *DashboardHandler) Restaurant(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, recent, err := h.Dashboards.RestaurantDashboard(ctx, getUserID(c))
	if err != nil {
		c.Logger().Errorf("restaurant dashboard: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load dashboard"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats":           stats,
		"recent_listings": recent,
	})
}

// Organization returns the caller organization's stats, recent claims,
// and upcoming pickups.
func (h *DashboardHandler) Organization(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, recent, upcoming, err := h.Dashboards.OrganizationDashboard(ctx, getUserID(c))
	if err != nil {
		c.Logger().Errorf("organization dashboard: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load dashboard"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats":            stats,
		"recent_claims":    recent,
		"upcoming_pickups": upcoming,
	})
}

// Volunteer returns the caller volunteer's stats and upcoming deliveries.
func (h *DashboardHandler) Volunteer(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, upcoming, err := h.Dashboards.VolunteerDashboard(ctx, getUserID(c))
	if err != nil {
		c.Logger().Errorf("volunteer dashboard: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load dashboard"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats":               stats,
		"upcoming_deliveries": upcoming,
	})
}

// Overview returns platform-wide totals.  Public, and a natural fit for
// the response cache.
func (h *DashboardHandler) Overview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	roleCounts, err := h.Users.CountByRole(ctx)
	if err != nil {
		c.Logger().Errorf("overview dashboard: count roles: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load overview"})
	}
	stats, recent, err := h.Dashboards.Overview(ctx, roleCounts)
	if err != nil {
		c.Logger().Errorf("overview dashboard: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load overview"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats":           stats,
		"recent_listings": recent,
	})
}
