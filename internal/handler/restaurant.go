package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/repository"
)

// RestaurantHandler serves restaurant profile management and the public
// restaurant directory.
type RestaurantHandler struct {
	Restaurants *repository.RestaurantRepo
}

func NewRestaurantHandler(r *repository.RestaurantRepo) *RestaurantHandler {
	return &RestaurantHandler{Restaurants: r}
}

// UpsertProfile creates or updates the caller's restaurant profile.
// Responds 201 on first creation and 200 on subsequent updates.
func (h *RestaurantHandler) UpsertProfile(c echo.Context) error {
	var p repository.RestaurantParams
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	if p.Name == "" || p.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rest, created, err := h.Restaurants.Upsert(ctx, getUserID(c), p)
	if err != nil {
		c.Logger().Errorf("restaurant upsert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save profile"})
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	return c.JSON(code, rest)
}

// GetProfile returns the caller's restaurant profile, 404 when none
// exists yet.
func (h *RestaurantHandler) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rest, err := h.Restaurants.GetByUserID(ctx, getUserID(c))
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant profile not found"})
	}
	if err != nil {
		c.Logger().Errorf("restaurant get profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load profile"})
	}
	return c.JSON(http.StatusOK, rest)
}

// Browse lists all active restaurants.  Public.
func (h *RestaurantHandler) Browse(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Restaurants.ListActive(ctx)
	if err != nil {
		c.Logger().Errorf("restaurant browse: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load restaurants"})
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurants": out})
}

// GetPublic returns one restaurant's public detail.  Public.
func (h *RestaurantHandler) GetPublic(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rest, err := h.Restaurants.GetPublicByID(ctx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}
	if err != nil {
		c.Logger().Errorf("restaurant get public: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load restaurant"})
	}
	return c.JSON(http.StatusOK, rest)
}
