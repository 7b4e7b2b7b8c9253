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

// OrganizationHandler serves organization profile management and the
// public organization directory.
type OrganizationHandler struct {
	Organizations *repository.OrganizationRepo
}

func NewOrganizationHandler(o *repository.OrganizationRepo) *OrganizationHandler {
	return &OrganizationHandler{Organizations: o}
}

// UpsertProfile creates or updates the caller's organization profile.
func (h *OrganizationHandler) UpsertProfile(c echo.Context) error {
	var p repository.OrganizationParams
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

	org, created, err := h.Organizations.Upsert(ctx, getUserID(c), p)
	if err != nil {
		c.Logger().Errorf("organization upsert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save profile"})
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	return c.JSON(code, org)
}

// GetProfile returns the caller's organization profile, 404 when none
// exists yet.
func (h *OrganizationHandler) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	org, err := h.Organizations.GetByUserID(ctx, getUserID(c))
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "organization profile not found"})
	}
	if err != nil {
		c.Logger().Errorf("organization get profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load profile"})
	}
	return c.JSON(http.StatusOK, org)
}

// Browse lists all active organizations.  Public.
func (h *OrganizationHandler) Browse(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Organizations.ListActive(ctx)
	if err != nil {
		c.Logger().Errorf("organization browse: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load organizations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"organizations": out})
}

// GetPublic returns one organization's public detail.  Public.
func (h *OrganizationHandler) GetPublic(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	org, err := h.Organizations.GetPublicByID(ctx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found"})
	}
	if err != nil {
		c.Logger().Errorf("organization get public: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load organization"})
	}
	return c.JSON(http.StatusOK, org)
}
