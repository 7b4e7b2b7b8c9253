// Package router wires handlers to routes.  Public endpoints live in
// this file; the per-role protected groups live in their own files.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/handler"
)

// RegisterRoutes registers the unauthenticated service endpoints.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/api/health", h.Health)
}

// RegisterAuth registers registration and login under /api/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterPublic registers the unauthenticated browse endpoints.  The
// cache middleware wraps this group only: these responses are identical
// for every caller, which is exactly what a shared response cache wants.
func RegisterPublic(e *echo.Echo, cache echo.MiddlewareFunc,
	l *handler.ListingHandler, r *handler.RestaurantHandler,
	o *handler.OrganizationHandler, v *handler.VolunteerHandler,
	d *handler.DashboardHandler) {

	g := e.Group("/api", cache)

	// Browsing donations.  The static segment must be registered on the
	// same group as the :id route; Echo prefers static matches.
	g.GET("/food-listings/available", l.Available)
	g.GET("/food-listings/:id", l.GetPublic)

	// Directories.
	g.GET("/restaurants/all", r.Browse)
	g.GET("/restaurants/:id", r.GetPublic)
	g.GET("/organizations/all", o.Browse)
	g.GET("/organizations/:id", o.GetPublic)
	g.GET("/volunteers/all", v.Browse)

	// Platform-wide numbers for the landing page.
	g.GET("/dashboard/overview", d.Overview)
}
