package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/handler"
	"github.com/mealbridge/mealbridge/internal/middleware"
	"github.com/mealbridge/mealbridge/internal/model"
)

// RegisterOrganization registers the organization-only endpoints:
// profile management, claim creation and listing, and the organization
// dashboard.
func RegisterOrganization(e *echo.Echo, auth echo.MiddlewareFunc,
	o *handler.OrganizationHandler, cl *handler.ClaimHandler,
	d *handler.DashboardHandler) {

	g := e.Group("/api", auth, middleware.RequireRole(model.RoleOrganization))

	g.POST("/organizations/profile", o.UpsertProfile)
	g.GET("/organizations/profile", o.GetProfile)

	g.POST("/food-claims", cl.Create)
	g.GET("/food-claims/my-claims", cl.MyClaims)

	g.GET("/dashboard/organization", d.Organization)
}
