package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/handler"
	"github.com/mealbridge/mealbridge/internal/middleware"
	"github.com/mealbridge/mealbridge/internal/model"
)

// RegisterVolunteer registers the volunteer-only endpoints: profile
// management, the opportunity board, assignment lifecycle, and the
// volunteer dashboard.
func RegisterVolunteer(e *echo.Echo, auth echo.MiddlewareFunc,
	v *handler.VolunteerHandler, d *handler.DashboardHandler) {

	g := e.Group("/api/volunteers", auth, middleware.RequireRole(model.RoleVolunteer))

	g.POST("/profile", v.UpsertProfile)
	g.GET("/profile", v.GetProfile)

	g.GET("/opportunities", v.Opportunities)
	g.POST("/signup/:claimId", v.Signup)
	g.GET("/my-assignments", v.MyAssignments)
	g.PUT("/assignments/:id/complete", v.Complete)

	g = e.Group("/api", auth, middleware.RequireRole(model.RoleVolunteer))
	g.GET("/dashboard/volunteer", d.Volunteer)
}
