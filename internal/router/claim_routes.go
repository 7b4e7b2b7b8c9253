package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/handler"
	"github.com/mealbridge/mealbridge/internal/middleware"
	"github.com/mealbridge/mealbridge/internal/model"
)

// RegisterClaimStatus registers the shared claim transition endpoint.
// Both sides of a claim use it: restaurants to decide pending claims,
// organizations to close out approved ones.  The handler enforces which
// transitions each role may perform; the middleware only keeps
// volunteers and guests out.
func RegisterClaimStatus(e *echo.Echo, auth echo.MiddlewareFunc, cl *handler.ClaimHandler) {
	g := e.Group("/api/food-claims", auth, middleware.RequireRole(model.RoleRestaurant, model.RoleOrganization))
	g.PUT("/:id/status", cl.UpdateStatus)
}
