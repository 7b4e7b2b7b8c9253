package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/handler"
	"github.com/mealbridge/mealbridge/internal/middleware"
	"github.com/mealbridge/mealbridge/internal/model"
)

// RegisterRestaurant registers the restaurant-only endpoints: profile
// management, listing CRUD, incoming claims, and the restaurant
// dashboard.  auth must be the JWTAuth middleware.
func RegisterRestaurant(e *echo.Echo, auth echo.MiddlewareFunc,
	r *handler.RestaurantHandler, l *handler.ListingHandler,
	cl *handler.ClaimHandler, d *handler.DashboardHandler) {

	g := e.Group("/api", auth, middleware.RequireRole(model.RoleRestaurant))

	g.POST("/restaurants/profile", r.UpsertProfile)
	g.GET("/restaurants/profile", r.GetProfile)

	g.POST("/food-listings", l.Create)
	g.GET("/food-listings/my-listings", l.MyListings)
	g.PUT("/food-listings/:id", l.Update)
	g.DELETE("/food-listings/:id", l.Delete)

	g.GET("/food-claims/restaurant-claims", cl.RestaurantClaims)

	g.GET("/dashboard/restaurant", d.Restaurant)
}
