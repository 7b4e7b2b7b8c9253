package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/mealbridge/mealbridge/internal/config"     // Environment config loaders
	"github.com/mealbridge/mealbridge/internal/database"   // MySQL pool setup
	"github.com/mealbridge/mealbridge/internal/handler"    // HTTP handlers
	"github.com/mealbridge/mealbridge/internal/middleware" // JWT, role, cache and rate limit middleware
	"github.com/mealbridge/mealbridge/internal/queue"      // Notification consumer
	"github.com/mealbridge/mealbridge/internal/repository" // DB repositories
	"github.com/mealbridge/mealbridge/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load() // Load required environment config (fatal when incomplete)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is absent; cache and limiter degrade to no-ops

	// Repositories.
	users := repository.NewUserRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	organizations := repository.NewOrganizationRepo(db)
	volunteers := repository.NewVolunteerRepo(db)
	listings := repository.NewListingRepo(db)
	claims := repository.NewClaimRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	dashboards := repository.NewDashboardRepo(db)

	// Handlers.
	healthH := handler.NewHealthHandler(db)
	authH := handler.NewAuthHandler(cfg, users)
	restaurantH := handler.NewRestaurantHandler(restaurants)
	organizationH := handler.NewOrganizationHandler(organizations)
	volunteerH := handler.NewVolunteerHandler(volunteers, assignments, claims, listings)
	listingH := handler.NewListingHandler(listings, restaurants)
	claimH := handler.NewClaimHandler(claims, listings, organizations)
	dashboardH := handler.NewDashboardHandler(dashboards, users)

	e := echo.New()
	e.HideBanner = true

	// Rate limit everything; the limiter fails open when Redis is down.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := middleware.JWTAuth(cfg.JWTSecret, users)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, healthH)
	router.RegisterAuth(e, authH)
	router.RegisterPublic(e, cache, listingH, restaurantH, organizationH, volunteerH, dashboardH)
	router.RegisterRestaurant(e, auth, restaurantH, listingH, claimH, dashboardH)
	router.RegisterOrganization(e, auth, organizationH, claimH, dashboardH)
	router.RegisterClaimStatus(e, auth, claimH)
	router.RegisterVolunteer(e, auth, volunteerH, dashboardH)

	// Notification consumer runs for the life of the process and
	// reconnects on broker failure.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
