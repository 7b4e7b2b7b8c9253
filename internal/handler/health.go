package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler { return &HealthHandler{DB: db} }

// Health returns 200 with a status document, or 503 when the database
// does not answer a ping in time.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	code := http.StatusOK
	if err := h.DB.PingContext(ctx); err != nil {
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, echo.Map{
		"status":    dbStatus,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
