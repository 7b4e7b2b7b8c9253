package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/model"
	"github.com/mealbridge/mealbridge/internal/repository"
)

// VolunteerHandler serves volunteer profiles, the delivery opportunity
// board, and assignment lifecycle.  Completion cascades across three
// tables, hence the claim and listing repo dependencies.
type VolunteerHandler struct {
	Volunteers  *repository.VolunteerRepo
	Assignments *repository.AssignmentRepo
	Claims      *repository.ClaimRepo
	Listings    *repository.ListingRepo
}

func NewVolunteerHandler(v *repository.VolunteerRepo, a *repository.AssignmentRepo, cl *repository.ClaimRepo, l *repository.ListingRepo) *VolunteerHandler {
	return &VolunteerHandler{Volunteers: v, Assignments: a, Claims: cl, Listings: l}
}

// UpsertProfile creates or updates the caller's volunteer profile.
// All fields are optional; the profile's existence is what gates
// signing up for deliveries.
func (h *VolunteerHandler) UpsertProfile(c echo.Context) error {
	var p repository.VolunteerParams
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, created, err := h.Volunteers.Upsert(ctx, getUserID(c), p)
	if err != nil {
		c.Logger().Errorf("volunteer upsert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save profile"})
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	return c.JSON(code, v)
}

// GetProfile returns the caller's volunteer profile, 404 when none
// exists yet.
func (h *VolunteerHandler) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Volunteers.GetByUserID(ctx, getUserID(c))
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "volunteer profile not found"})
	}
	if err != nil {
		c.Logger().Errorf("volunteer get profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load profile"})
	}
	return c.JSON(http.StatusOK, v)
}

// Browse lists all active volunteers.  Public.
func (h *VolunteerHandler) Browse(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Volunteers.ListActive(ctx)
	if err != nil {
		c.Logger().Errorf("volunteer browse: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load volunteers"})
	}
	return c.JSON(http.StatusOK, echo.Map{"volunteers": out})
}

// Opportunities lists approved claims with no volunteer yet.
func (h *VolunteerHandler) Opportunities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Assignments.Opportunities(ctx)
	if err != nil {
		c.Logger().Errorf("volunteer opportunities: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load opportunities"})
	}
	return c.JSON(http.StatusOK, echo.Map{"opportunities": out})
}

type signupReq struct {
	Notes *string `json:"notes"`
}

// Signup assigns the caller to an approved claim.  The claim row is
// locked for the duration so two volunteers cannot both take it; the
// unique key on claim_id backstops the lock.  Ineligible and missing
// claims collapse into the same 400 so claim ids are not probeable.
func (h *VolunteerHandler) Signup(c echo.Context) error {
	claimID, err := strconv.ParseUint(c.Param("claimId"), 10, 64)
	if err != nil || claimID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid claim id"})
	}
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	volunteerID, err := h.Volunteers.IDByUserID(ctx, getUserID(c))
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "volunteer profile required before signing up"})
	}
	if err != nil {
		c.Logger().Errorf("volunteer signup: resolve profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign up"})
	}

	tx, err := h.Assignments.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("volunteer signup: begin tx: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign up"})
	}
	defer func() { _ = tx.Rollback() }()

	claim, err := h.Assignments.GetClaimForSignupTx(ctx, tx, claimID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "claim not found or not eligible for delivery"})
	}
	if err != nil {
		c.Logger().Errorf("volunteer signup: load claim: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign up"})
	}
	if claim.Status != model.ClaimApproved || claim.Assigned {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "claim not found or not eligible for delivery"})
	}

	id, err := h.Assignments.CreateTx(ctx, tx, claimID, volunteerID, req.Notes)
	if err == repository.ErrConflict {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "claim not found or not eligible for delivery"})
	}
	if err != nil {
		c.Logger().Errorf("volunteer signup: insert assignment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign up"})
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("volunteer signup: commit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign up"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "signed up for delivery",
		"assignment_id": id,
	})
}

// MyAssignments lists the caller's delivery assignments.
func (h *VolunteerHandler) MyAssignments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Assignments.ListByVolunteer(ctx, getUserID(c))
	if err != nil {
		c.Logger().Errorf("volunteer my-assignments: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load assignments"})
	}
	return c.JSON(http.StatusOK, echo.Map{"assignments": out})
}

type completeReq struct {
	Notes *string `json:"notes"`
}

// Complete marks a delivery done.  Assignment, claim and listing all
// move to completed in one transaction so a crash between writes cannot
// leave a delivered claim looking undelivered.
func (h *VolunteerHandler) Complete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid assignment id"})
	}
	var req completeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Assignments.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("assignment complete: begin tx: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not complete assignment"})
	}
	defer func() { _ = tx.Rollback() }()

	a, err := h.Assignments.GetForUpdateTx(ctx, tx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "assignment not found"})
	}
	if err != nil {
		c.Logger().Errorf("assignment complete: load: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not complete assignment"})
	}
	if a.VolunteerUserID != getUserID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your assignment"})
	}
	if a.Status != model.AssignmentAssigned {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assignment already completed"})
	}

	if err := h.Assignments.CompleteTx(ctx, tx, id, req.Notes); err != nil {
		c.Logger().Errorf("assignment complete: update assignment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not complete assignment"})
	}
	if err := h.Claims.UpdateStatusTx(ctx, tx, a.ClaimID, model.ClaimCompleted, nil); err != nil {
		c.Logger().Errorf("assignment complete: update claim: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not complete assignment"})
	}
	if err := h.Listings.UpdateStatusTx(ctx, tx, a.FoodListingID, model.ListingCompleted); err != nil {
		c.Logger().Errorf("assignment complete: update listing: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not complete assignment"})
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("assignment complete: commit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not complete assignment"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "delivery completed"})
}
