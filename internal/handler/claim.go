package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/model"
	"github.com/mealbridge/mealbridge/internal/queue"
	"github.com/mealbridge/mealbridge/internal/repository"
	notifier "github.com/mealbridge/mealbridge/internal/service"
)

// ClaimHandler serves claim creation and the claim lifecycle.  Creation
// and every status transition run inside a transaction with the affected
// rows locked, because approvals and completions cascade onto the
// listing row.
type ClaimHandler struct {
	Claims        *repository.ClaimRepo
	Listings      *repository.ListingRepo
	Organizations *repository.OrganizationRepo
}

func NewClaimHandler(cl *repository.ClaimRepo, l *repository.ListingRepo, o *repository.OrganizationRepo) *ClaimHandler {
	return &ClaimHandler{Claims: cl, Listings: l, Organizations: o}
}

type createClaimReq struct {
	FoodListingID       uint64     `json:"food_listing_id"`
	ClaimedQuantity     int64      `json:"claimed_quantity"`
	PickupScheduledTime *time.Time `json:"pickup_scheduled_time"`
	Notes               *string    `json:"notes"`
}

// Create places a pending claim on an available listing.  The listing
// row is locked so the availability and quantity checks hold until the
// insert commits.  Missing and ineligible listings share one message so
// listing ids cannot be probed through this endpoint.
func (h *ClaimHandler) Create(c echo.Context) error {
	var req createClaimReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FoodListingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "food_listing_id is required"})
	}
	if req.ClaimedQuantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "claimed_quantity must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orgID, err := h.Organizations.IDByUserID(ctx, getUserID(c))
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "organization profile required before claiming"})
	}
	if err != nil {
		c.Logger().Errorf("claim create: resolve profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create claim"})
	}

	tx, err := h.Claims.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("claim create: begin tx: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create claim"})
	}
	defer func() { _ = tx.Rollback() }()

	listing, err := h.Listings.GetForUpdateTx(ctx, tx, req.FoodListingID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing not found or not available"})
	}
	if err != nil {
		c.Logger().Errorf("claim create: load listing: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create claim"})
	}
	if listing.Status != model.ListingAvailable || !listing.ExpiryDate.After(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing not found or not available"})
	}
	if req.ClaimedQuantity > listing.Quantity {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "claimed_quantity exceeds the available quantity"})
	}

	dup, err := h.Claims.ExistsTx(ctx, tx, req.FoodListingID, orgID)
	if err != nil {
		c.Logger().Errorf("claim create: duplicate check: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create claim"})
	}
	if dup {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you have already claimed this listing"})
	}

	id, err := h.Claims.CreateTx(ctx, tx, req.FoodListingID, orgID, req.ClaimedQuantity, req.PickupScheduledTime, req.Notes)
	if err == repository.ErrConflict {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you have already claimed this listing"})
	}
	if err != nil {
		c.Logger().Errorf("claim create: insert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create claim"})
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("claim create: commit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create claim"})
	}

	h.publishEvent(c, queue.EventClaimCreated, id)

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "claim created",
		"claim_id": id,
		"status":   model.ClaimPending,
	})
}

// MyClaims lists the caller organization's claims.
func (h *ClaimHandler) MyClaims(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Claims.ListByOrganization(ctx, getUserID(c))
	if err != nil {
		c.Logger().Errorf("my claims: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load claims"})
	}
	return c.JSON(http.StatusOK, echo.Map{"claims": out})
}

// RestaurantClaims lists the claims on the caller restaurant's listings.
func (h *ClaimHandler) RestaurantClaims(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Claims.ListByRestaurant(ctx, getUserID(c))
	if err != nil {
		c.Logger().Errorf("restaurant claims: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load claims"})
	}
	return c.JSON(http.StatusOK, echo.Map{"claims": out})
}

type updateClaimStatusReq struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateStatus drives the claim state machine.  Restaurants decide
// pending claims (approve/reject); organizations close out approved
// ones (complete/cancel).  The transition is validated against the
// claim's current status under a row lock, so a pending claim can never
// jump to completed and decided claims cannot be re-decided.  Approval
// and completion cascade the listing status inside the same transaction.
func (h *ClaimHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid claim id"})
	}
	var req updateClaimStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	next := strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidClaimStatus(next) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Claims.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("claim status: begin tx: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update claim"})
	}
	defer func() { _ = tx.Rollback() }()

	claim, err := h.Claims.GetForUpdateTx(ctx, tx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "claim not found"})
	}
	if err != nil {
		c.Logger().Errorf("claim status: load: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update claim"})
	}

	role := getRole(c)
	uid := getUserID(c)
	switch role {
	case model.RoleRestaurant:
		if claim.RestaurantUserID != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not a claim on your listing"})
		}
	case model.RoleOrganization:
		if claim.OrganizationUserID != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your claim"})
		}
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
	}

	if !model.CanTransition(role, claim.Status, next) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("cannot change claim from %s to %s", claim.Status, next),
		})
	}

	if err := h.Claims.UpdateStatusTx(ctx, tx, id, next, req.Notes); err != nil {
		c.Logger().Errorf("claim status: update claim: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update claim"})
	}
	if cascade := model.ListingStatusAfter(next); cascade != "" {
		if err := h.Listings.UpdateStatusTx(ctx, tx, claim.FoodListingID, cascade); err != nil {
			c.Logger().Errorf("claim status: cascade listing: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update claim"})
		}
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("claim status: commit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update claim"})
	}

	switch next {
	case model.ClaimApproved:
		h.publishEvent(c, queue.EventClaimApproved, id)
	case model.ClaimRejected:
		h.publishEvent(c, queue.EventClaimRejected, id)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "claim updated", "status": next})
}

// publishEvent loads the claim's email context and publishes the event in
// the background.  Notification failures are logged, never surfaced to
// the client; the state change already committed.
func (h *ClaimHandler) publishEvent(c echo.Context, eventType string, claimID uint64) {
	logger := c.Logger()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ec, err := h.Claims.GetEmailContext(ctx, claimID)
		if err != nil {
			logger.Warnf("notify %s: load email context for claim %d: %v", eventType, claimID, err)
			return
		}
		ev := queue.ClaimEvent{
			Type:              eventType,
			ClaimID:           ec.ClaimID,
			ListingTitle:      ec.ListingTitle,
			ClaimedQuantity:   ec.ClaimedQuantity,
			Unit:              ec.Unit,
			RestaurantName:    ec.RestaurantName,
			RestaurantAddress: ec.RestaurantAddress,
			RestaurantEmail:   ec.RestaurantEmail,
			OrganizationName:  ec.OrganizationName,
			OrganizationEmail: ec.OrganizationEmail,
			OccurredAt:        time.Now().UTC().Format(time.RFC3339),
		}
		if ec.PickupScheduledTime != nil {
			ev.PickupScheduledTime = ec.PickupScheduledTime.UTC().Format(time.RFC3339)
		}
		if ec.Notes != nil {
			ev.Notes = *ec.Notes
		}
		if ec.RestaurantPhone != nil {
			ev.RestaurantPhone = *ec.RestaurantPhone
		}
		if err := notifier.PublishClaimEvent(ctx, ev); err != nil {
			logger.Warnf("notify %s: publish for claim %d: %v", eventType, claimID, err)
		}
	}()
}
