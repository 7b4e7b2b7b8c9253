package queue

import (
	"strings"
	"testing"
)

func baseEvent(typ string) ClaimEvent {
	return ClaimEvent{
		Type:              typ,
		ClaimID:           12,
		ListingTitle:      "Day-old bread",
		ClaimedQuantity:   8,
		Unit:              "loaves",
		RestaurantName:    "Corner Bakery",
		RestaurantAddress: "1 Baker St",
		RestaurantPhone:   "+1-555-0100",
		RestaurantEmail:   "bakery@example.com",
		OrganizationName:  "City Shelter",
		OrganizationEmail: "shelter@example.com",
	}
}

func TestRenderClaimCreatedGoesToRestaurant(t *testing.T) {
	to, subject, body, err := renderEvent(baseEvent(EventClaimCreated))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if to != "bakery@example.com" {
		t.Fatalf("recipient = %q, want the restaurant", to)
	}
	if !strings.Contains(subject, "Day-old bread") {
		t.Fatalf("subject %q does not name the listing", subject)
	}
	for _, want := range []string{"City Shelter", "8 loaves"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestRenderClaimApprovedGoesToOrganization(t *testing.T) {
	to, _, body, err := renderEvent(baseEvent(EventClaimApproved))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if to != "shelter@example.com" {
		t.Fatalf("recipient = %q, want the organization", to)
	}
	// Approval must hand over the pickup details.
	for _, want := range []string{"1 Baker St", "+1-555-0100"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestRenderClaimRejectedIncludesReason(t *testing.T) {
	ev := baseEvent(EventClaimRejected)
	ev.Notes = "already promised elsewhere"
	to, subject, body, err := renderEvent(ev)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if to != "shelter@example.com" {
		t.Fatalf("recipient = %q, want the organization", to)
	}
	if !strings.Contains(subject, "declined") {
		t.Fatalf("subject %q should say declined", subject)
	}
	if !strings.Contains(body, "already promised elsewhere") {
		t.Fatalf("body missing the rejection reason:\n%s", body)
	}
}

func TestRenderUnknownType(t *testing.T) {
	if _, _, _, err := renderEvent(baseEvent("claim.vanished")); err == nil {
		t.Fatal("unknown event type accepted")
	}
}

func TestRenderMissingRecipient(t *testing.T) {
	ev := baseEvent(EventClaimCreated)
	ev.RestaurantEmail = ""
	if _, _, _, err := renderEvent(ev); err == nil {
		t.Fatal("event without recipient accepted")
	}
}
