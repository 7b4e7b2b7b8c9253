package handler

import (
	"testing"
	"time"

	"github.com/mealbridge/mealbridge/internal/repository"
)

func goodParams() repository.ListingParams {
	now := time.Now()
	return repository.ListingParams{
		Title:           "Trays of lasagna",
		FoodType:        "prepared",
		Quantity:        6,
		Unit:            "trays",
		ExpiryDate:      now.Add(48 * time.Hour),
		PickupTimeStart: now.Add(2 * time.Hour),
		PickupTimeEnd:   now.Add(6 * time.Hour),
	}
}

func TestValidateListingParamsAccepts(t *testing.T) {
	p := goodParams()
	if msg := validateListingParams(&p); msg != "" {
		t.Fatalf("valid params rejected: %q", msg)
	}
}

func TestValidateListingParamsTrims(t *testing.T) {
	p := goodParams()
	p.Title = "  Trays of lasagna  "
	if msg := validateListingParams(&p); msg != "" {
		t.Fatalf("padded title rejected: %q", msg)
	}
	if p.Title != "Trays of lasagna" {
		t.Fatalf("title not trimmed: %q", p.Title)
	}
}

func TestValidateListingParamsRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*repository.ListingParams)
	}{
		{"empty title", func(p *repository.ListingParams) { p.Title = "  " }},
		{"empty food type", func(p *repository.ListingParams) { p.FoodType = "" }},
		{"empty unit", func(p *repository.ListingParams) { p.Unit = "" }},
		{"zero quantity", func(p *repository.ListingParams) { p.Quantity = 0 }},
		{"negative quantity", func(p *repository.ListingParams) { p.Quantity = -2 }},
		{"missing expiry", func(p *repository.ListingParams) { p.ExpiryDate = time.Time{} }},
		{"missing pickup start", func(p *repository.ListingParams) { p.PickupTimeStart = time.Time{} }},
		{"pickup window inverted", func(p *repository.ListingParams) {
			p.PickupTimeStart, p.PickupTimeEnd = p.PickupTimeEnd, p.PickupTimeStart
		}},
		{"expiry in the past", func(p *repository.ListingParams) { p.ExpiryDate = time.Now().Add(-time.Hour) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := goodParams()
			tc.mutate(&p)
			if msg := validateListingParams(&p); msg == "" {
				t.Fatal("invalid params accepted")
			}
		})
	}
}
