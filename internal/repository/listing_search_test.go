package repository

import (
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

func rows() []AvailableListingRow {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []AvailableListingRow{
		// Istanbul city center.
		{ID: 1, Quantity: 10, ExpiryDate: base.Add(48 * time.Hour), CreatedAt: base,
			RestaurantLatitude: f64(41.0082), RestaurantLongitude: f64(28.9784)},
		// ~20 km east.
		{ID: 2, Quantity: 30, ExpiryDate: base.Add(24 * time.Hour), CreatedAt: base.Add(time.Hour),
			RestaurantLatitude: f64(40.99), RestaurantLongitude: f64(29.20)},
		// Not geocoded.
		{ID: 3, Quantity: 20, ExpiryDate: base.Add(12 * time.Hour), CreatedAt: base.Add(2 * time.Hour)},
	}
}

func ids(rs []AvailableListingRow) []uint64 {
	out := make([]uint64, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestAnnotateDistanceFillsAndKeeps(t *testing.T) {
	out := annotateDistance(rows(), 41.0082, 28.9784, 0)
	if len(out) != 3 {
		t.Fatalf("no radius should keep all rows, got %d", len(out))
	}
	if out[0].DistanceKm == nil || *out[0].DistanceKm > 0.001 {
		t.Fatalf("row at the query point should have ~0 distance, got %v", out[0].DistanceKm)
	}
	if out[1].DistanceKm == nil || *out[1].DistanceKm < 5 {
		t.Fatalf("distant row should have a real distance, got %v", out[1].DistanceKm)
	}
	if out[2].DistanceKm != nil {
		t.Fatal("ungeocoded row must keep a nil distance")
	}
}

func TestAnnotateDistanceRadiusFilter(t *testing.T) {
	out := annotateDistance(rows(), 41.0082, 28.9784, 5)
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("5 km radius should keep only row 1, got %v", ids(out))
	}
	// Ungeocoded rows cannot prove they are inside the radius.
	for _, r := range out {
		if r.DistanceKm == nil {
			t.Fatal("radius filtering kept a row without a distance")
		}
	}
}

func TestSortAvailableKeys(t *testing.T) {
	cases := []struct {
		key  string
		want []uint64
	}{
		{"expiry", []uint64{3, 2, 1}},
		{"quantity", []uint64{2, 3, 1}},
		{"", []uint64{3, 2, 1}},        // newest first
		{"unknown", []uint64{3, 2, 1}}, // falls back to newest first
	}
	for _, tc := range cases {
		rs := rows()
		sortAvailable(rs, tc.key)
		got := ids(rs)
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("sort %q = %v, want %v", tc.key, got, tc.want)
			}
		}
	}
}

func TestSortAvailableDistanceNilsLast(t *testing.T) {
	rs := annotateDistance(rows(), 41.0082, 28.9784, 0)
	sortAvailable(rs, "distance")
	got := ids(rs)
	want := []uint64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("distance sort = %v, want %v", got, want)
		}
	}
}
