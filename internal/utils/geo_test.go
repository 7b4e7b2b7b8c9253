package utils

import (
	"math"
	"testing"
)

func TestHaversineZeroDistance(t *testing.T) {
	if d := Haversine(41.0, 28.9, 41.0, 28.9); d != 0 {
		t.Fatalf("same point distance = %f, want 0", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Paris (48.8566, 2.3522) to London (51.5074, -0.1278) is roughly 344 km.
	d := Haversine(48.8566, 2.3522, 51.5074, -0.1278)
	if math.Abs(d-344) > 5 {
		t.Fatalf("Paris-London = %f km, want ~344", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
	b := Haversine(34.0522, -118.2437, 40.7128, -74.0060)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
}
