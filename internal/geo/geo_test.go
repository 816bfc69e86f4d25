package geo_test

import (
	"math"
	"testing"

	"pawguard/internal/domain"
	"pawguard/internal/geo"
)

func TestHaversineKm_KnownDistance(t *testing.T) {
	t.Parallel()

	// Cochabamba main plaza to Cristo de la Concordia, roughly 2.3 km.
	a := domain.LatLng{Lat: -17.3939, Lng: -66.1571}
	b := domain.LatLng{Lat: -17.3842, Lng: -66.1346}

	got := geo.HaversineKm(a, b)
	if got < 2.0 || got > 2.8 {
		t.Fatalf("unexpected distance: %.3f km", got)
	}
}

func TestHaversineKm_ZeroForSamePoint(t *testing.T) {
	t.Parallel()

	p := domain.LatLng{Lat: -17.39, Lng: -66.16}
	if d := geo.HaversineKm(p, p); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	t.Parallel()

	a := domain.LatLng{Lat: 55.75, Lng: 37.61}
	b := domain.LatLng{Lat: 59.93, Lng: 30.33}

	ab := geo.HaversineKm(a, b)
	ba := geo.HaversineKm(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("asymmetric distance: %f vs %f", ab, ba)
	}
	// Moscow to Saint Petersburg is about 635 km great-circle.
	if ab < 600 || ab > 680 {
		t.Fatalf("unexpected distance: %.1f km", ab)
	}
}

func TestHaversineM_MatchesKm(t *testing.T) {
	t.Parallel()

	a := domain.LatLng{Lat: 0, Lng: 0}
	b := domain.LatLng{Lat: 0, Lng: 1}

	km := geo.HaversineKm(a, b)
	m := geo.HaversineM(a, b)
	if math.Abs(m-km*1000) > 1e-6 {
		t.Fatalf("meters/kilometers mismatch: %f vs %f", m, km*1000)
	}
}

func TestBearing_CardinalDirections(t *testing.T) {
	t.Parallel()

	origin := domain.LatLng{Lat: 0, Lng: 0}

	cases := []struct {
		name string
		to   domain.LatLng
		want float64
	}{
		{"north", domain.LatLng{Lat: 1, Lng: 0}, 0},
		{"east", domain.LatLng{Lat: 0, Lng: 1}, 90},
		{"south", domain.LatLng{Lat: -1, Lng: 0}, 180},
		{"west", domain.LatLng{Lat: 0, Lng: -1}, 270},
	}

	for _, tc := range cases {
		got := geo.Bearing(origin, tc.to)
		if math.Abs(got-tc.want) > 0.5 {
			t.Fatalf("%s: expected bearing %.0f, got %.2f", tc.name, tc.want, got)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	if got := geo.FormatDistance(850); got != "850 m" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := geo.FormatDistance(3250); got != "3.3 km" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := geo.FormatDistance(-5); got != "0 m" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	if got := geo.FormatDuration(90); got != "2 min" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := geo.FormatDuration(3600); got != "1 h" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := geo.FormatDuration(4500); got != "1 h 15 min" {
		t.Fatalf("unexpected: %q", got)
	}
	// Sub-minute durations never display as zero.
	if got := geo.FormatDuration(10); got != "1 min" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestRoundMinutes_FloorOfOne(t *testing.T) {
	t.Parallel()

	if got := geo.RoundMinutes(0); got != 1 {
		t.Fatalf("expected floor of 1, got %d", got)
	}
	if got := geo.RoundMinutes(840); got != 14 {
		t.Fatalf("expected 14, got %d", got)
	}
}
