package routing_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pawguard/internal/domain"
	"pawguard/internal/geo"
	"pawguard/internal/routing"
	"pawguard/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

// osrmBody renders a minimal OSRM response with one route.
func osrmBody(coords [][]float64, distance, duration float64) string {
	var sb strings.Builder
	sb.WriteString(`{"code":"Ok","routes":[{"geometry":{"coordinates":[`)
	for i, c := range coords {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf("[%f,%f]", c[0], c[1]))
	}
	sb.WriteString(fmt.Sprintf(`]},"distance":%f,"duration":%f}]}`, distance, duration))
	return sb.String()
}

func TestGetRoute_Driving_OK(t *testing.T) {
	t.Parallel()

	origin := domain.LatLng{Lat: -17.39, Lng: -66.16}
	dest := domain.LatLng{Lat: -17.38, Lng: -66.13}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/route/v1/driving/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("geometries") != "geojson" {
			t.Errorf("expected geojson geometries, got %q", r.URL.Query().Get("geometries"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, osrmBody([][]float64{
			{origin.Lng, origin.Lat},
			{dest.Lng, dest.Lat},
		}, 3400, 600))
	}))
	defer srv.Close()

	client := routing.NewOSRMClient(srv.URL, 5*time.Second, newTestLogger())

	got, err := client.GetRoute(context.Background(), origin, dest, domain.ModeDriving)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.DistanceMeters != 3400 {
		t.Fatalf("unexpected distance: %f", got.DistanceMeters)
	}
	if got.DurationSeconds != 600 {
		t.Fatalf("driving duration must be unmodified, got %f", got.DurationSeconds)
	}
	if len(got.Polyline) != 2 {
		t.Fatalf("expected polyline of 2 points, got %d", len(got.Polyline))
	}
	if got.Polyline[0] != origin {
		t.Fatalf("polyline must start at origin: %+v", got.Polyline[0])
	}
}

func TestGetRoute_MotorcycleCorrection(t *testing.T) {
	t.Parallel()

	origin := domain.LatLng{Lat: -17.39, Lng: -66.16}
	dest := domain.LatLng{Lat: -17.38, Lng: -66.13}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Motorcycle rides the driving profile.
		if !strings.Contains(r.URL.Path, "/route/v1/driving/") {
			t.Errorf("expected driving profile, got path %s", r.URL.Path)
		}
		fmt.Fprint(w, osrmBody([][]float64{
			{origin.Lng, origin.Lat},
			{dest.Lng, dest.Lat},
		}, 3400, 1200)) // 20 minutes at driving speed
	}))
	defer srv.Close()

	client := routing.NewOSRMClient(srv.URL, 5*time.Second, newTestLogger())

	got, err := client.GetRoute(context.Background(), origin, dest, domain.ModeMotorcycle)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// 0.7 x 20 min = 14 min.
	if got.DurationMinutes() != 14 {
		t.Fatalf("expected 14 minutes, got %d", got.DurationMinutes())
	}
}

func TestGetRoute_MotorcycleFloorOneMinute(t *testing.T) {
	t.Parallel()

	origin := domain.LatLng{Lat: -17.39, Lng: -66.16}
	dest := domain.LatLng{Lat: -17.3899, Lng: -66.1599}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, osrmBody([][]float64{
			{origin.Lng, origin.Lat},
			{dest.Lng, dest.Lat},
		}, 15, 20)) // 20-second hop
	}))
	defer srv.Close()

	client := routing.NewOSRMClient(srv.URL, 5*time.Second, newTestLogger())

	got, err := client.GetRoute(context.Background(), origin, dest, domain.ModeMotorcycle)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.DurationMinutes() != 1 {
		t.Fatalf("expected floor of 1 minute, got %d", got.DurationMinutes())
	}
}

func TestGetRoute_WalkingDurationUnmodified(t *testing.T) {
	t.Parallel()

	origin := domain.LatLng{Lat: -17.39, Lng: -66.16}
	dest := domain.LatLng{Lat: -17.38, Lng: -66.13}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/route/v1/walking/") {
			t.Errorf("expected walking profile, got path %s", r.URL.Path)
		}
		fmt.Fprint(w, osrmBody([][]float64{
			{origin.Lng, origin.Lat},
			{dest.Lng, dest.Lat},
		}, 3400, 2520))
	}))
	defer srv.Close()

	client := routing.NewOSRMClient(srv.URL, 5*time.Second, newTestLogger())

	got, err := client.GetRoute(context.Background(), origin, dest, domain.ModeWalking)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.DurationSeconds != 2520 {
		t.Fatalf("walking duration must be unmodified, got %f", got.DurationSeconds)
	}
}

func TestGetRoute_PrependsOriginWhenSnapped(t *testing.T) {
	t.Parallel()

	origin := domain.LatLng{Lat: -17.39, Lng: -66.16}
	dest := domain.LatLng{Lat: -17.38, Lng: -66.13}
	// Roughly 500 m north of the origin: the provider snapped to a road.
	snapped := domain.LatLng{Lat: -17.3855, Lng: -66.16}

	if geo.HaversineM(origin, snapped) <= 100 {
		t.Fatal("test fixture too close to origin")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, osrmBody([][]float64{
			{snapped.Lng, snapped.Lat},
			{dest.Lng, dest.Lat},
		}, 3400, 600))
	}))
	defer srv.Close()

	client := routing.NewOSRMClient(srv.URL, 5*time.Second, newTestLogger())

	got, err := client.GetRoute(context.Background(), origin, dest, domain.ModeDriving)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.Polyline) != 3 {
		t.Fatalf("expected origin prepended, got %d points", len(got.Polyline))
	}
	if got.Polyline[0] != origin {
		t.Fatalf("first point must be the origin: %+v", got.Polyline[0])
	}
}

func TestGetRoute_EmptyRouteList(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"NoRoute","routes":[]}`)
	}))
	defer srv.Close()

	client := routing.NewOSRMClient(srv.URL, 5*time.Second, newTestLogger())

	_, err := client.GetRoute(context.Background(),
		domain.LatLng{Lat: 1, Lng: 1}, domain.LatLng{Lat: 2, Lng: 2}, domain.ModeDriving)
	if !errors.Is(err, e.ErrRouteUnavailable) {
		t.Fatalf("expected ErrRouteUnavailable, got %v", err)
	}
}

func TestGetRoute_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := routing.NewOSRMClient(srv.URL, 5*time.Second, newTestLogger())

	_, err := client.GetRoute(context.Background(),
		domain.LatLng{Lat: 1, Lng: 1}, domain.LatLng{Lat: 2, Lng: 2}, domain.ModeDriving)
	if !errors.Is(err, e.ErrRouteUnavailable) {
		t.Fatalf("expected ErrRouteUnavailable, got %v", err)
	}
}

func TestGetRoute_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := routing.NewOSRMClient(srv.URL, 50*time.Millisecond, newTestLogger())

	_, err := client.GetRoute(context.Background(),
		domain.LatLng{Lat: 1, Lng: 1}, domain.LatLng{Lat: 2, Lng: 2}, domain.ModeDriving)
	if !errors.Is(err, e.ErrRouteUnavailable) {
		t.Fatalf("expected ErrRouteUnavailable on timeout, got %v", err)
	}
}
