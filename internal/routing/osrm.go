package routing

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"context"
	"log/slog"

	"pawguard/internal/domain"
	"pawguard/internal/geo"
	"pawguard/pkg/e"
)

// motorcycleDurationFactor corrects the driving-profile duration for
// motorcycles; the provider has no native motorcycle profile.
const motorcycleDurationFactor = 0.7

// snapToleranceM is how far the provider's polyline start may deviate
// from the requested origin before we prepend the origin ourselves.
// Providers occasionally snap the start to the nearest road.
const snapToleranceM = 100.0

type OSRMClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewOSRMClient(baseURL string, timeout time.Duration, logger *slog.Logger) *OSRMClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &OSRMClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// profileFor maps a transport mode onto an OSRM routing profile.
// Motorcycle rides on the driving profile and gets a duration correction.
func profileFor(mode domain.TransportMode) string {
	switch mode {
	case domain.ModeWalking:
		return "walking"
	case domain.ModeCycling:
		return "cycling"
	default:
		return "driving"
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

func (c *OSRMClient) GetRoute(ctx context.Context, origin, dest domain.LatLng, mode domain.TransportMode) (*domain.RouteResult, error) {
	const op = "routing.OSRM.GetRoute"

	if !origin.InRange() || !dest.InRange() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL, profileFor(mode),
		origin.Lng, origin.Lat,
		dest.Lng, dest.Lat,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, e.ErrRouteUnavailable)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("route lookup failed",
			slog.String("op", op),
			slog.String("mode", string(mode)),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%s: %w", op, e.ErrRouteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("route lookup bad status",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, e.ErrRouteUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, e.ErrRouteUnavailable)
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%s: unmarshal: %w", op, e.ErrRouteUnavailable)
	}
	if len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("%s: empty route list: %w", op, e.ErrRouteUnavailable)
	}

	r := parsed.Routes[0]
	polyline := make([]domain.LatLng, 0, len(r.Geometry.Coordinates)+1)
	for _, c := range r.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		// GeoJSON order is [lng, lat].
		polyline = append(polyline, domain.LatLng{Lat: c[1], Lng: c[0]})
	}

	duration := r.Duration
	if mode == domain.ModeMotorcycle {
		duration = float64(geo.RoundMinutes(duration*motorcycleDurationFactor)) * 60
	}

	result := &domain.RouteResult{
		Origin:          origin,
		Destination:     dest,
		Mode:            mode,
		Polyline:        polyline,
		DistanceMeters:  r.Distance,
		DurationSeconds: duration,
	}

	if len(result.Polyline) == 0 || geo.HaversineM(origin, result.Polyline[0]) > snapToleranceM {
		result.Polyline = append([]domain.LatLng{origin}, result.Polyline...)
	}

	return result, nil
}
