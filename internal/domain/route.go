package domain

import "math"

type TransportMode string

const (
	ModeDriving    TransportMode = "driving"
	ModeWalking    TransportMode = "walking"
	ModeCycling    TransportMode = "cycling"
	ModeMotorcycle TransportMode = "motorcycle"
)

// ParseTransportMode maps a request string onto a mode, defaulting to driving.
func ParseTransportMode(s string) (TransportMode, bool) {
	switch TransportMode(s) {
	case ModeDriving, ModeWalking, ModeCycling, ModeMotorcycle:
		return TransportMode(s), true
	case "":
		return ModeDriving, true
	}
	return "", false
}

// RouteResult is the outcome of a routing-provider lookup for one
// origin/destination/mode triple. It is derived data, never persisted
// with the ticket.
type RouteResult struct {
	Origin          LatLng        `json:"origin"`
	Destination     LatLng        `json:"destination"`
	Mode            TransportMode `json:"mode"`
	Polyline        []LatLng      `json:"polyline"`
	DistanceMeters  float64       `json:"distance_meters"`
	DurationSeconds float64       `json:"duration_seconds"`
}

// DurationMinutes rounds the duration to the nearest whole minute with a
// floor of one minute.
func (r *RouteResult) DurationMinutes() int {
	m := int(math.Round(r.DurationSeconds / 60))
	if m < 1 {
		m = 1
	}
	return m
}
