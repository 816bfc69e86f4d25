// Package geo holds the pure distance and bearing math shared by all
// views. List rows use these directly; the routing provider is only
// consulted for the focused ticket.
package geo

import (
	"math"

	"pawguard/internal/domain"
)

const (
	// EarthRadiusKm is the mean radius of Earth in kilometers.
	EarthRadiusKm = 6371.0

	// EarthRadiusM is the mean radius of Earth in meters.
	EarthRadiusM = 6_371_000.0
)

// HaversineKm returns the great-circle distance between two points in
// kilometers on WGS-84 coordinates.
func HaversineKm(a, b domain.LatLng) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// HaversineM returns the great-circle distance between two points in meters.
func HaversineM(a, b domain.LatLng) float64 {
	return HaversineKm(a, b) * 1000.0
}

// Bearing returns the initial bearing in degrees (0..360) from a to b.
func Bearing(a, b domain.LatLng) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	deg := math.Atan2(y, x) * 180.0 / math.Pi
	return math.Mod(deg+360.0, 360.0)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
