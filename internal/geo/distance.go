// Package geo implements the pure geometry used by the check-in geofence.
// It has no side effects and no knowledge of storage; callers resolve the
// venue anchor and pass raw coordinates in.
package geo

import (
    "math"
    "time"
)

// earthRadiusMeters is the mean Earth radius used for great-circle math.
const earthRadiusMeters = 6371000.0

// Fix is a client-supplied location sample.  At records when the sample was
// taken so staleness is judged explicitly by the caller instead of through
// a hidden process-wide "last known location" cache.
type Fix struct {
    Lat float64
    Lng float64
    At  time.Time
}

// FresherThan reports whether the fix was taken within maxAge of now.
func (f Fix) FresherThan(maxAge time.Duration, now time.Time) bool {
    return now.Sub(f.At) <= maxAge
}

// DistanceMeters returns the great-circle (haversine) distance in meters
// between two WGS84 coordinates.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
    phi1 := lat1 * math.Pi / 180
    phi2 := lat2 * math.Pi / 180
    dPhi := (lat2 - lat1) * math.Pi / 180
    dLambda := (lng2 - lng1) * math.Pi / 180

    a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
        math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
    c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
    return earthRadiusMeters * c
}

// WithinRadius reports whether two points are at most radius meters apart.
// The boundary is inclusive: a point at exactly radius meters is within.
func WithinRadius(lat1, lng1, lat2, lng2, radius float64) bool {
    return DistanceMeters(lat1, lng1, lat2, lng2) <= radius
}
