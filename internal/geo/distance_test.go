package geo

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

// Times Square and the Empire State Building, roughly 1.07 km apart.
const (
    tsqLat = 40.7580
    tsqLng = -73.9855
    esbLat = 40.7484
    esbLng = -73.9857
)

func TestDistanceMeters(t *testing.T) {
    assert.Zero(t, DistanceMeters(tsqLat, tsqLng, tsqLat, tsqLng))

    d := DistanceMeters(tsqLat, tsqLng, esbLat, esbLng)
    assert.InDelta(t, 1067, d, 25)

    // Symmetric in its arguments.
    back := DistanceMeters(esbLat, esbLng, tsqLat, tsqLng)
    assert.InDelta(t, d, back, 0.001)
}

func TestWithinRadiusInclusive(t *testing.T) {
    d := DistanceMeters(tsqLat, tsqLng, esbLat, esbLng)

    assert.True(t, WithinRadius(tsqLat, tsqLng, esbLat, esbLng, d), "exactly at the radius")
    assert.True(t, WithinRadius(tsqLat, tsqLng, esbLat, esbLng, d+1))
    assert.False(t, WithinRadius(tsqLat, tsqLng, esbLat, esbLng, d-1))
}

func TestFixFresherThan(t *testing.T) {
    now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

    fresh := Fix{At: now.Add(-10 * time.Second)}
    assert.True(t, fresh.FresherThan(30*time.Second, now))

    edge := Fix{At: now.Add(-30 * time.Second)}
    assert.True(t, edge.FresherThan(30*time.Second, now), "age exactly at the limit")

    stale := Fix{At: now.Add(-31 * time.Second)}
    assert.False(t, stale.FresherThan(30*time.Second, now))

    // A clock-skewed future sample counts as fresh.
    future := Fix{At: now.Add(2 * time.Second)}
    assert.True(t, future.FresherThan(30*time.Second, now))
}
