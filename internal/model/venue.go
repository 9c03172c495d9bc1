package model

import "time"

// Venue is a physical location participating in the discount programme.
// Venues are managed by an external back office and are read-only from the
// check-in flow's perspective.
//
// Fields:
//  ID        – primary key (UUID).
//  Name      – display name.
//  Lat, Lng  – geofence anchor point.  Both are nullable: a venue created
//              without coordinates can never pass the geofence check.
//  Rules     – opaque display text shown to the user ("one drink minimum"
//              and similar); never interpreted by the backend.
//  CreatedAt – timestamp of creation.
type Venue struct {
    ID        string    // venues.id
    Name      string    // venues.name
    Lat       *float64  // venues.lat (nullable)
    Lng       *float64  // venues.lng (nullable)
    Rules     *string   // venues.rules (nullable)
    CreatedAt time.Time // venues.created_at
}

// HasAnchor reports whether the venue carries a usable geofence anchor.
func (v *Venue) HasAnchor() bool {
    return v.Lat != nil && v.Lng != nil
}
