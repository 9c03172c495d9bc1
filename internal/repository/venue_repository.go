package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/perkspot/venue-checkin/internal/model"
)

// VenueRepo provides read access to the venues table.  Venues are managed
// by an external back office; the check-in flow only ever looks them up to
// resolve the geofence anchor and display metadata.
type VenueRepo struct {
    db *sql.DB
}

// NewVenueRepo returns a new VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// GetByID returns the venue with the given ID, or (nil, nil) when no such
// venue exists.
func (r *VenueRepo) GetByID(ctx context.Context, id string) (*model.Venue, error) {
    const q = `SELECT id, name, lat, lng, rules, created_at FROM venues WHERE id = ?`
    var (
        v     model.Venue
        lat   sql.NullFloat64
        lng   sql.NullFloat64
        rules sql.NullString
    )
    err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.Name, &lat, &lng, &rules, &v.CreatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil
        }
        return nil, err
    }
    if lat.Valid {
        l := lat.Float64
        v.Lat = &l
    }
    if lng.Valid {
        l := lng.Float64
        v.Lng = &l
    }
    if rules.Valid {
        s := rules.String
        v.Rules = &s
    }
    return &v, nil
}
