package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/perkspot/venue-checkin/internal/model"
)

// WindowRepo provides read access to the deal_windows table.  Windows are
// created and ended externally; this repository only answers "what is live
// right now" questions for the selector and the public browse endpoints.
// All timestamp comparisons are performed in UTC.
type WindowRepo struct {
    db *sql.DB
}

// NewWindowRepo returns a new WindowRepo bound to the given database.
func NewWindowRepo(db *sql.DB) *WindowRepo { return &WindowRepo{db: db} }

// GetByID returns a single deal window, or (nil, nil) when it does not
// exist.  Activity is NOT checked here; the selector applies the interval
// test so that the decision is a pure function of the row and the clock.
func (r *WindowRepo) GetByID(ctx context.Context, id string) (*model.DealWindow, error) {
    const q = `SELECT id, venue_id, discount_pct, starts_at, ends_at, created_at
               FROM deal_windows WHERE id = ?`
    var w model.DealWindow
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &w.ID, &w.VenueID, &w.DiscountPct, &w.StartsAt, &w.EndsAt, &w.CreatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil
        }
        return nil, err
    }
    return &w, nil
}

// ListActiveByVenue returns every window of the venue that is live at the
// given instant (starts_at <= now <= ends_at, both ends inclusive), ordered
// by ends_at ascending so the earliest-ending candidate comes first.
func (r *WindowRepo) ListActiveByVenue(ctx context.Context, venueID string, now time.Time) ([]model.DealWindow, error) {
    const q = `SELECT id, venue_id, discount_pct, starts_at, ends_at, created_at
               FROM deal_windows
               WHERE venue_id = ? AND starts_at <= ? AND ends_at >= ?
               ORDER BY ends_at ASC`
    rows, err := r.db.QueryContext(ctx, q, venueID, now, now)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.DealWindow
    for rows.Next() {
        var w model.DealWindow
        if err := rows.Scan(&w.ID, &w.VenueID, &w.DiscountPct, &w.StartsAt, &w.EndsAt, &w.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, w)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ActiveDeal is a deal window joined with the identity of its venue.  It is
// the row shape served by the public browse endpoints.
type ActiveDeal struct {
    model.DealWindow
    VenueName  string
    VenueRules *string
}

// ListActive returns all currently live windows across venues together with
// venue names, ordered by starts_at so the feed is stable between refreshes.
func (r *WindowRepo) ListActive(ctx context.Context, now time.Time) ([]ActiveDeal, error) {
    const q = `SELECT w.id, w.venue_id, w.discount_pct, w.starts_at, w.ends_at, w.created_at, v.name
               FROM deal_windows w
               JOIN venues v ON v.id = w.venue_id
               WHERE w.starts_at <= ? AND w.ends_at >= ?
               ORDER BY w.starts_at ASC`
    rows, err := r.db.QueryContext(ctx, q, now, now)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    deals := make([]ActiveDeal, 0)
    for rows.Next() {
        var d ActiveDeal
        if err := rows.Scan(&d.ID, &d.VenueID, &d.DiscountPct, &d.StartsAt, &d.EndsAt, &d.CreatedAt, &d.VenueName); err != nil {
            return nil, err
        }
        deals = append(deals, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return deals, nil
}

// GetDetail returns one window with its venue name and rules text, or
// (nil, nil) when the window does not exist.
func (r *WindowRepo) GetDetail(ctx context.Context, id string) (*ActiveDeal, error) {
    const q = `SELECT w.id, w.venue_id, w.discount_pct, w.starts_at, w.ends_at, w.created_at, v.name, v.rules
               FROM deal_windows w
               JOIN venues v ON v.id = w.venue_id
               WHERE w.id = ?`
    var (
        d     ActiveDeal
        rules sql.NullString
    )
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.VenueID, &d.DiscountPct, &d.StartsAt, &d.EndsAt, &d.CreatedAt, &d.VenueName, &rules)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil
        }
        return nil, err
    }
    if rules.Valid {
        s := rules.String
        d.VenueRules = &s
    }
    return &d, nil
}
