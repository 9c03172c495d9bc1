package model

import "time"

// DealWindow is a time-boxed discount offered by a single venue.  Windows
// are created and ended externally; the check-in flow only reads them.
// Windows of the same venue may overlap in time – that is an accepted
// real-world situation, not an error, and is resolved by the selection
// policy at check-in time.
//
// Fields:
//  ID          – primary key (UUID).
//  VenueID     – owning venue.
//  DiscountPct – discount percentage advertised for the window.
//  StartsAt    – beginning of the window (inclusive).
//  EndsAt      – end of the window (inclusive).
//  CreatedAt   – timestamp of creation.
type DealWindow struct {
    ID          string    // deal_windows.id
    VenueID     string    // deal_windows.venue_id
    DiscountPct int       // deal_windows.discount_pct
    StartsAt    time.Time // deal_windows.starts_at
    EndsAt      time.Time // deal_windows.ends_at
    CreatedAt   time.Time // deal_windows.created_at
}

// ActiveAt reports whether the window is live at the given instant.  Both
// interval ends are inclusive: starts_at <= now <= ends_at.
func (w *DealWindow) ActiveAt(now time.Time) bool {
    return !w.StartsAt.After(now) && !w.EndsAt.Before(now)
}
