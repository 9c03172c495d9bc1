// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// CheckinRedeemedEvent is published when a check-in is successfully
// redeemed at the venue.  It carries enough information for downstream
// consumers (analytics, notifications) to act without querying the primary
// database.
type CheckinRedeemedEvent struct {
    CheckinID   string `json:"checkin_id"`
    UserID      uint64 `json:"user_id"`
    VenueID     string `json:"venue_id"`
    WindowID    string `json:"window_id"`
    DiscountPct int    `json:"discount_pct,omitempty"`
    RedeemedAt  string `json:"redeemed_at"`
}
