package model

import "time"

// Check-in status values.  A check-in is created as "started" and either
// transitions to "redeemed" (terminal) or stays "started" forever once its
// OTP expires – expiry is a computed condition, never a stored state.
const (
    CheckinStatusStarted  = "started"
    CheckinStatusRedeemed = "redeemed"
)

// Check-in methods.  Only QR is accepted by the current API; GPS is kept
// for rows written by earlier builds of the client.
const (
    CheckinMethodQR  = "qr"
    CheckinMethodGPS = "gps"
)

// Checkin records a user presenting themselves at a venue during a deal
// window.  The row carries a short-lived one-time code that venue staff
// confirm to redeem the discount.
//
// Invariants enforced by the schema and repository:
//  - unique (user_id, window_id): a user checks in at most once per window,
//    guaranteed by the database even under concurrent requests;
//  - otp_expires_at = created_at + configured OTP lifetime;
//  - redeemed_at is set exactly when status is "redeemed".
type Checkin struct {
    ID           string     // checkins.id (UUID)
    UserID       uint64     // checkins.user_id
    VenueID      string     // checkins.venue_id
    WindowID     string     // checkins.window_id
    Method       string     // checkins.method ("qr"|"gps")
    OTPCode      string     // checkins.otp_code
    OTPExpiresAt time.Time  // checkins.otp_expires_at
    Status       string     // checkins.status
    CreatedAt    time.Time  // checkins.created_at
    RedeemedAt   *time.Time // checkins.redeemed_at (nullable)
}

// Expired reports whether the OTP can no longer be redeemed.  A redemption
// attempted exactly at the expiry instant still succeeds.
func (c *Checkin) Expired(now time.Time) bool {
    return c.OTPExpiresAt.Before(now)
}
