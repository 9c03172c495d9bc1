package model

import "time"

// Tier is the effective subscription level of a user.  Free-tier users are
// subject to a lifetime redeemed check-in quota; paid tiers bypass it.
type Tier string

const (
    TierFree    Tier = "free"
    TierRegular Tier = "regular"
    TierPro     Tier = "pro"
)

// Paid reports whether the tier bypasses the free check-in quota.
func (t Tier) Paid() bool { return t == TierRegular || t == TierPro }

// Subscription mirrors the `subscriptions` table.  The effective tier of a
// user is derived from their most recent active subscription; users without
// one resolve to the free tier.
type Subscription struct {
    ID        uint64     // subscriptions.id
    UserID    uint64     // subscriptions.user_id
    Tier      Tier       // subscriptions.tier
    Status    string     // subscriptions.status ("active", "expired", ...)
    Platform  string     // subscriptions.platform ("ios"|"android"|"web")
    RenewsAt  *time.Time // subscriptions.renews_at (nullable)
    CreatedAt time.Time  // subscriptions.created_at
}
