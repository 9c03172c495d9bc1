package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/perkspot/venue-checkin/internal/model"
)

// MembershipRepo resolves the effective subscription tier of a user from
// the subscriptions table.  Users without an active subscription resolve to
// the free tier; the check-in flow never needs more than that.
type MembershipRepo struct {
    db *sql.DB
}

// NewMembershipRepo returns a new MembershipRepo bound to the given database.
func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{db: db} }

// EffectiveTier returns the tier of the user's most recent active,
// unexpired subscription, or TierFree when none exists.  A subscription
// with a NULL renews_at never expires on its own.
func (r *MembershipRepo) EffectiveTier(ctx context.Context, userID uint64) (model.Tier, error) {
    const q = `SELECT tier FROM subscriptions
               WHERE user_id = ? AND status = 'active'
                 AND (renews_at IS NULL OR renews_at > UTC_TIMESTAMP())
               ORDER BY created_at DESC LIMIT 1`
    var tier model.Tier
    err := r.db.QueryRowContext(ctx, q, userID).Scan(&tier)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.TierFree, nil
        }
        return model.TierFree, err
    }
    switch tier {
    case model.TierRegular, model.TierPro:
        return tier, nil
    default:
        return model.TierFree, nil
    }
}
