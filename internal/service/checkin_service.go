package service

import (
    "context"
    "fmt"
    "log"
    "sort"
    "time"

    "github.com/google/uuid"

    "github.com/perkspot/venue-checkin/internal/config"
    "github.com/perkspot/venue-checkin/internal/geo"
    "github.com/perkspot/venue-checkin/internal/model"
)

// Stores required by the service (interfaces to allow mocking in tests).

// VenueStore resolves venues for the geofence check.
type VenueStore interface {
    GetByID(ctx context.Context, id string) (*model.Venue, error)
}

// WindowStore resolves deal windows for the selector.
type WindowStore interface {
    GetByID(ctx context.Context, id string) (*model.DealWindow, error)
    ListActiveByVenue(ctx context.Context, venueID string, now time.Time) ([]model.DealWindow, error)
}

// CheckinStore provides the conditional write primitives all cross-request
// invariants rest on.  InsertStarted must suppress duplicate
// (user_id, window_id) rows and report whether it wrote; MarkRedeemed must
// only match a still-started row and report whether it updated.
type CheckinStore interface {
    InsertStarted(ctx context.Context, c *model.Checkin) (bool, error)
    GetUnredeemedByUserWindow(ctx context.Context, userID uint64, windowID string) (*model.Checkin, error)
    GetActiveByUser(ctx context.Context, userID uint64) (*model.Checkin, error)
    LatestByUser(ctx context.Context, userID uint64) (*model.Checkin, error)
    CountRedeemedByUser(ctx context.Context, userID uint64) (int, error)
    GetStartedForUser(ctx context.Context, id string, userID uint64) (*model.Checkin, error)
    MarkRedeemed(ctx context.Context, id string, userID uint64, at time.Time) (bool, error)
}

// MembershipStore resolves the effective subscription tier of a user.
type MembershipStore interface {
    EffectiveTier(ctx context.Context, userID uint64) (model.Tier, error)
}

// CheckinService orchestrates window selection, the geofence, the
// eligibility gate and the atomic issuance/redemption writes.  It holds no
// mutable state of its own: every invariant that spans requests lives in
// the store, so any number of service instances can run side by side.
type CheckinService struct {
    policy   config.CheckinPolicy
    venues   VenueStore
    windows  WindowStore
    checkins CheckinStore
    members  MembershipStore

    now   func() time.Time // injectable clock
    newID func() string    // injectable id source
}

// NewCheckinService wires a service from its stores and the policy loaded
// at startup.
func NewCheckinService(policy config.CheckinPolicy, venues VenueStore, windows WindowStore, checkins CheckinStore, members MembershipStore) *CheckinService {
    if venues == nil || windows == nil || checkins == nil || members == nil {
        panic("nil store passed to NewCheckinService")
    }
    return &CheckinService{
        policy:   policy,
        venues:   venues,
        windows:  windows,
        checkins: checkins,
        members:  members,
        now:      func() time.Time { return time.Now().UTC() },
        newID:    uuid.NewString,
    }
}

// CreateInput carries one issuance request.  Fix is nil when the client
// sent no coordinates.
type CreateInput struct {
    UserID   uint64
    VenueID  string
    WindowID string // optional explicit window
    Method   string
    Fix      *geo.Fix
}

// CreateResult distinguishes a fresh insert from a returned existing row.
// Both carry the same record shape; Reused is surfaced to the client as
// already_active.
type CreateResult struct {
    Checkin *model.Checkin
    Reused  bool
}

// Create issues a check-in.  The gates run cheapest-first and every failure
// short-circuits: window selection, geofence, then active-row reuse,
// cooldown and the free-tier quota.  The final insert is idempotent per
// (user, window) – losing the insert race returns the winner's row instead
// of an error.
func (s *CheckinService) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
    now := s.now()

    if in.UserID == 0 {
        return nil, &Error{Kind: KindNotAuthenticated}
    }
    if in.VenueID == "" || in.Method != model.CheckinMethodQR {
        return nil, &Error{Kind: KindInvalidInput}
    }

    win, err := s.selectWindow(ctx, in.VenueID, in.WindowID, now)
    if err != nil {
        return nil, err
    }

    if err := s.verifyLocation(ctx, in.UserID, in.VenueID, in.Fix, now); err != nil {
        return nil, err
    }

    // A live code is always retrievable, regardless of cooldown or quota.
    // Expiry is judged here rather than stored, so a stale started row does
    // not shadow new check-ins.
    active, err := s.checkins.GetActiveByUser(ctx, in.UserID)
    if err != nil {
        return nil, err
    }
    if active != nil && !active.Expired(now) {
        return &CreateResult{Checkin: active, Reused: true}, nil
    }

    if s.policy.CooldownMin > 0 {
        last, err := s.checkins.LatestByUser(ctx, in.UserID)
        if err != nil {
            return nil, err
        }
        // Strictly-after cutoff: a check-in created exactly CooldownMin
        // minutes ago no longer blocks.
        if last != nil && last.CreatedAt.After(now.Add(-s.policy.Cooldown())) {
            return nil, &Error{
                Kind:    KindCooldownActive,
                Minutes: s.policy.CooldownMin,
                Until:   last.CreatedAt.Add(s.policy.Cooldown()),
            }
        }
    }

    tier, err := s.members.EffectiveTier(ctx, in.UserID)
    if err != nil {
        return nil, err
    }
    if s.policy.LogDebug {
        log.Printf("checkin: membership user=%d tier=%s", in.UserID, tier)
    }
    if tier == model.TierFree && s.policy.FreeLimit > 0 {
        redeemed, err := s.checkins.CountRedeemedByUser(ctx, in.UserID)
        if err != nil {
            return nil, err
        }
        if redeemed >= s.policy.FreeLimit {
            return nil, &Error{Kind: KindFreeLimitReached}
        }
    }

    code, err := NewOTP(s.policy.OTPDigits)
    if err != nil {
        return nil, err
    }
    rec := &model.Checkin{
        ID:           s.newID(),
        UserID:       in.UserID,
        VenueID:      in.VenueID,
        WindowID:     win.ID,
        Method:       model.CheckinMethodQR,
        OTPCode:      code,
        OTPExpiresAt: now.Add(s.policy.OTPTTL()),
        Status:       model.CheckinStatusStarted,
        CreatedAt:    now,
    }

    inserted, err := s.checkins.InsertStarted(ctx, rec)
    if err != nil {
        return nil, err
    }
    if !inserted {
        // Lost the race against a concurrent request for the same window;
        // the winner's row is the authoritative result.
        existing, err := s.checkins.GetUnredeemedByUserWindow(ctx, in.UserID, win.ID)
        if err != nil {
            return nil, err
        }
        if existing == nil {
            return nil, &Error{Kind: KindInsertFailed}
        }
        return &CreateResult{Checkin: existing, Reused: true}, nil
    }
    return &CreateResult{Checkin: rec, Reused: false}, nil
}

// selectWindow resolves the target deal window.  An explicit window id must
// be live and belong to the venue.  Otherwise all live windows of the venue
// are considered: none is a failure, several are either rejected (strict
// policy) or tie-broken on ends_at.
func (s *CheckinService) selectWindow(ctx context.Context, venueID, windowID string, now time.Time) (*model.DealWindow, error) {
    if windowID != "" {
        w, err := s.windows.GetByID(ctx, windowID)
        if err != nil {
            return nil, err
        }
        if w == nil || !w.ActiveAt(now) {
            return nil, &Error{Kind: KindWindowInactive}
        }
        if w.VenueID != venueID {
            return nil, &Error{Kind: KindWindowMismatch}
        }
        return w, nil
    }

    wins, err := s.windows.ListActiveByVenue(ctx, venueID, now)
    if err != nil {
        return nil, err
    }
    if len(wins) == 0 {
        return nil, &Error{Kind: KindWindowInactive}
    }
    if len(wins) > 1 && s.policy.RequireSingleActive {
        return nil, &Error{Kind: KindMultipleActiveWindows}
    }
    // The tie-break is a pure function of the candidate set; sort here
    // rather than trusting store ordering.
    sort.Slice(wins, func(i, j int) bool { return wins[i].EndsAt.Before(wins[j].EndsAt) })
    if s.policy.SelectEarliestEnd {
        return &wins[0], nil
    }
    return &wins[len(wins)-1], nil
}

// verifyLocation applies the geofence.  A missing or stale fix is treated
// as no location at all.  The distance comparison is inclusive: standing at
// exactly the configured radius counts as at the venue.  A venue without an
// anchor cannot be evaluated and fails the whole request.
func (s *CheckinService) verifyLocation(ctx context.Context, userID uint64, venueID string, fix *geo.Fix, now time.Time) error {
    if fix == nil || !fix.FresherThan(s.policy.FixMaxAge(), now) {
        return &Error{Kind: KindLocationRequired}
    }
    v, err := s.venues.GetByID(ctx, venueID)
    if err != nil {
        return err
    }
    if v == nil {
        return &Error{Kind: KindInvalidInput}
    }
    if !v.HasAnchor() {
        return fmt.Errorf("venue %s has no geofence anchor", v.ID)
    }
    meters := geo.DistanceMeters(fix.Lat, fix.Lng, *v.Lat, *v.Lng)
    if meters <= float64(s.policy.DistanceMeters) {
        return nil
    }
    if s.policy.LogDebug {
        log.Printf("checkin: geofence miss user=%d venue=%s meters=%.1f threshold=%d",
            userID, venueID, meters, s.policy.DistanceMeters)
    }
    return &Error{Kind: KindNotAtVenue, Meters: &meters, Threshold: s.policy.DistanceMeters}
}

// Redeem transitions a started check-in to redeemed on behalf of its owner.
// The fetch and the update repeat the same owner/status filter so a
// concurrent redeem of the same row lets exactly one caller through; the
// loser sees zero rows affected and fails with update_failed.
func (s *CheckinService) Redeem(ctx context.Context, userID uint64, checkinID string) (*model.Checkin, error) {
    if userID == 0 {
        return nil, &Error{Kind: KindNotAuthenticated}
    }
    if checkinID == "" {
        return nil, &Error{Kind: KindInvalidInput}
    }
    now := s.now()

    c, err := s.checkins.GetStartedForUser(ctx, checkinID, userID)
    if err != nil {
        return nil, err
    }
    if c == nil {
        return nil, &Error{Kind: KindNotFound}
    }
    if c.Expired(now) {
        // The row is left untouched; expiry is never written back.
        return nil, &Error{Kind: KindOTPExpired}
    }

    ok, err := s.checkins.MarkRedeemed(ctx, checkinID, userID, now)
    if err != nil {
        return nil, err
    }
    if !ok {
        return nil, &Error{Kind: KindUpdateFailed}
    }
    c.Status = model.CheckinStatusRedeemed
    c.RedeemedAt = &now
    return c, nil
}

// Active returns the caller's outstanding started check-in, or (nil, nil)
// when there is none or the code has expired.  Used by the client to
// restore the code screen.
func (s *CheckinService) Active(ctx context.Context, userID uint64) (*model.Checkin, error) {
    if userID == 0 {
        return nil, &Error{Kind: KindNotAuthenticated}
    }
    c, err := s.checkins.GetActiveByUser(ctx, userID)
    if err != nil {
        return nil, err
    }
    if c == nil || c.Expired(s.now()) {
        return nil, nil
    }
    return c, nil
}
