package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/perkspot/venue-checkin/internal/model"
)

// CheckinRepo provides data access to the checkins table.  The table
// carries a UNIQUE KEY on (user_id, window_id); together with the
// conditional update in MarkRedeemed this is what enforces the cross-request
// invariants – at most one check-in per user and window, and at most one
// successful redemption per check-in – without any application-level
// locking.  All timestamps are stored and compared in UTC.
type CheckinRepo struct {
    db *sql.DB
}

// NewCheckinRepo returns a new CheckinRepo bound to the given database.
func NewCheckinRepo(db *sql.DB) *CheckinRepo { return &CheckinRepo{db: db} }

const checkinColumns = `id, user_id, venue_id, window_id, method, otp_code, otp_expires_at, status, created_at, redeemed_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanCheckin(s rowScanner) (*model.Checkin, error) {
    var (
        c        model.Checkin
        redeemed sql.NullTime
    )
    err := s.Scan(&c.ID, &c.UserID, &c.VenueID, &c.WindowID, &c.Method,
        &c.OTPCode, &c.OTPExpiresAt, &c.Status, &c.CreatedAt, &redeemed)
    if err != nil {
        return nil, err
    }
    if redeemed.Valid {
        t := redeemed.Time
        c.RedeemedAt = &t
    }
    return &c, nil
}

// InsertStarted attempts to insert a fresh "started" check-in.  The insert
// uses INSERT IGNORE so that a duplicate (user_id, window_id) is suppressed
// instead of failing; the boolean result reports whether a row was actually
// written.  A false result with nil error means the caller lost the insert
// race and should re-read the winner's row.
func (r *CheckinRepo) InsertStarted(ctx context.Context, c *model.Checkin) (bool, error) {
    const q = `INSERT IGNORE INTO checkins
               (id, user_id, venue_id, window_id, method, otp_code, otp_expires_at, status, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        c.ID, c.UserID, c.VenueID, c.WindowID, c.Method,
        c.OTPCode, c.OTPExpiresAt, c.Status, c.CreatedAt)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// GetUnredeemedByUserWindow returns the caller's unredeemed row for the
// given window, or (nil, nil) when none exists.  Used to recover the
// winner's row after a suppressed insert.
func (r *CheckinRepo) GetUnredeemedByUserWindow(ctx context.Context, userID uint64, windowID string) (*model.Checkin, error) {
    q := `SELECT ` + checkinColumns + `
          FROM checkins
          WHERE user_id = ? AND window_id = ? AND redeemed_at IS NULL
          ORDER BY created_at DESC LIMIT 1`
    c, err := scanCheckin(r.db.QueryRowContext(ctx, q, userID, windowID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, nil
    }
    return c, err
}

// GetActiveByUser returns the user's most recent "started" unredeemed
// check-in across all windows, or (nil, nil) when there is none.  This is
// the row handed back verbatim when a user taps check-in while a code is
// already outstanding.
func (r *CheckinRepo) GetActiveByUser(ctx context.Context, userID uint64) (*model.Checkin, error) {
    q := `SELECT ` + checkinColumns + `
          FROM checkins
          WHERE user_id = ? AND status = ? AND redeemed_at IS NULL
          ORDER BY created_at DESC LIMIT 1`
    c, err := scanCheckin(r.db.QueryRowContext(ctx, q, userID, model.CheckinStatusStarted))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, nil
    }
    return c, err
}

// LatestByUser returns the user's most recent check-in of any status, or
// (nil, nil).  The cooldown gate only cares about created_at.
func (r *CheckinRepo) LatestByUser(ctx context.Context, userID uint64) (*model.Checkin, error) {
    q := `SELECT ` + checkinColumns + `
          FROM checkins
          WHERE user_id = ?
          ORDER BY created_at DESC LIMIT 1`
    c, err := scanCheckin(r.db.QueryRowContext(ctx, q, userID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, nil
    }
    return c, err
}

// CountRedeemedByUser returns the lifetime number of redeemed check-ins for
// the user, which the free-tier quota is measured against.
func (r *CheckinRepo) CountRedeemedByUser(ctx context.Context, userID uint64) (int, error) {
    const q = `SELECT COUNT(*) FROM checkins WHERE user_id = ? AND redeemed_at IS NOT NULL`
    var n int
    if err := r.db.QueryRowContext(ctx, q, userID).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}

// GetStartedForUser fetches a check-in by id constrained to the calling
// user and the "started" unredeemed state.  Wrong owner, wrong status and a
// nonexistent id all come back as (nil, nil) so the redeem endpoint cannot
// leak ownership information.
func (r *CheckinRepo) GetStartedForUser(ctx context.Context, id string, userID uint64) (*model.Checkin, error) {
    q := `SELECT ` + checkinColumns + `
          FROM checkins
          WHERE id = ? AND user_id = ? AND status = ? AND redeemed_at IS NULL`
    c, err := scanCheckin(r.db.QueryRowContext(ctx, q, id, userID, model.CheckinStatusStarted))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, nil
    }
    return c, err
}

// MarkRedeemed transitions a check-in to "redeemed" with the given
// timestamp.  The WHERE clause repeats the full started-and-owned filter so
// that of two concurrent redeems exactly one matches a row; the loser
// observes zero rows affected and gets false back.
func (r *CheckinRepo) MarkRedeemed(ctx context.Context, id string, userID uint64, at time.Time) (bool, error) {
    const q = `UPDATE checkins
               SET status = ?, redeemed_at = ?
               WHERE id = ? AND user_id = ? AND status = ? AND redeemed_at IS NULL`
    res, err := r.db.ExecContext(ctx, q,
        model.CheckinStatusRedeemed, at, id, userID, model.CheckinStatusStarted)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}
