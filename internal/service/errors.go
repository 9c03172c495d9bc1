// Package service implements the check-in issuance and redemption core.
// Handlers translate its tagged errors onto the wire; repositories supply
// the conditional insert/update primitives it builds on.
package service

import (
    "errors"
    "net/http"
    "time"
)

// ErrorKind is the closed enumeration of business failures the check-in
// flow can produce.  The string values are the wire-level error codes;
// clients and tests match on these tags, never on message text.
type ErrorKind string

const (
    KindNotAuthenticated      ErrorKind = "not_authenticated"
    KindInvalidInput          ErrorKind = "invalid_input"
    KindWindowInactive        ErrorKind = "window_inactive"
    KindWindowMismatch        ErrorKind = "window_mismatch"
    KindMultipleActiveWindows ErrorKind = "multiple_active_windows"
    KindLocationRequired      ErrorKind = "location_required"
    KindNotAtVenue            ErrorKind = "not_at_venue"
    KindCooldownActive        ErrorKind = "cooldown_active"
    KindFreeLimitReached      ErrorKind = "free_limit_reached"
    KindNotFound              ErrorKind = "not_found"
    KindOTPExpired            ErrorKind = "otp_expired"
    KindInsertFailed          ErrorKind = "insert_failed"
    KindUpdateFailed          ErrorKind = "update_failed"
)

// Error is a business failure with optional context for the client UX
// (how far away the user is, when the cooldown lifts).  Infrastructure
// failures are returned as ordinary errors and surface as HTTP 500.
type Error struct {
    Kind      ErrorKind
    Meters    *float64  // KindNotAtVenue: measured distance
    Threshold int       // KindNotAtVenue: configured radius
    Minutes   int       // KindCooldownActive: configured cooldown
    Until     time.Time // KindCooldownActive: when a new check-in is allowed
}

func (e *Error) Error() string { return string(e.Kind) }

// HTTPStatus maps the error kind to the status code served to clients.
func (e *Error) HTTPStatus() int {
    switch e.Kind {
    case KindNotAuthenticated:
        return http.StatusUnauthorized
    case KindInvalidInput:
        return http.StatusBadRequest
    case KindMultipleActiveWindows:
        return http.StatusConflict
    case KindNotFound:
        return http.StatusNotFound
    case KindInsertFailed, KindUpdateFailed:
        return http.StatusInternalServerError
    default:
        return http.StatusForbidden
    }
}

// IsKind reports whether err is a service.Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
    var se *Error
    return errors.As(err, &se) && se.Kind == kind
}
