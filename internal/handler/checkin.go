package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/perkspot/venue-checkin/internal/geo"
    "github.com/perkspot/venue-checkin/internal/model"
    "github.com/perkspot/venue-checkin/internal/queue"
    "github.com/perkspot/venue-checkin/internal/service"
)

// CheckinHandler exposes the check-in issuance and redemption endpoints.
// All business decisions live in the service; the handler binds requests,
// maps tagged errors onto HTTP statuses and shapes the JSON responses.
type CheckinHandler struct {
    Service *service.CheckinService
}

// NewCheckinHandler constructs a CheckinHandler.  The service must be non-nil.
func NewCheckinHandler(svc *service.CheckinService) *CheckinHandler {
    if svc == nil {
        panic("nil service passed to NewCheckinHandler")
    }
    return &CheckinHandler{Service: svc}
}

type createCheckinReq struct {
    VenueID  string   `json:"venue_id"`
    WindowID string   `json:"window_id"`
    Method   string   `json:"method"`
    Lat      *float64 `json:"lat"`
    Lng      *float64 `json:"lng"`
}

// checkinPart is the wire shape of a check-in in success responses.  Only
// what the code screen needs is exposed.
type checkinPart struct {
    ID           string `json:"id"`
    OTPCode      string `json:"otp_code"`
    OTPExpiresAt string `json:"otp_expires_at"`
    WindowID     string `json:"window_id"`
}

func toCheckinPart(c *model.Checkin) checkinPart {
    return checkinPart{
        ID:           c.ID,
        OTPCode:      c.OTPCode,
        OTPExpiresAt: c.OTPExpiresAt.UTC().Format(time.RFC3339),
        WindowID:     c.WindowID,
    }
}

// serviceErrorBody builds the failure payload for a tagged service error,
// attaching whatever context the kind carries for the client UX.
func serviceErrorBody(se *service.Error) echo.Map {
    body := echo.Map{"error": string(se.Kind)}
    switch se.Kind {
    case service.KindNotAtVenue:
        if se.Meters != nil {
            body["meters"] = *se.Meters
        }
        body["threshold"] = se.Threshold
    case service.KindCooldownActive:
        body["minutes"] = se.Minutes
        body["until"] = se.Until.UTC().Format(time.RFC3339)
    case service.KindFreeLimitReached:
        body["next"] = "upgrade"
    }
    return body
}

func writeServiceError(c echo.Context, err error) error {
    var se *service.Error
    if errors.As(err, &se) {
        return c.JSON(se.HTTPStatus(), serviceErrorBody(se))
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error"})
}

// Create handles POST /v1/checkins.  It issues a fresh one-time code for
// the venue's active deal window, or returns the caller's outstanding
// check-in flagged already_active.
func (h *CheckinHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not_authenticated"})
    }
    var req createCheckinReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_input"})
    }

    var fix *geo.Fix
    if req.Lat != nil && req.Lng != nil {
        // The fix is stamped on arrival; the service judges freshness
        // explicitly instead of trusting a client-side cache.
        fix = &geo.Fix{Lat: *req.Lat, Lng: *req.Lng, At: time.Now().UTC()}
    }

    res, err := h.Service.Create(c.Request().Context(), service.CreateInput{
        UserID:   uid,
        VenueID:  req.VenueID,
        WindowID: req.WindowID,
        Method:   req.Method,
        Fix:      fix,
    })
    if err != nil {
        return writeServiceError(c, err)
    }

    body := echo.Map{"checkin": toCheckinPart(res.Checkin)}
    if res.Reused {
        body["already_active"] = true
    }
    return c.JSON(http.StatusOK, body)
}

// Redeem handles POST /v1/checkins/:id/redeem.  Exactly one of any number
// of concurrent redeems for the same check-in succeeds; a redeemed event is
// published best-effort afterwards.
func (h *CheckinHandler) Redeem(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not_authenticated"})
    }
    id := c.Param("id")

    ck, err := h.Service.Redeem(c.Request().Context(), uid, id)
    if err != nil {
        return writeServiceError(c, err)
    }

    redeemedAt := ""
    if ck.RedeemedAt != nil {
        redeemedAt = ck.RedeemedAt.UTC().Format(time.RFC3339)
    }
    go func(ev queue.CheckinRedeemedEvent) {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue.PublishCheckinRedeemed(ctx, ev)
    }(queue.CheckinRedeemedEvent{
        CheckinID:  ck.ID,
        UserID:     ck.UserID,
        VenueID:    ck.VenueID,
        WindowID:   ck.WindowID,
        RedeemedAt: redeemedAt,
    })

    return c.JSON(http.StatusOK, echo.Map{"ok": true, "id": ck.ID})
}

// Active handles GET /v1/checkins/active.  It returns the caller's
// outstanding started check-in so the client can restore the code screen,
// or 404 when none is live.
func (h *CheckinHandler) Active(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not_authenticated"})
    }
    ck, err := h.Service.Active(c.Request().Context(), uid)
    if err != nil {
        return writeServiceError(c, err)
    }
    if ck == nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
    }
    return c.JSON(http.StatusOK, echo.Map{"checkin": toCheckinPart(ck)})
}
