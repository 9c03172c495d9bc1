// This file defines handlers for the public browse API.  These routes let
// unauthenticated users see which deal windows are live right now and read
// the house rules of a venue before walking in; nothing user-specific is
// exposed.

package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/perkspot/venue-checkin/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
    Windows *repository.WindowRepo
}

// PublicVenue is the venue identity exposed in browse responses.
type PublicVenue struct {
    ID    string  `json:"id"`
    Name  string  `json:"name"`
    Rules *string `json:"rules,omitempty"`
}

// PublicDeal is a live deal window in list and detail responses.
type PublicDeal struct {
    ID          string      `json:"id"`
    VenueID     string      `json:"venue_id"`
    DiscountPct int         `json:"discount_pct"`
    StartsAt    time.Time   `json:"starts_at"`
    EndsAt      time.Time   `json:"ends_at"`
    Venue       PublicVenue `json:"venue"`
}

// GetActiveDeals handles GET /v1/deals.  It lists every window live at the
// time of the request, ordered by start time.  Response JSON contains an
// "items" array of PublicDeal.
func (h *PublicHandler) GetActiveDeals(c echo.Context) error {
    ctx := c.Request().Context()
    deals, err := h.Windows.ListActive(ctx, time.Now().UTC())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicDeal, 0, len(deals))
    for _, d := range deals {
        out = append(out, PublicDeal{
            ID:          d.ID,
            VenueID:     d.VenueID,
            DiscountPct: d.DiscountPct,
            StartsAt:    d.StartsAt,
            EndsAt:      d.EndsAt,
            Venue:       PublicVenue{ID: d.VenueID, Name: d.VenueName},
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetDealDetails handles GET /v1/deals/:id.  It returns a single window
// with its venue's rules text.  Inactive windows are still served here –
// the client shows its own "ended" state – but unknown ids are 404.
func (h *PublicHandler) GetDealDetails(c echo.Context) error {
    ctx := c.Request().Context()
    d, err := h.Windows.GetDetail(ctx, c.Param("id"))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if d == nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
    }
    return c.JSON(http.StatusOK, PublicDeal{
        ID:          d.ID,
        VenueID:     d.VenueID,
        DiscountPct: d.DiscountPct,
        StartsAt:    d.StartsAt,
        EndsAt:      d.EndsAt,
        Venue:       PublicVenue{ID: d.VenueID, Name: d.VenueName, Rules: d.VenueRules},
    })
}
