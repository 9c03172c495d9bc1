package router

import (
    "github.com/labstack/echo/v4"

    "github.com/perkspot/venue-checkin/internal/handler"
    "github.com/perkspot/venue-checkin/internal/middleware"
)

// RegisterCheckin registers the check-in endpoints under /v1.  All routes
// require a valid JWT with the MEMBER role; the mutation routes addition-
// ally run behind the distributed rate limiter to stop OTP farming.
func RegisterCheckin(e *echo.Echo, h *handler.CheckinHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(handler.RoleMember),
    )
    g.POST("/checkins", h.Create, limiter)
    g.POST("/checkins/:id/redeem", h.Redeem, limiter)
    g.GET("/checkins/active", h.Active)
}
