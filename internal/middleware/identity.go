package middleware

// identity.go holds helpers shared across middleware files.  userID pulls
// the subject claim from the JWT stored in the Echo context for use in
// rate-limit keys; unauthenticated requests are bucketed as "guest".

import (
    "fmt"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the JWT stored in context.  It
// returns "guest" when no user is authenticated or the claims are missing.
func userID(c echo.Context) string {
    u := c.Get("user")
    if u == nil {
        return "guest"
    }
    tok, ok := u.(*jwt.Token)
    if !ok {
        return "guest"
    }
    cl, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "guest"
    }
    switch v := cl["sub"].(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return fmt.Sprintf("%.0f", v)
    }
    return "guest"
}
