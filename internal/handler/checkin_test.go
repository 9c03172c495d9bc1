package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/perkspot/venue-checkin/internal/service"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/checkins", nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
    t.Helper()
    var body map[string]interface{}
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    return body
}

func TestWriteServiceErrorStatusMapping(t *testing.T) {
    cases := []struct {
        kind   service.ErrorKind
        status int
    }{
        {service.KindNotAuthenticated, http.StatusUnauthorized},
        {service.KindInvalidInput, http.StatusBadRequest},
        {service.KindWindowInactive, http.StatusForbidden},
        {service.KindWindowMismatch, http.StatusForbidden},
        {service.KindMultipleActiveWindows, http.StatusConflict},
        {service.KindLocationRequired, http.StatusForbidden},
        {service.KindNotAtVenue, http.StatusForbidden},
        {service.KindCooldownActive, http.StatusForbidden},
        {service.KindFreeLimitReached, http.StatusForbidden},
        {service.KindNotFound, http.StatusNotFound},
        {service.KindOTPExpired, http.StatusForbidden},
        {service.KindInsertFailed, http.StatusInternalServerError},
        {service.KindUpdateFailed, http.StatusInternalServerError},
    }
    for _, tc := range cases {
        t.Run(string(tc.kind), func(t *testing.T) {
            c, rec := newTestContext(t)
            require.NoError(t, writeServiceError(c, &service.Error{Kind: tc.kind}))
            assert.Equal(t, tc.status, rec.Code)
            assert.Equal(t, string(tc.kind), decodeBody(t, rec)["error"])
        })
    }
}

func TestWriteServiceErrorContextFields(t *testing.T) {
    t.Run("not_at_venue carries distance", func(t *testing.T) {
        c, rec := newTestContext(t)
        meters := 312.4
        err := &service.Error{Kind: service.KindNotAtVenue, Meters: &meters, Threshold: 75}
        require.NoError(t, writeServiceError(c, err))

        body := decodeBody(t, rec)
        assert.InDelta(t, 312.4, body["meters"], 0.01)
        assert.EqualValues(t, 75, body["threshold"])
    })

    t.Run("cooldown carries the lift time", func(t *testing.T) {
        c, rec := newTestContext(t)
        until := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
        err := &service.Error{Kind: service.KindCooldownActive, Minutes: 120, Until: until}
        require.NoError(t, writeServiceError(c, err))

        body := decodeBody(t, rec)
        assert.EqualValues(t, 120, body["minutes"])
        assert.Equal(t, "2026-03-14T21:00:00Z", body["until"])
    })

    t.Run("free limit suggests upgrading", func(t *testing.T) {
        c, rec := newTestContext(t)
        require.NoError(t, writeServiceError(c, &service.Error{Kind: service.KindFreeLimitReached}))
        assert.Equal(t, "upgrade", decodeBody(t, rec)["next"])
    })
}

func TestWriteServiceErrorPlainError(t *testing.T) {
    c, rec := newTestContext(t)
    require.NoError(t, writeServiceError(c, assert.AnError))
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.Equal(t, "internal_error", decodeBody(t, rec)["error"])
}

func TestGetUserID(t *testing.T) {
    set := func(v interface{}) echo.Context {
        c, _ := newTestContext(t)
        c.Set("user_id", v)
        return c
    }

    for name, v := range map[string]interface{}{
        "uint64":  uint64(7),
        "int":     7,
        "int64":   int64(7),
        "float64": float64(7), // JWT numeric claims decode as float64
        "string":  "7",
    } {
        t.Run(name, func(t *testing.T) {
            got, err := getUserID(set(v))
            require.NoError(t, err)
            assert.Equal(t, uint64(7), got)
        })
    }

    t.Run("missing", func(t *testing.T) {
        c, _ := newTestContext(t)
        _, err := getUserID(c)
        assert.Error(t, err)
    })

    t.Run("garbage string", func(t *testing.T) {
        _, err := getUserID(set("not-a-number"))
        assert.Error(t, err)
    })
}
