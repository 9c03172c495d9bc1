package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func clearCheckinEnv(t *testing.T) {
    t.Helper()
    for _, k := range []string{
        "CHECKIN_FREE_LIMIT", "CHECKIN_DISTANCE_M", "CHECKIN_COOLDOWN_MIN",
        "CHECKIN_OTP_DIGITS", "CHECKIN_OTP_MINUTES", "CHECKIN_FIX_MAX_AGE_SEC",
        "CHECKIN_REQUIRE_SINGLE_ACTIVE", "CHECKIN_SELECT_EARLIEST_END", "CHECKIN_LOG_DEBUG",
    } {
        t.Setenv(k, "")
    }
}

func TestLoadCheckinPolicyDefaults(t *testing.T) {
    clearCheckinEnv(t)

    p := LoadCheckinPolicy()
    assert.Equal(t, 3, p.FreeLimit)
    assert.Equal(t, 75, p.DistanceMeters)
    assert.Equal(t, 120, p.CooldownMin)
    assert.Equal(t, 4, p.OTPDigits)
    assert.Equal(t, 5, p.OTPMinutes)
    assert.Equal(t, 30, p.FixMaxAgeSec)
    assert.False(t, p.RequireSingleActive)
    assert.True(t, p.SelectEarliestEnd)
    assert.False(t, p.LogDebug)

    assert.Equal(t, 2*time.Hour, p.Cooldown())
    assert.Equal(t, 5*time.Minute, p.OTPTTL())
    assert.Equal(t, 30*time.Second, p.FixMaxAge())
}

func TestLoadCheckinPolicyClamping(t *testing.T) {
    clearCheckinEnv(t)
    t.Setenv("CHECKIN_FREE_LIMIT", "1000")
    t.Setenv("CHECKIN_DISTANCE_M", "5")
    t.Setenv("CHECKIN_COOLDOWN_MIN", "-10")
    t.Setenv("CHECKIN_OTP_DIGITS", "12")
    t.Setenv("CHECKIN_OTP_MINUTES", "0")
    t.Setenv("CHECKIN_FIX_MAX_AGE_SEC", "100000")

    p := LoadCheckinPolicy()
    assert.Equal(t, 100, p.FreeLimit, "clamped to the ceiling")
    assert.Equal(t, 10, p.DistanceMeters, "clamped to the floor")
    assert.Equal(t, 0, p.CooldownMin, "negative clamps to zero, disabling the cooldown")
    assert.Equal(t, 10, p.OTPDigits)
    assert.Equal(t, 1, p.OTPMinutes)
    assert.Equal(t, 600, p.FixMaxAgeSec)
}

func TestLoadCheckinPolicyBadInputFallsBack(t *testing.T) {
    clearCheckinEnv(t)
    t.Setenv("CHECKIN_FREE_LIMIT", "lots")
    t.Setenv("CHECKIN_OTP_DIGITS", "4.5")
    t.Setenv("CHECKIN_SELECT_EARLIEST_END", "maybe")

    p := LoadCheckinPolicy()
    assert.Equal(t, 3, p.FreeLimit)
    assert.Equal(t, 4, p.OTPDigits)
    assert.True(t, p.SelectEarliestEnd)
}

func TestLoadCheckinPolicyBools(t *testing.T) {
    clearCheckinEnv(t)
    t.Setenv("CHECKIN_REQUIRE_SINGLE_ACTIVE", "1")
    t.Setenv("CHECKIN_SELECT_EARLIEST_END", "false")
    t.Setenv("CHECKIN_LOG_DEBUG", "on")

    p := LoadCheckinPolicy()
    assert.True(t, p.RequireSingleActive)
    assert.False(t, p.SelectEarliestEnd)
    assert.True(t, p.LogDebug)
}

func TestLoadRateLimitConfigGuards(t *testing.T) {
    t.Setenv("RATE_LIMIT_ENABLED", "")
    t.Setenv("RATE_LIMIT_REQUESTS", "0")
    t.Setenv("RATE_LIMIT_WINDOW", "-5s")
    t.Setenv("RATE_LIMIT_PREFIX", "")

    cfg := LoadRateLimitConfig()
    assert.True(t, cfg.Enabled)
    assert.Equal(t, 1, cfg.Limit, "limit never drops below one")
    assert.Equal(t, time.Minute, cfg.Window, "non-positive window resets to the default")
    assert.Equal(t, "rl", cfg.Prefix)
}
