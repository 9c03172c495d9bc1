package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time expresses the duration-valued policy knobs
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required variables are enforced by must() at
// startup – a missing one is fatal for the process, never a per-request
// error.  The check-in policy knobs live in their own struct so they can be
// passed into the service layer by value and never re-read mid-request.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time-to-live in minutes
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing

    Checkin CheckinPolicy // tunable check-in policy
}

// CheckinPolicy bundles the operator-tunable knobs of the check-in flow.
// Every numeric knob is clamped to a documented range; out-of-range or
// unparsable input silently falls back to the default so that a bad env
// value can never disable the flow entirely.
type CheckinPolicy struct {
    FreeLimit           int  // lifetime redeemed check-ins allowed on the free tier (0 disables the quota)
    DistanceMeters      int  // geofence radius around the venue anchor
    CooldownMin         int  // minutes between consecutive check-ins (0 disables)
    OTPDigits           int  // number of digits of the one-time code
    OTPMinutes          int  // lifetime of the one-time code
    FixMaxAgeSec        int  // maximum accepted age of a client location fix
    RequireSingleActive bool // reject check-in when several windows are live
    SelectEarliestEnd   bool // overlapping windows: pick the one ending soonest
    LogDebug            bool // verbose geofence/membership logging
}

// Cooldown returns the cooldown knob as a duration.
func (p CheckinPolicy) Cooldown() time.Duration {
    return time.Duration(p.CooldownMin) * time.Minute
}

// OTPTTL returns the OTP lifetime as a duration.
func (p CheckinPolicy) OTPTTL() time.Duration {
    return time.Duration(p.OTPMinutes) * time.Minute
}

// FixMaxAge returns the accepted location fix age as a duration.
func (p CheckinPolicy) FixMaxAge() time.Duration {
    return time.Duration(p.FixMaxAgeSec) * time.Second
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),                   // environment (dev/test/prod)
        Port:           must("APP_PORT"),                  // port to bind the HTTP server
        DBUser:         must("DB_USER"),                   // database user
        DBPass:         os.Getenv("DB_PASS"),              // database password (empty allowed)
        DBHost:         must("DB_HOST"),                   // database host
        DBPort:         must("DB_PORT"),                   // database port
        DBName:         must("DB_NAME"),                   // database name
        JWTSecret:      must("JWT_SECRET"),                // secret used for signing JWTs
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
        BcryptCost:     mustInt("BCRYPT_COST"),            // bcrypt cost factor
        Checkin:        LoadCheckinPolicy(),               // clamped policy knobs
    }
}

// LoadCheckinPolicy reads the CHECKIN_* knobs.  Defaults and clamp ranges
// mirror the documented operational limits of the flow.
func LoadCheckinPolicy() CheckinPolicy {
    return CheckinPolicy{
        FreeLimit:           clampedInt("CHECKIN_FREE_LIMIT", 3, 0, 100),
        DistanceMeters:      clampedInt("CHECKIN_DISTANCE_M", 75, 10, 10000),
        CooldownMin:         clampedInt("CHECKIN_COOLDOWN_MIN", 120, 0, 10080),
        OTPDigits:           clampedInt("CHECKIN_OTP_DIGITS", 4, 3, 10),
        OTPMinutes:          clampedInt("CHECKIN_OTP_MINUTES", 5, 1, 120),
        FixMaxAgeSec:        clampedInt("CHECKIN_FIX_MAX_AGE_SEC", 30, 5, 600),
        RequireSingleActive: envBool("CHECKIN_REQUIRE_SINGLE_ACTIVE", false),
        SelectEarliestEnd:   envBool("CHECKIN_SELECT_EARLIEST_END", true),
        LogDebug:            envBool("CHECKIN_LOG_DEBUG", false),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// clampedInt reads an optional integer knob.  Unset or unparsable values
// fall back to def; parsable values are clamped into [min, max].
func clampedInt(key string, def, min, max int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        return def
    }
    if n < min {
        return min
    }
    if n > max {
        return max
    }
    return n
}
