package service

import (
    "crypto/rand"
    "math/big"
    "strconv"
)

// NewOTP returns a uniformly random numeric code with exactly the requested
// number of digits.  The value is drawn from [10^(digits-1), 10^digits - 1]
// so the code can never collapse below the configured length through a
// leading zero.  crypto/rand is used; the code gates a discount and is the
// only secret the venue staff ever see.
func NewOTP(digits int) (string, error) {
    if digits < 1 {
        digits = 1
    }
    low := int64(1)
    for i := 1; i < digits; i++ {
        low *= 10
    }
    // span = count of values in [low, 10*low - 1]
    span := low*10 - low
    if digits == 1 {
        low = 0
        span = 10
    }
    n, err := rand.Int(rand.Reader, big.NewInt(span))
    if err != nil {
        return "", err
    }
    return strconv.FormatInt(low+n.Int64(), 10), nil
}
