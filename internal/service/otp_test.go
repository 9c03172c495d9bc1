package service

import (
    "strconv"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewOTPLength(t *testing.T) {
    for digits := 3; digits <= 10; digits++ {
        for i := 0; i < 50; i++ {
            code, err := NewOTP(digits)
            require.NoError(t, err)
            assert.Len(t, code, digits, "digits=%d code=%q", digits, code)
            _, err = strconv.ParseUint(code, 10, 64)
            assert.NoError(t, err, "code must be numeric: %q", code)
        }
    }
}

func TestNewOTPNoLeadingZero(t *testing.T) {
    for i := 0; i < 200; i++ {
        code, err := NewOTP(4)
        require.NoError(t, err)
        assert.NotEqual(t, byte('0'), code[0], "code=%q", code)
    }
}

func TestNewOTPSingleDigit(t *testing.T) {
    // Values below 1 clamp to a single digit, which may be zero.
    for _, digits := range []int{1, 0, -3} {
        code, err := NewOTP(digits)
        require.NoError(t, err)
        assert.Len(t, code, 1)
    }
}
