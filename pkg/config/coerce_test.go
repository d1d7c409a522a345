package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	t.Run("Should accept Go and long-form durations", func(t *testing.T) {
		cases := map[string]time.Duration{
			"1h30m":         90 * time.Minute,
			"250":           250 * time.Millisecond,
			"250ms":         250 * time.Millisecond,
			"10 seconds":    10 * time.Second,
			"1 minute":      time.Minute,
			"2d":            48 * time.Hour,
			"1.5 hours":     90 * time.Minute,
			"500 micros":    500 * time.Microsecond,
			"3 nanoseconds": 3 * time.Nanosecond,
			"1d12h":         36 * time.Hour,
			"2w":            14 * 24 * time.Hour,
			"1 week":        7 * 24 * time.Hour,
		}
		for in, want := range cases {
			got, err := parseDuration(in)
			assert.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("Should reject unknown units and text", func(t *testing.T) {
		for _, in := range []string{"", "soon", "10 fortnights", "1h-"} {
			_, err := parseDuration(in)
			assert.Error(t, err, in)
		}
	})

	t.Run("Should reject durations outside the int64 range", func(t *testing.T) {
		for _, in := range []string{"99999999999999999999 days", "9223372036854775808 ns", "-9223372036854775808 ns"} {
			_, err := parseDuration(in)
			assert.Error(t, err, in)
		}
	})
}

func TestToDuration(t *testing.T) {
	t.Run("Should read bare numbers as milliseconds", func(t *testing.T) {
		d, ok := toDuration(1500)
		assert.True(t, ok)
		assert.Equal(t, 1500*time.Millisecond, d)
	})

	t.Run("Should reject bare numbers outside the int64 range", func(t *testing.T) {
		for _, in := range []any{1e300, -1e300, float64(math.MaxInt64), math.NaN(), math.Inf(1)} {
			_, ok := toDuration(in)
			assert.False(t, ok, in)
		}
	})
}

func TestToBool(t *testing.T) {
	t.Run("Should accept boolean words", func(t *testing.T) {
		for in, want := range map[string]bool{"true": true, "YES": true, "on": true, "false": false, "No": false, "off": false} {
			got, ok := toBool(in)
			assert.True(t, ok, in)
			assert.Equal(t, want, got, in)
		}
		_, ok := toBool("1")
		assert.False(t, ok)
		_, ok = toBool(1)
		assert.False(t, ok)
	})
}
