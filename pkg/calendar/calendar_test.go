package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := FromConfig("Asia/Jakarta", "08:00", "17:00", []string{"12:00-13:00"})
	require.NoError(t, err)
	return cal
}

func localTime(t *testing.T, day int, hour, minute int) time.Time {
	t.Helper()
	location, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return time.Date(2025, time.March, day, hour, minute, 0, 0, location)
}

func TestNew(t *testing.T) {
	t.Run("rejects inverted operating window", func(t *testing.T) {
		_, err := FromConfig("Asia/Jakarta", "17:00", "08:00", nil)
		assert.Error(t, err)
	})

	t.Run("rejects break outside operating window", func(t *testing.T) {
		_, err := FromConfig("Asia/Jakarta", "08:00", "17:00", []string{"07:00-09:00"})
		assert.Error(t, err)
	})

	t.Run("rejects overlapping breaks", func(t *testing.T) {
		_, err := FromConfig("Asia/Jakarta", "08:00", "17:00", []string{"12:00-13:00", "12:30-14:00"})
		assert.Error(t, err)
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		_, err := FromConfig("Atlantis/Lost", "08:00", "17:00", nil)
		assert.Error(t, err)
	})

	t.Run("accepts empty break list", func(t *testing.T) {
		cal, err := FromConfig("Asia/Jakarta", "08:00", "17:00", nil)
		require.NoError(t, err)
		assert.NotNil(t, cal)
	})
}

func TestEffectiveDuration(t *testing.T) {
	cal := testCalendar(t)

	t.Run("interval inside operating window outside breaks", func(t *testing.T) {
		duration := cal.EffectiveDuration(localTime(t, 3, 9, 0), localTime(t, 3, 11, 0))
		assert.Equal(t, 2*time.Hour, duration)
	})

	t.Run("interval fully inside a break contributes zero", func(t *testing.T) {
		duration := cal.EffectiveDuration(localTime(t, 3, 12, 10), localTime(t, 3, 12, 50))
		assert.Equal(t, time.Duration(0), duration)
	})

	t.Run("interval partially overlapping a break keeps the rest", func(t *testing.T) {
		duration := cal.EffectiveDuration(localTime(t, 3, 11, 30), localTime(t, 3, 13, 30))
		assert.Equal(t, time.Hour, duration)
	})

	t.Run("start before opening is clamped", func(t *testing.T) {
		duration := cal.EffectiveDuration(localTime(t, 3, 6, 0), localTime(t, 3, 9, 0))
		assert.Equal(t, time.Hour, duration)
	})

	t.Run("end after closing is clamped", func(t *testing.T) {
		duration := cal.EffectiveDuration(localTime(t, 3, 16, 0), localTime(t, 3, 20, 0))
		assert.Equal(t, time.Hour, duration)
	})

	t.Run("interval entirely outside operating hours contributes zero", func(t *testing.T) {
		duration := cal.EffectiveDuration(localTime(t, 3, 18, 0), localTime(t, 3, 22, 0))
		assert.Equal(t, time.Duration(0), duration)
	})

	t.Run("end before start returns zero", func(t *testing.T) {
		duration := cal.EffectiveDuration(localTime(t, 3, 11, 0), localTime(t, 3, 9, 0))
		assert.Equal(t, time.Duration(0), duration)
	})

	t.Run("overnight span sums partial days", func(t *testing.T) {
		// 16:30 -> 17:00 on day one, 08:00 -> 09:30 on day two.
		duration := cal.EffectiveDuration(localTime(t, 3, 16, 30), localTime(t, 4, 9, 30))
		assert.Equal(t, 2*time.Hour, duration)
	})

	t.Run("full intermediate days contribute operating length minus breaks", func(t *testing.T) {
		// Day one 16:00 -> 17:00 (1h), day two full (8h), day three 08:00 -> 10:00 (2h).
		duration := cal.EffectiveDuration(localTime(t, 3, 16, 0), localTime(t, 5, 10, 0))
		assert.Equal(t, 11*time.Hour, duration)
	})

	t.Run("works with UTC inputs", func(t *testing.T) {
		// 02:00 UTC is 09:00 in Jakarta (UTC+7).
		start := time.Date(2025, time.March, 3, 2, 0, 0, 0, time.UTC)
		end := time.Date(2025, time.March, 3, 4, 0, 0, 0, time.UTC)
		assert.Equal(t, 2*time.Hour, cal.EffectiveDuration(start, end))
	})
}

func TestSameLocalDay(t *testing.T) {
	cal := testCalendar(t)

	t.Run("same local date", func(t *testing.T) {
		assert.True(t, cal.SameLocalDay(localTime(t, 3, 8, 0), localTime(t, 3, 23, 0)))
	})

	t.Run("different local dates", func(t *testing.T) {
		assert.False(t, cal.SameLocalDay(localTime(t, 3, 23, 0), localTime(t, 4, 1, 0)))
	})

	t.Run("UTC instants on the same Jakarta date", func(t *testing.T) {
		// 17:30 UTC on day 3 is 00:30 on day 4 in Jakarta.
		a := time.Date(2025, time.March, 3, 17, 30, 0, 0, time.UTC)
		b := time.Date(2025, time.March, 4, 1, 0, 0, 0, time.UTC)
		assert.True(t, cal.SameLocalDay(a, b))
	})
}
