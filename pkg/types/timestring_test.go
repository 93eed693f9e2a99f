package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ts, err := NewTimeStringFromString("10:00")
		require.NoError(t, err)
		assert.Equal(t, TimeString("10:00"), ts)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, raw := range []string{"25:00", "10:60", "1000", "10", "", "abc"} {
			_, err := NewTimeStringFromString(raw)
			assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", raw)
		}
	})
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("13:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, minutes)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore("10:01"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("22:00").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("within day", func(t *testing.T) {
		got, err := TimeString("10:30").AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, TimeString("12:00"), got)
	})

	t.Run("crossing midnight fails", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(60)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})

	t.Run("negative below zero fails", func(t *testing.T) {
		_, err := TimeString("00:30").AddMinutes(-60)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("14:30").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.October, 15, 14, 30, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2000, 1, 1, 10, 0, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("10:00"), ts)
	})

	t.Run("from TIME column string with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00:00"))
		assert.Equal(t, TimeString("10:00"), ts)
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("21:15")))
		assert.Equal(t, TimeString("21:15"), ts)
	})

	t.Run("nil resets", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
