package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func activeBooking(start types.TimeString, duration int) *Booking {
	return &Booking{
		StartTime:       start,
		DurationMinutes: duration,
		Status:          StatusActive,
	}
}

func TestGenerateSlots(t *testing.T) {
	t.Run("full default grid", func(t *testing.T) {
		slots, err := GenerateSlots("10:00", "22:00", 60)
		require.NoError(t, err)

		require.Len(t, slots, 12)
		assert.Equal(t, types.TimeString("10:00"), slots[0])
		assert.Equal(t, types.TimeString("21:00"), slots[11])
	})

	t.Run("slot ending after close is dropped", func(t *testing.T) {
		slots, err := GenerateSlots("10:00", "11:30", 60)
		require.NoError(t, err)

		// 11:00-12:00 не помещается до 11:30
		require.Len(t, slots, 1)
		assert.Equal(t, types.TimeString("10:00"), slots[0])
	})

	t.Run("empty window yields no slots", func(t *testing.T) {
		slots, err := GenerateSlots("10:00", "10:00", 60)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("invalid open time", func(t *testing.T) {
		_, err := GenerateSlots("25:00", "22:00", 60)
		assert.Error(t, err)
	})
}

func TestResolveSlot_Precedence(t *testing.T) {
	bookingDate := date(2025, time.October, 15)
	now := date(2025, time.October, 1)

	tests := []struct {
		name  string
		slot  types.TimeString
		now   time.Time
		sched *DaySchedule
		want  SlotStatus
	}{
		{
			name:  "open slot",
			slot:  "12:00",
			now:   now,
			sched: &DaySchedule{BlockedSlots: map[types.TimeString]bool{}},
			want:  SlotOpen,
		},
		{
			name:  "past wins over everything",
			slot:  "12:00",
			now:   date(2025, time.October, 16),
			sched: &DaySchedule{
				DayBlocked:   true,
				BlockedSlots: map[types.TimeString]bool{"12:00": true},
				Bookings:     []*Booking{activeBooking("12:00", 60)},
			},
			want: SlotPast,
		},
		{
			name: "blocked day wins over blocked slot and booking",
			slot: "12:00",
			now:  now,
			sched: &DaySchedule{
				DayBlocked:   true,
				BlockedSlots: map[types.TimeString]bool{"12:00": true},
				Bookings:     []*Booking{activeBooking("12:00", 60)},
			},
			want: SlotBlockedDay,
		},
		{
			name: "blocked slot wins over booking",
			slot: "12:00",
			now:  now,
			sched: &DaySchedule{
				BlockedSlots: map[types.TimeString]bool{"12:00": true},
				Bookings:     []*Booking{activeBooking("12:00", 60)},
			},
			want: SlotBlockedSlot,
		},
		{
			name: "active booking makes slot taken",
			slot: "12:00",
			now:  now,
			sched: &DaySchedule{
				BlockedSlots: map[types.TimeString]bool{},
				Bookings:     []*Booking{activeBooking("12:00", 60)},
			},
			want: SlotTaken,
		},
		{
			name: "cancelled booking frees the slot",
			slot: "12:00",
			now:  now,
			sched: &DaySchedule{
				BlockedSlots: map[types.TimeString]bool{},
				Bookings: []*Booking{{
					StartTime:       "12:00",
					DurationMinutes: 60,
					Status:          StatusCancelledByUser,
				}},
			},
			want: SlotOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSlot(tt.slot, bookingDate, tt.now, 60, tt.sched)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSlot_PastBoundary(t *testing.T) {
	bookingDate := date(2025, time.October, 15)
	sched := &DaySchedule{BlockedSlots: map[types.TimeString]bool{}}

	// Слот, начинающийся ровно сейчас, еще не в прошлом
	now := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, SlotOpen, ResolveSlot("12:00", bookingDate, now, 60, sched))

	// Минутой позже - уже в прошлом
	now = now.Add(time.Minute)
	assert.Equal(t, SlotPast, ResolveSlot("12:00", bookingDate, now, 60, sched))
}

func TestResolveSlot_OverlapBoundaries(t *testing.T) {
	bookingDate := date(2025, time.October, 15)
	now := date(2025, time.October, 1)

	t.Run("booking ending at slot start does not overlap", func(t *testing.T) {
		sched := &DaySchedule{
			BlockedSlots: map[types.TimeString]bool{},
			Bookings:     []*Booking{activeBooking("11:00", 60)},
		}
		assert.Equal(t, SlotOpen, ResolveSlot("12:00", bookingDate, now, 60, sched))
	})

	t.Run("booking crossing slot start overlaps", func(t *testing.T) {
		sched := &DaySchedule{
			BlockedSlots: map[types.TimeString]bool{},
			Bookings:     []*Booking{activeBooking("11:00", 90)},
		}
		assert.Equal(t, SlotTaken, ResolveSlot("12:00", bookingDate, now, 60, sched))
	})

	t.Run("long booking covers several slots", func(t *testing.T) {
		sched := &DaySchedule{
			BlockedSlots: map[types.TimeString]bool{},
			Bookings:     []*Booking{activeBooking("12:00", 120)},
		}
		assert.Equal(t, SlotTaken, ResolveSlot("12:00", bookingDate, now, 60, sched))
		assert.Equal(t, SlotTaken, ResolveSlot("13:00", bookingDate, now, 60, sched))
		assert.Equal(t, SlotOpen, ResolveSlot("14:00", bookingDate, now, 60, sched))
	})
}

func TestResolveDay(t *testing.T) {
	bookingDate := date(2025, time.October, 15)
	now := date(2025, time.October, 1)

	grid, err := GenerateSlots("10:00", "13:00", 60)
	require.NoError(t, err)
	require.Len(t, grid, 3)

	sched := &DaySchedule{
		BlockedSlots: map[types.TimeString]bool{"11:00": true},
		Bookings:     []*Booking{activeBooking("12:00", 60)},
	}

	resolved := ResolveDay(grid, bookingDate, now, 60, sched)
	require.Len(t, resolved, 3)

	assert.Equal(t, SlotOpen, resolved[0].Status)
	assert.Equal(t, SlotBlockedSlot, resolved[1].Status)
	assert.Equal(t, SlotTaken, resolved[2].Status)

	assert.True(t, resolved[0].IsBookable())
	assert.False(t, resolved[1].IsBookable())
	assert.False(t, resolved[2].IsBookable())
}

func TestDayMarkerFor(t *testing.T) {
	open := ResolvedSlot{Status: SlotOpen}
	taken := ResolvedSlot{Status: SlotTaken}
	past := ResolvedSlot{Status: SlotPast}

	tests := []struct {
		name  string
		slots []ResolvedSlot
		want  DayMarker
	}{
		{"all open", []ResolvedSlot{open, open, open}, DayFree},
		{"mixed", []ResolvedSlot{open, taken, open}, DayPartial},
		{"none open", []ResolvedSlot{taken, past, taken}, DayFull},
		{"no slots at all", nil, DayFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayMarkerFor(tt.slots))
		})
	}
}

func TestDayMarkerFor_BlockedDay(t *testing.T) {
	bookingDate := date(2025, time.October, 15)
	now := date(2025, time.October, 1)

	grid, err := GenerateSlots("10:00", "22:00", 60)
	require.NoError(t, err)

	sched := &DaySchedule{
		DayBlocked:   true,
		BlockedSlots: map[types.TimeString]bool{},
	}

	resolved := ResolveDay(grid, bookingDate, now, 60, sched)
	assert.Equal(t, DayFull, DayMarkerFor(resolved))
}
