package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// GenerateSlots enumerates the candidate time slots of one day: from open
// time upwards with a fixed step, keeping only slots that end no later than
// close time. Pure and deterministic; date bounds are applied by the resolver.
func GenerateSlots(open, close types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	if err := open.Validate(); err != nil {
		return nil, err
	}
	if err := close.Validate(); err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		end, err := current.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
		if end.IsAfter(close) {
			break
		}

		slots = append(slots, current)
		current = end
	}

	return slots, nil
}

// ResolveSlot classifies one slot. First match wins:
//
//  1. slot start before now           -> SlotPast
//  2. whole day manually blocked      -> SlotBlockedDay (even if the slot
//     itself carries an explicit unblock)
//  3. slot cell manually blocked      -> SlotBlockedSlot (even if a booking
//     also occupies the cell; the booking stays active)
//  4. an active booking overlaps      -> SlotTaken
//  5. otherwise                       -> SlotOpen
//
// Never returns an error: every business condition is a status.
func ResolveSlot(slot types.TimeString, date time.Time, now time.Time, slotDuration int, sched *DaySchedule) SlotStatus {
	startsAt, err := slot.At(date)
	if err != nil {
		// Grid slots are well-formed by construction; a malformed slot
		// can never be bookable.
		return SlotPast
	}
	if startsAt.Before(now) {
		return SlotPast
	}

	if sched.DayBlocked {
		return SlotBlockedDay
	}

	if sched.SlotBlocked(slot) {
		return SlotBlockedSlot
	}

	if overlapsActiveBooking(slot, slotDuration, sched.Bookings) {
		return SlotTaken
	}

	return SlotOpen
}

// ResolveDay classifies every slot of the grid for one master's day
func ResolveDay(grid []types.TimeString, date time.Time, now time.Time, slotDuration int, sched *DaySchedule) []ResolvedSlot {
	resolved := make([]ResolvedSlot, len(grid))

	for i, slot := range grid {
		resolved[i] = ResolvedSlot{
			StartTime:       slot,
			DurationMinutes: slotDuration,
			Status:          ResolveSlot(slot, date, now, slotDuration, sched),
		}
	}

	return resolved
}

// DayMarkerFor rolls a day's resolved slots up into a calendar marker:
// full when no slot is open, free when all are, partial otherwise.
// A day with no slots at all is full.
func DayMarkerFor(slots []ResolvedSlot) DayMarker {
	openCount := 0
	for _, s := range slots {
		if s.Status == SlotOpen {
			openCount++
		}
	}

	switch {
	case openCount == 0:
		return DayFull
	case openCount == len(slots):
		return DayFree
	default:
		return DayPartial
	}
}

// overlapsActiveBooking reports whether any active booking's occupied
// interval, computed from its start and duration, overlaps the slot interval.
// Boundary-touching intervals do not overlap: a booking ending exactly at
// the slot start leaves the slot free.
func overlapsActiveBooking(slot types.TimeString, slotDuration int, bookings []*Booking) bool {
	slotEnd, err := slot.AddMinutes(slotDuration)
	if err != nil {
		return false
	}

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.EndTime()
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slot) {
			return true
		}
	}

	return false
}
