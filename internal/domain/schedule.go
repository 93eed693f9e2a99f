package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DayOverride is a manual whole-day block/unblock for a master,
// independent of individual slots. Absence of a row means "not overridden".
type DayOverride struct {
	ID        int64
	MasterID  int64
	Date      time.Time
	IsBlocked bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotOverride is a manual block/unblock of one specific time cell.
// Absence of a row means "no manual override, defer to the booking ledger".
// An override never cancels an existing booking for the same cell.
type SlotOverride struct {
	ID        int64
	MasterID  int64
	Date      time.Time
	StartTime types.TimeString
	IsBlocked bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaySchedule is a point-in-time snapshot of everything that affects
// availability of one master's day. It is the sole input of the resolver,
// so rendering and commit validation cannot diverge: both build a snapshot
// and call the same pure functions.
type DaySchedule struct {
	DayBlocked   bool
	BlockedSlots map[types.TimeString]bool
	Bookings     []*Booking
}

// SlotBlocked returns true if the given cell carries a manual block
func (s *DaySchedule) SlotBlocked(slot types.TimeString) bool {
	return s.BlockedSlots[slot]
}
