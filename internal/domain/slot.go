package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// SlotStatus is the resolved availability classification of a single slot
type SlotStatus string

const (
	SlotOpen        SlotStatus = "open"
	SlotBlockedDay  SlotStatus = "blocked_day"
	SlotBlockedSlot SlotStatus = "blocked_slot"
	SlotTaken       SlotStatus = "taken"
	SlotPast        SlotStatus = "past"
)

// ResolvedSlot is one grid cell with its resolved status
type ResolvedSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Status          SlotStatus
}

// IsBookable returns true if a booking commit against this slot may proceed
func (s *ResolvedSlot) IsBookable() bool {
	return s.Status == SlotOpen
}

// DayMarker is the day-level rollup used by calendar rendering
type DayMarker string

const (
	DayFree    DayMarker = "free"    // every slot is open
	DayPartial DayMarker = "partial" // some slots are unavailable
	DayFull    DayMarker = "full"    // no open slot left
)
