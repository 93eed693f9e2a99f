package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// Default operating schedule. A single global grid for all masters;
// per-master windows can be layered on top later without touching the resolver.
const (
	DefaultOpenTime            = types.TimeString("10:00")
	DefaultCloseTime           = types.TimeString("22:00")
	DefaultSlotDurationMinutes = 60
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 15
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxMasterNameLength         = 255
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// CancelledStatuses список статусов отменённых бронирований
var CancelledStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByMaster,
}
