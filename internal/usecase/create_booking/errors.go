package create_booking

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("create_booking: master not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotInPast возвращается, когда начало слота уже прошло
	ErrSlotInPast = errors.New("create_booking: slot start is in the past")

	// ErrDayBlocked возвращается, когда день целиком заблокирован мастером
	ErrDayBlocked = errors.New("create_booking: day is blocked")

	// ErrSlotBlocked возвращается, когда слот вручную заблокирован мастером
	ErrSlotBlocked = errors.New("create_booking: slot is blocked")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrSlotOutsideGrid возвращается, когда время не лежит на рабочей сетке
	ErrSlotOutsideGrid = errors.New("create_booking: slot is outside the working grid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
