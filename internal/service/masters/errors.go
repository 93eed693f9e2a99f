package masters

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("master not found")

	// ErrHasActiveBookings возвращается при попытке удалить мастера
	// с активными бронированиями на сегодня и позже
	ErrHasActiveBookings = errors.New("master has active bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
