package get_calendar

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("get_calendar: master not found")

	// ErrInvalidMonth возвращается при некорректном месяце
	ErrInvalidMonth = errors.New("get_calendar: invalid month")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar: internal error")
)
