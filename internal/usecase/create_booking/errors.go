package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrTooLateToBook возвращается, когда до начала слота осталось меньше minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrInvalidTimeSlot возвращается, когда время начала не совпадает с сеткой слотов
	ErrInvalidTimeSlot = errors.New("start time does not match the slot grid")

	// ErrSlotNotAvailable возвращается, когда ни у одного консультанта нет свободной ёмкости в слоте
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrConsultantNotAvailable возвращается, когда запрошенный консультант недоступен в слоте.
	// Стратегия specific не делает fallback на других консультантов
	ErrConsultantNotAvailable = errors.New("requested consultant is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
