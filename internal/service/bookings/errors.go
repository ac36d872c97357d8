package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrConsultantNotFound возвращается, когда консультант не найден или неактивен
	ErrConsultantNotFound = errors.New("consultant not found")

	// ErrCannotCancel возвращается, когда бронирование нельзя отменить в текущем статусе
	ErrCannotCancel = errors.New("booking cannot be cancelled in its current status")

	// ErrCannotReassign возвращается, когда бронирование нельзя перевести на другого консультанта
	ErrCannotReassign = errors.New("booking cannot be reassigned in its current status")

	// ErrConsultantNotAvailable возвращается, когда целевой консультант занят в интервале бронирования
	ErrConsultantNotAvailable = errors.New("consultant is not available for this booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
