package schedule

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден или неактивен
	ErrConsultantNotFound = errors.New("consultant not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrWindowsOverlap возвращается, когда окна шаблона одного дня пересекаются
	ErrWindowsOverlap = errors.New("template windows overlap")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
