package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/vmrkv/CST-BookingService/internal/domain"
	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: customerEmail is not a valid email", ErrInvalidInput)
	}

	strategy, ok := domain.ParseAssignmentStrategy(req.Strategy)
	if !ok {
		return fmt.Errorf("%w: unknown assignment strategy %q", ErrInvalidInput, req.Strategy)
	}

	// Стратегия specific не имеет смысла без выбранного консультанта
	if strategy == domain.StrategySpecific {
		if req.PreferredConsultantID == nil || *req.PreferredConsultantID <= 0 {
			return fmt.Errorf("%w: preferredConsultantID is required for strategy %q", ErrInvalidInput, strategy)
		}
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, now.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет минимальное время до начала слота.
// Для дат в будущем всегда проходит; для сегодняшней даты слот должен
// начинаться не раньше now + minBookingNoticeMinutes.
func validateBookingTime(requestDate time.Time, startTime types.TimeString, now time.Time, minBookingNoticeMinutes int) error {
	if !isSameDay(requestDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// Порог ушел за границу суток — сегодня бронировать уже нельзя
		return ErrTooLateToBook
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: booking requires at least %d minutes notice", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// validateSlotGrid проверяет, что время начала совпадает с сеткой слотов
func validateSlotGrid(startTime types.TimeString, slotTimes []types.TimeString) error {
	for _, t := range slotTimes {
		if t == startTime {
			return nil
		}
	}
	return ErrInvalidTimeSlot
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
