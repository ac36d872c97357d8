package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vmrkv/CST-BookingService/internal/availability"
	"github.com/vmrkv/CST-BookingService/internal/domain"
	bookingRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/schedule"
	"github.com/vmrkv/CST-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование.
// Отмена допустима только из статусов pending и confirmed; отмена
// освобождает ёмкость консультанта в слоте
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	reason := strings.TrimSpace(req.CancellationReason)
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellationReason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason is too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status %s cannot be cancelled", id, booking.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrCannotCancel, booking.Status)
	}

	if err := s.bookingRepo.Cancel(ctx, id, reason); err != nil {
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.getBooking(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus обновляет статус бронирования (операция персонала)
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d -> %s", id, req.Status)

	status, ok := domain.ValidBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	// Отмена идёт через Cancel, чтобы не потерять причину и метку времени
	if status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: use the cancel endpoint to cancel a booking", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, id, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		return nil, fmt.Errorf("%w: booking is cancelled", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getBooking(ctx, id, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// Reassign переводит бронирование на другого консультанта.
// Интервал бронирования не меняется; целевой консультант должен иметь
// свободную ёмкость в этом интервале. Проверка и перевод выполняются
// в сериализуемой транзакции, как и создание бронирования
func (s *Service) Reassign(ctx context.Context, id int64, req *models.ReassignBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reassign: booking id=%d -> consultant=%d", id, req.ConsultantID)

	if req.ConsultantID <= 0 {
		return nil, fmt.Errorf("%w: consultantId must be positive", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, id, "Reassign")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeReassigned() {
		s.logger.Warn("Reassign: booking id=%d in status %s cannot be reassigned", id, booking.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrCannotReassign, booking.Status)
	}

	if booking.ConsultantID != nil && *booking.ConsultantID == req.ConsultantID {
		return nil, fmt.Errorf("%w: booking is already assigned to consultant %d", ErrInvalidInput, req.ConsultantID)
	}

	consultant, err := s.scheduleRepo.GetActiveConsultantByID(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConsultantNotFound) {
			s.logger.Warn("Reassign: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		s.logger.Error("Reassign: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: Reassign - repository error: %v", ErrInternal, err)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем бронирования даты и проверяем ёмкость целевого
		// консультанта в интервале переводимого бронирования
		dayBookings, err := s.bookingRepo.ListOccupyingForDate(txCtx, booking.ScheduledDate)
		if err != nil {
			return fmt.Errorf("%w: Reassign - failed to list bookings: %v", ErrInternal, err)
		}

		templates, err := s.scheduleRepo.ListTemplatesForDay(txCtx, int(booking.ScheduledDate.Weekday()))
		if err != nil {
			return fmt.Errorf("%w: Reassign - failed to list templates: %v", ErrInternal, err)
		}

		breaks, err := s.scheduleRepo.ListBreaksForDate(txCtx, booking.ScheduledDate)
		if err != nil {
			return fmt.Errorf("%w: Reassign - failed to list breaks: %v", ErrInternal, err)
		}

		timeOff, err := s.scheduleRepo.ListTimeOffForDate(txCtx, booking.ScheduledDate)
		if err != nil {
			return fmt.Errorf("%w: Reassign - failed to list time off: %v", ErrInternal, err)
		}

		// Само переводимое бронирование не должно занимать ёмкость
		// целевого консультанта при проверке
		others := make([]*domain.Booking, 0, len(dayBookings))
		for _, b := range dayBookings {
			if b.ID != booking.ID {
				others = append(others, b)
			}
		}

		schedule := availability.NewDaySchedule(
			booking.ScheduledDate,
			[]*domain.Consultant{consultant},
			templates, breaks, timeOff, others,
		)

		if schedule.RemainingCapacity(consultant.ID, booking.StartTime, booking.DurationMinutes) < 1 {
			s.logger.Warn("Reassign: consultant id=%d has no capacity for booking id=%d", consultant.ID, id)
			return ErrConsultantNotAvailable
		}

		reason := fmt.Sprintf("manually reassigned to consultant %d", consultant.ID)
		if err := s.bookingRepo.Reassign(txCtx, id, consultant.ID, reason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Reassign - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.getBooking(ctx, id, "Reassign")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reassign: booking id=%d reassigned to consultant=%d", id, req.ConsultantID)
	return models.FromDomainBooking(updated), nil
}

// GetConsultantBookings получает бронирования консультанта с фильтрацией
// по периоду и статусу
func (s *Service) GetConsultantBookings(ctx context.Context, req *models.GetConsultantBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetConsultantBookings: consultant=%d, status=%v, includeInactive=%v",
		req.ConsultantID, req.Status, req.IncludeInactive)

	if req.ConsultantID <= 0 {
		return nil, fmt.Errorf("%w: consultantId must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetConsultantBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.bookingRepo.GetByConsultantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetConsultantBookings: repository error for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: GetConsultantBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConsultantBookings: fetched %d bookings for consultant=%d", len(list), req.ConsultantID)
	return models.FromDomainBookingList(list), nil
}

// getBooking достает бронирование и маппит ошибку "не найдено"
func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
