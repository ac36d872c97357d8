package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmrkv/CST-BookingService/internal/availability"
	"github.com/vmrkv/CST-BookingService/internal/domain"
	catalogRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	catalogRepo  CatalogRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе бизнеса
	now := uc.timeProvider.Now().In(uc.settings.Location)

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetActiveByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req.Date, now, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Генерируем сетку слотов с шагом в полную длительность услуги
	totalDuration := service.TotalDurationMinutes()

	slotTimes, err := availability.GenerateSlotTimes(uc.settings.OpenTime, uc.settings.CloseTime, totalDuration)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 6. Фильтруем слоты на сегодня по минимальному времени до бронирования
	slotTimes, err = filterByNotice(slotTimes, req.Date, now, uc.settings.MinBookingNoticeMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to filter time slots: %v", ErrInternal, err)
	}

	// 7. Загружаем расписания и бронирования на дату
	schedule, err := uc.loadDaySchedule(ctx, req)
	if err != nil {
		return nil, err
	}

	// 8. Вычисляем ёмкость каждого слота по каждому консультанту
	slots := schedule.BuildSlots(slotTimes, totalDuration)

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           toSlots(slots),
	}, nil
}

// loadDaySchedule загружает все данные о доступности на дату запроса
func (uc *UseCase) loadDaySchedule(ctx context.Context, req *Request) (*availability.DaySchedule, error) {
	consultants, err := uc.scheduleRepo.ListActiveConsultants(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list consultants: %v", err)
		return nil, fmt.Errorf("%w: failed to list consultants: %v", ErrInternal, err)
	}

	templates, err := uc.scheduleRepo.ListTemplatesForDay(ctx, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list templates: %v", err)
		return nil, fmt.Errorf("%w: failed to list templates: %v", ErrInternal, err)
	}

	breaks, err := uc.scheduleRepo.ListBreaksForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list breaks: %v", err)
		return nil, fmt.Errorf("%w: failed to list breaks: %v", ErrInternal, err)
	}

	timeOff, err := uc.scheduleRepo.ListTimeOffForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list time off: %v", err)
		return nil, fmt.Errorf("%w: failed to list time off: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListOccupyingForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	return availability.NewDaySchedule(req.Date, consultants, templates, breaks, timeOff, bookings), nil
}

// toSlots конвертирует доменные слоты в модель ответа
func toSlots(slots []domain.AvailableSlot) []Slot {
	result := make([]Slot, len(slots))

	for i, s := range slots {
		consultants := make([]ConsultantCapacity, len(s.Consultants))
		for j, c := range s.Consultants {
			consultants[j] = ConsultantCapacity{
				ConsultantID:      c.ConsultantID,
				RemainingCapacity: c.RemainingCapacity,
			}
		}

		result[i] = Slot{
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			Available:       s.IsAvailable(),
			TotalCapacity:   s.TotalCapacity,
			Consultants:     consultants,
		}
	}

	return result
}
