package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmrkv/CST-BookingService/internal/availability"
	"github.com/vmrkv/CST-BookingService/internal/domain"
	catalogRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/catalog"
	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// UseCase use case для календаря доступности: сколько свободных слотов
// на каждую дату горизонта бронирования
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

// Execute выполняет use case получения календаря доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: service=%d, daysAhead=%d", req.ServiceID, req.DaysAhead)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем горизонт: запрошенный, но не дальше advanceBookingDays
	daysAhead := req.DaysAhead
	if daysAhead == 0 {
		daysAhead = uc.settings.AdvanceBookingDays
	}
	if daysAhead > domain.MaxDaysAheadQuery {
		daysAhead = domain.MaxDaysAheadQuery
	}
	if uc.settings.AdvanceBookingDays > 0 && daysAhead > uc.settings.AdvanceBookingDays {
		daysAhead = uc.settings.AdvanceBookingDays
	}

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetActiveByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableDates: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	totalDuration := service.TotalDurationMinutes()

	// 4. Генерируем общую сетку слотов, она одинакова для всех дат
	slotTimes, err := availability.GenerateSlotTimes(uc.settings.OpenTime, uc.settings.CloseTime, totalDuration)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 5. Ростер консультантов один на весь горизонт
	consultants, err := uc.scheduleRepo.ListActiveConsultants(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list consultants: %v", err)
		return nil, fmt.Errorf("%w: failed to list consultants: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(uc.settings.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// 6. Считаем доступность на каждую дату горизонта.
	// Горизонт включает дату today+daysAhead: бронирование на неё
	// ещё проходит проверку advanceBookingDays, значит календарь
	// обязан её показывать
	dates := make([]AvailableDate, 0, daysAhead+1)
	var firstAvailable *time.Time

	for i := 0; i <= daysAhead; i++ {
		date := today.AddDate(0, 0, i)

		count, err := uc.countForDate(ctx, date, now, consultants, slotTimes, totalDuration)
		if err != nil {
			return nil, err
		}

		dates = append(dates, AvailableDate{Date: date, AvailableSlots: count})

		if count > 0 && firstAvailable == nil {
			d := date
			firstAvailable = &d
		}
	}

	uc.logger.Info("GetAvailableDates: service=%d, horizon=%d days, first available=%v",
		req.ServiceID, daysAhead, firstAvailable)

	return &Response{
		ServiceID:          service.ID,
		FirstAvailableDate: firstAvailable,
		Dates:              dates,
	}, nil
}

// countForDate считает количество доступных слотов на одну дату
func (uc *UseCase) countForDate(
	ctx context.Context,
	date time.Time,
	now time.Time,
	consultants []*domain.Consultant,
	slotTimes []types.TimeString,
	totalDuration int,
) (int, error) {
	// На сегодня действует фильтр минимального времени до бронирования
	times := slotTimes
	if isSameDay(date, now) {
		currentTime := types.NewTimeString(now)
		minAllowed, err := currentTime.AddMinutes(uc.settings.MinBookingNoticeMinutes)
		if err != nil {
			return 0, nil
		}

		times = make([]types.TimeString, 0, len(slotTimes))
		for _, t := range slotTimes {
			if !t.IsBefore(minAllowed) {
				times = append(times, t)
			}
		}
	}

	if len(times) == 0 {
		return 0, nil
	}

	templates, err := uc.scheduleRepo.ListTemplatesForDay(ctx, int(date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list templates for %s: %v", date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: failed to list templates: %v", ErrInternal, err)
	}

	// Без единого шаблона на этот день недели дата заведомо пуста
	if len(templates) == 0 {
		return 0, nil
	}

	breaks, err := uc.scheduleRepo.ListBreaksForDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list breaks for %s: %v", date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: failed to list breaks: %v", ErrInternal, err)
	}

	timeOff, err := uc.scheduleRepo.ListTimeOffForDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list time off for %s: %v", date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: failed to list time off: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListOccupyingForDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list bookings for %s: %v", date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	schedule := availability.NewDaySchedule(date, consultants, templates, breaks, timeOff, bookings)

	return schedule.CountAvailable(times, totalDuration), nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
