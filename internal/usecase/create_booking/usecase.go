package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vmrkv/CST-BookingService/internal/availability"
	"github.com/vmrkv/CST-BookingService/internal/domain"
	catalogRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/catalog"
	"github.com/vmrkv/CST-BookingService/pkg/ptr"
	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// UseCase use case для создания бронирования с назначением консультанта
type UseCase struct {
	catalogRepo  CatalogRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	settings     Settings
	timeProvider TimeProvider
	rnd          *lockedRand
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		rnd:          newLockedRand(time.Now().UnixNano()),
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка ёмкости, выбор консультанта и вставка выполняются в одной
// сериализуемой транзакции с блокировкой бронирований даты (FOR UPDATE),
// поэтому два конкурентных запроса на последнее место не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s, strategy=%q",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Strategy)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Стратегия: из запроса, иначе из настроек сервиса, иначе дефолт
	strategy := domain.DefaultStrategy
	if req.Strategy != "" {
		strategy, _ = domain.ParseAssignmentStrategy(req.Strategy)
	} else if s, ok := domain.ParseAssignmentStrategy(uc.settings.DefaultStrategy); ok {
		strategy = s
	}

	// 2. Получаем текущее время в часовом поясе бизнеса
	now := uc.timeProvider.Now().In(uc.settings.Location)

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetActiveByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	totalDuration := service.TotalDurationMinutes()

	// 4. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req.Date, now, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 5. Время начала должно лежать на сетке слотов рабочего дня
	slotTimes, err := availability.GenerateSlotTimes(uc.settings.OpenTime, uc.settings.CloseTime, totalDuration)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}
	if err := validateSlotGrid(req.StartTime, slotTimes); err != nil {
		uc.logger.Warn("CreateBooking: start time %s is off the slot grid", req.StartTime)
		return nil, err
	}

	// 6. Валидация минимального времени до бронирования
	if err := validateBookingTime(req.Date, req.StartTime, now, uc.settings.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking
	var chosen *assignment

	// 7. Проверка ёмкости, назначение и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокируем занимающие ёмкость бронирования даты (FOR UPDATE)
		bookings, err := uc.bookingRepo.ListOccupyingForDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		// 7.2. Загружаем расписания внутри транзакции
		schedule, err := uc.loadDaySchedule(txCtx, req.Date, bookings)
		if err != nil {
			return err
		}

		// 7.3. Строим кандидатов: консультанты со свободной ёмкостью в слоте
		candidates, err := uc.buildCandidates(txCtx, schedule, req.StartTime, totalDuration)
		if err != nil {
			return err
		}

		if len(candidates) == 0 {
			uc.logger.Warn("CreateBooking: no capacity left for %s %s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 7.4. Выбираем консультанта по стратегии
		chosen, err = pickConsultant(strategy, candidates, req.PreferredConsultantID, req.Date, uc.rnd)
		if err != nil {
			uc.logger.Warn("CreateBooking: assignment failed: %v", err)
			return err
		}

		uc.logger.Info("CreateBooking: assigned consultant=%d (%s, confidence=%d)",
			chosen.consultantID, chosen.reason, chosen.confidence)

		// 7.5. Статусы зависят от того, требует ли услуга оплаты
		status := domain.StatusConfirmed
		paymentStatus := domain.PaymentNotRequired
		if service.RequiresPayment {
			status = domain.StatusPending
			paymentStatus = domain.PaymentPending
		}

		// 7.6. Создаем бронирование со снапшотом данных услуги
		booking := &domain.Booking{
			Reference:          uuid.NewString(),
			ServiceID:          req.ServiceID,
			ConsultantID:       ptr.Ptr(chosen.consultantID),
			ScheduledDate:      req.Date,
			StartTime:          req.StartTime,
			DurationMinutes:    totalDuration,
			Status:             status,
			PaymentStatus:      paymentStatus,
			CustomerName:       req.CustomerName,
			CustomerEmail:      req.CustomerEmail,
			CustomerPhone:      req.CustomerPhone,
			CustomerCompany:    req.CustomerCompany,
			ServiceName:        service.Name,
			ServicePrice:       service.Price,
			Notes:              req.Notes,
			AssignmentStrategy: string(strategy),
			AssignmentReason:   ptr.Ptr(chosen.reason),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	return &Response{
		ID:                 result.ID,
		Reference:          result.Reference,
		ServiceID:          result.ServiceID,
		ConsultantID:       *result.ConsultantID,
		Date:               result.ScheduledDate,
		StartTime:          result.StartTime,
		DurationMinutes:    result.DurationMinutes,
		Status:             string(result.Status),
		PaymentStatus:      string(result.PaymentStatus),
		ServiceName:        result.ServiceName,
		ServicePrice:       result.ServicePrice,
		AssignmentStrategy: result.AssignmentStrategy,
		AssignmentReason:   chosen.reason,
		ConfidenceScore:    chosen.confidence,
		CustomerName:       result.CustomerName,
		CustomerEmail:      result.CustomerEmail,
		Notes:              result.Notes,
		CreatedAt:          result.CreatedAt,
	}, nil
}

// loadDaySchedule загружает расписания консультантов на дату запроса
func (uc *UseCase) loadDaySchedule(ctx context.Context, date time.Time, bookings []*domain.Booking) (*availability.DaySchedule, error) {
	consultants, err := uc.scheduleRepo.ListActiveConsultants(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list consultants: %v", err)
		return nil, fmt.Errorf("%w: failed to list consultants: %v", ErrInternal, err)
	}

	templates, err := uc.scheduleRepo.ListTemplatesForDay(ctx, int(date.Weekday()))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list templates: %v", err)
		return nil, fmt.Errorf("%w: failed to list templates: %v", ErrInternal, err)
	}

	breaks, err := uc.scheduleRepo.ListBreaksForDate(ctx, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list breaks: %v", err)
		return nil, fmt.Errorf("%w: failed to list breaks: %v", ErrInternal, err)
	}

	timeOff, err := uc.scheduleRepo.ListTimeOffForDate(ctx, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list time off: %v", err)
		return nil, fmt.Errorf("%w: failed to list time off: %v", ErrInternal, err)
	}

	return availability.NewDaySchedule(date, consultants, templates, breaks, timeOff, bookings), nil
}

// buildCandidates собирает консультантов со свободной ёмкостью в слоте
// вместе с их дневной и общей загрузкой для стратегий назначения
func (uc *UseCase) buildCandidates(
	ctx context.Context,
	schedule *availability.DaySchedule,
	start types.TimeString,
	totalDuration int,
) ([]candidate, error) {
	totalLoads, err := uc.bookingRepo.CountActiveByConsultant(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count consultant loads: %v", err)
		return nil, fmt.Errorf("%w: failed to count consultant loads: %v", ErrInternal, err)
	}

	candidates := make([]candidate, 0, len(schedule.Consultants))
	for _, c := range schedule.Consultants {
		remaining := schedule.RemainingCapacity(c.ID, start, totalDuration)
		if remaining < 1 {
			continue
		}

		candidates = append(candidates, candidate{
			consultantID: c.ID,
			remaining:    remaining,
			dayLoad:      len(schedule.Bookings[c.ID]),
			totalLoad:    totalLoads[c.ID],
		})
	}

	return candidates, nil
}
