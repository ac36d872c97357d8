package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vmrkv/CST-BookingService/internal/domain"
	scheduleRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/schedule"
	"github.com/vmrkv/CST-BookingService/internal/service/schedule/models"
	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// Service сервис управления расписаниями консультантов
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeekSchedule получает недельное расписание консультанта
func (s *Service) GetWeekSchedule(ctx context.Context, consultantID int64) (*models.WeekScheduleResponse, error) {
	s.logger.Info("GetWeekSchedule: consultant=%d", consultantID)

	if err := s.checkConsultant(ctx, consultantID, "GetWeekSchedule"); err != nil {
		return nil, err
	}

	templates, err := s.scheduleRepo.ListTemplatesByConsultant(ctx, consultantID)
	if err != nil {
		s.logger.Error("GetWeekSchedule: repository error for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: GetWeekSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplates(consultantID, templates), nil
}

// ReplaceDay полностью заменяет окна одного дня недели консультанта.
// Удаление старых окон и вставка новых выполняются в одной транзакции,
// чтобы читатели не увидели день без расписания. Пустой список окон
// делает день нерабочим
func (s *Service) ReplaceDay(ctx context.Context, consultantID int64, dayOfWeek int, req *models.ReplaceDayRequest) (*models.WeekScheduleResponse, error) {
	s.logger.Info("ReplaceDay: consultant=%d, day=%d, windows=%d", consultantID, dayOfWeek, len(req.Windows))

	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be 0..6", ErrInvalidInput)
	}

	if err := s.checkConsultant(ctx, consultantID, "ReplaceDay"); err != nil {
		return nil, err
	}

	templates, err := buildDayTemplates(consultantID, dayOfWeek, req.Windows)
	if err != nil {
		s.logger.Warn("ReplaceDay: validation failed for consultant=%d, day=%d: %v", consultantID, dayOfWeek, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.DeleteDayTemplates(txCtx, consultantID, dayOfWeek); err != nil {
			return fmt.Errorf("%w: ReplaceDay - delete templates: %v", ErrInternal, err)
		}
		if len(templates) == 0 {
			return nil
		}
		if err := s.scheduleRepo.InsertTemplates(txCtx, templates); err != nil {
			return fmt.Errorf("%w: ReplaceDay - insert templates: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReplaceDay: transaction failed for consultant=%d, day=%d: %v", consultantID, dayOfWeek, err)
		return nil, err
	}

	s.logger.Info("ReplaceDay: consultant=%d, day=%d replaced", consultantID, dayOfWeek)
	return s.GetWeekSchedule(ctx, consultantID)
}

// CopyDay копирует окна одного дня недели в другие дни.
// Каждый целевой день заменяется целиком; операция атомарна по всем
// целевым дням
func (s *Service) CopyDay(ctx context.Context, consultantID int64, req *models.CopyDayRequest) (*models.WeekScheduleResponse, error) {
	s.logger.Info("CopyDay: consultant=%d, source=%d, targets=%v", consultantID, req.SourceDay, req.TargetDays)

	if req.SourceDay < 0 || req.SourceDay > 6 {
		return nil, fmt.Errorf("%w: sourceDay must be 0..6", ErrInvalidInput)
	}
	if len(req.TargetDays) == 0 {
		return nil, fmt.Errorf("%w: targetDays is required", ErrInvalidInput)
	}
	seen := make(map[int]bool)
	for _, day := range req.TargetDays {
		if day < 0 || day > 6 {
			return nil, fmt.Errorf("%w: targetDays must be 0..6", ErrInvalidInput)
		}
		if day == req.SourceDay {
			return nil, fmt.Errorf("%w: targetDays must not include sourceDay", ErrInvalidInput)
		}
		if seen[day] {
			return nil, fmt.Errorf("%w: duplicate target day %d", ErrInvalidInput, day)
		}
		seen[day] = true
	}

	if err := s.checkConsultant(ctx, consultantID, "CopyDay"); err != nil {
		return nil, err
	}

	all, err := s.scheduleRepo.ListTemplatesByConsultant(ctx, consultantID)
	if err != nil {
		s.logger.Error("CopyDay: repository error for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: CopyDay - repository error: %v", ErrInternal, err)
	}

	source := make([]*domain.WeeklyTemplate, 0)
	for _, t := range all {
		if t.DayOfWeek == req.SourceDay {
			source = append(source, t)
		}
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, day := range req.TargetDays {
			if err := s.scheduleRepo.DeleteDayTemplates(txCtx, consultantID, day); err != nil {
				return fmt.Errorf("%w: CopyDay - delete templates for day %d: %v", ErrInternal, day, err)
			}

			if len(source) == 0 {
				continue
			}

			copies := make([]*domain.WeeklyTemplate, len(source))
			for i, t := range source {
				copies[i] = &domain.WeeklyTemplate{
					ConsultantID: consultantID,
					DayOfWeek:    day,
					StartTime:    t.StartTime,
					EndTime:      t.EndTime,
					MaxBookings:  t.MaxBookings,
					IsActive:     t.IsActive,
				}
			}

			if err := s.scheduleRepo.InsertTemplates(txCtx, copies); err != nil {
				return fmt.Errorf("%w: CopyDay - insert templates for day %d: %v", ErrInternal, day, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("CopyDay: transaction failed for consultant=%d: %v", consultantID, err)
		return nil, err
	}

	s.logger.Info("CopyDay: consultant=%d, copied day %d to %v", consultantID, req.SourceDay, req.TargetDays)
	return s.GetWeekSchedule(ctx, consultantID)
}

// CreateTimeOff создает отпуск консультанта
func (s *Service) CreateTimeOff(ctx context.Context, consultantID int64, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("CreateTimeOff: consultant=%d, %s..%s", consultantID, req.StartDate, req.EndDate)

	if err := s.checkConsultant(ctx, consultantID, "CreateTimeOff"); err != nil {
		return nil, err
	}

	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate: %v", ErrInvalidInput, err)
	}
	endDate, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate: %v", ErrInvalidInput, err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	created, err := s.scheduleRepo.CreateTimeOff(ctx, &domain.TimeOff{
		ConsultantID: consultantID,
		StartDate:    startDate,
		EndDate:      endDate,
		Reason:       req.Reason,
		IsActive:     true,
	})
	if err != nil {
		s.logger.Error("CreateTimeOff: repository error for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: CreateTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTimeOff: created id=%d for consultant=%d", created.ID, consultantID)
	return models.FromDomainTimeOff(created), nil
}

// CreateBreak создает перерыв консультанта: еженедельный (dayOfWeek)
// или разовый (date)
func (s *Service) CreateBreak(ctx context.Context, consultantID int64, req *models.CreateBreakRequest) (*models.BreakResponse, error) {
	s.logger.Info("CreateBreak: consultant=%d, dayOfWeek=%v, date=%v", consultantID, req.DayOfWeek, req.Date)

	if err := s.checkConsultant(ctx, consultantID, "CreateBreak"); err != nil {
		return nil, err
	}

	if (req.DayOfWeek == nil) == (req.Date == nil) {
		return nil, fmt.Errorf("%w: exactly one of dayOfWeek and date is required", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	brk := &domain.Break{
		ConsultantID: consultantID,
		StartTime:    startTime,
		EndTime:      endTime,
		IsActive:     true,
	}

	if req.DayOfWeek != nil {
		if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: dayOfWeek must be 0..6", ErrInvalidInput)
		}
		brk.DayOfWeek = req.DayOfWeek
	} else {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
		}
		brk.Date = &date
	}

	created, err := s.scheduleRepo.CreateBreak(ctx, brk)
	if err != nil {
		s.logger.Error("CreateBreak: repository error for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: CreateBreak - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBreak: created id=%d for consultant=%d", created.ID, consultantID)
	return models.FromDomainBreak(created), nil
}

// checkConsultant проверяет, что консультант существует и активен
func (s *Service) checkConsultant(ctx context.Context, consultantID int64, op string) error {
	if consultantID <= 0 {
		return fmt.Errorf("%w: consultantId must be positive", ErrInvalidInput)
	}

	if _, err := s.scheduleRepo.GetActiveConsultantByID(ctx, consultantID); err != nil {
		if errors.Is(err, scheduleRepo.ErrConsultantNotFound) {
			s.logger.Warn("%s: consultant id=%d not found", op, consultantID)
			return ErrConsultantNotFound
		}
		s.logger.Error("%s: failed to get consultant id=%d: %v", op, consultantID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return nil
}

// buildDayTemplates валидирует окна и строит domain шаблоны одного дня
func buildDayTemplates(consultantID int64, dayOfWeek int, windows []models.TemplateWindow) ([]*domain.WeeklyTemplate, error) {
	templates := make([]*domain.WeeklyTemplate, 0, len(windows))

	for _, w := range windows {
		startTime, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startTime %q: %v", ErrInvalidInput, w.StartTime, err)
		}
		endTime, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid endTime %q: %v", ErrInvalidInput, w.EndTime, err)
		}
		if !startTime.IsBefore(endTime) {
			return nil, fmt.Errorf("%w: window %s-%s: startTime must be before endTime", ErrInvalidInput, w.StartTime, w.EndTime)
		}
		if w.MaxBookings < domain.MinTemplateMaxBookings || w.MaxBookings > domain.MaxTemplateMaxBookings {
			return nil, fmt.Errorf("%w: maxBookings must be %d..%d",
				ErrInvalidInput, domain.MinTemplateMaxBookings, domain.MaxTemplateMaxBookings)
		}

		templates = append(templates, &domain.WeeklyTemplate{
			ConsultantID: consultantID,
			DayOfWeek:    dayOfWeek,
			StartTime:    startTime,
			EndTime:      endTime,
			MaxBookings:  w.MaxBookings,
			IsActive:     true,
		})
	}

	// Окна одного дня не должны пересекаться; соприкасающиеся допустимы
	sorted := make([]*domain.WeeklyTemplate, len(templates))
	copy(sorted, templates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.IsBefore(sorted[j].StartTime)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartTime.IsBefore(sorted[i-1].EndTime) {
			return nil, fmt.Errorf("%w: %s-%s and %s-%s",
				ErrWindowsOverlap,
				sorted[i-1].StartTime, sorted[i-1].EndTime,
				sorted[i].StartTime, sorted[i].EndTime)
		}
	}

	return templates, nil
}
