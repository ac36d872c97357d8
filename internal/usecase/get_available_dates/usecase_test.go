package get_available_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmrkv/CST-BookingService/internal/domain"
	catalogRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/catalog"
	"github.com/vmrkv/CST-BookingService/pkg/ptr"
)

// --- фейки зависимостей ---

type fakeCatalogRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalogRepo) GetActiveByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeScheduleRepo struct {
	consultants []*domain.Consultant
	templates   []*domain.WeeklyTemplate
	breaks      []*domain.Break
	timeOff     []*domain.TimeOff
}

func (f *fakeScheduleRepo) ListActiveConsultants(_ context.Context) ([]*domain.Consultant, error) {
	return f.consultants, nil
}

func (f *fakeScheduleRepo) ListTemplatesForDay(_ context.Context, dayOfWeek int) ([]*domain.WeeklyTemplate, error) {
	var result []*domain.WeeklyTemplate
	for _, t := range f.templates {
		if t.DayOfWeek == dayOfWeek {
			result = append(result, t)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) ListBreaksForDate(_ context.Context, _ time.Time) ([]*domain.Break, error) {
	return f.breaks, nil
}

func (f *fakeScheduleRepo) ListTimeOffForDate(_ context.Context, date time.Time) ([]*domain.TimeOff, error) {
	var result []*domain.TimeOff
	for _, t := range f.timeOff {
		if t.Covers(date) {
			result = append(result, t)
		}
	}
	return result, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListOccupyingForDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.ScheduledDate.Equal(date) && b.OccupiesCapacity() {
			result = append(result, b)
		}
	}
	return result, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- фикстура ---

// Понедельник, 12:00
var testNow = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

type fixture struct {
	useCase  *UseCase
	catalog  *fakeCatalogRepo
	schedule *fakeScheduleRepo
	bookings *fakeBookingRepo
}

// newFixture: рабочий день 09:00-12:00, услуга с полной длительностью
// 60 минут, один консультант работает только по понедельникам.
func newFixture() *fixture {
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.Service{
			1: {
				ID:                  1,
				Name:                "Strategy Session",
				DurationMinutes:     50,
				BufferBeforeMinutes: ptr.Ptr(5),
				BufferAfterMinutes:  ptr.Ptr(5),
				IsActive:            true,
			},
		},
	}

	schedule := &fakeScheduleRepo{
		consultants: []*domain.Consultant{{ID: 1, Name: "Anna", IsActive: true}},
		templates: []*domain.WeeklyTemplate{
			{ID: 1, ConsultantID: 1, DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "12:00", MaxBookings: 1, IsActive: true},
		},
	}

	bookings := &fakeBookingRepo{}

	uc := NewUseCase(catalog, schedule, bookings, Settings{
		OpenTime:                "09:00",
		CloseTime:               "12:00",
		Location:                time.UTC,
		AdvanceBookingDays:      14,
		MinBookingNoticeMinutes: 60,
	}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return &fixture{useCase: uc, catalog: catalog, schedule: schedule, bookings: bookings}
}

// --- тесты ---

func TestGetAvailableDates_Calendar(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1})
	require.NoError(t, err)

	// Горизонт из настроек: сегодня плюс 14 дней включительно, с пустыми
	// датами. Последняя дата совпадает с пределом advanceBookingDays,
	// бронирование на неё ещё допускается
	require.Len(t, resp.Dates, 15)
	assert.True(t, resp.Dates[0].Date.Equal(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
	assert.True(t, resp.Dates[14].Date.Equal(time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)))

	for _, d := range resp.Dates {
		if d.Date.Weekday() == time.Monday && !d.Date.Equal(resp.Dates[0].Date) {
			// Будущий понедельник: вся сетка 09:00-12:00 свободна
			assert.Equal(t, 3, d.AvailableSlots, "date %s", d.Date.Format(domain.DateFormat))
		} else if d.Date.Weekday() != time.Monday {
			assert.Equal(t, 0, d.AvailableSlots, "date %s", d.Date.Format(domain.DateFormat))
		}
	}

	// Сегодня (понедельник, now=12:00): все слоты уже отсечены порогом,
	// первая доступная дата — понедельник через неделю
	assert.Equal(t, 0, resp.Dates[0].AvailableSlots)
	require.NotNil(t, resp.FirstAvailableDate)
	assert.True(t, resp.FirstAvailableDate.Equal(time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC)))
}

func TestGetAvailableDates_HorizonClamping(t *testing.T) {
	tests := []struct {
		name      string
		daysAhead int
		wantDates int
	}{
		{name: "zero resolves to settings horizon", daysAhead: 0, wantDates: 15},
		{name: "explicit value below horizon", daysAhead: 7, wantDates: 8},
		{name: "clamped to settings horizon", daysAhead: 30, wantDates: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1, DaysAhead: tt.daysAhead})
			require.NoError(t, err)
			assert.Len(t, resp.Dates, tt.wantDates)
		})
	}
}

func TestGetAvailableDates_HardCapOnHorizon(t *testing.T) {
	f := newFixture()

	// Без ограничения в настройках действует жёсткий предел запроса
	f.useCase.settings.AdvanceBookingDays = 0

	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1, DaysAhead: 500})
	require.NoError(t, err)
	assert.Len(t, resp.Dates, domain.MaxDaysAheadQuery+1)
}

func TestGetAvailableDates_BookingsReduceCount(t *testing.T) {
	f := newFixture()

	nextMonday := time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC)
	f.bookings.bookings = []*domain.Booking{{
		ConsultantID:    ptr.Ptr(int64(1)),
		ScheduledDate:   nextMonday,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}

	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1})
	require.NoError(t, err)

	// Слот 10:00 занят единственным консультантом, остаются 09:00 и 11:00
	assert.Equal(t, 2, resp.Dates[7].AvailableSlots)
}

func TestGetAvailableDates_TimeOffEmptiesDates(t *testing.T) {
	f := newFixture()
	f.schedule.timeOff = []*domain.TimeOff{{
		ConsultantID: 1,
		StartDate:    time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}}

	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1})
	require.NoError(t, err)

	// Отпуск накрывает понедельник 23-го, первый доступный сдвигается
	// на 30-е, последнюю дату горизонта
	assert.Equal(t, 0, resp.Dates[7].AvailableSlots)
	require.NotNil(t, resp.FirstAvailableDate)
	assert.True(t, resp.FirstAvailableDate.Equal(time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)))
}

func TestGetAvailableDates_ServiceNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 42})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetAvailableDates_InputValidation(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.useCase.Execute(context.Background(), &Request{ServiceID: 1, DaysAhead: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
