package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmrkv/CST-BookingService/internal/domain"
	catalogRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/catalog"
	"github.com/vmrkv/CST-BookingService/pkg/ptr"
	"github.com/vmrkv/CST-BookingService/pkg/types"
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

func (f *fakeScheduleRepo) ListTimeOffForDate(_ context.Context, _ time.Time) ([]*domain.TimeOff, error) {
	return f.timeOff, nil
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

// Вторник
var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// Понедельник следующей недели
var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type fixture struct {
	useCase  *UseCase
	catalog  *fakeCatalogRepo
	schedule *fakeScheduleRepo
	bookings *fakeBookingRepo
}

// newFixture: рабочий день 09:00-12:00, услуга с полной длительностью
// 60 минут (50 + 5 + 5), один консультант с двумя местами в слоте.
// Сетка: 09:00, 10:00, 11:00.
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
			{ID: 1, ConsultantID: 1, DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "12:00", MaxBookings: 2, IsActive: true},
		},
	}

	bookings := &fakeBookingRepo{}

	uc := NewUseCase(catalog, schedule, bookings, Settings{
		OpenTime:                "09:00",
		CloseTime:               "12:00",
		Location:                time.UTC,
		AdvanceBookingDays:      30,
		MinBookingNoticeMinutes: 60,
	}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return &fixture{useCase: uc, catalog: catalog, schedule: schedule, bookings: bookings}
}

// --- тесты ---

func TestGetAvailableSlots_FullGrid(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ServiceID)
	assert.Equal(t, "Strategy Session", resp.ServiceName)
	assert.Equal(t, 50, resp.DurationMinutes, "в ответе чистая длительность консультации")

	require.Len(t, resp.Slots, 3)
	for i, want := range []types.TimeString{"09:00", "10:00", "11:00"} {
		assert.Equal(t, want, resp.Slots[i].StartTime)
		assert.Equal(t, 60, resp.Slots[i].DurationMinutes, "в слоте полная длительность с буферами")
		assert.True(t, resp.Slots[i].Available)
		assert.Equal(t, 2, resp.Slots[i].TotalCapacity)
	}
}

func TestGetAvailableSlots_OccupiedSlotStaysInList(t *testing.T) {
	f := newFixture()
	f.bookings.bookings = []*domain.Booking{
		{
			ConsultantID:    ptr.Ptr(int64(1)),
			ScheduledDate:   testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
		{
			ConsultantID:    ptr.Ptr(int64(1)),
			ScheduledDate:   testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			Status:          domain.StatusPending,
		},
	}

	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// Занятый слот остаётся в списке с Available=false
	require.Len(t, resp.Slots, 3)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.Equal(t, 0, resp.Slots[1].TotalCapacity)
	assert.Empty(t, resp.Slots[1].Consultants)
	assert.True(t, resp.Slots[2].Available)
}

func TestGetAvailableSlots_SameDayNoticeFilter(t *testing.T) {
	f := newFixture()
	f.schedule.templates = append(f.schedule.templates, &domain.WeeklyTemplate{
		ID: 2, ConsultantID: 1, DayOfWeek: int(time.Tuesday),
		StartTime: "09:00", EndTime: "12:00", MaxBookings: 2, IsActive: true,
	})

	// Сегодня (вторник), now=09:00, порог 60 минут: слот 09:00 отсекается,
	// 10:00 ровно на пороге и остаётся
	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1, Date: testNow})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[1].StartTime)
}

func TestGetAvailableSlots_NonWorkingDay(t *testing.T) {
	f := newFixture()

	// Воскресенье: шаблонов нет, но сетка слотов всё равно возвращается
	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate.AddDate(0, 0, -1)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	for _, slot := range resp.Slots {
		assert.False(t, slot.Available)
		assert.Equal(t, 0, slot.TotalCapacity)
	}
}

func TestGetAvailableSlots_TimeOffZeroesDay(t *testing.T) {
	f := newFixture()
	f.schedule.timeOff = []*domain.TimeOff{{
		ConsultantID: 1,
		StartDate:    testDate,
		EndDate:      testDate,
		IsActive:     true,
	}}

	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.False(t, slot.Available)
	}
}

func TestGetAvailableSlots_BreakBlocksSlot(t *testing.T) {
	f := newFixture()
	f.schedule.breaks = []*domain.Break{{
		ConsultantID: 1,
		DayOfWeek:    ptr.Ptr(int(time.Monday)),
		StartTime:    "10:30",
		EndTime:      "11:30",
		IsActive:     true,
	}}

	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// Перерыв 10:30-11:30 пересекает слоты 10:00 и 11:00, но не 09:00
	require.Len(t, resp.Slots, 3)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.False(t, resp.Slots[2].Available)
}

func TestGetAvailableSlots_ServiceNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 999, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetAvailableSlots_DateValidation(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 1, Date: testNow.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.useCase.Execute(context.Background(), &Request{ServiceID: 1, Date: testNow.AddDate(0, 0, 31)})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestGetAvailableSlots_InputValidation(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.useCase.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
