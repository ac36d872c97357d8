package create_booking

import (
	"context"
	"errors"
	"sync"
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
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.bookings = append(f.bookings, &stored)
	return &stored, nil
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

func (f *fakeBookingRepo) CountActiveByConsultant(_ context.Context) (map[int64]int, error) {
	counts := make(map[int64]int)
	for _, b := range f.bookings {
		if b.ConsultantID != nil && b.OccupiesCapacity() {
			counts[*b.ConsultantID]++
		}
	}
	return counts, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// serialTxManager моделирует сериализуемую изоляцию поверх фейкового
// хранилища: транзакции выполняются строго по одной
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
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

// Вторник за шесть дней до даты бронирования
var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// Понедельник
var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type fixture struct {
	useCase  *UseCase
	catalog  *fakeCatalogRepo
	schedule *fakeScheduleRepo
	bookings *fakeBookingRepo
}

// newFixture собирает use case с двумя консультантами, работающими
// в понедельник 08:00-18:00, и услугой с полной длительностью 60 минут
// (50 консультация + 5 + 5 буферы). Сетка слотов почасовая.
func newFixture() *fixture {
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.Service{
			1: {
				ID:                  1,
				Name:                "Strategy Session",
				DurationMinutes:     50,
				BufferBeforeMinutes: ptr.Ptr(5),
				BufferAfterMinutes:  ptr.Ptr(5),
				Price:               150,
				IsActive:            true,
			},
		},
	}

	schedule := &fakeScheduleRepo{
		consultants: []*domain.Consultant{
			{ID: 1, Name: "Anna", IsActive: true},
			{ID: 2, Name: "Boris", IsActive: true},
		},
		templates: []*domain.WeeklyTemplate{
			{ID: 1, ConsultantID: 1, DayOfWeek: int(time.Monday), StartTime: "08:00", EndTime: "18:00", MaxBookings: 1, IsActive: true},
			{ID: 2, ConsultantID: 2, DayOfWeek: int(time.Monday), StartTime: "08:00", EndTime: "18:00", MaxBookings: 1, IsActive: true},
		},
	}

	bookings := &fakeBookingRepo{}

	uc := NewUseCase(catalog, schedule, bookings, &fakeTxManager{}, Settings{
		OpenTime:                "08:00",
		CloseTime:               "18:00",
		Location:                time.UTC,
		AdvanceBookingDays:      30,
		MinBookingNoticeMinutes: 60,
		DefaultStrategy:         "optimal",
	}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	uc.rnd = newLockedRand(1)

	return &fixture{useCase: uc, catalog: catalog, schedule: schedule, bookings: bookings}
}

func validRequest() *Request {
	return &Request{
		ServiceID:     1,
		Date:          testDate,
		StartTime:     "10:00",
		CustomerName:  "Ivan Petrov",
		CustomerEmail: "ivan@example.com",
	}
}

// --- тесты ---

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, int64(1), resp.ServiceID)
	assert.Contains(t, []int64{1, 2}, resp.ConsultantID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes, "снапшот полной длительности с буферами")
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentNotRequired), resp.PaymentStatus)
	assert.Equal(t, "Strategy Session", resp.ServiceName)
	assert.Equal(t, "optimal", resp.AssignmentStrategy)
	assert.NotEmpty(t, resp.AssignmentReason)
	assert.GreaterOrEqual(t, resp.ConfidenceScore, 30)

	require.Len(t, f.bookings.bookings, 1)
	stored := f.bookings.bookings[0]
	assert.Equal(t, resp.Reference, stored.Reference)
	assert.Equal(t, 60, stored.DurationMinutes)
}

func TestCreateBooking_PaidServiceStartsPending(t *testing.T) {
	f := newFixture()
	f.catalog.services[1].RequiresPayment = true

	resp, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
}

func TestCreateBooking_ServiceNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ServiceID = 999

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateBooking_CapacityExhausted(t *testing.T) {
	f := newFixture()

	// Ёмкость слота: два консультанта по одному месту
	first, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.ConsultantID, second.ConsultantID)

	// Третий запрос на тот же слот — мест не осталось
	_, err = f.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Соседний слот не затронут
	req := validRequest()
	req.StartTime = "11:00"
	_, err = f.useCase.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateBooking_OptimalSpreadsLoad(t *testing.T) {
	f := newFixture()

	req1 := validRequest()
	req1.StartTime = "10:00"
	first, err := f.useCase.Execute(context.Background(), req1)
	require.NoError(t, err)

	// При равной загрузке optimal берёт меньший ID
	assert.Equal(t, int64(1), first.ConsultantID)

	req2 := validRequest()
	req2.StartTime = "11:00"
	second, err := f.useCase.Execute(context.Background(), req2)
	require.NoError(t, err)

	// Второе бронирование уходит менее загруженному консультанту
	assert.Equal(t, int64(2), second.ConsultantID)
}

func TestCreateBooking_SpecificConsultant(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Strategy = "specific"
	req.PreferredConsultantID = ptr.Ptr(int64(2))

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ConsultantID)
	assert.Equal(t, "specific", resp.AssignmentStrategy)
}

func TestCreateBooking_SpecificConsultantBusy(t *testing.T) {
	f := newFixture()

	// Занимаем единственное место консультанта 2 в слоте
	setup := validRequest()
	setup.Strategy = "specific"
	setup.PreferredConsultantID = ptr.Ptr(int64(2))
	_, err := f.useCase.Execute(context.Background(), setup)
	require.NoError(t, err)

	// Повторный запрос на него же: ошибка, fallback на консультанта 1 не делается
	req := validRequest()
	req.Strategy = "specific"
	req.PreferredConsultantID = ptr.Ptr(int64(2))

	_, err = f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrConsultantNotAvailable)
}

func TestCreateBooking_DateValidation(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{name: "past date", date: testNow.AddDate(0, 0, -1), wantErr: ErrInvalidDate},
		{name: "beyond advance horizon", date: testNow.AddDate(0, 0, 31), wantErr: ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			req.Date = tt.date

			_, err := f.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBooking_SameDayNotice(t *testing.T) {
	f := newFixture()
	f.schedule.templates = append(f.schedule.templates, &domain.WeeklyTemplate{
		ID: 3, ConsultantID: 1, DayOfWeek: int(time.Tuesday),
		StartTime: "08:00", EndTime: "18:00", MaxBookings: 1, IsActive: true,
	})

	// Сегодняшний день (вторник): now=09:00, порог 60 минут
	req := validRequest()
	req.Date = testNow

	req.StartTime = "09:00"
	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// 10:00 ровно на пороге now+60 — проходит
	req.StartTime = "10:00"
	_, err = f.useCase.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateBooking_OffGridStartTime(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = "10:30"

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestCreateBooking_InputValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero service id", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "half past ten" }},
		{name: "empty customer name", mutate: func(r *Request) { r.CustomerName = "  " }},
		{name: "empty customer email", mutate: func(r *Request) { r.CustomerEmail = "" }},
		{name: "email without at sign", mutate: func(r *Request) { r.CustomerEmail = "ivan.example.com" }},
		{name: "unknown strategy", mutate: func(r *Request) { r.Strategy = "clever" }},
		{name: "specific without consultant", mutate: func(r *Request) { r.Strategy = "specific" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateBooking_NonWorkingDay(t *testing.T) {
	f := newFixture()

	// Воскресенье: шаблонов нет, ёмкости нет
	req := validRequest()
	req.Date = testDate.AddDate(0, 0, -1)

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBooking_ParallelCommitsOnLastSlot(t *testing.T) {
	f := newFixture()

	// Один консультант с одним местом в слоте, транзакции сериализуются
	f.schedule.consultants = f.schedule.consultants[:1]
	f.schedule.templates = f.schedule.templates[:1]
	f.useCase.txManager = &serialTxManager{}

	const workers = 8
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.useCase.Execute(context.Background(), validRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	// Ровно один запрос успевает занять место, остальные получают отказ
	var success, denied int
	for err := range results {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrSlotNotAvailable):
			denied++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, denied)
	assert.Len(t, f.bookings.bookings, 1)
}

func TestCreateBooking_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture()
	f.schedule.consultants = f.schedule.consultants[:1]
	f.schedule.templates = f.schedule.templates[:1]

	resp, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Отмена освобождает место
	for _, b := range f.bookings.bookings {
		if b.ID == resp.ID {
			b.Status = domain.StatusCancelled
		}
	}

	_, err = f.useCase.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}
