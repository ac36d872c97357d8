package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmrkv/CST-BookingService/internal/domain"
	scheduleRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/schedule"
	"github.com/vmrkv/CST-BookingService/internal/service/schedule/models"
	"github.com/vmrkv/CST-BookingService/pkg/ptr"
)

// --- фейки зависимостей ---

type fakeScheduleRepo struct {
	consultants map[int64]*domain.Consultant
	templates   []*domain.WeeklyTemplate
	breaks      []*domain.Break
	timeOff     []*domain.TimeOff
	nextID      int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		consultants: map[int64]*domain.Consultant{
			1: {ID: 1, Name: "Anna", IsActive: true},
		},
	}
}

func (f *fakeScheduleRepo) GetActiveConsultantByID(_ context.Context, id int64) (*domain.Consultant, error) {
	c, ok := f.consultants[id]
	if !ok {
		return nil, scheduleRepo.ErrConsultantNotFound
	}
	return c, nil
}

func (f *fakeScheduleRepo) ListTemplatesByConsultant(_ context.Context, consultantID int64) ([]*domain.WeeklyTemplate, error) {
	var result []*domain.WeeklyTemplate
	for _, t := range f.templates {
		if t.ConsultantID == consultantID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) DeleteDayTemplates(_ context.Context, consultantID int64, dayOfWeek int) error {
	kept := f.templates[:0]
	for _, t := range f.templates {
		if t.ConsultantID != consultantID || t.DayOfWeek != dayOfWeek {
			kept = append(kept, t)
		}
	}
	f.templates = kept
	return nil
}

func (f *fakeScheduleRepo) InsertTemplates(_ context.Context, templates []*domain.WeeklyTemplate) error {
	for _, t := range templates {
		f.nextID++
		stored := *t
		stored.ID = f.nextID
		f.templates = append(f.templates, &stored)
	}
	return nil
}

func (f *fakeScheduleRepo) CreateBreak(_ context.Context, b *domain.Break) (*domain.Break, error) {
	f.nextID++
	stored := *b
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.breaks = append(f.breaks, &stored)
	return &stored, nil
}

func (f *fakeScheduleRepo) CreateTimeOff(_ context.Context, t *domain.TimeOff) (*domain.TimeOff, error) {
	f.nextID++
	stored := *t
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.timeOff = append(f.timeOff, &stored)
	return &stored, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeScheduleRepo) {
	repo := newFakeScheduleRepo()
	return NewService(repo, &fakeTxManager{}, nopLogger{}), repo
}

// --- тесты ---

func TestReplaceDay(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.ReplaceDay(context.Background(), 1, 1, &models.ReplaceDayRequest{
		Windows: []models.TemplateWindow{
			{StartTime: "09:00", EndTime: "13:00", MaxBookings: 2},
			{StartTime: "14:00", EndTime: "18:00", MaxBookings: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	monday := resp.Days[1]
	require.Len(t, monday.Windows, 2)
	assert.Equal(t, "09:00", monday.Windows[0].StartTime)
	assert.Equal(t, 2, monday.Windows[0].MaxBookings)
	assert.True(t, monday.Windows[0].IsActive)

	// Повторная замена вытесняет старые окна
	resp, err = svc.ReplaceDay(context.Background(), 1, 1, &models.ReplaceDayRequest{
		Windows: []models.TemplateWindow{
			{StartTime: "10:00", EndTime: "12:00", MaxBookings: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Days[1].Windows, 1)
	assert.Equal(t, "10:00", resp.Days[1].Windows[0].StartTime)
	assert.Len(t, repo.templates, 1)
}

func TestReplaceDay_EmptyWindowsMakesDayNonWorking(t *testing.T) {
	svc, _ := newService()

	_, err := svc.ReplaceDay(context.Background(), 1, 1, &models.ReplaceDayRequest{
		Windows: []models.TemplateWindow{{StartTime: "09:00", EndTime: "13:00", MaxBookings: 1}},
	})
	require.NoError(t, err)

	resp, err := svc.ReplaceDay(context.Background(), 1, 1, &models.ReplaceDayRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Days[1].Windows)
}

func TestReplaceDay_Validation(t *testing.T) {
	tests := []struct {
		name      string
		dayOfWeek int
		windows   []models.TemplateWindow
		wantErr   error
	}{
		{
			name:      "day out of range",
			dayOfWeek: 7,
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "start not before end",
			dayOfWeek: 1,
			windows:   []models.TemplateWindow{{StartTime: "13:00", EndTime: "13:00", MaxBookings: 1}},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "malformed time",
			dayOfWeek: 1,
			windows:   []models.TemplateWindow{{StartTime: "nine", EndTime: "13:00", MaxBookings: 1}},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "max bookings out of bounds",
			dayOfWeek: 1,
			windows:   []models.TemplateWindow{{StartTime: "09:00", EndTime: "13:00", MaxBookings: 51}},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "overlapping windows",
			dayOfWeek: 1,
			windows: []models.TemplateWindow{
				{StartTime: "09:00", EndTime: "13:00", MaxBookings: 1},
				{StartTime: "12:00", EndTime: "18:00", MaxBookings: 1},
			},
			wantErr: ErrWindowsOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			_, err := svc.ReplaceDay(context.Background(), 1, tt.dayOfWeek, &models.ReplaceDayRequest{Windows: tt.windows})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReplaceDay_TouchingWindowsAllowed(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.ReplaceDay(context.Background(), 1, 2, &models.ReplaceDayRequest{
		Windows: []models.TemplateWindow{
			{StartTime: "13:00", EndTime: "18:00", MaxBookings: 1},
			{StartTime: "09:00", EndTime: "13:00", MaxBookings: 1},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Days[2].Windows, 2)
}

func TestCopyDay(t *testing.T) {
	svc, repo := newService()

	_, err := svc.ReplaceDay(context.Background(), 1, 1, &models.ReplaceDayRequest{
		Windows: []models.TemplateWindow{
			{StartTime: "09:00", EndTime: "13:00", MaxBookings: 2},
		},
	})
	require.NoError(t, err)

	resp, err := svc.CopyDay(context.Background(), 1, &models.CopyDayRequest{
		SourceDay:  1,
		TargetDays: []int{2, 3, 4, 5},
	})
	require.NoError(t, err)

	for _, day := range []int{1, 2, 3, 4, 5} {
		require.Len(t, resp.Days[day].Windows, 1, "day %d", day)
		assert.Equal(t, "09:00", resp.Days[day].Windows[0].StartTime)
		assert.Equal(t, 2, resp.Days[day].Windows[0].MaxBookings)
	}
	assert.Empty(t, resp.Days[0].Windows)
	assert.Empty(t, resp.Days[6].Windows)
	assert.Len(t, repo.templates, 5)
}

func TestCopyDay_EmptySourceClearsTargets(t *testing.T) {
	svc, _ := newService()

	_, err := svc.ReplaceDay(context.Background(), 1, 2, &models.ReplaceDayRequest{
		Windows: []models.TemplateWindow{{StartTime: "09:00", EndTime: "13:00", MaxBookings: 1}},
	})
	require.NoError(t, err)

	// Копирование пустого дня очищает целевой день
	resp, err := svc.CopyDay(context.Background(), 1, &models.CopyDayRequest{
		SourceDay:  0,
		TargetDays: []int{2},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Days[2].Windows)
}

func TestCopyDay_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CopyDayRequest
	}{
		{name: "source out of range", req: models.CopyDayRequest{SourceDay: 9, TargetDays: []int{1}}},
		{name: "no targets", req: models.CopyDayRequest{SourceDay: 1}},
		{name: "target out of range", req: models.CopyDayRequest{SourceDay: 1, TargetDays: []int{8}}},
		{name: "target equals source", req: models.CopyDayRequest{SourceDay: 1, TargetDays: []int{1}}},
		{name: "duplicate target", req: models.CopyDayRequest{SourceDay: 1, TargetDays: []int{2, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			_, err := svc.CopyDay(context.Background(), 1, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateTimeOff(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.CreateTimeOff(context.Background(), 1, &models.CreateTimeOffRequest{
		StartDate: "2026-09-01",
		EndDate:   "2026-09-14",
		Reason:    ptr.Ptr("vacation"),
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "2026-09-01", resp.StartDate)
	assert.Equal(t, "2026-09-14", resp.EndDate)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "vacation", *resp.Reason)
}

func TestCreateTimeOff_SingleDay(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.CreateTimeOff(context.Background(), 1, &models.CreateTimeOffRequest{
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.StartDate, resp.EndDate)
}

func TestCreateTimeOff_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateTimeOffRequest
	}{
		{name: "end before start", req: models.CreateTimeOffRequest{StartDate: "2026-09-14", EndDate: "2026-09-01"}},
		{name: "malformed start", req: models.CreateTimeOffRequest{StartDate: "01.09.2026", EndDate: "2026-09-14"}},
		{name: "empty dates", req: models.CreateTimeOffRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			_, err := svc.CreateTimeOff(context.Background(), 1, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateBreak_Weekly(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.CreateBreak(context.Background(), 1, &models.CreateBreakRequest{
		DayOfWeek: ptr.Ptr(1),
		StartTime: "12:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	require.NotNil(t, resp.DayOfWeek)
	assert.Equal(t, 1, *resp.DayOfWeek)
	assert.Nil(t, resp.Date)
	assert.Equal(t, "12:00", resp.StartTime)
}

func TestCreateBreak_OneOff(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.CreateBreak(context.Background(), 1, &models.CreateBreakRequest{
		Date:      ptr.Ptr("2026-09-01"),
		StartTime: "15:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)

	assert.Nil(t, resp.DayOfWeek)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2026-09-01", *resp.Date)
}

func TestCreateBreak_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateBreakRequest
	}{
		{name: "neither day nor date", req: models.CreateBreakRequest{StartTime: "12:00", EndTime: "13:00"}},
		{
			name: "both day and date",
			req:  models.CreateBreakRequest{DayOfWeek: ptr.Ptr(1), Date: ptr.Ptr("2026-09-01"), StartTime: "12:00", EndTime: "13:00"},
		},
		{name: "day out of range", req: models.CreateBreakRequest{DayOfWeek: ptr.Ptr(7), StartTime: "12:00", EndTime: "13:00"}},
		{name: "malformed date", req: models.CreateBreakRequest{Date: ptr.Ptr("01.09.2026"), StartTime: "12:00", EndTime: "13:00"}},
		{name: "start not before end", req: models.CreateBreakRequest{DayOfWeek: ptr.Ptr(1), StartTime: "13:00", EndTime: "12:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			_, err := svc.CreateBreak(context.Background(), 1, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestScheduleService_ConsultantChecks(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetWeekSchedule(context.Background(), 99)
	assert.ErrorIs(t, err, ErrConsultantNotFound)

	_, err = svc.GetWeekSchedule(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ReplaceDay(context.Background(), 99, 1, &models.ReplaceDayRequest{})
	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestGetWeekSchedule_AlwaysSevenDays(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetWeekSchedule(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	for day, d := range resp.Days {
		assert.Equal(t, day, d.DayOfWeek)
		assert.NotNil(t, d.Windows)
	}
}
