package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmrkv/CST-BookingService/internal/api/handlers"
	createBooking "github.com/vmrkv/CST-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, useCase *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(useCase, nil, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestCreateBookingHandler_Created(t *testing.T) {
	useCase := &fakeUseCase{
		resp: &createBooking.Response{
			ID:                 1,
			Reference:          "7b6f3a90-0000-0000-0000-000000000000",
			ServiceID:          1,
			ConsultantID:       2,
			Date:               time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			StartTime:          "10:00",
			DurationMinutes:    60,
			Status:             "confirmed",
			PaymentStatus:      "not_required",
			ServiceName:        "Strategy Session",
			AssignmentStrategy: "optimal",
			AssignmentReason:   "least booked on 2026-09-15 (0 bookings that day)",
			ConfidenceScore:    80,
			CustomerName:       "Ivan Petrov",
			CustomerEmail:      "ivan@example.com",
			CreatedAt:          time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		},
	}

	rec := doRequest(t, useCase, `{
		"serviceId": 1,
		"date": "2026-09-15",
		"startTime": "10:00",
		"customerName": "Ivan Petrov",
		"customerEmail": "ivan@example.com"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, int64(2), resp.ConsultantID)
	assert.Equal(t, "optimal", resp.AssignmentStrategy)
	assert.Equal(t, 80, resp.ConfidenceScore)

	// Дата и время запроса распарсены в модель use case
	require.NotNil(t, useCase.got)
	assert.Equal(t, "2026-09-15", useCase.got.Date.Format("2006-01-02"))
}

func TestCreateBookingHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot not available", err: createBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "consultant not available", err: createBooking.ErrConsultantNotAvailable, wantStatus: http.StatusConflict},
		{name: "service not found", err: createBooking.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid date", err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "date too far", err: createBooking.ErrDateTooFarInFuture, wantStatus: http.StatusBadRequest},
		{name: "off grid", err: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{name: "too late", err: createBooking.ErrTooLateToBook, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, `{
				"serviceId": 1,
				"date": "2026-09-15",
				"startTime": "10:00",
				"customerName": "Ivan Petrov",
				"customerEmail": "ivan@example.com"
			}`)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestCreateBookingHandler_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "not json"},
		{name: "unknown field", body: `{"serviceId": 1, "bogus": true}`},
		{name: "bad date format", body: `{"serviceId": 1, "date": "15.09.2026", "startTime": "10:00"}`},
		{name: "bad time format", body: `{"serviceId": 1, "date": "2026-09-15", "startTime": "ten"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &fakeUseCase{}
			rec := doRequest(t, useCase, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, useCase.got, "use case не должен вызываться")
		})
	}
}
