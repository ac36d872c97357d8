package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingsService "github.com/vmrkv/CST-BookingService/internal/service/bookings"
	"github.com/vmrkv/CST-BookingService/internal/service/bookings/models"
)

type fakeService struct {
	resp *models.BookingResponse
	err  error
}

func (f *fakeService) GetByID(_ context.Context, _ int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, service *fakeService, path string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(service, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetBookingHandler_OK(t *testing.T) {
	service := &fakeService{
		resp: &models.BookingResponse{
			ID:            5,
			Reference:     "ref-5",
			ScheduledDate: "2026-09-15",
			StartTime:     "10:00",
			Status:        "confirmed",
		},
	}

	rec := doRequest(t, service, "/api/v1/bookings/5")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "ref-5", resp.Reference)
}

func TestGetBookingHandler_NotFound(t *testing.T) {
	rec := doRequest(t, &fakeService{err: bookingsService.ErrBookingNotFound}, "/api/v1/bookings/42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBookingHandler_InvalidID(t *testing.T) {
	for _, path := range []string{"/api/v1/bookings/abc", "/api/v1/bookings/0", "/api/v1/bookings/-1"} {
		rec := doRequest(t, &fakeService{}, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestGetBookingHandler_InternalError(t *testing.T) {
	rec := doRequest(t, &fakeService{err: bookingsService.ErrInternal}, "/api/v1/bookings/5")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
