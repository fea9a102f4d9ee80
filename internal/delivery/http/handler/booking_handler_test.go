package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/usecase"
	"patient-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeBookingUsecase struct {
	addResp   *dto.BookingResponse
	addErr    error
	cancelErr error
	nextResp  *dto.NextAppointmentResponse
	nextErr   error
	listResp  *dto.BookingListResponse
	listErr   error
}

func (f *fakeBookingUsecase) AddBooking(ctx context.Context, req *dto.AddBookingRequest) (*dto.BookingResponse, error) {
	return f.addResp, f.addErr
}

func (f *fakeBookingUsecase) CancelBooking(ctx context.Context, req *dto.CancelBookingRequest) error {
	return f.cancelErr
}

func (f *fakeBookingUsecase) GetPatientNextAppointment(ctx context.Context, patientID int64) (*dto.NextAppointmentResponse, error) {
	return f.nextResp, f.nextErr
}

func (f *fakeBookingUsecase) GetPatientBookings(ctx context.Context, patientID int64) (*dto.BookingListResponse, error) {
	return f.listResp, f.listErr
}

func newTestRouter(u usecase.BookingUsecase) *mux.Router {
	h := NewBookingHandler(u, validator.NewValidator())

	r := mux.NewRouter()
	r.HandleFunc("/AddBooking", h.AddBooking).Methods(http.MethodPost)
	r.HandleFunc("/CancelBooking", h.CancelBooking).Methods(http.MethodPost)
	r.HandleFunc("/patient/{patientId}/next", h.GetPatientNextAppointment).Methods(http.MethodGet)
	r.HandleFunc("/patient/{patientId}/bookings", h.GetPatientBookings).Methods(http.MethodGet)
	return r
}

func addBookingBody() string {
	start := time.Now().Add(24 * time.Hour).UTC()
	return fmt.Sprintf(
		`{"startTime":%q,"endTime":%q,"patientId":1,"doctorId":7}`,
		start.Format(time.RFC3339), start.Add(15*time.Minute).Format(time.RFC3339),
	)
}

func TestAddBooking_OK(t *testing.T) {
	u := &fakeBookingUsecase{addResp: &dto.BookingResponse{ID: uuid.New()}}
	router := newTestRouter(u)

	req := httptest.NewRequest(http.MethodPost, "/AddBooking", strings.NewReader(addBookingBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddBooking_ValidationErrorMapsTo400(t *testing.T) {
	u := &fakeBookingUsecase{addErr: &usecase.ValidationError{Reason: "Requested time is busy."}}
	router := newTestRouter(u)

	req := httptest.NewRequest(http.MethodPost, "/AddBooking", strings.NewReader(addBookingBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Requested time is busy.") {
		t.Fatalf("expected the validator reason in the body, got %s", rec.Body.String())
	}
}

func TestAddBooking_OtherErrorMapsTo500(t *testing.T) {
	u := &fakeBookingUsecase{addErr: errors.New("boom")}
	router := newTestRouter(u)

	req := httptest.NewRequest(http.MethodPost, "/AddBooking", strings.NewReader(addBookingBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAddBooking_MissingFields(t *testing.T) {
	router := newTestRouter(&fakeBookingUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/AddBooking", strings.NewReader(`{"patientId":1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetPatientNextAppointment_OK(t *testing.T) {
	next := &dto.NextAppointmentResponse{
		ID:        uuid.New(),
		DoctorID:  7,
		StartTime: time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second),
		EndTime:   time.Now().Add(3 * time.Hour).UTC().Truncate(time.Second),
	}
	router := newTestRouter(&fakeBookingUsecase{nextResp: next})

	req := httptest.NewRequest(http.MethodGet, "/patient/1/next", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// The endpoint returns the raw projection, not the envelope
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	for _, key := range []string{"id", "doctorId", "startTime", "endTime"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("expected key %q in response, got %v", key, body)
		}
	}
	if body["id"] != next.ID.String() {
		t.Fatalf("expected id %s, got %v", next.ID, body["id"])
	}
}

func TestGetPatientNextAppointment_NoneMapsTo502(t *testing.T) {
	router := newTestRouter(&fakeBookingUsecase{nextErr: usecase.ErrNoUpcomingAppointment})

	req := httptest.NewRequest(http.MethodGet, "/patient/1/next", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestGetPatientNextAppointment_InvalidID(t *testing.T) {
	router := newTestRouter(&fakeBookingUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/patient/abc/next", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCancelBooking_OK(t *testing.T) {
	router := newTestRouter(&fakeBookingUsecase{})

	body := fmt.Sprintf(`{"id":%q}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/CancelBooking", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCancelBooking_NotFoundMapsTo500(t *testing.T) {
	// This endpoint does not distinguish not-found from other failures
	router := newTestRouter(&fakeBookingUsecase{cancelErr: usecase.ErrOrderNotFound})

	body := fmt.Sprintf(`{"id":%q}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/CancelBooking", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
