package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/usecase"
	"patient-booking/pkg/response"
	"patient-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) AddBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.AddBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.AddBooking(r.Context(), &req)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			response.Error(w, http.StatusBadRequest, vErr.Reason, nil)
			return
		}
		response.InternalServerError(w, "Failed to create booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking created successfully", booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	// Unknown ids, the zero id included, are not distinguished from
	// other failures on this endpoint.
	if err := h.bookingUsecase.CancelBooking(r.Context(), &req); err != nil {
		response.InternalServerError(w, "Failed to cancel booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", nil)
}

// GetPatientNextAppointment writes the raw projection, not the standard
// envelope: the path is a compatibility contract with existing clients.
// The 502 on "no upcoming appointment" is part of that contract too.
func (h *BookingHandler) GetPatientNextAppointment(w http.ResponseWriter, r *http.Request) {
	patientID, err := parsePatientID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	appointment, err := h.bookingUsecase.GetPatientNextAppointment(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoUpcomingAppointment) {
			response.Error(w, http.StatusBadGateway, "No upcoming appointment", nil)
			return
		}
		response.InternalServerError(w, "Failed to get next appointment")
		return
	}

	response.JSON(w, http.StatusOK, appointment)
}

func (h *BookingHandler) GetPatientBookings(w http.ResponseWriter, r *http.Request) {
	patientID, err := parsePatientID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	bookings, err := h.bookingUsecase.GetPatientBookings(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func parsePatientID(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars["patientId"], 10, 64)
}
