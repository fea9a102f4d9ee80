package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
//
// Field names follow the wire contract consumed by existing clients
// (camelCase), unlike the admin endpoints.

type AddBookingRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	PatientID int64     `json:"patientId" validate:"required,min=1"`
	DoctorID  int64     `json:"doctorId" validate:"required,min=1"`
}

// CancelBookingRequest carries the order to cancel. A missing id decodes
// to uuid.Nil, which can never match a stored order.
type CancelBookingRequest struct {
	ID uuid.UUID `json:"id"`
}

// Response DTOs

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	PatientID   int64     `json:"patientId"`
	DoctorID    int64     `json:"doctorId"`
	Cancelled   bool      `json:"cancelled"`
	SurgeryType string    `json:"surgeryType"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// NextAppointmentResponse is the projection returned by the
// next-appointment query.
type NextAppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  int64     `json:"doctorId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}
