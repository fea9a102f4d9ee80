package dto

import "time"

// Request DTOs

type CreatePatientRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Gender      string `json:"gender" validate:"required,oneof=M F"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	ClinicID    int64  `json:"clinic_id" validate:"required,min=1"`
}

// Response DTOs

type PatientResponse struct {
	ID          int64           `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Gender      string          `json:"gender"`
	Email       string          `json:"email"`
	DateOfBirth string          `json:"date_of_birth"`
	ClinicID    int64           `json:"clinic_id"`
	Clinic      *ClinicResponse `json:"clinic,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
