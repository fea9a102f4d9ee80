package dto

import "time"

// Request DTOs

type CreateClinicRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	SurgeryType string `json:"surgery_type" validate:"required,oneof=system_one system_two"`
}

// Response DTOs

type ClinicResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	SurgeryType string    `json:"surgery_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type ClinicListResponse struct {
	Clinics []ClinicResponse `json:"clinics"`
	Total   int              `json:"total"`
}
