package converter

import (
	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/entity"
)

// ClinicToResponse converts a Clinic entity to ClinicResponse DTO
func ClinicToResponse(clinic *entity.Clinic) *dto.ClinicResponse {
	if clinic == nil {
		return nil
	}

	return &dto.ClinicResponse{
		ID:          clinic.ID,
		Name:        clinic.Name,
		SurgeryType: string(clinic.SurgeryType),
		CreatedAt:   clinic.CreatedAt,
	}
}

// ClinicsToResponses converts a slice of Clinic entities to ClinicResponse DTOs
func ClinicsToResponses(clinics []entity.Clinic) []dto.ClinicResponse {
	responses := make([]dto.ClinicResponse, len(clinics))
	for i := range clinics {
		responses[i] = *ClinicToResponse(&clinics[i])
	}
	return responses
}
