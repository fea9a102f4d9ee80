package converter

import (
	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:          patient.ID,
		FirstName:   patient.FirstName,
		LastName:    patient.LastName,
		Gender:      patient.Gender,
		Email:       patient.Email,
		DateOfBirth: patient.DateOfBirth.Format("2006-01-02"),
		ClinicID:    patient.ClinicID,
		CreatedAt:   patient.CreatedAt,
	}

	// Include clinic info if loaded
	if patient.Clinic.ID != 0 {
		response.Clinic = ClinicToResponse(&patient.Clinic)
	}

	return response
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
