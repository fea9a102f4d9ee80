package converter

import (
	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:          doctor.ID,
		FirstName:   doctor.FirstName,
		LastName:    doctor.LastName,
		Gender:      doctor.Gender,
		Email:       doctor.Email,
		DateOfBirth: doctor.DateOfBirth.Format("2006-01-02"),
		CreatedAt:   doctor.CreatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
