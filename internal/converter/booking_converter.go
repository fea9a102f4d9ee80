package converter

import (
	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/entity"
)

// OrderToBookingResponse converts an Order entity to BookingResponse DTO
func OrderToBookingResponse(order *entity.Order) *dto.BookingResponse {
	if order == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:          order.ID,
		StartTime:   order.StartTime,
		EndTime:     order.EndTime,
		PatientID:   order.PatientID,
		DoctorID:    order.DoctorID,
		Cancelled:   order.Cancelled,
		SurgeryType: string(order.SurgeryType),
		CreatedAt:   order.CreatedAt,
	}
}

// OrdersToBookingResponses converts a slice of Order entities to BookingResponse DTOs
func OrdersToBookingResponses(orders []entity.Order) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(orders))
	for i := range orders {
		responses[i] = *OrderToBookingResponse(&orders[i])
	}
	return responses
}

// OrderToNextAppointmentResponse projects an Order onto the
// next-appointment wire shape.
func OrderToNextAppointmentResponse(order *entity.Order) *dto.NextAppointmentResponse {
	if order == nil {
		return nil
	}

	return &dto.NextAppointmentResponse{
		ID:        order.ID,
		DoctorID:  order.DoctorID,
		StartTime: order.StartTime,
		EndTime:   order.EndTime,
	}
}
