package service

import (
	"time"

	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Validation failure reasons surfaced to API clients verbatim
const (
	MsgInvalidAppointmentStart = "Invalid appointment start."
	MsgRequestedTimeBusy       = "Requested time is busy."
)

// ValidationResult reports the outcome of a booking validation pass.
// Errors holds at most one entry: checks short-circuit on the first
// failure, so only one reason is ever reported per call.
type ValidationResult struct {
	Passed bool
	Errors []string
}

// AddBookingValidator decides whether a proposed appointment may be
// committed. It only reads from storage, it never mutates.
type AddBookingValidator interface {
	ValidateRequest(db *gorm.DB, req *dto.AddBookingRequest) (ValidationResult, error)
}

type addBookingValidator struct {
	log       *logrus.Logger
	orderRepo repository.OrderRepository
}

func NewAddBookingValidator(log *logrus.Logger, orderRepo repository.OrderRepository) AddBookingValidator {
	return &addBookingValidator{
		log:       log,
		orderRepo: orderRepo,
	}
}

// ValidateRequest applies the booking checks in order:
//  1. the appointment must not start in the past
//  2. the doctor must not already have a non-cancelled order whose
//     [start, end) interval overlaps the requested one
//
// Intervals that touch at a boundary (one ends exactly when the other
// starts) do not count as overlapping.
func (v *addBookingValidator) ValidateRequest(db *gorm.DB, req *dto.AddBookingRequest) (ValidationResult, error) {
	if req.StartTime.UTC().Before(time.Now().UTC()) {
		return failed(MsgInvalidAppointmentStart), nil
	}

	orders, err := v.orderRepo.FindActiveByDoctorID(db, req.DoctorID)
	if err != nil {
		v.log.Warnf("Failed to load orders for doctor %d: %+v", req.DoctorID, err)
		return ValidationResult{}, err
	}

	for i := range orders {
		if orders[i].Overlaps(req.StartTime, req.EndTime) {
			return failed(MsgRequestedTimeBusy), nil
		}
	}

	return ValidationResult{Passed: true}, nil
}

func failed(reason string) ValidationResult {
	return ValidationResult{Passed: false, Errors: []string{reason}}
}
