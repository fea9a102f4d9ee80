package usecase

import (
	"context"
	"errors"
	"time"

	"patient-booking/internal/converter"
	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/entity"
	"patient-booking/internal/domain/repository"
	"patient-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrNoUpcomingAppointment = errors.New("no upcoming appointment")
	ErrPatientNotFound       = errors.New("patient not found")
	ErrDoctorNotFound        = errors.New("doctor not found")
)

// ValidationError is returned by AddBooking when the booking validator
// rejects the request. Reason is the single human-readable message the
// validator reported, surfaced verbatim to the client.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type BookingUsecase interface {
	AddBooking(ctx context.Context, req *dto.AddBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, req *dto.CancelBookingRequest) error
	GetPatientNextAppointment(ctx context.Context, patientID int64) (*dto.NextAppointmentResponse, error)
	GetPatientBookings(ctx context.Context, patientID int64) (*dto.BookingListResponse, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	validator    service.AddBookingValidator
	orderRepo    repository.OrderRepository
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	doctorLocker service.DoctorLocker
	auditSvc     service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator service.AddBookingValidator,
	orderRepo repository.OrderRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	doctorLocker service.DoctorLocker,
	auditSvc service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		orderRepo:    orderRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		auditSvc:     auditSvc,
		doctorLocker: doctorLocker,
	}
}

// AddBooking is the only write path for appointments.
//
// Flow:
// 1. Acquire the per-doctor lock so validate+insert is an exclusive section
// 2. Run the booking validator (past start, doctor overlap)
// 3. Resolve patient (with clinic) and doctor
// 4. Persist a new order with the clinic's surgery type copied onto it
//
// A validation failure creates nothing; the order only exists after
// every step succeeded.
func (u *bookingUsecase) AddBooking(ctx context.Context, req *dto.AddBookingRequest) (*dto.BookingResponse, error) {
	release, err := u.doctorLocker.Lock(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to acquire booking lock for doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	defer release()

	db := u.db.WithContext(ctx)

	result, err := u.validator.ValidateRequest(db, req)
	if err != nil {
		u.log.Warnf("Booking validation failed to run for doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if !result.Passed {
		return nil, &ValidationError{Reason: result.Errors[0]}
	}

	patient, err := u.patientRepo.FindByIDWithClinic(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	order := &entity.Order{
		ID:        uuid.New(),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Cancelled: false,
		// Frozen at creation; later clinic changes do not touch it
		SurgeryType: patient.Clinic.SurgeryType,
	}

	if err := u.orderRepo.Create(db, order); err != nil {
		u.log.Errorf("Failed to create order: %+v", err)
		return nil, err
	}

	// Audit failures are non-fatal and already logged by the service
	_ = u.auditSvc.LogAction(db, entity.AuditActionBookingCreate, "order", order.ID.String(), map[string]interface{}{
		"patient_id": order.PatientID,
		"doctor_id":  order.DoctorID,
		"start_time": order.StartTime,
		"end_time":   order.EndTime,
	})

	u.log.Infof("Booking created: id=%s, doctor=%d, patient=%d", order.ID, order.DoctorID, order.PatientID)
	return converter.OrderToBookingResponse(order), nil
}

// CancelBooking marks an order cancelled. Orders are never deleted, so
// cancelling an already-cancelled order finds it again and succeeds.
func (u *bookingUsecase) CancelBooking(ctx context.Context, req *dto.CancelBookingRequest) error {
	db := u.db.WithContext(ctx)

	order, err := u.orderRepo.FindByID(db, req.ID)
	if err != nil {
		u.log.Warnf("Failed to find order %s: %+v", req.ID, err)
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	order.Cancel()

	if err := u.orderRepo.Update(db, order); err != nil {
		u.log.Warnf("Failed to cancel order %s: %+v", req.ID, err)
		return err
	}

	_ = u.auditSvc.LogAction(db, entity.AuditActionBookingCancel, "order", order.ID.String(), nil)

	u.log.Infof("Booking cancelled: id=%s", order.ID)
	return nil
}

// GetPatientNextAppointment returns the patient's soonest non-cancelled
// order starting strictly after now, projected to {id, doctorId,
// startTime, endTime}.
func (u *bookingUsecase) GetPatientNextAppointment(ctx context.Context, patientID int64) (*dto.NextAppointmentResponse, error) {
	orders, err := u.orderRepo.FindActiveByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find orders for patient %d: %+v", patientID, err)
		return nil, err
	}

	now := time.Now()
	var next *entity.Order
	for i := range orders {
		o := &orders[i]
		if !o.IsUpcoming(now) {
			continue
		}
		if next == nil || o.StartTime.Before(next.StartTime) {
			next = o
		}
	}

	if next == nil {
		return nil, ErrNoUpcomingAppointment
	}

	return converter.OrderToNextAppointmentResponse(next), nil
}

// GetPatientBookings returns all of a patient's orders, newest first,
// cancelled ones included.
func (u *bookingUsecase) GetPatientBookings(ctx context.Context, patientID int64) (*dto.BookingListResponse, error) {
	orders, err := u.orderRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for patient %d: %+v", patientID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.OrdersToBookingResponses(orders),
		Total:    len(orders),
	}, nil
}
