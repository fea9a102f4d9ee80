package usecase

import (
	"context"
	"time"

	"patient-booking/internal/converter"
	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/entity"
	"patient-booking/internal/domain/repository"
	"patient-booking/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, patientID int64) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	clinicRepo  repository.ClinicRepository
	auditSvc    service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	clinicRepo repository.ClinicRepository,
	auditSvc service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		clinicRepo:  clinicRepo,
		auditSvc:    auditSvc,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	db := u.db.WithContext(ctx)

	// Validate clinic exists
	clinic, err := u.clinicRepo.FindByID(db, req.ClinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic %d: %+v", req.ClinicID, err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	patient := &entity.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      req.Gender,
		Email:       req.Email,
		DateOfBirth: dateOfBirth,
		ClinicID:    clinic.ID,
	}

	if err := u.patientRepo.Create(db, patient); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	_ = u.auditSvc.LogAction(db, entity.AuditActionPatientCreate, "patient", patient.Email, nil)

	patient.Clinic = *clinic
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, patientID int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByIDWithClinic(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}
