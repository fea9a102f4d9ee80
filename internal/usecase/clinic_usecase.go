package usecase

import (
	"context"
	"errors"

	"patient-booking/internal/converter"
	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/entity"
	"patient-booking/internal/domain/repository"
	"patient-booking/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrClinicNotFound = errors.New("clinic not found")

type ClinicUsecase interface {
	CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error)
	GetClinic(ctx context.Context, clinicID int64) (*dto.ClinicResponse, error)
	GetAllClinics(ctx context.Context) (*dto.ClinicListResponse, error)
}

type clinicUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	clinicRepo repository.ClinicRepository
	auditSvc   service.AuditService
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	auditSvc service.AuditService,
) ClinicUsecase {
	return &clinicUsecase{
		db:         db,
		log:        log,
		clinicRepo: clinicRepo,
		auditSvc:   auditSvc,
	}
}

func (u *clinicUsecase) CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error) {
	db := u.db.WithContext(ctx)

	clinic := &entity.Clinic{
		Name:        req.Name,
		SurgeryType: entity.SurgeryType(req.SurgeryType),
	}

	if err := u.clinicRepo.Create(db, clinic); err != nil {
		u.log.Warnf("Failed to create clinic: %+v", err)
		return nil, err
	}

	_ = u.auditSvc.LogAction(db, entity.AuditActionClinicCreate, "clinic", clinic.Name, nil)

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) GetClinic(ctx context.Context, clinicID int64) (*dto.ClinicResponse, error) {
	clinic, err := u.clinicRepo.FindByID(u.db.WithContext(ctx), clinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic %d: %+v", clinicID, err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) GetAllClinics(ctx context.Context) (*dto.ClinicListResponse, error) {
	clinics, err := u.clinicRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list clinics: %+v", err)
		return nil, err
	}

	return &dto.ClinicListResponse{
		Clinics: converter.ClinicsToResponses(clinics),
		Total:   len(clinics),
	}, nil
}
