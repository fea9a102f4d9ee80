package repository

import (
	"patient-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(db *gorm.DB, order *entity.Order) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error)
	FindActiveByDoctorID(db *gorm.DB, doctorID int64) ([]entity.Order, error)
	FindActiveByPatientID(db *gorm.DB, patientID int64) ([]entity.Order, error)
	FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Order, error)
	Update(db *gorm.DB, order *entity.Order) error
}
