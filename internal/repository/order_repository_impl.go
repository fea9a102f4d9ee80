package repository

import (
	"errors"

	"patient-booking/internal/domain/entity"
	domainRepo "patient-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct{}

func NewOrderRepository() domainRepo.OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Create(db *gorm.DB, order *entity.Order) error {
	return db.Create(order).Error
}

func (r *orderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := db.Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindActiveByDoctorID returns all non-cancelled orders for a doctor.
// Overlap evaluation happens in the caller.
func (r *orderRepository) FindActiveByDoctorID(db *gorm.DB, doctorID int64) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.Where("doctor_id = ? AND cancelled = ?", doctorID, false).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindActiveByPatientID(db *gorm.DB, patientID int64) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.Where("patient_id = ? AND cancelled = ?", patientID, false).
		Order("start_time ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("start_time DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Update(db *gorm.DB, order *entity.Order) error {
	return db.Save(order).Error
}
