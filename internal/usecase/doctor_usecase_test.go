package usecase

import (
	"context"
	"errors"
	"testing"

	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type erroringDoctorRepo struct {
	createErr error
}

func (f *erroringDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error { return f.createErr }
func (f *erroringDoctorRepo) FindByID(db *gorm.DB, id int64) (*entity.Doctor, error) {
	return nil, nil
}
func (f *erroringDoctorRepo) FindAll(db *gorm.DB) ([]entity.Doctor, error) { return nil, nil }

func newDoctorUsecase(repo *erroringDoctorRepo) DoctorUsecase {
	db := &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}
	return NewDoctorUsecase(db, logrus.New(), repo, &fakeAuditService{})
}

func createDoctorRequest() *dto.CreateDoctorRequest {
	return &dto.CreateDoctorRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		Gender:      "F",
		Email:       "jane.doe@clinic.test",
		DateOfBirth: "1985-04-12",
	}
}

func TestCreateDoctor_DuplicateEmail(t *testing.T) {
	repo := &erroringDoctorRepo{createErr: &pgconn.PgError{Code: "23505"}}
	u := newDoctorUsecase(repo)

	_, err := u.CreateDoctor(context.Background(), createDoctorRequest())
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateDoctor_InvalidDateOfBirth(t *testing.T) {
	u := newDoctorUsecase(&erroringDoctorRepo{})

	req := createDoctorRequest()
	req.DateOfBirth = "12/04/1985"
	_, err := u.CreateDoctor(context.Background(), req)
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestGetDoctor_NotFound(t *testing.T) {
	u := newDoctorUsecase(&erroringDoctorRepo{})

	_, err := u.GetDoctor(context.Background(), 42)
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}
