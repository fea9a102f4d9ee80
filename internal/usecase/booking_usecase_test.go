package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"patient-booking/internal/delivery/dto"
	"patient-booking/internal/domain/entity"
	"patient-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ---- fakes ----

type fakeOrderRepo struct {
	orders  []entity.Order
	created []*entity.Order
	updated []*entity.Order
}

func (f *fakeOrderRepo) Create(db *gorm.DB, order *entity.Order) error {
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			return &f.orders[i], nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindActiveByDoctorID(db *gorm.DB, doctorID int64) ([]entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) FindActiveByPatientID(db *gorm.DB, patientID int64) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range f.orders {
		if o.PatientID == patientID && !o.Cancelled {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range f.orders {
		if o.PatientID == patientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(db *gorm.DB, order *entity.Order) error {
	f.updated = append(f.updated, order)
	return nil
}

type fakePatientRepo struct {
	patient *entity.Patient
}

func (f *fakePatientRepo) Create(db *gorm.DB, patient *entity.Patient) error { return nil }
func (f *fakePatientRepo) FindByID(db *gorm.DB, id int64) (*entity.Patient, error) {
	return f.patient, nil
}
func (f *fakePatientRepo) FindByIDWithClinic(db *gorm.DB, id int64) (*entity.Patient, error) {
	return f.patient, nil
}
func (f *fakePatientRepo) FindAll(db *gorm.DB) ([]entity.Patient, error) { return nil, nil }

type fakeDoctorRepo struct {
	doctor *entity.Doctor
}

func (f *fakeDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error { return nil }
func (f *fakeDoctorRepo) FindByID(db *gorm.DB, id int64) (*entity.Doctor, error) {
	return f.doctor, nil
}
func (f *fakeDoctorRepo) FindAll(db *gorm.DB) ([]entity.Doctor, error) { return nil, nil }

type fakeValidator struct {
	result service.ValidationResult
	err    error
}

func (f *fakeValidator) ValidateRequest(db *gorm.DB, req *dto.AddBookingRequest) (service.ValidationResult, error) {
	return f.result, f.err
}

type fakeLocker struct {
	locks    int
	releases int
}

func (f *fakeLocker) Lock(ctx context.Context, doctorID int64) (func(), error) {
	f.locks++
	return func() { f.releases++ }, nil
}

type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogAction(db *gorm.DB, action, entityName, entityID string, details interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

// ---- fixtures ----

type bookingFixture struct {
	usecase   BookingUsecase
	orderRepo *fakeOrderRepo
	validator *fakeValidator
	locker    *fakeLocker
	audit     *fakeAuditService
}

func newBookingFixture(orderRepo *fakeOrderRepo) *bookingFixture {
	patient := &entity.Patient{
		ID:       1,
		ClinicID: 3,
		Clinic:   entity.Clinic{ID: 3, Name: "Riverside", SurgeryType: entity.SurgeryTypeSystemTwo},
	}
	doctor := &entity.Doctor{ID: 7}

	f := &bookingFixture{
		orderRepo: orderRepo,
		validator: &fakeValidator{result: service.ValidationResult{Passed: true}},
		locker:    &fakeLocker{},
		audit:     &fakeAuditService{},
	}

	// Repos are fakes, so the usecase never executes a real query
	db := &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}
	f.usecase = NewBookingUsecase(
		db,
		logrus.New(),
		f.validator,
		orderRepo,
		&fakePatientRepo{patient: patient},
		&fakeDoctorRepo{doctor: doctor},
		f.locker,
		f.audit,
	)
	return f
}

func addBookingRequest() *dto.AddBookingRequest {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	return &dto.AddBookingRequest{
		StartTime: start,
		EndTime:   start.Add(15 * time.Minute),
		PatientID: 1,
		DoctorID:  7,
	}
}

// ---- AddBooking ----

func TestAddBooking_Success(t *testing.T) {
	repo := &fakeOrderRepo{}
	f := newBookingFixture(repo)

	req := addBookingRequest()
	resp, err := f.usecase.AddBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("AddBooking failed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 order persisted, got %d", len(repo.created))
	}
	order := repo.created[0]
	if order.ID == uuid.Nil {
		t.Fatal("expected a generated order id")
	}
	if order.Cancelled {
		t.Fatal("new order must not be cancelled")
	}
	if order.SurgeryType != entity.SurgeryTypeSystemTwo {
		t.Fatalf("expected surgery type copied from clinic, got %q", order.SurgeryType)
	}
	if !order.StartTime.Equal(req.StartTime) || !order.EndTime.Equal(req.EndTime) {
		t.Fatal("expected order times to match the request")
	}
	if order.PatientID != 1 || order.DoctorID != 7 {
		t.Fatalf("unexpected foreign keys: patient=%d doctor=%d", order.PatientID, order.DoctorID)
	}

	if resp.ID != order.ID {
		t.Fatal("response should carry the persisted order id")
	}
	if f.locker.locks != 1 || f.locker.releases != 1 {
		t.Fatalf("expected doctor lock acquired and released once, got %d/%d", f.locker.locks, f.locker.releases)
	}
	if len(f.audit.actions) != 1 || f.audit.actions[0] != entity.AuditActionBookingCreate {
		t.Fatalf("expected booking.create audit entry, got %v", f.audit.actions)
	}
}

func TestAddBooking_ValidationFailure(t *testing.T) {
	repo := &fakeOrderRepo{}
	f := newBookingFixture(repo)
	f.validator.result = service.ValidationResult{
		Passed: false,
		Errors: []string{service.MsgRequestedTimeBusy},
	}

	_, err := f.usecase.AddBooking(context.Background(), addBookingRequest())

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Reason != service.MsgRequestedTimeBusy {
		t.Fatalf("expected reason %q, got %q", service.MsgRequestedTimeBusy, vErr.Reason)
	}
	if len(repo.created) != 0 {
		t.Fatal("a rejected booking must not persist anything")
	}
	if f.locker.releases != 1 {
		t.Fatal("doctor lock must be released on the failure path")
	}
}

func TestAddBooking_PatientMissing(t *testing.T) {
	repo := &fakeOrderRepo{}
	f := newBookingFixture(repo)

	// Replace the patient repo with one that resolves nothing
	db := &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}
	f.usecase = NewBookingUsecase(
		db,
		logrus.New(),
		f.validator,
		repo,
		&fakePatientRepo{patient: nil},
		&fakeDoctorRepo{doctor: &entity.Doctor{ID: 7}},
		f.locker,
		f.audit,
	)

	_, err := f.usecase.AddBooking(context.Background(), addBookingRequest())
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("no order may be persisted when the patient is missing")
	}
}

// ---- GetPatientNextAppointment ----

func TestGetPatientNextAppointment_PicksEarliestFuture(t *testing.T) {
	now := time.Now()
	soonest := entity.Order{
		ID:        uuid.New(),
		PatientID: 1,
		DoctorID:  7,
		StartTime: now.Add(2 * time.Hour),
		EndTime:   now.Add(2*time.Hour + 15*time.Minute),
	}
	repo := &fakeOrderRepo{orders: []entity.Order{
		{ID: uuid.New(), PatientID: 1, DoctorID: 7, StartTime: now.Add(-time.Hour), EndTime: now.Add(-45 * time.Minute)},
		{ID: uuid.New(), PatientID: 1, DoctorID: 7, StartTime: now.Add(48 * time.Hour), EndTime: now.Add(48*time.Hour + 15*time.Minute)},
		soonest,
		{ID: uuid.New(), PatientID: 1, DoctorID: 7, StartTime: now.Add(time.Hour), EndTime: now.Add(time.Hour + 15*time.Minute), Cancelled: true},
		{ID: uuid.New(), PatientID: 2, DoctorID: 7, StartTime: now.Add(time.Hour), EndTime: now.Add(time.Hour + 15*time.Minute)},
	}}
	f := newBookingFixture(repo)

	resp, err := f.usecase.GetPatientNextAppointment(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetPatientNextAppointment failed: %v", err)
	}
	if resp.ID != soonest.ID {
		t.Fatalf("expected order %s, got %s", soonest.ID, resp.ID)
	}
	if resp.DoctorID != soonest.DoctorID {
		t.Fatalf("expected doctor %d, got %d", soonest.DoctorID, resp.DoctorID)
	}
	if !resp.StartTime.Equal(soonest.StartTime) || !resp.EndTime.Equal(soonest.EndTime) {
		t.Fatal("expected projection times to match the order")
	}
}

func TestGetPatientNextAppointment_NoneQualify(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		orders []entity.Order
	}{
		{"no orders at all", nil},
		{"only past orders", []entity.Order{
			{ID: uuid.New(), PatientID: 1, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour)},
		}},
		{"only cancelled future orders", []entity.Order{
			{ID: uuid.New(), PatientID: 1, StartTime: now.Add(2 * time.Hour), EndTime: now.Add(3 * time.Hour), Cancelled: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(&fakeOrderRepo{orders: tt.orders})
			_, err := f.usecase.GetPatientNextAppointment(context.Background(), 1)
			if !errors.Is(err, ErrNoUpcomingAppointment) {
				t.Fatalf("expected ErrNoUpcomingAppointment, got %v", err)
			}
		})
	}
}

// ---- CancelBooking ----

func TestCancelBooking_MarksCancelled(t *testing.T) {
	order := entity.Order{ID: uuid.New(), PatientID: 1, DoctorID: 7}
	repo := &fakeOrderRepo{orders: []entity.Order{order}}
	f := newBookingFixture(repo)

	if err := f.usecase.CancelBooking(context.Background(), &dto.CancelBookingRequest{ID: order.ID}); err != nil {
		t.Fatalf("CancelBooking failed: %v", err)
	}
	if len(repo.updated) != 1 || !repo.updated[0].Cancelled {
		t.Fatal("expected the order to be updated with cancelled=true")
	}
	if len(f.audit.actions) != 1 || f.audit.actions[0] != entity.AuditActionBookingCancel {
		t.Fatalf("expected booking.cancel audit entry, got %v", f.audit.actions)
	}
}

func TestCancelBooking_Idempotent(t *testing.T) {
	order := entity.Order{ID: uuid.New(), PatientID: 1, DoctorID: 7}
	repo := &fakeOrderRepo{orders: []entity.Order{order}}
	f := newBookingFixture(repo)

	req := &dto.CancelBookingRequest{ID: order.ID}
	if err := f.usecase.CancelBooking(context.Background(), req); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if err := f.usecase.CancelBooking(context.Background(), req); err != nil {
		t.Fatalf("second cancel failed: %v", err)
	}
	if !repo.orders[0].Cancelled {
		t.Fatal("expected order to stay cancelled")
	}
}

func TestCancelBooking_UnknownID(t *testing.T) {
	repo := &fakeOrderRepo{}
	f := newBookingFixture(repo)

	err := f.usecase.CancelBooking(context.Background(), &dto.CancelBookingRequest{ID: uuid.New()})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatal("an unknown id must not mutate any record")
	}
}

func TestCancelBooking_ZeroID(t *testing.T) {
	// The zero uuid can never match a stored order
	repo := &fakeOrderRepo{orders: []entity.Order{{ID: uuid.New(), PatientID: 1}}}
	f := newBookingFixture(repo)

	err := f.usecase.CancelBooking(context.Background(), &dto.CancelBookingRequest{})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
