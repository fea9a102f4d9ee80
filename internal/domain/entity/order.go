package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order represents an appointment booking linking a patient and a
// doctor over a time interval. Orders are never physically deleted;
// cancellation only flips the Cancelled flag.
type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	StartTime   time.Time   `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time   `gorm:"not null" json:"end_time"`
	PatientID   int64       `gorm:"not null;index" json:"patient_id"`
	DoctorID    int64       `gorm:"not null;index" json:"doctor_id"`
	Cancelled   bool        `gorm:"not null;default:false;index" json:"cancelled"`
	SurgeryType SurgeryType `gorm:"type:varchar(20);not null" json:"surgery_type"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// Overlaps reports whether the order's [StartTime, EndTime) interval
// shares any instant with [start, end). Intervals that only touch at a
// boundary do not overlap.
func (o *Order) Overlaps(start, end time.Time) bool {
	return o.StartTime.Before(end) && start.Before(o.EndTime)
}

// IsUpcoming checks if the order is active and starts strictly after now
func (o *Order) IsUpcoming(now time.Time) bool {
	return !o.Cancelled && o.StartTime.After(now)
}

// Cancel flips the order into its terminal cancelled state
func (o *Order) Cancel() {
	o.Cancelled = true
}
