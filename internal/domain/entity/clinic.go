package entity

import "time"

// SurgeryType classifies the kind of surgery a clinic provides.
// It is copied onto every Order at booking time, so historical orders
// keep the classification that was valid when they were created.
type SurgeryType string

const (
	SurgeryTypeSystemOne SurgeryType = "system_one"
	SurgeryTypeSystemTwo SurgeryType = "system_two"
)

// IsValid checks the surgery type is a known classification
func (s SurgeryType) IsValid() bool {
	return s == SurgeryTypeSystemOne || s == SurgeryTypeSystemTwo
}

// Clinic represents a surgery/clinic that patients belong to
type Clinic struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string      `gorm:"type:varchar(100);not null" json:"name"`
	SurgeryType SurgeryType `gorm:"type:varchar(20);not null" json:"surgery_type"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patients []Patient `gorm:"foreignKey:ClinicID" json:"patients,omitempty"`
}

func (Clinic) TableName() string {
	return "clinics"
}
