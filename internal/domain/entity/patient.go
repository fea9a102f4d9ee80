package entity

import "time"

// Patient represents a registered patient of a clinic
type Patient struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Gender      string    `gorm:"type:char(1);not null" json:"gender"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	ClinicID    int64     `gorm:"not null;index" json:"clinic_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Clinic Clinic  `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Orders []Order `gorm:"foreignKey:PatientID" json:"orders,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
