package entity

import "time"

// Doctor represents a doctor appointments are booked against
type Doctor struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Gender      string    `gorm:"type:char(1);not null" json:"gender"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Orders []Order `gorm:"foreignKey:DoctorID" json:"orders,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)
