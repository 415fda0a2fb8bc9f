package models

import (
	"time"
)

type Doctor struct {
	ID            uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt     time.Time `gorm:"index" json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt     time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	Name          string    `gorm:"size:100;not null" json:"name" example:"Asha Verma"`
	Email         string    `gorm:"size:254;not null;uniqueIndex" json:"email" example:"asha.verma@revivecare.in"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	Specialty     *string   `gorm:"size:100" json:"specialty" example:"Orthopedics"`
	LicenseNumber string    `gorm:"size:50;not null;uniqueIndex" json:"license_number" example:"MCI-204518"`
	Phone         *string   `gorm:"size:20" json:"phone" example:"+91-9876543210"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active" example:"true"`

	// Relations
	Patients        []Patient       `gorm:"foreignKey:AssignedDoctorID;constraint:OnDelete:SET NULL" json:"-"`
	UploadedReports []PatientReport `gorm:"foreignKey:UploadedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// DoctorOrder is the default listing order for doctors.
const DoctorOrder = "created_at DESC"

func (d *Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) DisplayName() string {
	return "Dr. " + d.Name
}

func (d *Doctor) SetPassword(raw string) error {
	hashed, err := hashPassword(raw)
	if err != nil {
		return err
	}
	d.Password = hashed
	return nil
}

func (d *Doctor) CheckPassword(raw string) bool {
	return checkPassword(d.Password, raw)
}
