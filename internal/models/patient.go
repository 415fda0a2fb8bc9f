package models

import (
	"time"
)

// Gender codes stored in patients.gender.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// MaxMedicalInfoLength bounds Patient.Info.
const MaxMedicalInfoLength = 3000

type Patient struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at" example:"2023-01-01T00:00:00Z"`
	Name      string    `gorm:"size:100;not null" json:"name" example:"Ravi Kumar"`
	Email     string    `gorm:"size:254;not null;uniqueIndex" json:"email" example:"ravi.kumar@example.com"`
	Password  *string   `gorm:"size:255" json:"-"`
	Phone     *string   `gorm:"size:20" json:"phone" example:"+91-9123456780"`
	Age       *int      `json:"age" example:"54"`
	Gender    *string   `gorm:"size:1;check:gender IN ('M','F','O')" json:"gender" example:"M"`
	Address   *string   `gorm:"type:text" json:"address" example:"12 MG Road, Pune"`
	Info      string    `gorm:"type:text" json:"info" example:"Post ACL reconstruction, week 6."`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active" example:"true"`

	AssignedDoctorID *uint   `gorm:"index" json:"assigned_doctor_id" example:"1"`
	AssignedDoctor   *Doctor `gorm:"foreignKey:AssignedDoctorID" json:"assigned_doctor,omitempty"`

	// Relations
	ExerciseSessions []ExerciseSession `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	ChatMessages     []ChatMessage     `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Reports          []PatientReport   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// PatientOrder is the default listing order for patients.
const PatientOrder = "updated_at DESC"

func (p *Patient) TableName() string {
	return "patients"
}

func (p *Patient) HasPassword() bool {
	return p.Password != nil && *p.Password != ""
}

func (p *Patient) SetPassword(raw string) error {
	hashed, err := hashPassword(raw)
	if err != nil {
		return err
	}
	p.Password = &hashed
	return nil
}

// CheckPassword reports whether raw matches the stored hash. A patient
// without a password never matches.
func (p *Patient) CheckPassword(raw string) bool {
	if !p.HasPassword() {
		return false
	}
	return checkPassword(*p.Password, raw)
}

func IsValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
