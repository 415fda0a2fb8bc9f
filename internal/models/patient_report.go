package models

import (
	"time"
)

// Report types accepted in patient_reports.report_type.
const (
	ReportTypeLab          = "lab"
	ReportTypeImaging      = "imaging"
	ReportTypeDischarge    = "discharge"
	ReportTypePrescription = "prescription"
	ReportTypeOther        = "other"
)

type PatientReport struct {
	ID           uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt    time.Time `gorm:"index" json:"created_at" example:"2023-01-01T00:00:00Z"`
	PatientID    uint      `gorm:"not null;index" json:"patient_id" example:"1"`
	ReportType   string    `gorm:"size:20;not null;check:report_type IN ('lab','imaging','discharge','prescription','other')" json:"report_type" example:"imaging"`
	Title        string    `gorm:"size:200;not null" json:"title" example:"Knee MRI"`
	Description  *string   `gorm:"type:text" json:"description"`
	FileURL      *string   `gorm:"size:200" json:"file_url" example:"https://files.revivecare.in/reports/knee-mri.pdf"`
	UploadedByID *uint     `gorm:"index" json:"uploaded_by_id" example:"1"`
	UploadedBy   *Doctor   `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

// PatientReportOrder is the default listing order for reports.
const PatientReportOrder = "created_at DESC"

func (r *PatientReport) TableName() string {
	return "patient_reports"
}

func IsValidReportType(t string) bool {
	switch t {
	case ReportTypeLab, ReportTypeImaging, ReportTypeDischarge, ReportTypePrescription, ReportTypeOther:
		return true
	}
	return false
}
