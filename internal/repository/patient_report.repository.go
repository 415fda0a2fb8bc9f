package repository

import (
	"revivecare/internal/models"

	"gorm.io/gorm"
)

type PatientReportRepository interface {
	Create(report *models.PatientReport) error
	FindByID(id uint) (*models.PatientReport, error)
	FindAllByPatientID(patientID uint) ([]models.PatientReport, error)
	FindByUploaderID(doctorID uint) ([]models.PatientReport, error)
	Update(report *models.PatientReport) error
	Delete(id uint) error
}

type patientReportRepository struct {
	db *gorm.DB
}

func NewPatientReportRepository(db *gorm.DB) PatientReportRepository {
	return &patientReportRepository{db}
}

func (r *patientReportRepository) Create(report *models.PatientReport) error {
	return translateError(r.db.Create(report).Error)
}

func (r *patientReportRepository) FindByID(id uint) (*models.PatientReport, error) {
	var report models.PatientReport
	err := r.db.Preload("UploadedBy").First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *patientReportRepository) FindAllByPatientID(patientID uint) ([]models.PatientReport, error) {
	var reports []models.PatientReport
	err := r.db.Preload("UploadedBy").
		Where("patient_id = ?", patientID).
		Order(models.PatientReportOrder).
		Find(&reports).Error
	return reports, err
}

func (r *patientReportRepository) FindByUploaderID(doctorID uint) ([]models.PatientReport, error) {
	var reports []models.PatientReport
	err := r.db.Where("uploaded_by_id = ?", doctorID).
		Order(models.PatientReportOrder).
		Find(&reports).Error
	return reports, err
}

func (r *patientReportRepository) Update(report *models.PatientReport) error {
	return translateError(r.db.Omit("UploadedBy").Save(report).Error)
}

func (r *patientReportRepository) Delete(id uint) error {
	result := r.db.Delete(&models.PatientReport{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
