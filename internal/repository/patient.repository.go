package repository

import (
	"revivecare/internal/models"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(patient *models.Patient) error
	FindByID(id uint) (*models.Patient, error)
	FindByEmail(email string) (*models.Patient, error)
	FindAll() ([]models.Patient, error)
	FindByDoctorID(doctorID uint) ([]models.Patient, error)
	Update(patient *models.Patient) error
	Patch(id uint, data map[string]interface{}) error
	Delete(id uint) error
	EmailExists(email string) (bool, error)
	AssignDoctor(patientID uint, doctorID *uint) error
}

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db}
}

func (r *patientRepository) Create(patient *models.Patient) error {
	return translateError(r.db.Create(patient).Error)
}

func (r *patientRepository) FindByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Preload("AssignedDoctor").First(&patient, id).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByEmail(email string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Preload("AssignedDoctor").Where("email = ?", email).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll() ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Order(models.PatientOrder).Find(&patients).Error
	return patients, err
}

func (r *patientRepository) FindByDoctorID(doctorID uint) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Where("assigned_doctor_id = ?", doctorID).
		Order(models.PatientOrder).
		Find(&patients).Error
	return patients, err
}

func (r *patientRepository) Update(patient *models.Patient) error {
	// Omit the preloaded association so Save never upserts the doctor row.
	return translateError(r.db.Omit("AssignedDoctor").Save(patient).Error)
}

func (r *patientRepository) Patch(id uint, data map[string]interface{}) error {
	var patient models.Patient
	if err := r.db.First(&patient, id).Error; err != nil {
		return err
	}
	return translateError(r.db.Model(&patient).Updates(data).Error)
}

// Delete removes the patient together with its exercise sessions, chat
// messages and reports through the ON DELETE CASCADE constraints.
func (r *patientRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Patient{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *patientRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Patient{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// AssignDoctor sets or clears (doctorID == nil) the patient's doctor.
func (r *patientRepository) AssignDoctor(patientID uint, doctorID *uint) error {
	result := r.db.Model(&models.Patient{}).
		Where("id = ?", patientID).
		Update("assigned_doctor_id", doctorID)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
