package repository

import (
	"revivecare/internal/models"

	"gorm.io/gorm"
)

type ChatMessageRepository interface {
	Create(message *models.ChatMessage) error
	FindAllByPatientID(patientID uint, limit int) ([]models.ChatMessage, error)
	FindSeriousByDoctorID(doctorID uint, threshold float64) ([]models.ChatMessage, error)
	DeleteByPatientID(patientID uint) (int64, error)
}

type chatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepository{db}
}

func (r *chatMessageRepository) Create(message *models.ChatMessage) error {
	return translateError(r.db.Create(message).Error)
}

// FindAllByPatientID returns the conversation oldest first. With a positive
// limit only the most recent messages are returned, still oldest first.
func (r *chatMessageRepository) FindAllByPatientID(patientID uint, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage

	if limit <= 0 {
		err := r.db.Where("patient_id = ?", patientID).
			Order(models.ChatMessageOrder).
			Find(&messages).Error
		return messages, err
	}

	recent := r.db.Model(&models.ChatMessage{}).
		Select("id").
		Where("patient_id = ?", patientID).
		Order(`"timestamp" DESC, id DESC`).
		Limit(limit)
	err := r.db.Where("id IN (?)", recent).
		Order(models.ChatMessageOrder).
		Find(&messages).Error
	return messages, err
}

// FindSeriousByDoctorID lists messages above threshold from every patient
// assigned to the doctor.
func (r *chatMessageRepository) FindSeriousByDoctorID(doctorID uint, threshold float64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Joins("JOIN patients ON patients.id = chat_messages.patient_id").
		Where("patients.assigned_doctor_id = ? AND chat_messages.seriousness_score > ?", doctorID, threshold).
		Order(`chat_messages."timestamp" DESC`).
		Find(&messages).Error
	return messages, err
}

func (r *chatMessageRepository) DeleteByPatientID(patientID uint) (int64, error) {
	result := r.db.Where("patient_id = ?", patientID).Delete(&models.ChatMessage{})
	return result.RowsAffected, result.Error
}
