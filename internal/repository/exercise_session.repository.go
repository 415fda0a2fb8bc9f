package repository

import (
	"log"
	"time"

	"revivecare/internal/models"

	"gorm.io/gorm"
)

// SessionStats summarises a patient's exercise history.
type SessionStats struct {
	TotalSessions   int64   `json:"total_sessions"`
	TotalReps       int64   `json:"total_reps"`
	AverageAccuracy float64 `json:"average_accuracy"`
}

type ExerciseSessionRepository interface {
	Create(session *models.ExerciseSession) error
	FindByID(id uint) (*models.ExerciseSession, error)
	FindAllByPatientID(patientID uint, limit int) ([]models.ExerciseSession, error)
	FindActiveByPatientID(patientID uint) (*models.ExerciseSession, error)
	Update(session *models.ExerciseSession) error
	Delete(id uint) error
	CloseStale(cutoff time.Time) (int64, error)
	GetPatientStats(patientID uint) (*SessionStats, error)
}

type exerciseSessionRepository struct {
	db *gorm.DB
}

func NewExerciseSessionRepository(db *gorm.DB) ExerciseSessionRepository {
	return &exerciseSessionRepository{db}
}

func (r *exerciseSessionRepository) Create(session *models.ExerciseSession) error {
	return translateError(r.db.Create(session).Error)
}

func (r *exerciseSessionRepository) FindByID(id uint) (*models.ExerciseSession, error) {
	var session models.ExerciseSession
	err := r.db.First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindAllByPatientID returns the newest sessions first. A limit of zero or
// less returns every session.
func (r *exerciseSessionRepository) FindAllByPatientID(patientID uint, limit int) ([]models.ExerciseSession, error) {
	var sessions []models.ExerciseSession
	query := r.db.Where("patient_id = ?", patientID).Order(models.ExerciseSessionOrder)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}

// FindActiveByPatientID returns the patient's most recently started session
// that has not been finished yet.
func (r *exerciseSessionRepository) FindActiveByPatientID(patientID uint) (*models.ExerciseSession, error) {
	var session models.ExerciseSession
	err := r.db.Where("patient_id = ? AND end_time IS NULL", patientID).
		Order(models.ExerciseSessionOrder).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *exerciseSessionRepository) Update(session *models.ExerciseSession) error {
	return translateError(r.db.Save(session).Error)
}

func (r *exerciseSessionRepository) Delete(id uint) error {
	result := r.db.Delete(&models.ExerciseSession{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseStale stamps an end time on sessions started before cutoff that were
// never finished.
func (r *exerciseSessionRepository) CloseStale(cutoff time.Time) (int64, error) {
	result := r.db.Model(&models.ExerciseSession{}).
		Where("end_time IS NULL AND start_time < ?", cutoff).
		UpdateColumn("end_time", time.Now())
	if result.Error != nil {
		log.Printf("Error closing stale sessions: %v", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *exerciseSessionRepository) GetPatientStats(patientID uint) (*SessionStats, error) {
	var row struct {
		TotalSessions   int64
		TotalReps       *int64
		AverageAccuracy *float64
	}
	err := r.db.Model(&models.ExerciseSession{}).
		Select("COUNT(*) AS total_sessions, SUM(completed_reps) AS total_reps, AVG(accuracy_score) AS average_accuracy").
		Where("patient_id = ?", patientID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats := &SessionStats{TotalSessions: row.TotalSessions}
	if row.TotalReps != nil {
		stats.TotalReps = *row.TotalReps
	}
	if row.AverageAccuracy != nil {
		stats.AverageAccuracy = *row.AverageAccuracy
	}
	return stats, nil
}
