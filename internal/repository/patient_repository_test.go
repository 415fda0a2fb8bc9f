package repository_test

import (
	"testing"

	"revivecare/internal/models"
	"revivecare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPatientRepository_UniqueEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPatientRepository(db)

	createPatient(t, repo, "ravi@example.com", nil)

	duplicate := &models.Patient{Name: "Another Ravi", Email: "ravi@example.com"}
	assert.Error(t, repo.Create(duplicate))

	exists, err := repo.EmailExists("ravi@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPatientRepository_RejectsUnknownGender(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPatientRepository(db)

	patient := &models.Patient{Name: "Meena", Email: "meena@example.com", Gender: strPtr("X")}
	assert.Error(t, repo.Create(patient))

	patient = &models.Patient{Name: "Meena", Email: "meena@example.com", Gender: strPtr(models.GenderFemale)}
	assert.NoError(t, repo.Create(patient))
}

func TestPatientRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	patients := repository.NewPatientRepository(db)
	sessions := repository.NewExerciseSessionRepository(db)
	messages := repository.NewChatMessageRepository(db)
	reports := repository.NewPatientReportRepository(db)

	patient := createPatient(t, patients, "ravi@example.com", nil)
	other := createPatient(t, patients, "meena@example.com", nil)

	for _, owner := range []*models.Patient{patient, other} {
		require.NoError(t, sessions.Create(&models.ExerciseSession{PatientID: owner.ID, ExerciseType: "bicep-curl"}))
		require.NoError(t, messages.Create(&models.ChatMessage{PatientID: owner.ID, Sender: models.SenderPatient, Message: "hello"}))
		require.NoError(t, reports.Create(&models.PatientReport{PatientID: owner.ID, ReportType: models.ReportTypeLab, Title: "CBC"}))
	}

	require.NoError(t, patients.Delete(patient.ID))

	_, err := patients.FindByID(patient.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, table := range []interface{}{&models.ExerciseSession{}, &models.ChatMessage{}, &models.PatientReport{}} {
		var count int64
		require.NoError(t, db.Model(table).Where("patient_id = ?", patient.ID).Count(&count).Error)
		assert.Zero(t, count)

		require.NoError(t, db.Model(table).Where("patient_id = ?", other.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	}
}

func TestPatientRepository_AssignDoctor(t *testing.T) {
	db := setupTestDB(t)
	doctors := repository.NewDoctorRepository(db)
	patients := repository.NewPatientRepository(db)

	doctor := createDoctor(t, doctors, "asha@revivecare.in", "MCI-1")
	patient := createPatient(t, patients, "ravi@example.com", nil)

	require.NoError(t, patients.AssignDoctor(patient.ID, &doctor.ID))

	assigned, err := patients.FindByDoctorID(doctor.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, patient.ID, assigned[0].ID)

	reloaded, err := patients.FindByID(patient.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.AssignedDoctor)
	assert.Equal(t, "asha@revivecare.in", reloaded.AssignedDoctor.Email)

	require.NoError(t, patients.AssignDoctor(patient.ID, nil))
	assigned, err = patients.FindByDoctorID(doctor.ID)
	require.NoError(t, err)
	assert.Empty(t, assigned)

	unknown := uint(4242)
	assert.Error(t, patients.AssignDoctor(patient.ID, &unknown))
	assert.ErrorIs(t, patients.AssignDoctor(9999, nil), gorm.ErrRecordNotFound)
}

func TestPatientRepository_PasswordRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPatientRepository(db)

	patient := &models.Patient{Name: "Ravi", Email: "ravi@example.com"}
	require.NoError(t, patient.SetPassword("s3cret"))
	require.NoError(t, repo.Create(patient))

	found, err := repo.FindByEmail("ravi@example.com")
	require.NoError(t, err)
	assert.True(t, found.CheckPassword("s3cret"))
	assert.False(t, found.CheckPassword("guess"))
}
