package repository_test

import (
	"testing"
	"time"

	"revivecare/internal/models"
	"revivecare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMessageRepository_OrderedOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	patient := createPatient(t, repository.NewPatientRepository(db), "ravi@example.com", nil)
	repo := repository.NewChatMessageRepository(db)

	base := time.Now().Add(-time.Hour)
	texts := []string{"third", "first", "second"}
	offsets := []time.Duration{30 * time.Minute, 0, 10 * time.Minute}
	for i, text := range texts {
		require.NoError(t, repo.Create(&models.ChatMessage{
			PatientID: patient.ID,
			Sender:    models.SenderPatient,
			Message:   text,
			Timestamp: base.Add(offsets[i]),
		}))
	}

	all, err := repo.FindAllByPatientID(patient.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Message)
	assert.Equal(t, "second", all[1].Message)
	assert.Equal(t, "third", all[2].Message)
	assert.Equal(t, models.LanguageEnglish, all[0].Language)

	recent, err := repo.FindAllByPatientID(patient.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[0].Message)
	assert.Equal(t, "third", recent[1].Message)
}

func TestChatMessageRepository_RejectsInvalidValues(t *testing.T) {
	db := setupTestDB(t)
	patient := createPatient(t, repository.NewPatientRepository(db), "ravi@example.com", nil)
	repo := repository.NewChatMessageRepository(db)

	assert.Error(t, repo.Create(&models.ChatMessage{PatientID: patient.ID, Sender: "doctor", Message: "hi"}))
	assert.Error(t, repo.Create(&models.ChatMessage{PatientID: patient.ID, Sender: models.SenderAI, Message: "hi", SeriousnessScore: 1.5}))
	assert.Error(t, repo.Create(&models.ChatMessage{PatientID: 9999, Sender: models.SenderAI, Message: "orphan"}))
}

func TestChatMessageRepository_FindSeriousByDoctorID(t *testing.T) {
	db := setupTestDB(t)
	doctor := createDoctor(t, repository.NewDoctorRepository(db), "asha@revivecare.in", "MCI-1")
	patients := repository.NewPatientRepository(db)
	mine := createPatient(t, patients, "ravi@example.com", &doctor.ID)
	notMine := createPatient(t, patients, "meena@example.com", nil)
	repo := repository.NewChatMessageRepository(db)

	require.NoError(t, repo.Create(&models.ChatMessage{PatientID: mine.ID, Sender: models.SenderAI, Message: "see a doctor", SeriousnessScore: 0.9}))
	require.NoError(t, repo.Create(&models.ChatMessage{PatientID: mine.ID, Sender: models.SenderAI, Message: "rest well", SeriousnessScore: 0.3}))
	require.NoError(t, repo.Create(&models.ChatMessage{PatientID: notMine.ID, Sender: models.SenderAI, Message: "urgent", SeriousnessScore: 0.95}))

	serious, err := repo.FindSeriousByDoctorID(doctor.ID, models.SeriousThreshold)
	require.NoError(t, err)
	require.Len(t, serious, 1)
	assert.Equal(t, "see a doctor", serious[0].Message)
}

func TestChatMessageRepository_DeleteByPatientID(t *testing.T) {
	db := setupTestDB(t)
	patient := createPatient(t, repository.NewPatientRepository(db), "ravi@example.com", nil)
	repo := repository.NewChatMessageRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.ChatMessage{PatientID: patient.ID, Sender: models.SenderPatient, Message: "hi"}))
	}

	deleted, err := repo.DeleteByPatientID(patient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	remaining, err := repo.FindAllByPatientID(patient.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
