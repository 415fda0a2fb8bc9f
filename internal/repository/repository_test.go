package repository_test

import (
	"testing"

	"revivecare/database"
	"revivecare/internal/models"
	"revivecare/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	models.PasswordCost = bcrypt.MinCost

	db, err := database.OpenSQLiteMemory(uuid.NewString())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func createDoctor(t *testing.T, repo repository.DoctorRepository, email, license string) *models.Doctor {
	t.Helper()
	doctor := &models.Doctor{
		Name:          "Asha Verma",
		Email:         email,
		LicenseNumber: license,
		Specialty:     strPtr("Orthopedics"),
	}
	require.NoError(t, doctor.SetPassword("doctor-pass"))
	require.NoError(t, repo.Create(doctor))
	return doctor
}

func createPatient(t *testing.T, repo repository.PatientRepository, email string, doctorID *uint) *models.Patient {
	t.Helper()
	patient := &models.Patient{
		Name:             "Ravi Kumar",
		Email:            email,
		Info:             "Post ACL reconstruction",
		AssignedDoctorID: doctorID,
	}
	require.NoError(t, repo.Create(patient))
	return patient
}
