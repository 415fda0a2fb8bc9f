package repository_test

import (
	"testing"
	"time"

	"revivecare/internal/models"
	"revivecare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDoctorRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDoctorRepository(db)

	doctor := createDoctor(t, repo, "asha@revivecare.in", "MCI-1")
	assert.NotZero(t, doctor.ID)
	assert.True(t, doctor.IsActive)
	assert.NotEqual(t, "doctor-pass", doctor.Password)

	found, err := repo.FindByEmail("asha@revivecare.in")
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, found.ID)
	assert.True(t, found.CheckPassword("doctor-pass"))
	assert.False(t, found.CheckPassword("wrong"))

	byID, err := repo.FindByID(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "MCI-1", byID.LicenseNumber)

	_, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDoctorRepository_UniqueEmailAndLicense(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDoctorRepository(db)

	createDoctor(t, repo, "asha@revivecare.in", "MCI-1")

	tests := []struct {
		name    string
		email   string
		license string
	}{
		{name: "duplicate email", email: "asha@revivecare.in", license: "MCI-2"},
		{name: "duplicate license", email: "other@revivecare.in", license: "MCI-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doctor := &models.Doctor{Name: "Dup", Email: tt.email, LicenseNumber: tt.license}
			require.NoError(t, doctor.SetPassword("x"))
			assert.Error(t, repo.Create(doctor))
		})
	}

	exists, err := repo.EmailExists("asha@revivecare.in")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.LicenseExists("MCI-404")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDoctorRepository_DeleteNullsReferences(t *testing.T) {
	db := setupTestDB(t)
	doctors := repository.NewDoctorRepository(db)
	patients := repository.NewPatientRepository(db)
	reports := repository.NewPatientReportRepository(db)

	doctor := createDoctor(t, doctors, "asha@revivecare.in", "MCI-1")
	patient := createPatient(t, patients, "ravi@example.com", &doctor.ID)

	report := &models.PatientReport{
		PatientID:    patient.ID,
		ReportType:   models.ReportTypeImaging,
		Title:        "Knee MRI",
		UploadedByID: &doctor.ID,
	}
	require.NoError(t, reports.Create(report))

	require.NoError(t, doctors.Delete(doctor.ID))

	reloadedPatient, err := patients.FindByID(patient.ID)
	require.NoError(t, err)
	assert.Nil(t, reloadedPatient.AssignedDoctorID)
	assert.Nil(t, reloadedPatient.AssignedDoctor)

	reloadedReport, err := reports.FindByID(report.ID)
	require.NoError(t, err)
	assert.Nil(t, reloadedReport.UploadedByID)

	assert.ErrorIs(t, doctors.Delete(doctor.ID), gorm.ErrRecordNotFound)
}

func TestDoctorRepository_FindAllNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDoctorRepository(db)

	first := createDoctor(t, repo, "a@revivecare.in", "MCI-1")
	second := createDoctor(t, repo, "b@revivecare.in", "MCI-2")
	require.NoError(t, db.Model(first).UpdateColumn("created_at", second.CreatedAt.Add(-time.Minute)).Error)

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestDoctorRepository_Patch(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDoctorRepository(db)
	doctor := createDoctor(t, repo, "asha@revivecare.in", "MCI-1")

	require.NoError(t, repo.Patch(doctor.ID, map[string]interface{}{"phone": "+91-111", "is_active": false}))

	updated, err := repo.FindByID(doctor.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+91-111", *updated.Phone)
	assert.False(t, updated.IsActive)

	assert.ErrorIs(t, repo.Patch(9999, map[string]interface{}{"phone": "x"}), gorm.ErrRecordNotFound)
}
