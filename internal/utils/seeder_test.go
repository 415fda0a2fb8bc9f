package utils

import (
	"context"
	"fmt"
	"testing"

	"revivecare/database"
	"revivecare/internal/models"

	"revivecare/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
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

func TestSeedDemoData(t *testing.T) {
	db := setupSeedDB(t)

	summary, err := SeedDemoData(db, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Doctors)
	assert.Equal(t, 5, summary.Patients)
	assert.Equal(t, 15, summary.Sessions)
	assert.Equal(t, 5, summary.Reports)

	counts, err := GetTableCounts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["doctors"])
	assert.Equal(t, int64(5), counts["patients"])
	assert.Equal(t, int64(15), counts["exercise_sessions"])
	assert.Equal(t, int64(summary.Messages), counts["chat_messages"])
	assert.Equal(t, int64(5), counts["patient_reports"])

	var patient models.Patient
	require.NoError(t, db.Where("email = ?", "testpatient2@example.com").First(&patient).Error)
	assert.True(t, patient.CheckPassword(TestAccountPassword))
	require.NotNil(t, patient.AssignedDoctorID)

	var doctor models.Doctor
	require.NoError(t, db.First(&doctor, *patient.AssignedDoctorID).Error)
	assert.Equal(t, "testdoctor2@example.com", doctor.Email)
	assert.True(t, doctor.CheckPassword(TestAccountPassword))

	var sessions []models.ExerciseSession
	require.NoError(t, db.Where("patient_id = ?", patient.ID).Find(&sessions).Error)
	for _, s := range sessions {
		assert.Equal(t, s.CompletedReps, s.ExcellentReps+s.GoodReps+s.PartialReps)
		assert.NotNil(t, s.EndTime)
	}
}

func TestSeedDemoDataRequiresDoctor(t *testing.T) {
	db := setupSeedDB(t)

	_, err := SeedDemoData(db, 0, 5)
	assert.Error(t, err)
}

func TestSeedDemoDataTwiceDoesNotCollide(t *testing.T) {
	db := setupSeedDB(t)

	_, err := SeedDemoData(db, 1, 2)
	require.NoError(t, err)
	_, err = SeedDemoData(db, 1, 2)
	require.NoError(t, err)

	counts, err := GetTableCounts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["doctors"])
	assert.Equal(t, int64(4), counts["patients"])
}

func TestCheckForDuplicateEmails(t *testing.T) {
	db := setupSeedDB(t)
	_, err := SeedDemoData(db, 1, 3)
	require.NoError(t, err)

	duplicates, err := CheckForDuplicateEmails(db, 2, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"testpatient2@example.com", "testpatient3@example.com"}, duplicates)

	_, err = CheckForDuplicateEmails(db, 5, 1)
	assert.Error(t, err)
}

func TestDeleteTestAccounts(t *testing.T) {
	db := setupSeedDB(t)
	_, err := SeedDemoData(db, 1, 3)
	require.NoError(t, err)

	deleted, err := DeleteTestAccounts(db, nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	counts, err := GetTableCounts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts["doctors"])
	assert.Equal(t, int64(1), counts["patients"])
	assert.Equal(t, int64(3), counts["exercise_sessions"])
	assert.Equal(t, int64(1), counts["patient_reports"])

	var remaining models.Patient
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, "testpatient3@example.com", remaining.Email)
	assert.Nil(t, remaining.AssignedDoctorID)
}

func TestSeedAfterPartialDeleteDoesNotCollide(t *testing.T) {
	db := setupSeedDB(t)
	_, err := SeedDemoData(db, 2, 2)
	require.NoError(t, err)

	_, err = DeleteTestAccounts(db, nil, 1, 1)
	require.NoError(t, err)

	summary, err := SeedDemoData(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Doctors)

	var doctor models.Doctor
	require.NoError(t, db.Where("email = ?", "testdoctor3@example.com").First(&doctor).Error)
	assert.Equal(t, "TEST-000003", doctor.LicenseNumber)

	var patient models.Patient
	require.NoError(t, db.Where("email = ?", "testpatient3@example.com").First(&patient).Error)
	assert.Equal(t, doctor.ID, *patient.AssignedDoctorID)
}

func TestNextTestIndexIgnoresOtherEmails(t *testing.T) {
	db := setupSeedDB(t)
	require.NoError(t, db.Create(&models.Doctor{
		Name: "Asha Verma", Email: "testdoctorx@example.com", Password: "x", LicenseNumber: "LIC-1",
	}).Error)
	require.NoError(t, db.Create(&models.Doctor{
		Name: "Test Doctor 7", Email: "testdoctor7@example.com", Password: "x", LicenseNumber: "TEST-000007",
	}).Error)

	next, err := nextTestIndex(db, &models.Doctor{}, testDoctorPrefix)
	require.NoError(t, err)
	assert.Equal(t, 8, next)

	next, err = nextTestIndex(db, &models.Patient{}, testPatientPrefix)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestDeleteTestAccountsClearsDoctorCache(t *testing.T) {
	db := setupSeedDB(t)
	_, err := SeedDemoData(db, 2, 0)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cached := repository.NewCachedDoctorRepository(db, rdb)
	var ids []uint
	require.NoError(t, db.Model(&models.Doctor{}).Order("id").Pluck("id", &ids).Error)
	require.Len(t, ids, 2)
	for _, id := range ids {
		_, err := cached.FindByID(id)
		require.NoError(t, err)
		require.True(t, mr.Exists(fmt.Sprintf("doctor:%d", id)))
	}

	deleted, err := DeleteTestAccounts(db, rdb, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	assert.False(t, mr.Exists(fmt.Sprintf("doctor:%d", ids[0])))
	assert.True(t, mr.Exists(fmt.Sprintf("doctor:%d", ids[1])))

	_, err = cached.FindByID(ids[0])
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	keys, err := rdb.Keys(context.Background(), "doctor:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}
