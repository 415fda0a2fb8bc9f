package utils

import (
	"fmt"
	"log"
	mathrand "math/rand"
	"strconv"
	"strings"
	"time"

	"revivecare/internal/models"

	"gorm.io/gorm"
)

const (
	DefaultNumDoctors  = 5
	DefaultNumPatients = 50

	// TestAccountPassword is the login password of every seeded account.
	TestAccountPassword = "TestPassword123!"

	seedBatchSize = 100
)

var (
	seedExerciseTypes = []string{"side-lateral-raise", "bicep-curl", "knee-extension", "shoulder-press"}
	seedSpecialties   = []string{"Orthopedics", "Physiotherapy", "Sports Medicine", "Neurology"}
	seedGenders       = []string{models.GenderMale, models.GenderFemale, models.GenderOther}
	seedConditions    = []string{
		"Post ACL reconstruction, week %d.",
		"Rotator cuff repair, week %d of rehab.",
		"Total knee replacement, week %d.",
		"Frozen shoulder, physiotherapy week %d.",
	}
)

type SeedSummary struct {
	Doctors  int
	Patients int
	Sessions int
	Messages int
	Reports  int
}

const (
	testDoctorPrefix  = "testdoctor"
	testPatientPrefix = "testpatient"
	testEmailDomain   = "@example.com"
)

func testDoctorEmail(index int) string {
	return fmt.Sprintf("%s%d%s", testDoctorPrefix, index, testEmailDomain)
}

func testPatientEmail(index int) string {
	return fmt.Sprintf("%s%d%s", testPatientPrefix, index, testEmailDomain)
}

// nextTestIndex returns one past the highest test account index in use, so
// seeding after a partial delete never reuses an existing email.
func nextTestIndex(tx *gorm.DB, model interface{}, prefix string) (int, error) {
	var emails []string
	if err := tx.Model(model).
		Where("email LIKE ?", prefix+"%"+testEmailDomain).
		Pluck("email", &emails).Error; err != nil {
		return 0, fmt.Errorf("failed to read existing test emails: %w", err)
	}

	highest := 0
	for _, email := range emails {
		digits := strings.TrimSuffix(strings.TrimPrefix(email, prefix), testEmailDomain)
		index, err := strconv.Atoi(digits)
		if err == nil && index > highest {
			highest = index
		}
	}
	return highest + 1, nil
}

// SeedDemoData creates test doctors and patients with exercise, chat and
// report history. Patients are spread round-robin across the new doctors.
func SeedDemoData(db *gorm.DB, numDoctors, numPatients int) (*SeedSummary, error) {
	if numDoctors <= 0 {
		return nil, fmt.Errorf("at least one doctor is required")
	}

	r := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	summary := &SeedSummary{}

	// Hash once; bcrypt per row would dominate the run time.
	var template models.Doctor
	if err := template.SetPassword(TestAccountPassword); err != nil {
		return nil, err
	}
	hashed := template.Password

	start := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		nextDoctor, err := nextTestIndex(tx, &models.Doctor{}, testDoctorPrefix)
		if err != nil {
			return err
		}

		doctors := make([]models.Doctor, 0, numDoctors)
		for i := 0; i < numDoctors; i++ {
			doctors = append(doctors, generateDoctor(nextDoctor+i, hashed, r))
		}
		if err := tx.CreateInBatches(&doctors, seedBatchSize).Error; err != nil {
			return fmt.Errorf("failed to seed doctors: %w", err)
		}
		summary.Doctors = len(doctors)

		nextPatient, err := nextTestIndex(tx, &models.Patient{}, testPatientPrefix)
		if err != nil {
			return err
		}

		for batchStart := 0; batchStart < numPatients; batchStart += seedBatchSize {
			batchEnd := batchStart + seedBatchSize
			if batchEnd > numPatients {
				batchEnd = numPatients
			}

			patients := make([]models.Patient, 0, batchEnd-batchStart)
			for i := batchStart; i < batchEnd; i++ {
				doctorID := doctors[i%len(doctors)].ID
				patients = append(patients, generatePatient(nextPatient+i, hashed, doctorID, r))
			}
			if err := tx.Create(&patients).Error; err != nil {
				return fmt.Errorf("failed to seed patients: %w", err)
			}
			summary.Patients += len(patients)

			for _, patient := range patients {
				counts, err := seedPatientHistory(tx, patient, r)
				if err != nil {
					return err
				}
				summary.Sessions += counts.Sessions
				summary.Messages += counts.Messages
				summary.Reports += counts.Reports
			}
			log.Printf("Seeded %d/%d patients", summary.Patients, numPatients)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Seeding finished in %v: %d doctors, %d patients, %d sessions, %d messages, %d reports",
		time.Since(start), summary.Doctors, summary.Patients, summary.Sessions, summary.Messages, summary.Reports)
	return summary, nil
}

func seedPatientHistory(tx *gorm.DB, patient models.Patient, r *mathrand.Rand) (SeedSummary, error) {
	var counts SeedSummary
	now := time.Now()

	sessions := make([]models.ExerciseSession, 0, 3)
	for day := 3; day >= 1; day-- {
		startTime := now.Add(-time.Duration(day)*24*time.Hour + time.Duration(r.Intn(60))*time.Minute)
		endTime := startTime.Add(time.Duration(10+r.Intn(15)) * time.Minute)
		completed := 8 + r.Intn(5)
		excellent := r.Intn(completed + 1)
		good := r.Intn(completed - excellent + 1)
		partial := completed - excellent - good
		sessions = append(sessions, models.ExerciseSession{
			PatientID:     patient.ID,
			ExerciseType:  seedExerciseTypes[r.Intn(len(seedExerciseTypes))],
			StartTime:     startTime,
			EndTime:       &endTime,
			TargetReps:    models.DefaultTargetReps,
			CompletedReps: completed,
			ExcellentReps: excellent,
			GoodReps:      good,
			PartialReps:   partial,
		})
	}
	if err := tx.Create(&sessions).Error; err != nil {
		return counts, fmt.Errorf("failed to seed sessions for patient %d: %w", patient.ID, err)
	}
	counts.Sessions = len(sessions)

	messages := []models.ChatMessage{
		{PatientID: patient.ID, Sender: models.SenderPatient, Message: "My knee feels stiff in the morning.", Timestamp: now.Add(-2 * time.Hour)},
		{PatientID: patient.ID, Sender: models.SenderAI, Message: "Morning stiffness is common. Gentle range-of-motion exercises usually help.", SeriousnessScore: 0.2, Timestamp: now.Add(-2*time.Hour + time.Minute)},
	}
	if r.Intn(5) == 0 {
		messages = append(messages,
			models.ChatMessage{PatientID: patient.ID, Sender: models.SenderPatient, Message: "The wound is red and warm and I have a fever.", Timestamp: now.Add(-time.Hour)},
			models.ChatMessage{PatientID: patient.ID, Sender: models.SenderAI, Message: "These can be signs of infection. Please contact your doctor today.", SeriousnessScore: 0.85, Timestamp: now.Add(-time.Hour + time.Minute)},
		)
	}
	if err := tx.Create(&messages).Error; err != nil {
		return counts, fmt.Errorf("failed to seed chat for patient %d: %w", patient.ID, err)
	}
	counts.Messages = len(messages)

	report := models.PatientReport{
		PatientID:    patient.ID,
		ReportType:   models.ReportTypeDischarge,
		Title:        "Discharge summary",
		UploadedByID: patient.AssignedDoctorID,
	}
	if err := tx.Create(&report).Error; err != nil {
		return counts, fmt.Errorf("failed to seed report for patient %d: %w", patient.ID, err)
	}
	counts.Reports = 1

	return counts, nil
}

func generateDoctor(index int, hashedPassword string, r *mathrand.Rand) models.Doctor {
	specialty := seedSpecialties[r.Intn(len(seedSpecialties))]
	phone := fmt.Sprintf("+91-98%08d", r.Intn(100000000))
	return models.Doctor{
		Name:          fmt.Sprintf("Test Doctor %d", index),
		Email:         testDoctorEmail(index),
		Password:      hashedPassword,
		Specialty:     &specialty,
		LicenseNumber: fmt.Sprintf("TEST-%06d", index),
		Phone:         &phone,
		IsActive:      true,
	}
}

func generatePatient(index int, hashedPassword string, doctorID uint, r *mathrand.Rand) models.Patient {
	password := hashedPassword
	age := 25 + r.Intn(50)
	gender := seedGenders[r.Intn(len(seedGenders))]
	return models.Patient{
		Name:             fmt.Sprintf("Test Patient %d", index),
		Email:            testPatientEmail(index),
		Password:         &password,
		Age:              &age,
		Gender:           &gender,
		Info:             fmt.Sprintf(seedConditions[r.Intn(len(seedConditions))], 1+r.Intn(12)),
		IsActive:         true,
		AssignedDoctorID: &doctorID,
	}
}

// GetTableCounts returns the row count of every table.
func GetTableCounts(db *gorm.DB) (map[string]int64, error) {
	tables := map[string]interface{}{
		"doctors":           &models.Doctor{},
		"patients":          &models.Patient{},
		"exercise_sessions": &models.ExerciseSession{},
		"chat_messages":     &models.ChatMessage{},
		"patient_reports":   &models.PatientReport{},
	}

	counts := make(map[string]int64, len(tables))
	for name, model := range tables {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}
		counts[name] = count
	}
	return counts, nil
}
