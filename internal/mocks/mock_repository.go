package mocks

import (
	"context"
	"revivecare/internal/models"
	"revivecare/internal/openai"
	"revivecare/internal/repository"
	"time"

	"github.com/stretchr/testify/mock"
)

// Shared MockDoctorRepository
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) FindByID(id uint) (*models.Doctor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindByEmail(email string) (*models.Doctor, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindAll() ([]models.Doctor, error) {
	args := m.Called()
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Update(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) Patch(id uint, data map[string]interface{}) error {
	args := m.Called(id, data)
	return args.Error(0)
}

func (m *MockDoctorRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDoctorRepository) EmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockDoctorRepository) LicenseExists(licenseNumber string) (bool, error) {
	args := m.Called(licenseNumber)
	return args.Bool(0), args.Error(1)
}

// Shared MockPatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(patient *models.Patient) error {
	args := m.Called(patient)
	return args.Error(0)
}

func (m *MockPatientRepository) FindByID(id uint) (*models.Patient, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByEmail(email string) (*models.Patient, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindAll() ([]models.Patient, error) {
	args := m.Called()
	return args.Get(0).([]models.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByDoctorID(doctorID uint) ([]models.Patient, error) {
	args := m.Called(doctorID)
	return args.Get(0).([]models.Patient), args.Error(1)
}

func (m *MockPatientRepository) Update(patient *models.Patient) error {
	args := m.Called(patient)
	return args.Error(0)
}

func (m *MockPatientRepository) Patch(id uint, data map[string]interface{}) error {
	args := m.Called(id, data)
	return args.Error(0)
}

func (m *MockPatientRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPatientRepository) EmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockPatientRepository) AssignDoctor(patientID uint, doctorID *uint) error {
	args := m.Called(patientID, doctorID)
	return args.Error(0)
}

// Shared MockExerciseSessionRepository
type MockExerciseSessionRepository struct {
	mock.Mock
}

func (m *MockExerciseSessionRepository) Create(session *models.ExerciseSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockExerciseSessionRepository) FindByID(id uint) (*models.ExerciseSession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExerciseSession), args.Error(1)
}

func (m *MockExerciseSessionRepository) FindAllByPatientID(patientID uint, limit int) ([]models.ExerciseSession, error) {
	args := m.Called(patientID, limit)
	return args.Get(0).([]models.ExerciseSession), args.Error(1)
}

func (m *MockExerciseSessionRepository) FindActiveByPatientID(patientID uint) (*models.ExerciseSession, error) {
	args := m.Called(patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExerciseSession), args.Error(1)
}

func (m *MockExerciseSessionRepository) Update(session *models.ExerciseSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockExerciseSessionRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockExerciseSessionRepository) CloseStale(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExerciseSessionRepository) GetPatientStats(patientID uint) (*repository.SessionStats, error) {
	args := m.Called(patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SessionStats), args.Error(1)
}

// Shared MockChatMessageRepository
type MockChatMessageRepository struct {
	mock.Mock
}

func (m *MockChatMessageRepository) Create(message *models.ChatMessage) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockChatMessageRepository) FindAllByPatientID(patientID uint, limit int) ([]models.ChatMessage, error) {
	args := m.Called(patientID, limit)
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockChatMessageRepository) FindSeriousByDoctorID(doctorID uint, threshold float64) ([]models.ChatMessage, error) {
	args := m.Called(doctorID, threshold)
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockChatMessageRepository) DeleteByPatientID(patientID uint) (int64, error) {
	args := m.Called(patientID)
	return args.Get(0).(int64), args.Error(1)
}

// Shared MockPatientReportRepository
type MockPatientReportRepository struct {
	mock.Mock
}

func (m *MockPatientReportRepository) Create(report *models.PatientReport) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockPatientReportRepository) FindByID(id uint) (*models.PatientReport, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PatientReport), args.Error(1)
}

func (m *MockPatientReportRepository) FindAllByPatientID(patientID uint) ([]models.PatientReport, error) {
	args := m.Called(patientID)
	return args.Get(0).([]models.PatientReport), args.Error(1)
}

func (m *MockPatientReportRepository) FindByUploaderID(doctorID uint) ([]models.PatientReport, error) {
	args := m.Called(doctorID)
	return args.Get(0).([]models.PatientReport), args.Error(1)
}

func (m *MockPatientReportRepository) Update(report *models.PatientReport) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockPatientReportRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAssistant stands in for the OpenAI client.
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) GenerateReply(ctx context.Context, history []models.ChatMessage, message, language string) (*openai.AssistantReply, openai.TokenUsage, error) {
	args := m.Called(ctx, history, message, language)
	if args.Get(0) == nil {
		return nil, args.Get(1).(openai.TokenUsage), args.Error(2)
	}
	return args.Get(0).(*openai.AssistantReply), args.Get(1).(openai.TokenUsage), args.Error(2)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifySeriousMessage(doctor *models.Doctor, patient *models.Patient, message *models.ChatMessage) error {
	args := m.Called(doctor, patient, message)
	return args.Error(0)
}
