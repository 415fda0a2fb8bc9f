package controllers_test

import (
	"net/http"
	"testing"

	"revivecare/internal/controllers"
	"revivecare/internal/middleware"
	"revivecare/internal/mocks"
	"revivecare/internal/models"
	"revivecare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type patientMocks struct {
	patients *mocks.MockPatientRepository
	sessions *mocks.MockExerciseSessionRepository
	chat     *mocks.MockChatMessageRepository
	reports  *mocks.MockPatientReportRepository
}

func setupPatientController() (*controllers.PatientController, patientMocks) {
	m := patientMocks{
		patients: new(mocks.MockPatientRepository),
		sessions: new(mocks.MockExerciseSessionRepository),
		chat:     new(mocks.MockChatMessageRepository),
		reports:  new(mocks.MockPatientReportRepository),
	}
	return controllers.NewPatientController(m.patients, m.sessions, m.chat, m.reports), m
}

func (m patientMocks) assertExpectations(t *testing.T) {
	m.patients.AssertExpectations(t)
	m.sessions.AssertExpectations(t)
	m.chat.AssertExpectations(t)
	m.reports.AssertExpectations(t)
}

func TestGetPatient(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*testing.T, patientMocks)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "own patient",
			setupMocks: func(t *testing.T, m patientMocks) {
				m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), ""), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Patient retrieved successfully",
		},
		{
			name: "another doctor's patient",
			setupMocks: func(t *testing.T, m patientMocks) {
				m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(2), ""), nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Forbidden",
		},
		{
			name: "unassigned patient",
			setupMocks: func(t *testing.T, m patientMocks) {
				m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, nil, ""), nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Forbidden",
		},
		{
			name: "missing patient",
			setupMocks: func(t *testing.T, m patientMocks) {
				m.patients.On("FindByID", uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Patient not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, m := setupPatientController()
			tt.setupMocks(t, m)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(1, middleware.RoleDoctor))
			router.GET("/patients/:id", controller.GetPatient)

			w, response := performRequest(t, router, http.MethodGet, "/patients/5", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, response["message"])
			m.assertExpectations(t)
		})
	}
}

func TestUpdatePatient(t *testing.T) {
	controller, m := setupPatientController()
	m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), ""), nil)
	m.patients.On("Update", mock.MatchedBy(func(p *models.Patient) bool {
		return p.Name == "Ravi K" && p.Info == "Week 4, full extension" && p.CheckPassword("newpassword1")
	})).Return(nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1, middleware.RoleDoctor))
	router.PUT("/patients/:id", controller.UpdatePatient)

	w, response := performRequest(t, router, http.MethodPut, "/patients/5", map[string]interface{}{
		"name":     "Ravi K",
		"email":    "ravi@example.com",
		"password": "newpassword1",
		"info":     "Week 4, full extension",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Patient updated successfully", response["message"])
	m.assertExpectations(t)
}

func TestUpdatePatientEmailTaken(t *testing.T) {
	controller, m := setupPatientController()
	m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), ""), nil)
	m.patients.On("EmailExists", "taken@example.com").Return(true, nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1, middleware.RoleDoctor))
	router.PUT("/patients/:id", controller.UpdatePatient)

	w, _ := performRequest(t, router, http.MethodPut, "/patients/5", map[string]interface{}{
		"name":  "Ravi",
		"email": "taken@example.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	m.assertExpectations(t)
}

func TestDeletePatient(t *testing.T) {
	controller, m := setupPatientController()
	m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), ""), nil)
	m.patients.On("Delete", uint(5)).Return(nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1, middleware.RoleDoctor))
	router.DELETE("/patients/:id", controller.DeletePatient)

	w, response := performRequest(t, router, http.MethodDelete, "/patients/5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Patient deleted successfully", response["message"])
	m.assertExpectations(t)
}

func TestAssignDoctor(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*testing.T, patientMocks)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "claim unassigned patient",
			requestBody: map[string]interface{}{"doctor_id": 1},
			setupMocks: func(t *testing.T, m patientMocks) {
				m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, nil, ""), nil)
				m.patients.On("AssignDoctor", uint(5), uintPtr(1)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Doctor assignment updated successfully",
		},
		{
			name:        "unassign own patient",
			requestBody: map[string]interface{}{"doctor_id": nil},
			setupMocks: func(t *testing.T, m patientMocks) {
				m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), ""), nil)
				m.patients.On("AssignDoctor", uint(5), (*uint)(nil)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Doctor assignment updated successfully",
		},
		{
			name:        "patient of another doctor",
			requestBody: map[string]interface{}{"doctor_id": 1},
			setupMocks: func(t *testing.T, m patientMocks) {
				m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(2), ""), nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Forbidden",
		},
		{
			name:        "unknown target doctor",
			requestBody: map[string]interface{}{"doctor_id": 42},
			setupMocks: func(t *testing.T, m patientMocks) {
				m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), ""), nil)
				m.patients.On("AssignDoctor", uint(5), uintPtr(42)).Return(repository.ErrInvalidReference)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Referenced record does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, m := setupPatientController()
			tt.setupMocks(t, m)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(1, middleware.RoleDoctor))
			router.PUT("/patients/:id/doctor", controller.AssignDoctor)

			w, response := performRequest(t, router, http.MethodPut, "/patients/5/doctor", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, response["message"])
			m.assertExpectations(t)
		})
	}
}

func TestGetPatientSessions(t *testing.T) {
	controller, m := setupPatientController()
	m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), ""), nil)
	m.sessions.On("FindAllByPatientID", uint(5), 3).Return([]models.ExerciseSession{{ID: 1}, {ID: 2}}, nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1, middleware.RoleDoctor))
	router.GET("/patients/:id/sessions", controller.GetPatientSessions)

	w, response := performRequest(t, router, http.MethodGet, "/patients/5/sessions?limit=3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"], 2)
	m.assertExpectations(t)
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectUpdate   bool
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "successful change",
			requestBody:    map[string]interface{}{"current_password": "recovery123", "new_password": "stronger456"},
			expectUpdate:   true,
			expectedStatus: http.StatusOK,
			expectedMsg:    "Password updated successfully",
		},
		{
			name:           "wrong current password",
			requestBody:    map[string]interface{}{"current_password": "guess", "new_password": "stronger456"},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Current password is incorrect",
		},
		{
			name:           "new password too short",
			requestBody:    map[string]interface{}{"current_password": "recovery123", "new_password": "short"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, m := setupPatientController()
			if tt.expectedStatus != http.StatusBadRequest {
				m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), "recovery123"), nil)
			}
			if tt.expectUpdate {
				m.patients.On("Update", mock.MatchedBy(func(p *models.Patient) bool {
					return p.CheckPassword("stronger456")
				})).Return(nil)
			}

			router := setupTestRouter()
			router.Use(addAuthMiddleware(5, middleware.RolePatient))
			router.PUT("/patient/me/password", controller.ChangePassword)

			w, response := performRequest(t, router, http.MethodPut, "/patient/me/password", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, response["message"])
			m.assertExpectations(t)
		})
	}
}

func TestPatchPatientMe(t *testing.T) {
	controller, m := setupPatientController()
	m.patients.On("Patch", uint(5), map[string]interface{}{"phone": "+91-9000000000", "age": 55}).Return(nil)
	m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), ""), nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(5, middleware.RolePatient))
	router.PATCH("/patient/me", controller.PatchMe)

	w, response := performRequest(t, router, http.MethodPatch, "/patient/me", map[string]interface{}{
		"phone": "+91-9000000000",
		"age":   55,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Patient updated successfully", response["message"])
	m.assertExpectations(t)
}

func TestPatientDashboard(t *testing.T) {
	controller, m := setupPatientController()
	m.patients.On("FindByID", uint(5)).Return(hashedPatient(t, 5, uintPtr(1), ""), nil)
	m.sessions.On("FindAllByPatientID", uint(5), 5).Return([]models.ExerciseSession{{ID: 1, AccuracyScore: 80}}, nil)
	m.sessions.On("GetPatientStats", uint(5)).Return(&repository.SessionStats{TotalSessions: 1, TotalReps: 12, AverageAccuracy: 80}, nil)
	m.chat.On("FindAllByPatientID", uint(5), 10).Return([]models.ChatMessage{
		{ID: 1, Sender: models.SenderPatient},
		{ID: 2, Sender: models.SenderAI, SeriousnessScore: 0.85},
	}, nil)
	m.reports.On("FindAllByPatientID", uint(5)).Return([]models.PatientReport{}, nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(5, middleware.RolePatient))
	router.GET("/patient/dashboard", controller.Dashboard)

	w, response := performRequest(t, router, http.MethodGet, "/patient/dashboard", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["serious_count"])
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(80), stats["average_accuracy"])
	m.assertExpectations(t)
}
