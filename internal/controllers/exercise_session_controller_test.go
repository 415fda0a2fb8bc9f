package controllers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"revivecare/internal/controllers"
	"revivecare/internal/middleware"
	"revivecare/internal/mocks"
	"revivecare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func setupExerciseController() (*controllers.ExerciseSessionController, *mocks.MockExerciseSessionRepository) {
	repo := new(mocks.MockExerciseSessionRepository)
	return controllers.NewExerciseSessionController(repo), repo
}

func TestStartSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockExerciseSessionRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "default target reps",
			requestBody: map[string]interface{}{"exercise_type": "bicep-curl"},
			setupMocks: func(m *mocks.MockExerciseSessionRepository) {
				m.On("Create", mock.MatchedBy(func(s *models.ExerciseSession) bool {
					return s.PatientID == 5 && s.TargetReps == models.DefaultTargetReps && !s.StartTime.IsZero()
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Exercise session started",
		},
		{
			name:        "custom target reps",
			requestBody: map[string]interface{}{"exercise_type": "side-lateral-raise", "target_reps": 8},
			setupMocks: func(m *mocks.MockExerciseSessionRepository) {
				m.On("Create", mock.MatchedBy(func(s *models.ExerciseSession) bool {
					return s.TargetReps == 8
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Exercise session started",
		},
		{
			name:           "blank exercise type",
			requestBody:    map[string]interface{}{"exercise_type": "   "},
			setupMocks:     func(m *mocks.MockExerciseSessionRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Exercise type is required",
		},
		{
			name:        "repository error",
			requestBody: map[string]interface{}{"exercise_type": "bicep-curl"},
			setupMocks: func(m *mocks.MockExerciseSessionRepository) {
				m.On("Create", mock.AnythingOfType("*models.ExerciseSession")).Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to start exercise session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, repo := setupExerciseController()
			tt.setupMocks(repo)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(5, middleware.RolePatient))
			router.POST("/exercise/start", controller.StartSession)

			w, response := performRequest(t, router, http.MethodPost, "/exercise/start", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, response["message"])
			repo.AssertExpectations(t)
		})
	}
}

func TestFinishSession(t *testing.T) {
	openSession := func() *models.ExerciseSession {
		return &models.ExerciseSession{ID: 3, PatientID: 5, ExerciseType: "bicep-curl", StartTime: time.Now().Add(-10 * time.Minute), TargetReps: 12}
	}
	validBody := map[string]interface{}{
		"completed_reps": 4,
		"excellent_reps": 2,
		"good_reps":      1,
		"partial_reps":   1,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockExerciseSessionRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "successful finish",
			requestBody: validBody,
			setupMocks: func(m *mocks.MockExerciseSessionRepository) {
				m.On("FindByID", uint(3)).Return(openSession(), nil)
				m.On("Update", mock.MatchedBy(func(s *models.ExerciseSession) bool {
					return s.IsFinished() && s.CompletedReps == 4 && s.AccuracyScore == 81.3
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Exercise session finished",
		},
		{
			name:        "already finished",
			requestBody: validBody,
			setupMocks: func(m *mocks.MockExerciseSessionRepository) {
				session := openSession()
				end := time.Now()
				session.EndTime = &end
				m.On("FindByID", uint(3)).Return(session, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Exercise session already finished",
		},
		{
			name:        "session of another patient",
			requestBody: validBody,
			setupMocks: func(m *mocks.MockExerciseSessionRepository) {
				session := openSession()
				session.PatientID = 99
				m.On("FindByID", uint(3)).Return(session, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Exercise session not found",
		},
		{
			name: "graded reps exceed completed",
			requestBody: map[string]interface{}{
				"completed_reps": 2,
				"excellent_reps": 3,
			},
			setupMocks:     func(m *mocks.MockExerciseSessionRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid rep counts",
		},
		{
			name:        "missing session",
			requestBody: validBody,
			setupMocks: func(m *mocks.MockExerciseSessionRepository) {
				m.On("FindByID", uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Exercise session not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, repo := setupExerciseController()
			tt.setupMocks(repo)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(5, middleware.RolePatient))
			router.POST("/exercise/:id/finish", controller.FinishSession)

			w, response := performRequest(t, router, http.MethodPost, "/exercise/3/finish", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, response["message"])
			if tt.expectedStatus == http.StatusOK {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, 81.3, data["accuracy_score"])
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestListSessions(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedLimit int
	}{
		{name: "explicit limit", query: "?limit=5", expectedLimit: 5},
		{name: "default limit when invalid", query: "?limit=abc", expectedLimit: 20},
		{name: "default limit when missing", query: "", expectedLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, repo := setupExerciseController()
			repo.On("FindAllByPatientID", uint(5), tt.expectedLimit).Return([]models.ExerciseSession{}, nil)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(5, middleware.RolePatient))
			router.GET("/exercise", controller.ListSessions)

			w, _ := performRequest(t, router, http.MethodGet, "/exercise"+tt.query, nil)

			assert.Equal(t, http.StatusOK, w.Code)
			repo.AssertExpectations(t)
		})
	}
}

func TestGetActiveSession(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockExerciseSessionRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "open session",
			setupMocks: func(repo *mocks.MockExerciseSessionRepository) {
				repo.On("FindActiveByPatientID", uint(5)).Return(&models.ExerciseSession{ID: 8, PatientID: 5, ExerciseType: "bicep-curl"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Active exercise session retrieved successfully",
		},
		{
			name: "nothing open",
			setupMocks: func(repo *mocks.MockExerciseSessionRepository) {
				repo.On("FindActiveByPatientID", uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "No active exercise session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, repo := setupExerciseController()
			tt.setupMocks(repo)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(5, middleware.RolePatient))
			router.GET("/exercise/active", controller.GetActiveSession)
			router.GET("/exercise/:id", controller.GetSession)

			w, response := performRequest(t, router, http.MethodGet, "/exercise/active", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, response["message"])
			repo.AssertExpectations(t)
		})
	}
}

func TestDeleteSession(t *testing.T) {
	controller, repo := setupExerciseController()
	repo.On("FindByID", uint(3)).Return(&models.ExerciseSession{ID: 3, PatientID: 5}, nil)
	repo.On("Delete", uint(3)).Return(nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(5, middleware.RolePatient))
	router.DELETE("/exercise/:id", controller.DeleteSession)

	w, response := performRequest(t, router, http.MethodDelete, "/exercise/3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Exercise session deleted successfully", response["message"])
	repo.AssertExpectations(t)
}

func TestGetSessionInvalidID(t *testing.T) {
	controller, repo := setupExerciseController()

	router := setupTestRouter()
	router.Use(addAuthMiddleware(5, middleware.RolePatient))
	router.GET("/exercise/:id", controller.GetSession)

	w, response := performRequest(t, router, http.MethodGet, "/exercise/0", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid exercise session ID", response["message"])
	repo.AssertExpectations(t)
}
