package controllers

import (
	"net/http"
	"strings"
	"time"

	"revivecare/internal/models"
	"revivecare/internal/repository"

	"github.com/gin-gonic/gin"
)

type ExerciseSessionController struct {
	repo repository.ExerciseSessionRepository
}

func NewExerciseSessionController(repo repository.ExerciseSessionRepository) *ExerciseSessionController {
	return &ExerciseSessionController{repo: repo}
}

type StartSessionRequest struct {
	ExerciseType string `json:"exercise_type" binding:"required,max=50"`
	TargetReps   int    `json:"target_reps" binding:"omitempty,min=1,max=500"`
}

// FinishSessionRequest carries the rep counts graded by the pose tracker.
type FinishSessionRequest struct {
	CompletedReps int     `json:"completed_reps" binding:"min=0"`
	ExcellentReps int     `json:"excellent_reps" binding:"min=0"`
	GoodReps      int     `json:"good_reps" binding:"min=0"`
	PartialReps   int     `json:"partial_reps" binding:"min=0"`
	Notes         *string `json:"notes"`
}

func sessionNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  "error",
		"message": "Exercise session not found",
		"error":   "No exercise session exists with the provided ID",
	})
}

// loadOwnedSession fetches a session and hides sessions of other patients.
func (ec *ExerciseSessionController) loadOwnedSession(c *gin.Context, patientID uint) (*models.ExerciseSession, bool) {
	sessionID, ok := parseIDParam(c, "id", "exercise session")
	if !ok {
		return nil, false
	}

	session, err := ec.repo.FindByID(sessionID)
	if err != nil {
		repositoryError(c, err, "Exercise session not found", "Failed to retrieve exercise session")
		return nil, false
	}
	if session.PatientID != patientID {
		sessionNotFound(c)
		return nil, false
	}
	return session, true
}

// StartSession godoc
// @Summary Start an exercise session
// @Description Open an exercise session for the authenticated patient
// @Tags exercise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body controllers.StartSessionRequest true "Exercise to start"
// @Success 201 {object} map[string]interface{} "Exercise session started"
// @Failure 400 {object} map[string]interface{} "Exercise type is required"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 500 {object} map[string]interface{} "Failed to start exercise session"
// @Router /exercise/start [post]
func (ec *ExerciseSessionController) StartSession(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	exerciseType := strings.TrimSpace(req.ExerciseType)
	if exerciseType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Exercise type is required",
			"error":   "exercise_type must not be blank",
		})
		return
	}

	session := models.ExerciseSession{
		PatientID:    patientID,
		ExerciseType: exerciseType,
		StartTime:    time.Now(),
		TargetReps:   req.TargetReps,
	}
	if session.TargetReps == 0 {
		session.TargetReps = models.DefaultTargetReps
	}

	if err := ec.repo.Create(&session); err != nil {
		repositoryError(c, err, "", "Failed to start exercise session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Exercise session started",
		"data":    session,
	})
}

// FinishSession godoc
// @Summary Finish an exercise session
// @Description Record the graded reps, close the session and return its accuracy score
// @Tags exercise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise session ID"
// @Param reps body controllers.FinishSessionRequest true "Graded rep counts"
// @Success 200 {object} map[string]interface{} "Exercise session finished"
// @Failure 400 {object} map[string]interface{} "Invalid rep counts"
// @Failure 404 {object} map[string]interface{} "Exercise session not found"
// @Failure 409 {object} map[string]interface{} "Exercise session already finished"
// @Failure 500 {object} map[string]interface{} "Failed to finish exercise session"
// @Router /exercise/{id}/finish [post]
func (ec *ExerciseSessionController) FinishSession(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req FinishSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.ExcellentReps+req.GoodReps+req.PartialReps > req.CompletedReps {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid rep counts",
			"error":   "excellent, good and partial reps cannot exceed completed reps",
		})
		return
	}

	session, ok := ec.loadOwnedSession(c, patientID)
	if !ok {
		return
	}
	if session.IsFinished() {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Exercise session already finished",
			"error":   "Start a new session to record more reps",
		})
		return
	}

	now := time.Now()
	session.EndTime = &now
	session.CompletedReps = req.CompletedReps
	session.ExcellentReps = req.ExcellentReps
	session.GoodReps = req.GoodReps
	session.PartialReps = req.PartialReps
	session.Notes = req.Notes
	session.AccuracyScore = session.ComputeAccuracy()

	if err := ec.repo.Update(session); err != nil {
		repositoryError(c, err, "Exercise session not found", "Failed to finish exercise session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Exercise session finished",
		"data":    session,
	})
}

// ListSessions godoc
// @Summary List my exercise sessions
// @Description Retrieve the exercise sessions of the authenticated patient, newest first
// @Tags exercise
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of sessions"
// @Success 200 {object} map[string]interface{} "Exercise sessions retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve exercise sessions"
// @Router /exercise [get]
func (ec *ExerciseSessionController) ListSessions(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessions, err := ec.repo.FindAllByPatientID(patientID, queryLimit(c, defaultListLimit))
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve exercise sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Exercise sessions retrieved successfully",
		"data":    sessions,
	})
}

// GetActiveSession godoc
// @Summary Get the active exercise session
// @Description Retrieve the session the authenticated patient has open, if any
// @Tags exercise
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Active exercise session retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 404 {object} map[string]interface{} "No active exercise session"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve active exercise session"
// @Router /exercise/active [get]
func (ec *ExerciseSessionController) GetActiveSession(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := ec.repo.FindActiveByPatientID(patientID)
	if err != nil {
		repositoryError(c, err, "No active exercise session", "Failed to retrieve active exercise session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Active exercise session retrieved successfully",
		"data":    session,
	})
}

// GetSession godoc
// @Summary Get an exercise session
// @Description Retrieve one exercise session of the authenticated patient
// @Tags exercise
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise session ID"
// @Success 200 {object} map[string]interface{} "Exercise session retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid exercise session ID"
// @Failure 404 {object} map[string]interface{} "Exercise session not found"
// @Router /exercise/{id} [get]
func (ec *ExerciseSessionController) GetSession(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, ok := ec.loadOwnedSession(c, patientID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Exercise session retrieved successfully",
		"data":    session,
	})
}

// DeleteSession godoc
// @Summary Delete an exercise session
// @Description Delete one exercise session of the authenticated patient
// @Tags exercise
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise session ID"
// @Success 200 {object} map[string]interface{} "Exercise session deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid exercise session ID"
// @Failure 404 {object} map[string]interface{} "Exercise session not found"
// @Failure 500 {object} map[string]interface{} "Failed to delete exercise session"
// @Router /exercise/{id} [delete]
func (ec *ExerciseSessionController) DeleteSession(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, ok := ec.loadOwnedSession(c, patientID)
	if !ok {
		return
	}

	if err := ec.repo.Delete(session.ID); err != nil {
		repositoryError(c, err, "Exercise session not found", "Failed to delete exercise session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Exercise session deleted successfully",
	})
}
