package controllers

import (
	"net/http"
	"strings"

	"revivecare/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	dashboardSessionLimit = 5
	dashboardChatLimit    = 10
)

type PatientController struct {
	patientRepo repository.PatientRepository
	sessionRepo repository.ExerciseSessionRepository
	chatRepo    repository.ChatMessageRepository
	reportRepo  repository.PatientReportRepository
}

func NewPatientController(
	patientRepo repository.PatientRepository,
	sessionRepo repository.ExerciseSessionRepository,
	chatRepo repository.ChatMessageRepository,
	reportRepo repository.PatientReportRepository,
) *PatientController {
	return &PatientController{
		patientRepo: patientRepo,
		sessionRepo: sessionRepo,
		chatRepo:    chatRepo,
		reportRepo:  reportRepo,
	}
}

type UpdatePatientRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Email    string  `json:"email" binding:"required,email,max=254"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Age      *int    `json:"age" binding:"omitempty,min=0,max=150"`
	Gender   *string `json:"gender" binding:"omitempty,gender"`
	Address  *string `json:"address"`
	Info     string  `json:"info" binding:"medical_info"`
	IsActive *bool   `json:"is_active"`
}

type PatchPatientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Age     *int    `json:"age" binding:"omitempty,min=0,max=150"`
	Gender  *string `json:"gender" binding:"omitempty,gender"`
	Address *string `json:"address"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type AssignDoctorRequest struct {
	// Null unassigns the patient.
	DoctorID *uint `json:"doctor_id"`
}

// GetPatient godoc
// @Summary Get a patient
// @Description Retrieve a patient assigned to the authenticated doctor
// @Tags patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} map[string]interface{} "Patient retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid patient ID"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Router /patients/{id} [get]
func (pc *PatientController) GetPatient(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "id", "patient")
	if !ok {
		return
	}

	patient, ok := loadOwnedPatient(c, pc.patientRepo, doctorID, patientID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Patient retrieved successfully",
		"data":    patient,
	})
}

// UpdatePatient godoc
// @Summary Update a patient
// @Description Replace the profile of a patient assigned to the authenticated doctor. A password resets the patient login password
// @Tags patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param patient body controllers.UpdatePatientRequest true "Patient data"
// @Success 200 {object} map[string]interface{} "Patient updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 409 {object} map[string]interface{} "Email is already registered"
// @Failure 500 {object} map[string]interface{} "Failed to update patient"
// @Router /patients/{id} [put]
func (pc *PatientController) UpdatePatient(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "id", "patient")
	if !ok {
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	patient, ok := loadOwnedPatient(c, pc.patientRepo, doctorID, patientID)
	if !ok {
		return
	}

	email := normalizeEmail(req.Email)
	if email != patient.Email {
		exists, err := pc.patientRepo.EmailExists(email)
		if err != nil {
			repositoryError(c, err, "", "Failed to update patient")
			return
		}
		if exists {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Email is already registered",
				"error":   "A patient with this email already exists",
			})
			return
		}
	}

	patient.Name = strings.TrimSpace(req.Name)
	patient.Email = email
	patient.Phone = req.Phone
	patient.Age = req.Age
	patient.Gender = req.Gender
	patient.Address = req.Address
	patient.Info = req.Info
	if req.IsActive != nil {
		patient.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if err := patient.SetPassword(*req.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to hash password",
				"error":   err.Error(),
			})
			return
		}
	}

	if err := pc.patientRepo.Update(patient); err != nil {
		repositoryError(c, err, "Patient not found", "Failed to update patient")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Patient updated successfully",
		"data":    patient,
	})
}

// DeletePatient godoc
// @Summary Delete a patient
// @Description Delete a patient together with their exercise sessions, chat history and reports
// @Tags patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} map[string]interface{} "Patient deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid patient ID"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 500 {object} map[string]interface{} "Failed to delete patient"
// @Router /patients/{id} [delete]
func (pc *PatientController) DeletePatient(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "id", "patient")
	if !ok {
		return
	}

	if _, ok := loadOwnedPatient(c, pc.patientRepo, doctorID, patientID); !ok {
		return
	}

	if err := pc.patientRepo.Delete(patientID); err != nil {
		repositoryError(c, err, "Patient not found", "Failed to delete patient")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Patient deleted successfully",
	})
}

// AssignDoctor godoc
// @Summary Assign a doctor
// @Description Move a patient to another doctor or unassign them with a null doctor_id. A doctor may also claim an unassigned patient
// @Tags patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param assignment body controllers.AssignDoctorRequest true "Doctor assignment"
// @Success 200 {object} map[string]interface{} "Doctor assignment updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 500 {object} map[string]interface{} "Failed to assign doctor"
// @Router /patients/{id}/doctor [put]
func (pc *PatientController) AssignDoctor(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "id", "patient")
	if !ok {
		return
	}

	var req AssignDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	patient, err := pc.patientRepo.FindByID(patientID)
	if err != nil {
		repositoryError(c, err, "Patient not found", "Failed to retrieve patient")
		return
	}
	if patient.AssignedDoctorID != nil && *patient.AssignedDoctorID != doctorID {
		forbidden(c, "Patient is not assigned to you")
		return
	}

	if err := pc.patientRepo.AssignDoctor(patientID, req.DoctorID); err != nil {
		repositoryError(c, err, "Patient not found", "Failed to assign doctor")
		return
	}
	patient.AssignedDoctorID = req.DoctorID
	patient.AssignedDoctor = nil

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Doctor assignment updated successfully",
		"data":    patient,
	})
}

// GetPatientSessions godoc
// @Summary List patient exercise sessions
// @Description Retrieve exercise sessions of a patient assigned to the authenticated doctor
// @Tags patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param limit query int false "Maximum number of sessions"
// @Success 200 {object} map[string]interface{} "Exercise sessions retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid patient ID"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve exercise sessions"
// @Router /patients/{id}/sessions [get]
func (pc *PatientController) GetPatientSessions(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "id", "patient")
	if !ok {
		return
	}
	if _, ok := loadOwnedPatient(c, pc.patientRepo, doctorID, patientID); !ok {
		return
	}

	sessions, err := pc.sessionRepo.FindAllByPatientID(patientID, queryLimit(c, defaultListLimit))
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

// GetPatientChat godoc
// @Summary Get patient chat history
// @Description Retrieve the chatbot history of a patient assigned to the authenticated doctor
// @Tags patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param limit query int false "Maximum number of messages"
// @Success 200 {object} map[string]interface{} "Chat history retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid patient ID"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve chat history"
// @Router /patients/{id}/chat [get]
func (pc *PatientController) GetPatientChat(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "id", "patient")
	if !ok {
		return
	}
	if _, ok := loadOwnedPatient(c, pc.patientRepo, doctorID, patientID); !ok {
		return
	}

	messages, err := pc.chatRepo.FindAllByPatientID(patientID, queryLimit(c, 0))
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve chat history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Chat history retrieved successfully",
		"data":    messages,
	})
}

// GetMe godoc
// @Summary Get the current patient
// @Description Retrieve the profile of the authenticated patient
// @Tags patient
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Patient retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Router /patient/me [get]
func (pc *PatientController) GetMe(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	patient, err := pc.patientRepo.FindByID(patientID)
	if err != nil {
		repositoryError(c, err, "Patient not found", "Failed to retrieve patient")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Patient retrieved successfully",
		"data":    patient,
	})
}

// PatchMe godoc
// @Summary Update the current patient
// @Description Update contact details of the authenticated patient. Medical info and doctor assignment stay with the doctor
// @Tags patient
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param patient body controllers.PatchPatientRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Patient updated successfully"
// @Failure 400 {object} map[string]interface{} "No fields to update"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 500 {object} map[string]interface{} "Failed to update patient"
// @Router /patient/me [patch]
func (pc *PatientController) PatchMe(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PatchPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "No fields to update",
			"error":   "Provide at least one of name, phone, age, gender, address",
		})
		return
	}

	if err := pc.patientRepo.Patch(patientID, updates); err != nil {
		repositoryError(c, err, "Patient not found", "Failed to update patient")
		return
	}

	patient, err := pc.patientRepo.FindByID(patientID)
	if err != nil {
		repositoryError(c, err, "Patient not found", "Failed to retrieve updated patient")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Patient updated successfully",
		"data":    patient,
	})
}

// ChangePassword godoc
// @Summary Change password
// @Description Change the login password of the authenticated patient
// @Tags patient
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param password body controllers.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]interface{} "Password updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Current password is incorrect"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 500 {object} map[string]interface{} "Failed to update password"
// @Router /patient/me/password [put]
func (pc *PatientController) ChangePassword(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	patient, err := pc.patientRepo.FindByID(patientID)
	if err != nil {
		repositoryError(c, err, "Patient not found", "Failed to retrieve patient")
		return
	}

	if !patient.CheckPassword(req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Current password is incorrect",
			"error":   "Authentication failed",
		})
		return
	}

	if err := patient.SetPassword(req.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to hash password",
			"error":   err.Error(),
		})
		return
	}

	if err := pc.patientRepo.Update(patient); err != nil {
		repositoryError(c, err, "Patient not found", "Failed to update password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Password updated successfully",
	})
}

// Dashboard godoc
// @Summary Get the patient dashboard
// @Description Retrieve profile, recent sessions, exercise stats, recent chat and reports of the authenticated patient
// @Tags patient
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Dashboard retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve exercise sessions"
// @Router /patient/dashboard [get]
func (pc *PatientController) Dashboard(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	patient, err := pc.patientRepo.FindByID(patientID)
	if err != nil {
		repositoryError(c, err, "Patient not found", "Failed to retrieve patient")
		return
	}

	sessions, err := pc.sessionRepo.FindAllByPatientID(patientID, dashboardSessionLimit)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve exercise sessions")
		return
	}

	stats, err := pc.sessionRepo.GetPatientStats(patientID)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve exercise stats")
		return
	}

	messages, err := pc.chatRepo.FindAllByPatientID(patientID, dashboardChatLimit)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve chat history")
		return
	}

	reports, err := pc.reportRepo.FindAllByPatientID(patientID)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve reports")
		return
	}

	alerts := 0
	for _, message := range messages {
		if message.IsSerious() {
			alerts++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Dashboard retrieved successfully",
		"data": gin.H{
			"patient":         patient,
			"recent_sessions": sessions,
			"stats":           stats,
			"recent_messages": messages,
			"serious_count":   alerts,
			"reports":         reports,
		},
	})
}
