package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"revivecare/internal/models"
	"revivecare/internal/repository"
	"revivecare/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DoctorController struct {
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	chatRepo    repository.ChatMessageRepository
}

func NewDoctorController(doctorRepo repository.DoctorRepository, patientRepo repository.PatientRepository, chatRepo repository.ChatMessageRepository) *DoctorController {
	return &DoctorController{doctorRepo: doctorRepo, patientRepo: patientRepo, chatRepo: chatRepo}
}

type PatchDoctorRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	Specialty *string `json:"specialty" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
}

type CreatePatientRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Email    string  `json:"email" binding:"required,email,max=254"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Age      *int    `json:"age" binding:"omitempty,min=0,max=150"`
	Gender   *string `json:"gender" binding:"omitempty,gender"`
	Address  *string `json:"address"`
	Info     string  `json:"info" binding:"medical_info"`
}

// GetMe godoc
// @Summary Get the current doctor
// @Description Retrieve the profile of the authenticated doctor
// @Tags doctors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Doctor retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 404 {object} map[string]interface{} "Doctor not found"
// @Router /doctors/me [get]
func (dc *DoctorController) GetMe(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	doctor, err := dc.doctorRepo.FindByID(doctorID)
	if err != nil {
		repositoryError(c, err, "Doctor not found", "Failed to retrieve doctor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Doctor retrieved successfully",
		"data":    doctor,
	})
}

// PatchMe godoc
// @Summary Update the current doctor
// @Description Update name, specialty or phone of the authenticated doctor. Email, license and password are not editable here
// @Tags doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param doctor body controllers.PatchDoctorRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Doctor updated successfully"
// @Failure 400 {object} map[string]interface{} "No fields to update"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 404 {object} map[string]interface{} "Doctor not found"
// @Failure 500 {object} map[string]interface{} "Failed to update doctor"
// @Router /doctors/me [patch]
func (dc *DoctorController) PatchMe(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PatchDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Specialty != nil {
		updates["specialty"] = *req.Specialty
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "No fields to update",
			"error":   "Provide at least one of name, specialty, phone",
		})
		return
	}

	if err := dc.doctorRepo.Patch(doctorID, updates); err != nil {
		repositoryError(c, err, "Doctor not found", "Failed to update doctor")
		return
	}

	doctor, err := dc.doctorRepo.FindByID(doctorID)
	if err != nil {
		repositoryError(c, err, "Doctor not found", "Failed to retrieve updated doctor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Doctor updated successfully",
		"data":    doctor,
	})
}

// ListDoctors godoc
// @Summary List doctors
// @Description Retrieve all doctors, newest first
// @Tags doctors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Doctors retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve doctors"
// @Router /doctors [get]
func (dc *DoctorController) ListDoctors(c *gin.Context) {
	doctors, err := dc.doctorRepo.FindAll()
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve doctors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Doctors retrieved successfully",
		"data":    doctors,
	})
}

// GetDoctorByID godoc
// @Summary Get a doctor by ID
// @Description Retrieve a doctor profile by ID
// @Tags doctors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Success 200 {object} map[string]interface{} "Doctor retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid doctor ID"
// @Failure 404 {object} map[string]interface{} "Doctor not found"
// @Router /doctors/{id} [get]
func (dc *DoctorController) GetDoctorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := dc.doctorRepo.FindByID(id)
	if err != nil {
		repositoryError(c, err, "Doctor not found", "Failed to retrieve doctor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Doctor retrieved successfully",
		"data":    doctor,
	})
}

// GetMyPatients godoc
// @Summary List my patients
// @Description Retrieve the patients assigned to the authenticated doctor
// @Tags doctors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Patients retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve patients"
// @Router /doctors/me/patients [get]
func (dc *DoctorController) GetMyPatients(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	patients, err := dc.patientRepo.FindByDoctorID(doctorID)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve patients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Patients retrieved successfully",
		"data":    patients,
	})
}

// CreatePatient godoc
// @Summary Create a patient
// @Description Register a patient under the authenticated doctor. Without a password a temporary one is generated and returned once
// @Tags doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param patient body controllers.CreatePatientRequest true "Patient data"
// @Success 201 {object} map[string]interface{} "Patient created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "Email is already registered"
// @Failure 500 {object} map[string]interface{} "Failed to create patient"
// @Router /doctors/me/patients [post]
func (dc *DoctorController) CreatePatient(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.Email = normalizeEmail(req.Email)

	exists, err := dc.patientRepo.EmailExists(req.Email)
	if err != nil {
		repositoryError(c, err, "", "Failed to create patient")
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

	patient := models.Patient{
		Name:             strings.TrimSpace(req.Name),
		Email:            req.Email,
		Phone:            req.Phone,
		Age:              req.Age,
		Gender:           req.Gender,
		Address:          req.Address,
		Info:             req.Info,
		IsActive:         true,
		AssignedDoctorID: &doctorID,
	}

	var temporaryPassword string
	password := ""
	if req.Password != nil {
		password = *req.Password
	} else {
		temporaryPassword, err = utils.GenerateTemporaryPassword()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to generate password",
				"error":   err.Error(),
			})
			return
		}
		password = temporaryPassword
	}
	if err := patient.SetPassword(password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to hash password",
			"error":   err.Error(),
		})
		return
	}

	if err := dc.patientRepo.Create(&patient); err != nil {
		repositoryError(c, err, "", "Failed to create patient")
		return
	}

	log.Printf("Doctor %d created patient %d", doctorID, patient.ID)

	data := gin.H{"patient": patient}
	if temporaryPassword != "" {
		data["temporary_password"] = temporaryPassword
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Patient created successfully",
		"data":    data,
	})
}

// GetAlerts godoc
// @Summary List serious chat alerts
// @Description Retrieve serious chat messages from patients assigned to the authenticated doctor
// @Tags doctors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Alerts retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve alerts"
// @Router /doctors/me/alerts [get]
func (dc *DoctorController) GetAlerts(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	messages, err := dc.chatRepo.FindSeriousByDoctorID(doctorID, models.SeriousThreshold)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve alerts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Alerts retrieved successfully",
		"data":    messages,
	})
}

// loadOwnedPatient fetches a patient and checks it is assigned to doctorID.
func loadOwnedPatient(c *gin.Context, repo repository.PatientRepository, doctorID, patientID uint) (*models.Patient, bool) {
	patient, err := repo.FindByID(patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Patient not found",
				"error":   "No patient exists with the provided ID",
			})
			return nil, false
		}
		repositoryError(c, err, "Patient not found", "Failed to retrieve patient")
		return nil, false
	}
	if patient.AssignedDoctorID == nil || *patient.AssignedDoctorID != doctorID {
		forbidden(c, "Patient is not assigned to you")
		return nil, false
	}
	return patient, true
}
