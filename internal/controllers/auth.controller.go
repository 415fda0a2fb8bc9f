package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"revivecare/internal/middleware"
	"revivecare/internal/models"
	"revivecare/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
}

func NewAuthController(doctorRepo repository.DoctorRepository, patientRepo repository.PatientRepository) *AuthController {
	return &AuthController{doctorRepo: doctorRepo, patientRepo: patientRepo}
}

type RegisterDoctorRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	Email         string  `json:"email" binding:"required,email,max=254"`
	Password      string  `json:"password" binding:"required,min=8"`
	Specialty     *string `json:"specialty" binding:"omitempty,max=100"`
	LicenseNumber string  `json:"license_number" binding:"required,max=50"`
	Phone         *string `json:"phone" binding:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": "Invalid email or password",
		"error":   "Authentication failed",
	})
}

// RegisterDoctor godoc
// @Summary Register a doctor
// @Description Create a doctor account and return a token for it
// @Tags auth
// @Accept json
// @Produce json
// @Param doctor body controllers.RegisterDoctorRequest true "Doctor registration data"
// @Success 201 {object} map[string]interface{} "Doctor registered successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "Email or license number is already registered"
// @Failure 500 {object} map[string]interface{} "Failed to register doctor"
// @Router /auth/doctors/register [post]
func (ac *AuthController) RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	req.LicenseNumber = strings.TrimSpace(req.LicenseNumber)

	exists, err := ac.doctorRepo.EmailExists(req.Email)
	if err != nil {
		repositoryError(c, err, "", "Failed to register doctor")
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Email is already registered",
			"error":   "A doctor with this email already exists",
		})
		return
	}

	exists, err = ac.doctorRepo.LicenseExists(req.LicenseNumber)
	if err != nil {
		repositoryError(c, err, "", "Failed to register doctor")
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "License number is already registered",
			"error":   "A doctor with this license number already exists",
		})
		return
	}

	doctor := models.Doctor{
		Name:          strings.TrimSpace(req.Name),
		Email:         req.Email,
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
		IsActive:      true,
	}
	if err := doctor.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to hash password",
			"error":   err.Error(),
		})
		return
	}

	if err := ac.doctorRepo.Create(&doctor); err != nil {
		repositoryError(c, err, "", "Failed to register doctor")
		return
	}

	token, err := middleware.GenerateToken(doctor.ID, doctor.Email, middleware.RoleDoctor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
			"error":   err.Error(),
		})
		return
	}

	log.Printf("Registered doctor %d (%s)", doctor.ID, doctor.Email)
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Doctor registered successfully",
		"data": gin.H{
			"token":  token,
			"doctor": doctor,
		},
	})
}

// LoginDoctor godoc
// @Summary Log in as a doctor
// @Description Authenticate a doctor with email and password and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body controllers.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Invalid email or password"
// @Failure 403 {object} map[string]interface{} "Account is inactive"
// @Failure 500 {object} map[string]interface{} "Failed to generate token"
// @Router /auth/doctors/login [post]
func (ac *AuthController) LoginDoctor(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	doctor, err := ac.doctorRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			repositoryError(c, err, "", "Failed to log in")
			return
		}
		invalidCredentials(c)
		return
	}

	if !doctor.CheckPassword(req.Password) {
		invalidCredentials(c)
		return
	}
	if !doctor.IsActive {
		forbidden(c, "Account is inactive")
		return
	}

	token, err := middleware.GenerateToken(doctor.ID, doctor.Email, middleware.RoleDoctor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"token":  token,
			"doctor": doctor,
		},
	})
}

// LoginPatient godoc
// @Summary Log in as a patient
// @Description Authenticate a patient with email and password. Patients created without a password cannot log in until a doctor sets one
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body controllers.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Invalid email or password"
// @Failure 403 {object} map[string]interface{} "Account is inactive"
// @Failure 500 {object} map[string]interface{} "Failed to generate token"
// @Router /auth/patients/login [post]
func (ac *AuthController) LoginPatient(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	patient, err := ac.patientRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			repositoryError(c, err, "", "Failed to log in")
			return
		}
		invalidCredentials(c)
		return
	}

	if !patient.CheckPassword(req.Password) {
		invalidCredentials(c)
		return
	}
	if !patient.IsActive {
		forbidden(c, "Account is inactive")
		return
	}

	token, err := middleware.GenerateToken(patient.ID, patient.Email, middleware.RolePatient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"token":   token,
			"patient": patient,
		},
	})
}
