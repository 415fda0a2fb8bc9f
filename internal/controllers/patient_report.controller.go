package controllers

import (
	"net/http"
	"strings"

	"revivecare/internal/models"
	"revivecare/internal/repository"

	"github.com/gin-gonic/gin"
)

type PatientReportController struct {
	reportRepo  repository.PatientReportRepository
	patientRepo repository.PatientRepository
}

func NewPatientReportController(reportRepo repository.PatientReportRepository, patientRepo repository.PatientRepository) *PatientReportController {
	return &PatientReportController{reportRepo: reportRepo, patientRepo: patientRepo}
}

type PatientReportRequest struct {
	ReportType  string  `json:"report_type" binding:"required,report_type"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	FileURL     *string `json:"file_url" binding:"omitempty,url,max=200"`
}

// loadOwnedReport fetches a report whose patient is assigned to doctorID.
func (rc *PatientReportController) loadOwnedReport(c *gin.Context, doctorID uint) (*models.PatientReport, bool) {
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return nil, false
	}

	report, err := rc.reportRepo.FindByID(reportID)
	if err != nil {
		repositoryError(c, err, "Report not found", "Failed to retrieve report")
		return nil, false
	}
	if _, ok := loadOwnedPatient(c, rc.patientRepo, doctorID, report.PatientID); !ok {
		return nil, false
	}
	return report, true
}

// CreateReport godoc
// @Summary Upload a patient report
// @Description Create a report for a patient assigned to the authenticated doctor
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param report body controllers.PatientReportRequest true "Report data"
// @Success 201 {object} map[string]interface{} "Report created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 500 {object} map[string]interface{} "Failed to create report"
// @Router /patients/{id}/reports [post]
func (rc *PatientReportController) CreateReport(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "id", "patient")
	if !ok {
		return
	}

	var req PatientReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if _, ok := loadOwnedPatient(c, rc.patientRepo, doctorID, patientID); !ok {
		return
	}

	report := models.PatientReport{
		PatientID:    patientID,
		ReportType:   req.ReportType,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		FileURL:      req.FileURL,
		UploadedByID: &doctorID,
	}
	if err := rc.reportRepo.Create(&report); err != nil {
		repositoryError(c, err, "", "Failed to create report")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Report created successfully",
		"data":    report,
	})
}

// GetPatientReports godoc
// @Summary List patient reports
// @Description Retrieve the reports of a patient assigned to the authenticated doctor
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} map[string]interface{} "Reports retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid patient ID"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Patient not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve reports"
// @Router /patients/{id}/reports [get]
func (rc *PatientReportController) GetPatientReports(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "id", "patient")
	if !ok {
		return
	}
	if _, ok := loadOwnedPatient(c, rc.patientRepo, doctorID, patientID); !ok {
		return
	}

	reports, err := rc.reportRepo.FindAllByPatientID(patientID)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reports retrieved successfully",
		"data":    reports,
	})
}

// GetReport godoc
// @Summary Get a report
// @Description Retrieve a report of a patient assigned to the authenticated doctor
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]interface{} "Report retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid report ID"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Report not found"
// @Router /reports/{id} [get]
func (rc *PatientReportController) GetReport(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, ok := rc.loadOwnedReport(c, doctorID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Report retrieved successfully",
		"data":    report,
	})
}

// UpdateReport godoc
// @Summary Update a report
// @Description Replace a report of a patient assigned to the authenticated doctor
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param report body controllers.PatientReportRequest true "Report data"
// @Success 200 {object} map[string]interface{} "Report updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Report not found"
// @Failure 500 {object} map[string]interface{} "Failed to update report"
// @Router /reports/{id} [put]
func (rc *PatientReportController) UpdateReport(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PatientReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	report, ok := rc.loadOwnedReport(c, doctorID)
	if !ok {
		return
	}

	report.ReportType = req.ReportType
	report.Title = strings.TrimSpace(req.Title)
	report.Description = req.Description
	report.FileURL = req.FileURL

	if err := rc.reportRepo.Update(report); err != nil {
		repositoryError(c, err, "Report not found", "Failed to update report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Report updated successfully",
		"data":    report,
	})
}

// DeleteReport godoc
// @Summary Delete a report
// @Description Delete a report of a patient assigned to the authenticated doctor
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]interface{} "Report deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid report ID"
// @Failure 403 {object} map[string]interface{} "Patient is not assigned to you"
// @Failure 404 {object} map[string]interface{} "Report not found"
// @Failure 500 {object} map[string]interface{} "Failed to delete report"
// @Router /reports/{id} [delete]
func (rc *PatientReportController) DeleteReport(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, ok := rc.loadOwnedReport(c, doctorID)
	if !ok {
		return
	}

	if err := rc.reportRepo.Delete(report.ID); err != nil {
		repositoryError(c, err, "Report not found", "Failed to delete report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Report deleted successfully",
	})
}

// GetUploadedReports godoc
// @Summary List uploaded reports
// @Description Retrieve the reports the authenticated doctor uploaded
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Reports retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve reports"
// @Router /reports/uploaded [get]
func (rc *PatientReportController) GetUploadedReports(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	reports, err := rc.reportRepo.FindByUploaderID(doctorID)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reports retrieved successfully",
		"data":    reports,
	})
}

// GetMyReports godoc
// @Summary List my reports
// @Description Retrieve the reports of the authenticated patient
// @Tags patient
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Reports retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve reports"
// @Router /patient/reports [get]
func (rc *PatientReportController) GetMyReports(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	reports, err := rc.reportRepo.FindAllByPatientID(patientID)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reports retrieved successfully",
		"data":    reports,
	})
}
