package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "trackly/internal/errors"
	"trackly/internal/models"
	"trackly/internal/pagination"
	"trackly/internal/services"
)

// JobApplicationHandler handles job-application tracking requests.
type JobApplicationHandler struct {
	applicationService services.JobApplicationServicer
	auditService       services.AuditServicer
}

// NewJobApplicationHandler creates a new JobApplicationHandler.
func NewJobApplicationHandler(applicationService services.JobApplicationServicer, auditService services.AuditServicer) *JobApplicationHandler {
	return &JobApplicationHandler{applicationService: applicationService, auditService: auditService}
}

// CreateApplicationRequest represents the request payload for creating a job
// application.
type CreateApplicationRequest struct {
	Company     string                   `json:"company" binding:"required,min=1,max=100"`
	Position    string                   `json:"position" binding:"required,min=1,max=100"`
	Status      models.ApplicationStatus `json:"status" binding:"omitempty,application_status"`
	Location    string                   `json:"location" binding:"omitempty,max=100"`
	URL         string                   `json:"url" binding:"omitempty,url,max=500"`
	SalaryMin   *float64                 `json:"salary_min"`
	SalaryMax   *float64                 `json:"salary_max"`
	AppliedDate time.Time                `json:"applied_date"`
	Notes       string                   `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateApplicationRequest represents the request payload for a partial
// application update.
type UpdateApplicationRequest struct {
	Company   *string                   `json:"company" binding:"omitempty,min=1,max=100"`
	Position  *string                   `json:"position" binding:"omitempty,min=1,max=100"`
	Status    *models.ApplicationStatus `json:"status" binding:"omitempty,application_status"`
	Location  *string                   `json:"location" binding:"omitempty,max=100"`
	URL       *string                   `json:"url" binding:"omitempty,url,max=500"`
	SalaryMin *float64                  `json:"salary_min"`
	SalaryMax *float64                  `json:"salary_max"`
	Notes     *string                   `json:"notes" binding:"omitempty,max=2000"`
}

// CreateApplication handles the creation of a new job application.
// @Summary     Create job application
// @Description Create a new job application entry
// @Tags        applications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateApplicationRequest true "Application details"
// @Success     201 {object} models.JobApplication "Application created"
// @Failure     400 {object} ErrorResponse "Invalid input or salary range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /applications [post]
func (h *JobApplicationHandler) CreateApplication(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	application, err := h.applicationService.CreateApplication(userID, services.ApplicationInput{
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		Location:    req.Location,
		URL:         req.URL,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		AppliedDate: req.AppliedDate,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_APPLICATION", "job_application", application.ID, c.ClientIP(),
		map[string]interface{}{"company": req.Company, "position": req.Position})

	c.JSON(http.StatusCreated, gin.H{"application": application})
}

// GetApplications handles listing job applications with pagination and an
// optional status filter.
// @Summary     Get job applications
// @Description Get job applications, paginated, newest applied first
// @Tags        applications
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size (max 100)"
// @Param       status    query string false "Status filter" Enums(wishlist, applied, interviewing, offer, rejected, accepted)
// @Success     200 {object} pagination.PageResponse[models.JobApplication] "Applications"
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /applications [get]
func (h *JobApplicationHandler) GetApplications(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.ApplicationStatus
	if raw := c.Query("status"); raw != "" {
		s := models.ApplicationStatus(raw)
		if !s.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid application status"))
			return
		}
		status = &s
	}

	applications, err := h.applicationService.GetUserApplications(userID, page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

// GetApplication handles retrieving a specific job application.
// @Summary     Get job application by ID
// @Description Get a specific job application by ID
// @Tags        applications
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Application ID"
// @Success     200 {object} models.JobApplication "Application details"
// @Failure     400 {object} ErrorResponse "Invalid application ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Application not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /applications/{id} [get]
func (h *JobApplicationHandler) GetApplication(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	applicationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	application, err := h.applicationService.GetApplicationByID(userID, applicationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// UpdateApplication handles a partial update of a job application.
// @Summary     Update job application
// @Description Partially update a job application's fields
// @Tags        applications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Application ID"
// @Param       request body UpdateApplicationRequest true "Updated fields"
// @Success     200 {object} models.JobApplication "Updated application"
// @Failure     400 {object} ErrorResponse "Invalid input or application ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Application not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /applications/{id} [put]
func (h *JobApplicationHandler) UpdateApplication(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	applicationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	application, err := h.applicationService.UpdateApplication(userID, applicationID, services.ApplicationUpdate{
		Company:   req.Company,
		Position:  req.Position,
		Status:    req.Status,
		Location:  req.Location,
		URL:       req.URL,
		SalaryMin: req.SalaryMin,
		SalaryMax: req.SalaryMax,
		Notes:     req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_APPLICATION", "job_application", applicationID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// DeleteApplication handles deleting a job application.
// @Summary     Delete job application
// @Description Delete a job application by ID (idempotent)
// @Tags        applications
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Application ID"
// @Success     200 {object} MessageResponse "Application deleted"
// @Failure     400 {object} ErrorResponse "Invalid application ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /applications/{id} [delete]
func (h *JobApplicationHandler) DeleteApplication(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	applicationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.applicationService.DeleteApplication(userID, applicationID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_APPLICATION", "job_application", applicationID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Job application deleted successfully"})
}

// GetStats handles retrieving per-status application counts.
// @Summary     Get application stats
// @Description Get the number of applications in each pipeline status
// @Tags        applications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Status counts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /applications/stats [get]
func (h *JobApplicationHandler) GetStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	counts, err := h.applicationService.GetStatusCounts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": counts})
}
