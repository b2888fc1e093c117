package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "trackly/internal/errors"
	"trackly/internal/models"
	"trackly/internal/pagination"
)

// jobApplicationService handles job-application tracking.
type jobApplicationService struct {
	db *gorm.DB
}

// NewJobApplicationService creates a new JobApplicationServicer.
func NewJobApplicationService(db *gorm.DB) JobApplicationServicer {
	return &jobApplicationService{db: db}
}

// validateSalaryRange rejects ranges where the minimum exceeds the maximum.
func validateSalaryRange(salaryMin, salaryMax *float64) error {
	if salaryMin != nil && *salaryMin < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "salary_min cannot be negative")
	}
	if salaryMax != nil && *salaryMax < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "salary_max cannot be negative")
	}
	if salaryMin != nil && salaryMax != nil && *salaryMin > *salaryMax {
		return apperrors.ErrInvalidSalaryRange
	}
	return nil
}

// CreateApplication creates a new job application.
func (s *jobApplicationService) CreateApplication(userID uint, in ApplicationInput) (*models.JobApplication, error) {
	if in.Company == "" || in.Position == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "company and position are required")
	}
	if err := validateSalaryRange(in.SalaryMin, in.SalaryMax); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ApplicationStatusApplied
	}

	appliedDate := in.AppliedDate
	if appliedDate.IsZero() {
		appliedDate = time.Now()
	}

	application := &models.JobApplication{
		UserID:      userID,
		Company:     in.Company,
		Position:    in.Position,
		Status:      status,
		Location:    in.Location,
		URL:         in.URL,
		SalaryMin:   in.SalaryMin,
		SalaryMax:   in.SalaryMax,
		AppliedDate: appliedDate,
		Notes:       in.Notes,
	}

	if err := s.db.Create(application).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return application, nil
}

// GetUserApplications returns a paginated list of the user's applications,
// optionally filtered by status, newest first.
func (s *jobApplicationService) GetUserApplications(userID uint, page pagination.PageRequest, status *models.ApplicationStatus) (*pagination.PageResponse[models.JobApplication], error) {
	page.Defaults()

	base := s.db.Model(&models.JobApplication{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var applications []models.JobApplication
	if err := base.Order("applied_date DESC").Scopes(pagination.Paginate(page)).Find(&applications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(applications, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetApplicationByID returns an application by ID if it belongs to the user.
func (s *jobApplicationService) GetApplicationByID(userID, applicationID uint) (*models.JobApplication, error) {
	var application models.JobApplication
	if err := s.db.Where("id = ? AND user_id = ?", applicationID, userID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &application, nil
}

// UpdateApplication applies a partial update to an application, including
// status transitions. The salary range is validated against the post-edit
// values.
func (s *jobApplicationService) UpdateApplication(userID, applicationID uint, in ApplicationUpdate) (*models.JobApplication, error) {
	application, err := s.GetApplicationByID(userID, applicationID)
	if err != nil {
		return nil, err
	}

	salaryMin := application.SalaryMin
	if in.SalaryMin != nil {
		salaryMin = in.SalaryMin
	}
	salaryMax := application.SalaryMax
	if in.SalaryMax != nil {
		salaryMax = in.SalaryMax
	}
	if err := validateSalaryRange(salaryMin, salaryMax); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Company != nil {
		if *in.Company == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "company cannot be empty")
		}
		updates["company"] = *in.Company
	}
	if in.Position != nil {
		if *in.Position == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "position cannot be empty")
		}
		updates["position"] = *in.Position
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.URL != nil {
		updates["url"] = *in.URL
	}
	if in.SalaryMin != nil {
		updates["salary_min"] = in.SalaryMin
	}
	if in.SalaryMax != nil {
		updates["salary_max"] = in.SalaryMax
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(application).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetApplicationByID(userID, applicationID)
}

// DeleteApplication removes an application. The delete is idempotent and
// scoped to the owning user; deleting a missing or foreign row is a no-op.
func (s *jobApplicationService) DeleteApplication(userID, applicationID uint) error {
	if err := s.db.Where("id = ? AND user_id = ?", applicationID, userID).Delete(&models.JobApplication{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetStatusCounts returns the number of applications per pipeline status.
func (s *jobApplicationService) GetStatusCounts(userID uint) ([]StatusCount, error) {
	var counts []StatusCount
	err := s.db.Model(&models.JobApplication{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if counts == nil {
		counts = []StatusCount{}
	}
	return counts, nil
}
