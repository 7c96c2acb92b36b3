package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/daktarbari/doctor-directory-api/internal/models"
	appErrors "github.com/daktarbari/doctor-directory-api/pkg/errors"
)

const doctorCachePattern = "doctors:*"

type doctorRepository interface {
	List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error)
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
	Create(ctx context.Context, doctor *models.Doctor, specializations []models.Specialization) error
	Update(ctx context.Context, doctor *models.Doctor) error
	SoftDelete(ctx context.Context, id string) (bool, error)
	Restore(ctx context.Context, id string) (bool, error)
	ListSpecializations(ctx context.Context, doctorID string) ([]models.Specialization, error)
}

// SpecializationPayload is one specialization relation in a create payload.
type SpecializationPayload struct {
	Name      string `json:"name" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateDoctorRequest represents payload for creating doctors.
type CreateDoctorRequest struct {
	Name                string                  `json:"name" validate:"required"`
	Specialty           *string                 `json:"specialty"`
	SpecialtyList       []string                `json:"specialtyList"`
	SpecialtyCategories []string                `json:"specialtyCategories"`
	District            *string                 `json:"district"`
	Degree              *string                 `json:"degree"`
	Designation         *string                 `json:"designation"`
	Workplace           *string                 `json:"workplace"`
	SourceHospital      *string                 `json:"source_hospital"`
	Chambers            []models.Chamber        `json:"chambers"`
	Specializations     []SpecializationPayload `json:"specializations" validate:"dive"`
}

// UpdateDoctorRequest represents a partial doctor update. Absent fields are
// left untouched.
type UpdateDoctorRequest struct {
	Name                *string           `json:"name" validate:"omitempty,min=1"`
	Specialty           *string           `json:"specialty"`
	SpecialtyList       *[]string         `json:"specialtyList"`
	SpecialtyCategories *[]string         `json:"specialtyCategories"`
	District            *string           `json:"district"`
	Degree              *string           `json:"degree"`
	Designation         *string           `json:"designation"`
	Workplace           *string           `json:"workplace"`
	SourceHospital      *string           `json:"source_hospital"`
	Chambers            *[]models.Chamber `json:"chambers"`
}

// DoctorService orchestrates doctor CRUD operations.
type DoctorService struct {
	repo      doctorRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDoctorService constructs a DoctorService.
func NewDoctorService(repo doctorRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *DoctorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DoctorService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns doctors plus pagination data.
func (s *DoctorService) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, *models.Pagination, error) {
	doctors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list doctors")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return doctors, pagination, nil
}

// Get returns a doctor detail enriched with its specialization relations.
func (s *DoctorService) Get(ctx context.Context, id string) (*models.DoctorDetail, error) {
	cacheKey := fmt.Sprintf("doctors:detail:%s", id)
	var cached models.DoctorDetail
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	doctor, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	specs, err := s.repo.ListSpecializations(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load doctor specializations")
	}

	detail := &models.DoctorDetail{Doctor: *doctor, SecondarySpecializations: []string{}}
	for _, spec := range specs {
		if spec.IsPrimary && detail.PrimarySpecialization == nil {
			name := spec.Name
			detail.PrimarySpecialization = &name
			continue
		}
		detail.SecondarySpecializations = append(detail.SecondarySpecializations, spec.Name)
	}

	_ = s.cache.Set(ctx, cacheKey, detail, 0)
	return detail, nil
}

// Create registers a new doctor record.
func (s *DoctorService) Create(ctx context.Context, req CreateDoctorRequest) (*models.Doctor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid doctor payload")
	}

	doctor := &models.Doctor{
		Name:                strings.TrimSpace(req.Name),
		Specialty:           req.Specialty,
		SpecialtyList:       req.SpecialtyList,
		SpecialtyCategories: req.SpecialtyCategories,
		District:            req.District,
		Degree:              req.Degree,
		Designation:         req.Designation,
		Workplace:           req.Workplace,
		SourceHospital:      req.SourceHospital,
		Chambers:            req.Chambers,
	}

	specs := make([]models.Specialization, 0, len(req.Specializations))
	for _, payload := range req.Specializations {
		specs = append(specs, models.Specialization{Name: strings.TrimSpace(payload.Name), IsPrimary: payload.IsPrimary})
	}

	if err := s.repo.Create(ctx, doctor, specs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create doctor")
	}

	s.invalidate(ctx)
	return doctor, nil
}

// Update merges a partial payload into an existing doctor.
func (s *DoctorService) Update(ctx context.Context, id string, req UpdateDoctorRequest) (*models.Doctor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid doctor payload")
	}

	doctor, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doctor.Name = strings.TrimSpace(*req.Name)
	}
	if req.Specialty != nil {
		doctor.Specialty = req.Specialty
	}
	if req.SpecialtyList != nil {
		doctor.SpecialtyList = *req.SpecialtyList
	}
	if req.SpecialtyCategories != nil {
		doctor.SpecialtyCategories = *req.SpecialtyCategories
	}
	if req.District != nil {
		doctor.District = req.District
	}
	if req.Degree != nil {
		doctor.Degree = req.Degree
	}
	if req.Designation != nil {
		doctor.Designation = req.Designation
	}
	if req.Workplace != nil {
		doctor.Workplace = req.Workplace
	}
	if req.SourceHospital != nil {
		doctor.SourceHospital = req.SourceHospital
	}
	if req.Chambers != nil {
		doctor.Chambers = *req.Chambers
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update doctor")
	}

	s.invalidate(ctx)
	return doctor, nil
}

// SoftDelete flags a doctor as deleted. Deleting an already deleted record
// fails: the target is already in the requested state.
func (s *DoctorService) SoftDelete(ctx context.Context, id string) (*models.Doctor, error) {
	if _, err := s.findLive(ctx, id); err != nil {
		return nil, err
	}

	affected, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete doctor")
	}
	if !affected {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "doctor already deleted")
	}

	s.invalidate(ctx)
	return s.reload(ctx, id)
}

// Restore clears the deletion flag. Restoring a non-deleted record fails.
func (s *DoctorService) Restore(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doctor.IsDeleted {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "doctor is not deleted")
	}

	affected, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore doctor")
	}
	if !affected {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "doctor is not deleted")
	}

	s.invalidate(ctx)
	return s.reload(ctx, id)
}

func (s *DoctorService) find(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "doctor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load doctor")
	}
	return doctor, nil
}

// findLive resolves a doctor that has not been soft deleted.
func (s *DoctorService) findLive(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor.IsDeleted {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "doctor already deleted")
	}
	return doctor, nil
}

func (s *DoctorService) reload(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *DoctorService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, doctorCachePattern); err != nil {
		s.logger.Warn("doctor cache invalidation failed", zap.Error(err))
	}
}
