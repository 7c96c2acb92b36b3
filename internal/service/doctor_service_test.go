package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daktarbari/doctor-directory-api/internal/models"
	appErrors "github.com/daktarbari/doctor-directory-api/pkg/errors"
)

type mockDoctorRepo struct {
	items      map[string]*models.Doctor
	specs      map[string][]models.Specialization
	listResult []models.Doctor
	listTotal  int
	listErr    error
	created    []*models.Doctor
}

func (m *mockDoctorRepo) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.listResult, m.listTotal, nil
}

func (m *mockDoctorRepo) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	if doctor, ok := m.items[id]; ok {
		cp := *doctor
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDoctorRepo) Create(ctx context.Context, doctor *models.Doctor, specializations []models.Specialization) error {
	if m.items == nil {
		m.items = make(map[string]*models.Doctor)
	}
	if doctor.ID == "" {
		doctor.ID = "generated"
	}
	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	cp := *doctor
	m.items[doctor.ID] = &cp
	m.created = append(m.created, &cp)
	if m.specs == nil {
		m.specs = make(map[string][]models.Specialization)
	}
	m.specs[doctor.ID] = specializations
	return nil
}

func (m *mockDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	cp := *doctor
	m.items[doctor.ID] = &cp
	return nil
}

func (m *mockDoctorRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	doctor, ok := m.items[id]
	if !ok || doctor.IsDeleted {
		return false, nil
	}
	now := time.Now()
	doctor.IsDeleted = true
	doctor.DeletedAt = &now
	return true, nil
}

func (m *mockDoctorRepo) Restore(ctx context.Context, id string) (bool, error) {
	doctor, ok := m.items[id]
	if !ok || !doctor.IsDeleted {
		return false, nil
	}
	doctor.IsDeleted = false
	doctor.DeletedAt = nil
	return true, nil
}

func (m *mockDoctorRepo) ListSpecializations(ctx context.Context, doctorID string) ([]models.Specialization, error) {
	return m.specs[doctorID], nil
}

func newDoctorService(repo *mockDoctorRepo) *DoctorService {
	return NewDoctorService(repo, nil, validator.New(), zap.NewNop())
}

func TestDoctorServiceCreate(t *testing.T) {
	repo := &mockDoctorRepo{}
	svc := newDoctorService(repo)

	doctor, err := svc.Create(context.Background(), CreateDoctorRequest{
		Name:      "Dr. Rahman",
		Specialty: strPtr("Dental Specialist"),
		Chambers: []models.Chamber{{
			HospitalName: "City Dental Care",
			VisitingHours: []models.VisitingHours{{
				VisitingDays: []string{"Monday", "Wednesday"},
				TimeSlots:    []models.TimeSlot{{StartTime24hr: "18:00", EndTime24hr: "21:00"}},
			}},
		}},
		Specializations: []SpecializationPayload{{Name: "Dental Specialist", IsPrimary: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rahman", doctor.Name)
	assert.False(t, doctor.IsDeleted)
	assert.Len(t, repo.specs[doctor.ID], 1)
}

func TestDoctorServiceCreateMissingName(t *testing.T) {
	svc := newDoctorService(&mockDoctorRepo{})

	_, err := svc.Create(context.Background(), CreateDoctorRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDoctorServiceGetEnrichesSpecializations(t *testing.T) {
	repo := &mockDoctorRepo{
		items: map[string]*models.Doctor{"doc-1": {ID: "doc-1", Name: "Dr. Rahman"}},
		specs: map[string][]models.Specialization{"doc-1": {
			{ID: "s1", DoctorID: "doc-1", Name: "Dental Specialist", IsPrimary: true},
			{ID: "s2", DoctorID: "doc-1", Name: "Oral Surgery"},
			{ID: "s3", DoctorID: "doc-1", Name: "Orthodontics"},
		}},
	}
	svc := newDoctorService(repo)

	detail, err := svc.Get(context.Background(), "doc-1")
	require.NoError(t, err)
	require.NotNil(t, detail.PrimarySpecialization)
	assert.Equal(t, "Dental Specialist", *detail.PrimarySpecialization)
	assert.ElementsMatch(t, []string{"Oral Surgery", "Orthodontics"}, detail.SecondarySpecializations)
}

func TestDoctorServiceGetNotFound(t *testing.T) {
	svc := newDoctorService(&mockDoctorRepo{})

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDoctorServiceUpdatePartialMerge(t *testing.T) {
	repo := &mockDoctorRepo{
		items: map[string]*models.Doctor{"doc-1": {
			ID:        "doc-1",
			Name:      "Dr. Rahman",
			Specialty: strPtr("Dental Specialist"),
			District:  strPtr("Dhaka"),
		}},
	}
	svc := newDoctorService(repo)

	updated, err := svc.Update(context.Background(), "doc-1", UpdateDoctorRequest{
		District: strPtr("Chattogram"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rahman", updated.Name)
	require.NotNil(t, updated.Specialty)
	assert.Equal(t, "Dental Specialist", *updated.Specialty)
	require.NotNil(t, updated.District)
	assert.Equal(t, "Chattogram", *updated.District)
}

func TestDoctorServiceUpdateNotFound(t *testing.T) {
	svc := newDoctorService(&mockDoctorRepo{})

	_, err := svc.Update(context.Background(), "missing", UpdateDoctorRequest{Name: strPtr("X")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDoctorServiceSoftDeleteThenRestore(t *testing.T) {
	repo := &mockDoctorRepo{
		items: map[string]*models.Doctor{"doc-1": {ID: "doc-1", Name: "Dr. Rahman"}},
	}
	svc := newDoctorService(repo)

	deleted, err := svc.SoftDelete(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.NotNil(t, deleted.DeletedAt)

	// Deleting again: target already in the requested state.
	_, err = svc.SoftDelete(context.Background(), "doc-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	restored, err := svc.Restore(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)
}

func TestDoctorServiceRestoreNonDeleted(t *testing.T) {
	repo := &mockDoctorRepo{
		items: map[string]*models.Doctor{"doc-1": {ID: "doc-1", Name: "Dr. Rahman"}},
	}
	svc := newDoctorService(repo)

	_, err := svc.Restore(context.Background(), "doc-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDoctorServiceList(t *testing.T) {
	repo := &mockDoctorRepo{
		listResult: []models.Doctor{{ID: "doc-1"}, {ID: "doc-2"}},
		listTotal:  2,
	}
	svc := newDoctorService(repo)

	doctors, pagination, err := svc.List(context.Background(), models.DoctorFilter{})
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
}

func strPtr(s string) *string { return &s }
