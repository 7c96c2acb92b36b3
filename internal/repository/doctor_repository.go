package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/daktarbari/doctor-directory-api/internal/models"
)

const doctorColumns = "id, name, specialty, specialty_list, specialty_categories, district, degree, designation, workplace, source_hospital, chambers, is_deleted, deleted_at, created_at, updated_at"

// DoctorRepository manages persistence for doctor profiles.
type DoctorRepository struct {
	db *sqlx.DB
}

// NewDoctorRepository constructs a DoctorRepository.
func NewDoctorRepository(db *sqlx.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// List returns non-deleted doctors matching filters along with total count.
func (r *DoctorRepository) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error) {
	base := "FROM doctors WHERE is_deleted = FALSE"
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.District != "" {
		conditions = append(conditions, fmt.Sprintf("district ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.District+"%")
	}
	if filter.Specialty != "" {
		pattern := "%" + filter.Specialty + "%"
		conditions = append(conditions, fmt.Sprintf("(specialty ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(specialty_list) AS sl WHERE sl ILIKE $%d) OR EXISTS (SELECT 1 FROM unnest(specialty_categories) AS sc WHERE sc ILIKE $%d))", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, pattern)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	allowedSorts := map[string]string{
		"name":       "name",
		"district":   "district",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", doctorColumns, base, column, order, size, offset)
	var doctors []models.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list doctors: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count doctors: %w", err)
	}

	return doctors, total, nil
}

// FindByID fetches a doctor by ID, deleted or not.
func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	query := fmt.Sprintf("SELECT %s FROM doctors WHERE id = $1", doctorColumns)
	var doctor models.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// Create inserts a new doctor record with its specialization relations.
func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor, specializations []models.Specialization) error {
	if doctor.ID == "" {
		doctor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if doctor.CreatedAt.IsZero() {
		doctor.CreatedAt = now
	}
	doctor.UpdatedAt = now
	if doctor.Chambers == nil {
		doctor.Chambers = models.ChamberList{}
	}

	const query = `INSERT INTO doctors (id, name, specialty, specialty_list, specialty_categories, district, degree, designation, workplace, source_hospital, chambers, is_deleted, deleted_at, created_at, updated_at)
		VALUES (:id, :name, :specialty, :specialty_list, :specialty_categories, :district, :degree, :designation, :workplace, :source_hospital, :chambers, :is_deleted, :deleted_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doctor); err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}

	for i := range specializations {
		specializations[i].DoctorID = doctor.ID
		if specializations[i].ID == "" {
			specializations[i].ID = uuid.NewString()
		}
		const specQuery = `INSERT INTO doctor_specializations (id, doctor_id, name, is_primary)
			VALUES (:id, :doctor_id, :name, :is_primary)`
		if _, err := r.db.NamedExecContext(ctx, specQuery, specializations[i]); err != nil {
			return fmt.Errorf("create doctor specialization: %w", err)
		}
	}
	return nil
}

// Update modifies an existing doctor record.
func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	doctor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE doctors SET name = :name, specialty = :specialty, specialty_list = :specialty_list, specialty_categories = :specialty_categories, district = :district, degree = :degree, designation = :designation, workplace = :workplace, source_hospital = :source_hospital, chambers = :chambers, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, doctor); err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	return nil
}

// SoftDelete flags a doctor as deleted. It reports whether a live record was
// affected; false means the record was already deleted.
func (r *DoctorRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE doctors SET is_deleted = TRUE, deleted_at = $2, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("soft delete doctor: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete doctor: %w", err)
	}
	return affected > 0, nil
}

// Restore clears the deletion flag. It reports whether a deleted record was
// affected; false means the record was not deleted.
func (r *DoctorRepository) Restore(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE doctors SET is_deleted = FALSE, deleted_at = NULL, updated_at = $2 WHERE id = $1 AND is_deleted = TRUE`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("restore doctor: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("restore doctor: %w", err)
	}
	return affected > 0, nil
}

// ListSpecializations returns the specialization relations of a doctor.
func (r *DoctorRepository) ListSpecializations(ctx context.Context, doctorID string) ([]models.Specialization, error) {
	const query = `SELECT id, doctor_id, name, is_primary FROM doctor_specializations WHERE doctor_id = $1 ORDER BY is_primary DESC, name ASC`
	var specs []models.Specialization
	if err := r.db.SelectContext(ctx, &specs, query, doctorID); err != nil {
		return nil, fmt.Errorf("list doctor specializations: %w", err)
	}
	return specs, nil
}

// Search executes a built filter over the doctor collection. where is a
// rendered WHERE fragment referencing the d alias, args its positional
// values.
func (r *DoctorRepository) Search(ctx context.Context, where string, args []interface{}) ([]models.Doctor, error) {
	columns := "d." + strings.ReplaceAll(doctorColumns, ", ", ", d.")
	query := fmt.Sprintf("SELECT %s FROM doctors d WHERE %s", columns, where)
	var doctors []models.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, fmt.Errorf("search doctors: %w", err)
	}
	return doctors, nil
}
