package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daktarbari/doctor-directory-api/internal/models"
)

func newDoctorRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func doctorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "specialty", "specialty_list", "specialty_categories",
		"district", "degree", "designation", "workplace", "source_hospital",
		"chambers", "is_deleted", "deleted_at", "created_at", "updated_at",
	}).AddRow(
		"doc-1", "Dr. Rahman", "Dental Specialist", "{}", "{}",
		"Dhaka", nil, nil, nil, nil,
		[]byte(`[]`), false, nil, time.Now(), time.Now(),
	)
}

func TestDoctorRepositoryList(t *testing.T) {
	db, mock, cleanup := newDoctorRepoMock(t)
	defer cleanup()
	repo := NewDoctorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM doctors WHERE is_deleted = FALSE ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(doctorRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM doctors WHERE is_deleted = FALSE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.DoctorFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newDoctorRepoMock(t)
	defer cleanup()
	repo := NewDoctorRepository(db)

	mock.ExpectQuery("FROM doctors WHERE is_deleted = FALSE AND name ILIKE \\$1 AND district ILIKE \\$2").
		WithArgs("%Rahman%", "%Dhaka%").
		WillReturnRows(doctorRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM doctors").
		WithArgs("%Rahman%", "%Dhaka%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.DoctorFilter{Search: "Rahman", District: "Dhaka"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositoryCreateWithSpecializations(t *testing.T) {
	db, mock, cleanup := newDoctorRepoMock(t)
	defer cleanup()
	repo := NewDoctorRepository(db)

	mock.ExpectExec("INSERT INTO doctors").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO doctor_specializations").
		WillReturnResult(sqlmock.NewResult(1, 1))

	doctor := &models.Doctor{Name: "Dr. Rahman"}
	specs := []models.Specialization{{Name: "Dental Specialist", IsPrimary: true}}
	err := repo.Create(context.Background(), doctor, specs)
	require.NoError(t, err)
	assert.NotEmpty(t, doctor.ID)
	assert.Equal(t, doctor.ID, specs[0].DoctorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositorySoftDeleteAndRestore(t *testing.T) {
	db, mock, cleanup := newDoctorRepoMock(t)
	defer cleanup()
	repo := NewDoctorRepository(db)

	mock.ExpectExec("UPDATE doctors SET is_deleted = TRUE").
		WithArgs("doc-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.SoftDelete(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.True(t, affected)

	// Deleting again touches no live row.
	mock.ExpectExec("UPDATE doctors SET is_deleted = TRUE").
		WithArgs("doc-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err = repo.SoftDelete(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.False(t, affected)

	mock.ExpectExec("UPDATE doctors SET is_deleted = FALSE").
		WithArgs("doc-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err = repo.Restore(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.True(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositorySearch(t *testing.T) {
	db, mock, cleanup := newDoctorRepoMock(t)
	defer cleanup()
	repo := NewDoctorRepository(db)

	mock.ExpectQuery("SELECT d.id, d.name, .+ FROM doctors d WHERE d.is_deleted = FALSE AND d.district ILIKE \\$1").
		WithArgs("%Dhaka%").
		WillReturnRows(doctorRows())

	doctors, err := repo.Search(context.Background(), "d.is_deleted = FALSE AND d.district ILIKE $1", []interface{}{"%Dhaka%"})
	require.NoError(t, err)
	assert.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Rahman", doctors[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositoryListSpecializations(t *testing.T) {
	db, mock, cleanup := newDoctorRepoMock(t)
	defer cleanup()
	repo := NewDoctorRepository(db)

	rows := sqlmock.NewRows([]string{"id", "doctor_id", "name", "is_primary"}).
		AddRow("spec-1", "doc-1", "Dental Specialist", true).
		AddRow("spec-2", "doc-1", "Oral Surgery", false)
	mock.ExpectQuery("SELECT id, doctor_id, name, is_primary FROM doctor_specializations").
		WithArgs("doc-1").
		WillReturnRows(rows)

	specs, err := repo.ListSpecializations(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.True(t, specs[0].IsPrimary)
	assert.NoError(t, mock.ExpectationsWereMet())
}
