package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// TimeSlot is a contiguous interval during which a chamber accepts visits.
// Start and end are zero-padded "HH:MM" strings, so lexicographic order is
// time-of-day order. Callers must supply start <= end within the same day.
type TimeSlot struct {
	StartTime24hr string `json:"start_time_24hr"`
	EndTime24hr   string `json:"end_time_24hr"`
	OriginalTime  string `json:"original_time,omitempty"`
}

// VisitingHours describes one recurring schedule entry of a chamber.
type VisitingHours struct {
	VisitingDays  []string   `json:"visiting_days,omitempty"`
	ClosedDays    []string   `json:"closed_days,omitempty"`
	VisitingHours string     `json:"visiting_hours,omitempty"`
	TimeSlots     []TimeSlot `json:"time_slots,omitempty"`
}

// Chamber is a doctor's practice location with its own visiting schedule.
type Chamber struct {
	HospitalName  string          `json:"hospital_name"`
	Address       string          `json:"address,omitempty"`
	VisitingHours []VisitingHours `json:"visiting_hours,omitempty"`
}

// ChamberList stores chambers as a JSONB column.
type ChamberList []Chamber

// Value implements driver.Valuer for JSONB storage.
func (c ChamberList) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (c *ChamberList) Scan(src interface{}) error {
	if src == nil {
		*c = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported chambers column type %T", src)
	}
	return json.Unmarshal(raw, c)
}

// Doctor represents a directory profile.
type Doctor struct {
	ID                  string         `db:"id" json:"id"`
	Name                string         `db:"name" json:"name"`
	Specialty           *string        `db:"specialty" json:"specialty,omitempty"`
	SpecialtyList       pq.StringArray `db:"specialty_list" json:"specialtyList,omitempty"`
	SpecialtyCategories pq.StringArray `db:"specialty_categories" json:"specialtyCategories,omitempty"`
	District            *string        `db:"district" json:"district,omitempty"`
	Degree              *string        `db:"degree" json:"degree,omitempty"`
	Designation         *string        `db:"designation" json:"designation,omitempty"`
	Workplace           *string        `db:"workplace" json:"workplace,omitempty"`
	SourceHospital      *string        `db:"source_hospital" json:"source_hospital,omitempty"`
	Chambers            ChamberList    `db:"chambers" json:"chambers"`
	IsDeleted           bool           `db:"is_deleted" json:"isDeleted"`
	DeletedAt           *time.Time     `db:"deleted_at" json:"deletedAt"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}

// Specialization is one entry of the doctor ↔ specialization relation.
type Specialization struct {
	ID        string `db:"id" json:"id"`
	DoctorID  string `db:"doctor_id" json:"doctor_id"`
	Name      string `db:"name" json:"name"`
	IsPrimary bool   `db:"is_primary" json:"is_primary"`
}

// DoctorDetail enriches a doctor record with its specialization relations.
type DoctorDetail struct {
	Doctor
	PrimarySpecialization    *string  `json:"primarySpecialization,omitempty"`
	SecondarySpecializations []string `json:"secondarySpecializations"`
}

// DoctorFilter captures filtering options for listing doctors.
type DoctorFilter struct {
	Search    string
	District  string
	Specialty string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
