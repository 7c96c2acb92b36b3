package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/daktarbari/doctor-directory-api/internal/models"
	appErrors "github.com/daktarbari/doctor-directory-api/pkg/errors"
	"github.com/daktarbari/doctor-directory-api/pkg/export"
)

// Export formats supported by the directory export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"Name", "Specialty", "District", "Designation", "Workplace", "Chambers"}

// ExportResult carries rendered export bytes plus response metadata.
type ExportResult struct {
	ContentType string
	Filename    string
	Payload     []byte
}

// ExportService renders the non-deleted doctor directory as CSV or PDF.
type ExportService struct {
	repo doctorRepository
	csv  *export.CSVExporter
	pdf  *export.PDFExporter
}

// NewExportService constructs an ExportService.
func NewExportService(repo doctorRepository) *ExportService {
	return &ExportService{repo: repo, csv: export.NewCSVExporter(), pdf: export.NewPDFExporter()}
}

// Export renders the full directory in the requested format.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	// Single unpaginated pass; the repository caps page size, so walk pages.
	var rows []map[string]string
	page := 1
	for {
		doctors, total, err := s.repo.List(ctx, models.DoctorFilter{Page: page, PageSize: 100, SortBy: "name", SortOrder: "asc"})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load doctors for export")
		}
		for _, doctor := range doctors {
			rows = append(rows, exportRow(doctor))
		}
		if len(rows) >= total || len(doctors) == 0 {
			break
		}
		page++
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: rows}

	switch format {
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Doctor Directory")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{ContentType: "application/pdf", Filename: "doctors.pdf", Payload: payload}, nil
	default:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{ContentType: "text/csv", Filename: "doctors.csv", Payload: payload}, nil
	}
}

func exportRow(doctor models.Doctor) map[string]string {
	return map[string]string{
		"Name":        doctor.Name,
		"Specialty":   strOrEmpty(doctor.Specialty),
		"District":    strOrEmpty(doctor.District),
		"Designation": strOrEmpty(doctor.Designation),
		"Workplace":   strOrEmpty(doctor.Workplace),
		"Chambers":    strconv.Itoa(len(doctor.Chambers)),
	}
}

func strOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
