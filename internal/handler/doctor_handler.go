package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daktarbari/doctor-directory-api/internal/models"
	"github.com/daktarbari/doctor-directory-api/internal/service"
	appErrors "github.com/daktarbari/doctor-directory-api/pkg/errors"
	"github.com/daktarbari/doctor-directory-api/pkg/response"
)

type doctorService interface {
	List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.DoctorDetail, error)
	Create(ctx context.Context, req service.CreateDoctorRequest) (*models.Doctor, error)
	Update(ctx context.Context, id string, req service.UpdateDoctorRequest) (*models.Doctor, error)
	SoftDelete(ctx context.Context, id string) (*models.Doctor, error)
	Restore(ctx context.Context, id string) (*models.Doctor, error)
}

// ExportService renders the directory for download. A nil value disables
// the export endpoint.
type ExportService interface {
	Export(ctx context.Context, format string) (*service.ExportResult, error)
}

// DoctorHandler exposes doctor directory CRUD endpoints.
type DoctorHandler struct {
	service  doctorService
	exporter ExportService
}

// NewDoctorHandler builds a new handler. exporter may be nil when exports are disabled.
func NewDoctorHandler(service doctorService, exporter ExportService) *DoctorHandler {
	return &DoctorHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List doctors
// @Tags Doctors
// @Produce json
// @Param search query string false "Name search"
// @Param district query string false "District filter"
// @Param specialty query string false "Specialty filter"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (max 100)"
// @Param sortBy query string false "Sort column (name, district, created_at, updated_at)"
// @Param sortOrder query string false "Sort order (asc, desc)"
// @Success 200 {object} response.Envelope
// @Router /doctors [get]
func (h *DoctorHandler) List(c *gin.Context) {
	filter := models.DoctorFilter{
		Search:    c.Query("search"),
		District:  c.Query("district"),
		Specialty: c.Query("specialty"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("pageSize", "20")); err == nil {
		filter.PageSize = size
	}

	doctors, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctors, pagination)
}

// Get godoc
// @Summary Get a doctor with its specializations
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Envelope
// @Router /doctors/{id} [get]
func (h *DoctorHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Create a doctor
// @Tags Doctors
// @Accept json
// @Produce json
// @Param payload body service.CreateDoctorRequest true "Doctor payload"
// @Success 201 {object} response.Envelope
// @Router /doctors [post]
func (h *DoctorHandler) Create(c *gin.Context) {
	var req service.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid doctor payload"))
		return
	}
	doctor, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doctor)
}

// Update godoc
// @Summary Update a doctor
// @Tags Doctors
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param payload body service.UpdateDoctorRequest true "Partial doctor payload"
// @Success 200 {object} response.Envelope
// @Router /doctors/{id} [put]
func (h *DoctorHandler) Update(c *gin.Context) {
	var req service.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid doctor payload"))
		return
	}
	doctor, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctor, nil)
}

// Delete godoc
// @Summary Soft delete a doctor
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Envelope
// @Router /doctors/{id} [delete]
func (h *DoctorHandler) Delete(c *gin.Context) {
	doctor, err := h.service.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctor, nil)
}

// Restore godoc
// @Summary Restore a soft deleted doctor
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Envelope
// @Router /doctors/{id}/restore [post]
func (h *DoctorHandler) Restore(c *gin.Context) {
	doctor, err := h.service.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctor, nil)
}

// Export godoc
// @Summary Export the doctor directory
// @Tags Doctors
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv, pdf)"
// @Success 200 {file} file
// @Router /doctors/export [get]
func (h *DoctorHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export is disabled"))
		return
	}
	result, err := h.exporter.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
