package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daktarbari/doctor-directory-api/internal/models"
	appErrors "github.com/daktarbari/doctor-directory-api/pkg/errors"
)

type searchServiceMock struct {
	result   *models.SearchResult
	err      error
	prompt   string
	fallback string
	called   bool
}

func (m *searchServiceMock) Search(ctx context.Context, prompt, fallbackLocation string) (*models.SearchResult, error) {
	m.called = true
	m.prompt = prompt
	m.fallback = fallbackLocation
	return m.result, m.err
}

func TestSearchHandlerReturnsCriteria(t *testing.T) {
	gin.SetMode(gin.TestMode)
	specialty := "Dental Specialist"
	mockSvc := &searchServiceMock{result: &models.SearchResult{
		Data:     []models.Doctor{{ID: "doc-1"}},
		Meta:     models.SearchMeta{Count: 1},
		Criteria: models.SearchCriteria{Specialty: &specialty},
	}}
	handler := NewSearchHandler(mockSvc)

	payload, _ := json.Marshal(AISearchRequest{Prompt: "I have a toothache", FallbackLocation: "Dhaka"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/search/ai", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Search(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "I have a toothache", mockSvc.prompt)
	assert.Equal(t, "Dhaka", mockSvc.fallback)

	var body struct {
		Data []models.Doctor `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
		SearchCriteria models.SearchCriteria `json:"searchCriteria"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 1, body.Meta.Count)
	require.NotNil(t, body.SearchCriteria.Specialty)
	assert.Equal(t, "Dental Specialist", *body.SearchCriteria.Specialty)
}

func TestSearchHandlerMissingPrompt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &searchServiceMock{}
	handler := NewSearchHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/search/ai", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Search(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.called)
}

func TestSearchHandlerExtractionUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &searchServiceMock{err: appErrors.ErrExtraction}
	handler := NewSearchHandler(mockSvc)

	payload, _ := json.Marshal(AISearchRequest{Prompt: "find a cardiologist"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/search/ai", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Search(c)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "SEARCH_UNAVAILABLE", body.Error.Code)
}
