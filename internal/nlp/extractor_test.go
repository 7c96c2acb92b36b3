package nlp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/daktarbari/doctor-directory-api/internal/models"
	appErrors "github.com/daktarbari/doctor-directory-api/pkg/errors"
)

type fakeModel struct {
	reply string
	err   error
	calls int
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return f.reply, f.err
}

func newFakeExtractor(model *fakeModel) *Extractor {
	return NewExtractorWithClient(model, 0, zap.NewNop())
}

func TestExtractParsesFullReply(t *testing.T) {
	model := &fakeModel{reply: `{
		"condition": "tooth",
		"district": "Dhaka",
		"dateRequirement": "tomorrow",
		"timePreferences": ["morning"],
		"urgency": false
	}`}

	criteria, err := newFakeExtractor(model).Extract(context.Background(), "I have a toothache in Dhaka tomorrow morning", "Chattogram")
	require.NoError(t, err)

	require.NotNil(t, criteria.Condition)
	assert.Equal(t, "tooth", *criteria.Condition)
	require.NotNil(t, criteria.District)
	assert.Equal(t, "Dhaka", *criteria.District)
	assert.Equal(t, models.DateTomorrow, criteria.DateRequirement)
	assert.Equal(t, []string{"morning"}, criteria.TimePreferences)
	assert.Empty(t, criteria.RelatedConditions)
	assert.False(t, criteria.Urgency)
	assert.Equal(t, 1, model.calls)
}

func TestExtractDefaultsMissingFields(t *testing.T) {
	model := &fakeModel{reply: `{}`}

	criteria, err := newFakeExtractor(model).Extract(context.Background(), "find me a doctor", "Dhaka")
	require.NoError(t, err)

	assert.Nil(t, criteria.Condition)
	assert.Nil(t, criteria.Specialty)
	assert.Equal(t, models.DateNone, criteria.DateRequirement)
	assert.Equal(t, []string{}, criteria.TimePreferences)
	assert.Equal(t, []string{}, criteria.RelatedConditions)
	require.NotNil(t, criteria.District)
	assert.Equal(t, "Dhaka", *criteria.District)
	assert.False(t, criteria.Urgency)
}

func TestExtractNoFallbackDistrictLeavesNil(t *testing.T) {
	model := &fakeModel{reply: `{}`}

	criteria, err := newFakeExtractor(model).Extract(context.Background(), "find me a doctor", "")
	require.NoError(t, err)
	assert.Nil(t, criteria.District)
}

func TestExtractStripsCodeFences(t *testing.T) {
	model := &fakeModel{reply: "```json\n{\"condition\":\"kidney\"}\n```"}

	criteria, err := newFakeExtractor(model).Extract(context.Background(), "kidney problem", "")
	require.NoError(t, err)
	require.NotNil(t, criteria.Condition)
	assert.Equal(t, "kidney", *criteria.Condition)
}

func TestExtractNonJSONReplyFails(t *testing.T) {
	model := &fakeModel{reply: "Sorry, I cannot help with that."}

	_, err := newFakeExtractor(model).Extract(context.Background(), "anything", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrExtraction.Code, appErrors.FromError(err).Code)
}

func TestExtractTransportErrorFails(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}

	_, err := newFakeExtractor(model).Extract(context.Background(), "anything", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrExtraction.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 1, model.calls)
}

func TestExtractUnknownDateRequirementRejected(t *testing.T) {
	model := &fakeModel{reply: `{"dateRequirement": "next week"}`}

	_, err := newFakeExtractor(model).Extract(context.Background(), "anything", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrExtraction.Code, appErrors.FromError(err).Code)
}

func TestExtractSpecificDateValidation(t *testing.T) {
	missing := &fakeModel{reply: `{"dateRequirement": "specific_date"}`}
	_, err := newFakeExtractor(missing).Extract(context.Background(), "anything", "")
	require.Error(t, err)

	malformed := &fakeModel{reply: `{"dateRequirement": "specific_date", "specificDate": "15/06/2024"}`}
	_, err = newFakeExtractor(malformed).Extract(context.Background(), "anything", "")
	require.Error(t, err)

	valid := &fakeModel{reply: `{"dateRequirement": "specific_date", "specificDate": "2024-06-15"}`}
	criteria, err := newFakeExtractor(valid).Extract(context.Background(), "anything", "")
	require.NoError(t, err)
	assert.Equal(t, models.DateSpecific, criteria.DateRequirement)
}
