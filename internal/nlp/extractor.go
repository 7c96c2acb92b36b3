package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/daktarbari/doctor-directory-api/internal/models"
	"github.com/daktarbari/doctor-directory-api/pkg/config"
	appErrors "github.com/daktarbari/doctor-directory-api/pkg/errors"
)

// systemPrompt fixes the JSON schema of the completion reply. The field
// names here and the parser below must change together.
const systemPrompt = `You convert a patient's doctor-search request into a JSON object.
Reply with ONLY a JSON object, no prose, using exactly these fields:
{
  "condition": string or null,       // the health complaint, e.g. "tooth"
  "specialty": string or null,       // explicit specialty if the user names one
  "relatedConditions": [string],     // other complaints mentioned
  "district": string or null,        // location, e.g. "Dhaka"
  "timePreferences": [string],       // any of: morning, afternoon, evening, weekday, weekend
  "dateRequirement": string,         // one of: none, today, tomorrow, specific_date
  "specificDate": string or null,    // YYYY-MM-DD, only when dateRequirement is specific_date
  "urgency": boolean,                // true when the user needs care urgently
  "hospitalPreference": string or null
}
Omit nothing; use null, [] or false when unknown.`

// Extractor derives search criteria from a free-text prompt via a single
// chat-completion call. There is no retry and no heuristic fallback: any
// transport or parse failure aborts the search.
type Extractor struct {
	client  llms.Model
	timeout time.Duration
	logger  *zap.Logger
}

// NewExtractor builds an Extractor against an OpenAI-compatible endpoint.
func NewExtractor(cfg config.AISearchConfig, logger *zap.Logger) (*Extractor, error) {
	client, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return NewExtractorWithClient(client, cfg.RequestTimeout, logger), nil
}

// NewExtractorWithClient wires an Extractor around an existing model client.
func NewExtractorWithClient(client llms.Model, timeout time.Duration, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{client: client, timeout: timeout, logger: logger}
}

// Extract sends the prompt as the sole user turn and parses the reply into
// criteria. fallbackDistrict substitutes for a missing district.
func (e *Extractor) Extract(ctx context.Context, prompt, fallbackDistrict string) (models.SearchCriteria, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	content := []llms.MessageContent{
		{Role: llms.ChatMessageTypeSystem, Parts: []llms.ContentPart{llms.TextPart(systemPrompt)}},
		{Role: llms.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.TextPart(prompt)}},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("completion call failed", zap.Error(err))
		return models.SearchCriteria{}, appErrors.Wrap(err, appErrors.ErrExtraction.Code, appErrors.ErrExtraction.Status, appErrors.ErrExtraction.Message)
	}
	if len(response.Choices) == 0 {
		return models.SearchCriteria{}, appErrors.Clone(appErrors.ErrExtraction, "completion returned no choices")
	}

	criteria, err := parseCriteria(response.Choices[0].Content, fallbackDistrict)
	if err != nil {
		e.logger.Warn("unparseable completion reply", zap.Error(err))
		return models.SearchCriteria{}, appErrors.Wrap(err, appErrors.ErrExtraction.Code, appErrors.ErrExtraction.Status, appErrors.ErrExtraction.Message)
	}
	return criteria, nil
}

// parseCriteria strictly decodes the reply and coerces defaults: empty sets
// for arrays, false urgency, "none" date requirement, fallback district.
// Unknown dateRequirement values are rejected rather than silently accepted.
func parseCriteria(reply, fallbackDistrict string) (models.SearchCriteria, error) {
	var criteria models.SearchCriteria
	if err := json.Unmarshal([]byte(stripFences(reply)), &criteria); err != nil {
		return models.SearchCriteria{}, err
	}

	if criteria.RelatedConditions == nil {
		criteria.RelatedConditions = []string{}
	}
	if criteria.TimePreferences == nil {
		criteria.TimePreferences = []string{}
	}
	if criteria.District == nil || strings.TrimSpace(*criteria.District) == "" {
		if fallbackDistrict != "" {
			criteria.District = &fallbackDistrict
		} else {
			criteria.District = nil
		}
	}

	switch criteria.DateRequirement {
	case "":
		criteria.DateRequirement = models.DateNone
	case models.DateNone, models.DateToday, models.DateTomorrow:
	case models.DateSpecific:
		if criteria.SpecificDate == nil || strings.TrimSpace(*criteria.SpecificDate) == "" {
			return models.SearchCriteria{}, errMissingSpecificDate
		}
		if _, err := time.Parse("2006-01-02", *criteria.SpecificDate); err != nil {
			return models.SearchCriteria{}, err
		}
	default:
		return models.SearchCriteria{}, errUnknownDateRequirement(criteria.DateRequirement)
	}

	return criteria, nil
}

var errMissingSpecificDate = errors.New("specific_date requirement without a specificDate")

func errUnknownDateRequirement(value string) error {
	return fmt.Errorf("unknown dateRequirement %q", value)
}

// stripFences removes markdown code fences some models wrap around JSON.
func stripFences(reply string) string {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	return strings.TrimSpace(reply)
}
