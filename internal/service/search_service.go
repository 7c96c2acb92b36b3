package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/daktarbari/doctor-directory-api/internal/models"
	appErrors "github.com/daktarbari/doctor-directory-api/pkg/errors"
)

type promptNormalizer interface {
	Normalize(ctx context.Context, text string) string
}

type criteriaExtractor interface {
	Extract(ctx context.Context, prompt, fallbackDistrict string) (models.SearchCriteria, error)
}

type filterBuilder interface {
	Build(criteria models.SearchCriteria, now time.Time) (string, []interface{}, error)
}

type searchRepository interface {
	Search(ctx context.Context, where string, args []interface{}) ([]models.Doctor, error)
}

// SearchService sequences the AI search pipeline: normalize the prompt,
// extract criteria, build the filter, and execute it exactly once. Results
// are returned in full; AI search is not paginated or cached.
type SearchService struct {
	normalizer       promptNormalizer
	extractor        criteriaExtractor
	builder          filterBuilder
	repo             searchRepository
	metrics          *MetricsService
	logger           *zap.Logger
	fallbackDistrict string
	now              func() time.Time
}

// NewSearchService constructs a SearchService. fallbackDistrict substitutes
// for requests that carry no fallback location of their own.
func NewSearchService(normalizer promptNormalizer, extractor criteriaExtractor, builder filterBuilder, repo searchRepository, metrics *MetricsService, logger *zap.Logger, fallbackDistrict string) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{
		normalizer:       normalizer,
		extractor:        extractor,
		builder:          builder,
		repo:             repo,
		metrics:          metrics,
		logger:           logger,
		fallbackDistrict: fallbackDistrict,
		now:              time.Now,
	}
}

// Search resolves a free-text prompt into matching doctors plus the criteria
// that produced them. Extraction failures propagate verbatim; persistence
// failures surface as generic internal errors.
func (s *SearchService) Search(ctx context.Context, prompt, fallbackLocation string) (*models.SearchResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "prompt is required")
	}

	fallback := strings.TrimSpace(fallbackLocation)
	if fallback == "" {
		fallback = s.fallbackDistrict
	}

	normalized := s.normalizer.Normalize(ctx, prompt)

	start := time.Now()
	criteria, err := s.extractor.Extract(ctx, normalized, fallback)
	s.metrics.ObserveExtraction(time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("criteria extracted",
		zap.String("date_requirement", criteria.DateRequirement),
		zap.Strings("time_preferences", criteria.TimePreferences),
		zap.Bool("urgency", criteria.Urgency),
	)

	where, args, err := s.builder.Build(criteria, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build search filter")
	}

	doctors, err := s.repo.Search(ctx, where, args)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "doctor search failed")
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}

	return &models.SearchResult{
		Data:     doctors,
		Meta:     models.SearchMeta{Count: len(doctors)},
		Criteria: criteria,
	}, nil
}
