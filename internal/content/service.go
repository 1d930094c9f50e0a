package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pawshield/adtrack/internal/cache"
	"github.com/pawshield/adtrack/internal/metrics"
	"github.com/pawshield/adtrack/internal/model"
	"github.com/pawshield/adtrack/internal/repository"
)

// ErrContentNotFound indicates no cached content exists for a keyword.
var ErrContentNotFound = errors.New("content not found")

// Store is the persistence port for keyword content. Both the
// PostgreSQL repository and the in-memory store satisfy it.
type Store interface {
	GetContent(ctx context.Context, keyword string) (*model.ContentRecord, error)
	UpsertContent(ctx context.Context, rec *model.ContentRecord) error
}

// Service serves landing copy per keyword: Redis first, then the
// page_content table, generating and persisting on a full miss.
type Service struct {
	store    Store
	cache    *cache.Cache // optional
	cacheTTL time.Duration
	logger   *slog.Logger
	metrics  metrics.Recorder
}

// NewService creates a content Service. cacheClient may be nil, in
// which case only the database is consulted.
func NewService(store Store, cacheClient *cache.Cache, cacheTTL time.Duration, logger *slog.Logger, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{
		store:    store,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		logger:   logger,
		metrics:  recorder,
	}
}

// GetContent is a pure lookup with no side effects. Returns
// ErrContentNotFound when the keyword has no stored copy.
func (s *Service) GetContent(ctx context.Context, keyword string) (*model.ContentRecord, error) {
	rec, err := s.store.GetContent(ctx, keyword)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("get content: %w", err)
	}
	return rec, nil
}

// SaveContent persists generated copy for a keyword, fully replacing
// any previous record, and refreshes the cache entry.
func (s *Service) SaveContent(ctx context.Context, keyword string, gen *model.GeneratedContent) (*model.ContentRecord, error) {
	rec := &model.ContentRecord{
		Keyword:     keyword,
		Headline:    gen.Headline,
		Subheadline: gen.Subheadline,
		BodyContent: gen.BodyContent,
		CTAText:     gen.CTAText,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.store.UpsertContent(ctx, rec); err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetContent(ctx, rec, s.cacheTTL); err != nil {
			// Cache failures never fail the save; next read falls
			// through to the database.
			s.logger.Warn("content cache set failed",
				slog.String("keyword", keyword),
				slog.String("error", err.Error()),
			)
		}
	}

	return rec, nil
}

// GetOrGenerate returns landing copy for a keyword, generating and
// persisting it on first sight. An empty keyword yields generic copy
// that is never persisted.
func (s *Service) GetOrGenerate(ctx context.Context, keyword, campaign string) (*model.ContentRecord, error) {
	if keyword == "" {
		gen := Generate("", campaign)
		return &model.ContentRecord{
			Headline:    gen.Headline,
			Subheadline: gen.Subheadline,
			BodyContent: gen.BodyContent,
			CTAText:     gen.CTAText,
		}, nil
	}

	if s.cache != nil {
		rec, err := s.cache.GetContent(ctx, keyword)
		if err == nil {
			s.metrics.IncContentCacheHit()
			return rec, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("content cache get failed",
				slog.String("keyword", keyword),
				slog.String("error", err.Error()),
			)
		}
	}

	rec, err := s.GetContent(ctx, keyword)
	if err == nil {
		s.metrics.IncContentCacheMiss()
		if s.cache != nil {
			if cerr := s.cache.SetContent(ctx, rec, s.cacheTTL); cerr != nil {
				s.logger.Warn("content cache backfill failed",
					slog.String("keyword", keyword),
					slog.String("error", cerr.Error()),
				)
			}
		}
		return rec, nil
	}
	if !errors.Is(err, ErrContentNotFound) {
		return nil, err
	}

	s.metrics.IncContentGenerated()
	return s.SaveContent(ctx, keyword, Generate(keyword, campaign))
}
