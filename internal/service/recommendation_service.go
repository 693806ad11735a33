// internal/service/recommendation_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/pharmastock/pharmastock/internal/cache"
	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/engine"
	"github.com/pharmastock/pharmastock/internal/repository"
)

// RecommendationService fronts the engine with a cache keyed by the data
// version token. As long as inventory and consumption data do not change,
// repeated requests serve the cached run.
type RecommendationService struct {
	repo   repository.SignalRepository
	engine *engine.Engine
	cache  cache.RecommendationCache
}

func NewRecommendationService(repo repository.SignalRepository, eng *engine.Engine, cacheImpl cache.RecommendationCache) *RecommendationService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRecommendationCache()
	}
	return &RecommendationService{repo: repo, engine: eng, cache: cacheImpl}
}

// GetRecommendations returns the ranked list for the current data version,
// from cache when possible.
func (s *RecommendationService) GetRecommendations(ctx context.Context) (*domain.RecommendationList, error) {
	version, err := s.repo.DataVersion(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("recommendations: data version lookup failed, bypassing cache")
		return s.compute(ctx, "")
	}

	if list, ok, err := s.cache.Get(ctx, version); err == nil && ok {
		return list, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("recommendations: cache get failed")
	}

	return s.compute(ctx, version)
}

// Refresh drops every cached run and recomputes against current data.
func (s *RecommendationService) Refresh(ctx context.Context) (*domain.RecommendationList, error) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("recommendations: cache invalidation failed")
	}

	version, err := s.repo.DataVersion(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("recommendations: data version lookup failed, bypassing cache")
		version = ""
	}
	return s.compute(ctx, version)
}

// GetSummary aggregates the ranked list into dashboard tiles.
func (s *RecommendationService) GetSummary(ctx context.Context) (*domain.RecommendationSummary, error) {
	list, err := s.GetRecommendations(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.RecommendationSummary{
		Counts: make(map[domain.RecommendationType]int),
	}
	for _, rec := range list.Items {
		summary.Counts[rec.Type]++
		if rec.Urgency == domain.SeverityCritical {
			summary.Critical++
		}
		summary.TotalCost += rec.EstimatedCost
		summary.TotalSaving += rec.EstimatedSavings
	}
	return summary, nil
}

func (s *RecommendationService) compute(ctx context.Context, version string) (*domain.RecommendationList, error) {
	list, err := s.engine.Run(ctx)
	if err != nil {
		return nil, err
	}
	list.DataVersion = version

	if version != "" {
		if err := s.cache.Set(ctx, version, list); err != nil {
			log.Warn().Err(err).Msg("recommendations: cache set failed")
		}
	}
	return list, nil
}
