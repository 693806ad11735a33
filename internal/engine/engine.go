// internal/engine/engine.go
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/repository"
)

const (
	defaultTopN            = 20
	defaultAnalyzerTimeout = 10 * time.Second
)

// Engine runs the full recommendation pipeline: seven signal sources fan out
// concurrently, their candidates are scored and ranked into a single list.
// Stateless across runs; every invocation recomputes from current data.
type Engine struct {
	cfg     config.EngineConfig
	sources []SignalSource
}

// New builds the engine with its closed set of signal sources.
func New(repo repository.SignalRepository, cfg config.EngineConfig) *Engine {
	if cfg.TopN <= 0 {
		cfg.TopN = defaultTopN
	}
	if cfg.AnalyzerTimeout <= 0 {
		cfg.AnalyzerTimeout = defaultAnalyzerTimeout
	}

	return &Engine{
		cfg: cfg,
		sources: []SignalSource{
			newLowStockSource(repo),
			newExpirySource(repo, cfg),
			newOverstockSource(repo, cfg),
			newSlowMoverSource(repo, cfg),
			newHighDemandSource(repo, cfg),
			newSeasonalSource(repo, cfg, time.Now),
			newSupplierSource(repo, cfg),
		},
	}
}

// Run executes all sources, scores their candidates and returns the ranked
// top-N list. A failing or timed-out source contributes zero candidates; the
// run itself never fails because one signal is unavailable.
func (e *Engine) Run(ctx context.Context) (*domain.RecommendationList, error) {
	start := time.Now()

	results := make([][]domain.Recommendation, len(e.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range e.sources {
		i, src := i, src
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, e.cfg.AnalyzerTimeout)
			defer cancel()

			candidates, err := src.Candidates(sctx)
			if err != nil {
				log.Warn().Err(err).
					Str("signal", src.Name()).
					Msg("engine: signal source failed, contributing no candidates")
				return nil
			}
			results[i] = candidates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Sources swallow their own errors; only context cancellation of the
		// whole run lands here.
		return nil, err
	}

	// Concatenate in fixed source order so equal scores rank deterministically.
	var candidates []domain.Recommendation
	for _, r := range results {
		candidates = append(candidates, r...)
	}

	Score(candidates)
	ranked := Rank(candidates, e.cfg.TopN)

	log.Info().
		Int("candidates", len(candidates)).
		Int("ranked", len(ranked)).
		Dur("elapsed", time.Since(start)).
		Msg("engine: recommendation run complete")

	return &domain.RecommendationList{
		Items:       ranked,
		Total:       len(ranked),
		GeneratedAt: time.Now().UTC(),
	}, nil
}
