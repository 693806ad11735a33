// internal/engine/source.go
package engine

import (
	"context"

	"github.com/pharmastock/pharmastock/internal/domain"
)

// SignalSource is one heuristic pipeline: a windowed aggregate read followed
// by a 1:1 mapping of qualifying rows to recommendation candidates. The set
// of sources is fixed; the engine owns the only instances.
type SignalSource interface {
	// Name identifies the signal in logs.
	Name() string

	// Candidates analyzes current data and returns unscored candidates with
	// their base priority scores set.
	Candidates(ctx context.Context) ([]domain.Recommendation, error)
}

// Analyzer row caps. These bound the width of each signal before ranking, so
// a single noisy signal cannot crowd the candidate pool.
const (
	lowStockLimit   = 20
	expiringLimit   = 20
	overstockLimit  = 15
	slowMoverLimit  = 15
	highDemandLimit = 15
	seasonalLimit   = 10
	supplierLimit   = 10
)
