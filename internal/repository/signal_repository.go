// internal/repository/signal_repository.go
package repository

import (
	"context"
	"time"

	"github.com/pharmastock/pharmastock/internal/domain"
)

// SignalRepository is the read-only, time-windowed aggregate contract the
// recommendation engine requires from storage. Each method issues one
// aggregated query and returns qualifying rows only.
type SignalRepository interface {
	LowStockItems(ctx context.Context, limit int) ([]domain.LowStockItem, error)
	ExpiringItems(ctx context.Context, horizonDays, limit int) ([]domain.ExpiringItem, error)
	OverstockItems(ctx context.Context, multiple, depleteDays float64, limit int) ([]domain.OverstockItem, error)
	SlowMoverItems(ctx context.Context, windowDays int, cutoff float64, limit int) ([]domain.SlowMoverItem, error)
	HighDemandItems(ctx context.Context, growthFactor float64, limit int) ([]domain.HighDemandItem, error)
	SeasonalItems(ctx context.Context, month time.Month, factor float64, limit int) ([]domain.SeasonalItem, error)
	SupplierIssues(ctx context.Context, scoreFloor float64, leadTimeMax, limit int) ([]domain.SupplierIssue, error)

	// DataVersion returns an opaque token that changes whenever the underlying
	// inventory or consumption data changes. Used as the cache key for runs.
	DataVersion(ctx context.Context) (string, error)
}
