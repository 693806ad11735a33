// internal/repository/postgres/signal_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/repository"
)

type signalRepository struct {
	db *DB
}

// NewSignalRepository creates the Postgres-backed analyzer data source.
func NewSignalRepository(db *DB) repository.SignalRepository {
	return &signalRepository{db: db}
}

func (r *signalRepository) LowStockItems(ctx context.Context, limit int) ([]domain.LowStockItem, error) {
	query := `
        SELECT i.drug_name, i.category, i.current_stock, i.minimum_stock, i.unit_price,
               (i.minimum_stock - i.current_stock) AS shortage,
               COALESCE(AVG(cp.quantity_consumed), 0) AS avg_daily_consumption
        FROM inventory i
        LEFT JOIN consumption_patterns cp ON i.id = cp.drug_id
          AND cp.date >= CURRENT_DATE - INTERVAL '30 days'
        WHERE i.current_stock < i.minimum_stock
        GROUP BY i.drug_name, i.category, i.current_stock, i.minimum_stock, i.unit_price
        ORDER BY shortage DESC
        LIMIT $1
    `

	items := make([]domain.LowStockItem, 0)
	if err := r.db.selectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch low stock items: %w", err)
	}

	log.Debug().Int("rows", len(items)).Msg("signals: low stock fetched")
	return items, nil
}

func (r *signalRepository) ExpiringItems(ctx context.Context, horizonDays, limit int) ([]domain.ExpiringItem, error) {
	query := `
        SELECT i.drug_name, i.category, i.current_stock, i.unit_price,
               (i.expiry_date - CURRENT_DATE) AS days_to_expiry,
               (i.current_stock * i.unit_price) AS potential_loss,
               COALESCE(AVG(cp.quantity_consumed), 0) AS avg_daily_consumption
        FROM inventory i
        LEFT JOIN consumption_patterns cp ON i.id = cp.drug_id
          AND cp.date >= CURRENT_DATE - INTERVAL '30 days'
        WHERE i.expiry_date IS NOT NULL
          AND (i.expiry_date - CURRENT_DATE) BETWEEN 0 AND $1
          AND i.current_stock > 0
        GROUP BY i.drug_name, i.category, i.current_stock, i.expiry_date, i.unit_price
        ORDER BY days_to_expiry ASC
        LIMIT $2
    `

	items := make([]domain.ExpiringItem, 0)
	if err := r.db.selectContext(ctx, &items, query, horizonDays, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch expiring items: %w", err)
	}

	log.Debug().Int("rows", len(items)).Msg("signals: expiring fetched")
	return items, nil
}

func (r *signalRepository) OverstockItems(ctx context.Context, multiple, depleteDays float64, limit int) ([]domain.OverstockItem, error) {
	query := `
        SELECT i.drug_name, i.category, i.current_stock, i.minimum_stock,
               (i.current_stock - i.minimum_stock) AS excess_stock,
               (i.current_stock * i.unit_price) AS tied_capital,
               COALESCE(AVG(cp.quantity_consumed), 0) AS avg_daily_consumption
        FROM inventory i
        LEFT JOIN consumption_patterns cp ON i.id = cp.drug_id
          AND cp.date >= CURRENT_DATE - INTERVAL '30 days'
        WHERE i.current_stock > i.minimum_stock * $1
        GROUP BY i.drug_name, i.category, i.current_stock, i.minimum_stock, i.unit_price
        HAVING COALESCE(AVG(cp.quantity_consumed), 0) < (i.current_stock / $2)
        ORDER BY tied_capital DESC
        LIMIT $3
    `

	items := make([]domain.OverstockItem, 0)
	if err := r.db.selectContext(ctx, &items, query, multiple, depleteDays, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch overstock items: %w", err)
	}

	log.Debug().Int("rows", len(items)).Msg("signals: overstock fetched")
	return items, nil
}

func (r *signalRepository) SlowMoverItems(ctx context.Context, windowDays int, cutoff float64, limit int) ([]domain.SlowMoverItem, error) {
	query := `
        SELECT i.drug_name, i.category, i.current_stock,
               COALESCE(SUM(cp.quantity_consumed), 0) AS total_consumed_90d,
               (i.current_stock * i.unit_price) AS inventory_value
        FROM inventory i
        LEFT JOIN consumption_patterns cp ON i.id = cp.drug_id
          AND cp.date >= CURRENT_DATE - make_interval(days => $1)
        WHERE i.current_stock > 0
        GROUP BY i.drug_name, i.category, i.current_stock, i.unit_price
        HAVING COALESCE(SUM(cp.quantity_consumed), 0) < $2
        ORDER BY inventory_value DESC
        LIMIT $3
    `

	items := make([]domain.SlowMoverItem, 0)
	if err := r.db.selectContext(ctx, &items, query, windowDays, cutoff, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch slow movers: %w", err)
	}

	log.Debug().Int("rows", len(items)).Msg("signals: slow movers fetched")
	return items, nil
}

func (r *signalRepository) HighDemandItems(ctx context.Context, growthFactor float64, limit int) ([]domain.HighDemandItem, error) {
	query := `
        SELECT * FROM (
            SELECT i.drug_name, i.category, i.current_stock, i.minimum_stock, i.unit_price,
                   SUM(CASE WHEN cp.date >= CURRENT_DATE - INTERVAL '30 days'
                       THEN cp.quantity_consumed ELSE 0 END) AS last_30d,
                   SUM(CASE WHEN cp.date >= CURRENT_DATE - INTERVAL '60 days'
                       AND cp.date < CURRENT_DATE - INTERVAL '30 days'
                       THEN cp.quantity_consumed ELSE 0 END) AS prev_30d
            FROM inventory i
            JOIN consumption_patterns cp ON i.id = cp.drug_id
            WHERE cp.date >= CURRENT_DATE - INTERVAL '60 days'
            GROUP BY i.drug_name, i.category, i.current_stock, i.minimum_stock, i.unit_price
        ) windows
        WHERE last_30d > prev_30d * $1 AND last_30d > 10
        ORDER BY (last_30d - prev_30d) DESC
        LIMIT $2
    `

	items := make([]domain.HighDemandItem, 0)
	if err := r.db.selectContext(ctx, &items, query, growthFactor, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch high demand items: %w", err)
	}

	log.Debug().Int("rows", len(items)).Msg("signals: high demand fetched")
	return items, nil
}

func (r *signalRepository) SeasonalItems(ctx context.Context, month time.Month, factor float64, limit int) ([]domain.SeasonalItem, error) {
	query := `
        SELECT * FROM (
            SELECT i.drug_name, i.category,
                   AVG(CASE WHEN EXTRACT(MONTH FROM cp.date) = $1
                       THEN cp.quantity_consumed ELSE 0 END) AS current_month_avg,
                   AVG(cp.quantity_consumed) AS overall_avg
            FROM inventory i
            JOIN consumption_patterns cp ON i.id = cp.drug_id
            WHERE cp.date >= CURRENT_DATE - INTERVAL '365 days'
            GROUP BY i.drug_name, i.category
        ) monthly
        WHERE current_month_avg > overall_avg * $2
        ORDER BY (current_month_avg - overall_avg) DESC
        LIMIT $3
    `

	items := make([]domain.SeasonalItem, 0)
	if err := r.db.selectContext(ctx, &items, query, int(month), factor, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch seasonal items: %w", err)
	}

	log.Debug().Int("rows", len(items)).Msg("signals: seasonal fetched")
	return items, nil
}

func (r *signalRepository) SupplierIssues(ctx context.Context, scoreFloor float64, leadTimeMax, limit int) ([]domain.SupplierIssue, error) {
	query := `
        SELECT s.name, s.reliability_score, s.quality_score, s.cost_rating, s.lead_time_days
        FROM suppliers s
        WHERE s.reliability_score < $1 OR s.quality_score < $1 OR s.lead_time_days > $2
        ORDER BY (s.reliability_score + s.quality_score) / 2 ASC
        LIMIT $3
    `

	items := make([]domain.SupplierIssue, 0)
	if err := r.db.selectContext(ctx, &items, query, scoreFloor, leadTimeMax, limit); err != nil {
		// Supplier quality data may be absent entirely (older schemas without
		// the score columns). Degrade to an empty result instead of failing
		// the whole recommendation run.
		log.Warn().Err(err).Msg("signals: supplier quality data unavailable, returning empty result")
		return []domain.SupplierIssue{}, nil
	}

	log.Debug().Int("rows", len(items)).Msg("signals: supplier issues fetched")
	return items, nil
}

func (r *signalRepository) DataVersion(ctx context.Context) (string, error) {
	query := `
        SELECT COALESCE(to_char(GREATEST(
            (SELECT MAX(updated_at) FROM inventory),
            (SELECT MAX(created_at) FROM consumption_patterns)
        ), 'YYYYMMDDHH24MISSUS'), 'empty')
    `

	var version string
	if err := r.db.getContext(ctx, &version, query); err != nil {
		return "", fmt.Errorf("failed to resolve data version: %w", err)
	}
	return version, nil
}
