// internal/ingest/processor.go
package ingest

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Dataset names one of the ingestable CSV layouts.
type Dataset string

const (
	DatasetInventory   Dataset = "inventory"
	DatasetConsumption Dataset = "consumption"
	DatasetSuppliers   Dataset = "suppliers"
)

// Result reports what one file contributed.
type Result struct {
	Rows    int
	Skipped int
}

// Processor loads pharmacy CSV exports into Postgres. Each file is processed
// inside a single transaction so a malformed file never leaves partial state.
type Processor struct {
	db *sql.DB
}

func NewProcessor(db *sql.DB) *Processor {
	return &Processor{db: db}
}

// ProcessFile ingests one CSV file of the given dataset.
func (p *Processor) ProcessFile(ctx context.Context, dataset Dataset, path string) (Result, error) {
	switch dataset {
	case DatasetInventory:
		return p.processFile(ctx, path, inventoryColumns, p.upsertInventoryRow, upsertInventorySQL)
	case DatasetConsumption:
		return p.processFile(ctx, path, consumptionColumns, p.upsertConsumptionRow, upsertConsumptionSQL)
	case DatasetSuppliers:
		return p.processFile(ctx, path, supplierColumns, p.upsertSupplierRow, upsertSupplierSQL)
	default:
		return Result{}, fmt.Errorf("unknown dataset: %s", dataset)
	}
}

// ProcessDir ingests every *.csv under dir using a bounded worker pool.
func (p *Processor) ProcessDir(ctx context.Context, dataset Dataset, dir string, workerCount int) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		log.Warn().Str("dir", dir).Msg("ingest: no csv files found")
		return nil
	}

	if workerCount < 1 {
		workerCount = 1
	}

	jobChan := make(chan string, len(paths))
	errChan := make(chan error, workerCount)
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for path := range jobChan {
				res, err := p.ProcessFile(ctx, dataset, path)
				if err != nil {
					log.Error().Err(err).
						Int("worker", workerID).
						Str("file", path).
						Msg("ingest: file failed")
					select {
					case errChan <- err:
					default:
					}
					continue
				}
				log.Info().
					Str("file", path).
					Int("rows", res.Rows).
					Int("skipped", res.Skipped).
					Msg("ingest: file processed")
			}
		}(i)
	}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			close(jobChan)
			return ctx.Err()
		case jobChan <- path:
		}
	}
	close(jobChan)

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return err
	}
	return nil
}

const (
	upsertInventorySQL = `
		INSERT INTO inventory (drug_name, category, current_stock, minimum_stock, unit_price, expiry_date, supplier_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (drug_name) DO UPDATE SET
			category = EXCLUDED.category,
			current_stock = EXCLUDED.current_stock,
			minimum_stock = EXCLUDED.minimum_stock,
			unit_price = EXCLUDED.unit_price,
			expiry_date = EXCLUDED.expiry_date,
			supplier_id = EXCLUDED.supplier_id,
			updated_at = NOW()`

	upsertConsumptionSQL = `
		INSERT INTO consumption_patterns (drug_id, date, quantity_consumed, department, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (drug_id, date, department) DO UPDATE SET
			quantity_consumed = EXCLUDED.quantity_consumed`

	upsertSupplierSQL = `
		INSERT INTO suppliers (name, reliability_score, quality_score, cost_rating, lead_time_days)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			reliability_score = EXCLUDED.reliability_score,
			quality_score = EXCLUDED.quality_score,
			cost_rating = EXCLUDED.cost_rating,
			lead_time_days = EXCLUDED.lead_time_days`
)

var (
	inventoryColumns   = []string{"drug_name", "category", "current_stock", "minimum_stock", "unit_price"}
	consumptionColumns = []string{"drug_id", "date", "quantity_consumed"}
	supplierColumns    = []string{"name", "reliability_score", "quality_score", "cost_rating", "lead_time_days"}
)

type rowFunc func(ctx context.Context, stmt *sql.Stmt, row csvRow) (bool, error)

func (p *Processor) processFile(ctx context.Context, path string, required []string, handle rowFunc, upsertSQL string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(strings.ToLower(col))] = i
	}
	for _, col := range required {
		if _, ok := colMap[col]; !ok {
			return Result{}, fmt.Errorf("missing required column: %s", col)
		}
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return Result{}, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	var res Result
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		ok, err := handle(ctx, stmt, csvRow{record: record, colMap: colMap})
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", line, err)
		}
		if !ok {
			res.Skipped++
			log.Warn().Str("file", path).Int("line", line).Msg("ingest: skipping malformed row")
			continue
		}
		res.Rows++
	}

	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("failed to commit: %w", err)
	}
	return res, nil
}

func (p *Processor) upsertInventoryRow(ctx context.Context, stmt *sql.Stmt, row csvRow) (bool, error) {
	name := row.value("drug_name")
	if name == "" {
		return false, nil
	}

	var expiry sql.NullTime
	if raw := row.value("expiry_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return false, nil
		}
		expiry = sql.NullTime{Time: t, Valid: true}
	}

	var supplierID sql.NullInt64
	if raw := row.value("supplier_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return false, nil
		}
		supplierID = sql.NullInt64{Int64: id, Valid: true}
	}

	_, err := stmt.ExecContext(ctx,
		name,
		row.value("category"),
		row.float("current_stock"),
		row.float("minimum_stock"),
		row.float("unit_price"),
		expiry,
		supplierID,
	)
	if err != nil {
		return false, fmt.Errorf("upsert inventory: %w", err)
	}
	return true, nil
}

func (p *Processor) upsertConsumptionRow(ctx context.Context, stmt *sql.Stmt, row csvRow) (bool, error) {
	drugID, err := strconv.ParseInt(row.value("drug_id"), 10, 64)
	if err != nil || drugID <= 0 {
		return false, nil
	}
	date, err := time.Parse("2006-01-02", row.value("date"))
	if err != nil {
		return false, nil
	}

	department := row.value("department")
	if department == "" {
		department = "general"
	}

	_, err = stmt.ExecContext(ctx, drugID, date, row.float("quantity_consumed"), department)
	if err != nil {
		return false, fmt.Errorf("upsert consumption: %w", err)
	}
	return true, nil
}

func (p *Processor) upsertSupplierRow(ctx context.Context, stmt *sql.Stmt, row csvRow) (bool, error) {
	name := row.value("name")
	if name == "" {
		return false, nil
	}

	_, err := stmt.ExecContext(ctx,
		name,
		row.float("reliability_score"),
		row.float("quality_score"),
		row.float("cost_rating"),
		row.float("lead_time_days"),
	)
	if err != nil {
		return false, fmt.Errorf("upsert supplier: %w", err)
	}
	return true, nil
}

type csvRow struct {
	record []string
	colMap map[string]int
}

func (r csvRow) value(colName string) string {
	if idx, ok := r.colMap[colName]; ok && idx < len(r.record) {
		return strings.TrimSpace(r.record[idx])
	}
	return ""
}

func (r csvRow) float(colName string) float64 {
	val := r.value(colName)
	if val == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(val, 64)
	return f
}
