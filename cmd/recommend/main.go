// cmd/recommend/main.go
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
	"github.com/pharmastock/pharmastock/internal/engine"
	"github.com/pharmastock/pharmastock/internal/repository/postgres"
	"github.com/pharmastock/pharmastock/internal/storage"
	"github.com/pharmastock/pharmastock/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logger.SetLevel(level)
	}

	app := &cli.App{
		Name:  "recommend",
		Usage: "Run the recommendation engine once and print the ranked list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (json or csv)",
				Value: "json",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output file (defaults to stdout)",
			},
			&cli.BoolFlag{
				Name:  "archive",
				Usage: "Upload the JSON result to object storage",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of recommendations to keep (overrides ENGINE_TOP_N)",
			},
		},
		Action: runRecommend,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("Recommendation run failed")
	}
}

func runRecommend(c *cli.Context) error {
	cfg := config.Load()

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	engineCfg := cfg.Engine
	if top := c.Int("top"); top > 0 {
		engineCfg.TopN = top
	}

	repo := postgres.NewSignalRepository(db)
	eng := engine.New(repo, engineCfg)

	list, err := eng.Run(c.Context)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	case "csv":
		if err := writeCSV(out, list.Items); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", c.String("format"))
	}

	if c.Bool("archive") {
		if err := archive(c.Context, cfg.Storage, list); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(out io.Writer, items []domain.Recommendation) error {
	w := csv.NewWriter(out)
	header := []string{"type", "category", "title", "action", "impact", "urgency", "priority_score", "estimated_cost", "estimated_savings", "days_until_impact"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, rec := range items {
		row := []string{
			string(rec.Type),
			rec.Category,
			rec.Title,
			rec.Action,
			string(rec.Impact),
			string(rec.Urgency),
			strconv.FormatFloat(rec.PriorityScore, 'f', 2, 64),
			strconv.FormatFloat(rec.EstimatedCost, 'f', 2, 64),
			strconv.FormatFloat(rec.EstimatedSavings, 'f', 2, 64),
			strconv.Itoa(rec.DaysUntilImpact),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func archive(ctx context.Context, cfg config.StorageConfig, list *domain.RecommendationList) error {
	client, err := storage.NewMinioClient(cfg)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode archive payload: %w", err)
	}

	key := fmt.Sprintf("recommendations/%s.json", time.Now().UTC().Format("20060102T150405"))
	if err := client.UploadObject(ctx, key, payload); err != nil {
		return err
	}
	logger.Log.Info().Str("key", key).Msg("Run archived to object storage")
	return nil
}
