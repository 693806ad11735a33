// cmd/ingest/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/drive"
	"github.com/pharmastock/pharmastock/internal/ingest"
	"github.com/pharmastock/pharmastock/internal/storage"
	"github.com/pharmastock/pharmastock/pkg/logger"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newWorkersFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of parallel file workers",
		Value: 4,
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func contextDB(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func datasetCommand(dataset ingest.Dataset, usage string) *cli.Command {
	return &cli.Command{
		Name:  string(dataset),
		Usage: usage,
		Flags: []cli.Flag{
			newDBURLFlag(),
			newWorkersFlag(),
			&cli.StringFlag{
				Name:  "file",
				Usage: "Single CSV file to ingest",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory of CSV files to ingest",
			},
		},
		Before: initDB,
		After:  closeDB,
		Action: func(c *cli.Context) error {
			db, err := contextDB(c)
			if err != nil {
				return err
			}
			processor := ingest.NewProcessor(db)

			if file := c.String("file"); file != "" {
				res, err := processor.ProcessFile(c.Context, dataset, file)
				if err != nil {
					return err
				}
				logger.Log.Info().
					Str("file", file).
					Int("rows", res.Rows).
					Int("skipped", res.Skipped).
					Msg("Ingest complete")
				return nil
			}
			if dir := c.String("dir"); dir != "" {
				return processor.ProcessDir(c.Context, dataset, dir, c.Int("workers"))
			}
			return fmt.Errorf("either --file or --dir must be provided")
		},
	}
}

func pullStorageCommand() *cli.Command {
	return &cli.Command{
		Name:  "pull-storage",
		Usage: "Download CSV files from object storage and ingest them",
		Flags: []cli.Flag{
			newDBURLFlag(),
			newWorkersFlag(),
			&cli.StringFlag{
				Name:     "dataset",
				Usage:    "Dataset layout of the files (inventory, consumption, suppliers)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Object key prefix to pull",
			},
			&cli.StringFlag{
				Name:  "dest-dir",
				Usage: "Local directory for downloaded files",
				Value: "./data/downloads",
			},
		},
		Before: initDB,
		After:  closeDB,
		Action: func(c *cli.Context) error {
			db, err := contextDB(c)
			if err != nil {
				return err
			}

			cfg := config.Load()
			client, err := storage.NewMinioClient(cfg.Storage)
			if err != nil {
				return err
			}

			objects, err := client.ListObjects(c.Context, c.String("prefix"))
			if err != nil {
				return err
			}

			destDir := c.String("dest-dir")
			for _, obj := range objects {
				destPath := fmt.Sprintf("%s/%s", destDir, obj.Key)
				if err := client.DownloadObject(c.Context, obj.Key, destPath); err != nil {
					return err
				}
				logger.Log.Info().Str("key", obj.Key).Int64("size", obj.Size).Msg("Object downloaded")
			}

			processor := ingest.NewProcessor(db)
			return processor.ProcessDir(c.Context, ingest.Dataset(c.String("dataset")), destDir, c.Int("workers"))
		},
	}
}

func pullDriveCommand() *cli.Command {
	return &cli.Command{
		Name:  "pull-drive",
		Usage: "Download CSV files from a Google Drive folder and ingest them",
		Flags: []cli.Flag{
			newDBURLFlag(),
			newWorkersFlag(),
			&cli.StringFlag{
				Name:     "dataset",
				Usage:    "Dataset layout of the files (inventory, consumption, suppliers)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "folder-id",
				Usage:   "Drive folder ID to pull (defaults to DRIVE_FOLDER_ID)",
				EnvVars: []string{"DRIVE_FOLDER_ID"},
			},
		},
		Before: initDB,
		After:  closeDB,
		Action: func(c *cli.Context) error {
			db, err := contextDB(c)
			if err != nil {
				return err
			}

			cfg := config.Load()
			driveService, err := drive.NewService(c.Context, cfg.Drive.CredentialsJSON)
			if err != nil {
				return err
			}

			folderID := c.String("folder-id")
			if folderID == "" {
				folderID = cfg.Drive.FolderID
			}

			paths, err := driveService.DownloadFolderCSVs(c.Context, folderID, cfg.Drive.DownloadDir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				logger.Log.Warn().Str("folder", folderID).Msg("No CSV files in drive folder")
				return nil
			}

			processor := ingest.NewProcessor(db)
			return processor.ProcessDir(c.Context, ingest.Dataset(c.String("dataset")), cfg.Drive.DownloadDir, c.Int("workers"))
		},
	}
}

func main() {
	_ = godotenv.Load()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logger.SetLevel(level)
	}

	app := &cli.App{
		Name:  "ingest",
		Usage: "Load pharmacy inventory, consumption and supplier data",
		Commands: []*cli.Command{
			datasetCommand(ingest.DatasetInventory, "Ingest inventory CSV exports"),
			datasetCommand(ingest.DatasetConsumption, "Ingest consumption history CSV exports"),
			datasetCommand(ingest.DatasetSuppliers, "Ingest supplier master CSV exports"),
			pullStorageCommand(),
			pullDriveCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("Ingest failed")
	}
}
