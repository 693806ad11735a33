// cmd/ingest/serve.go
package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/drive"
	"github.com/pharmastock/pharmastock/internal/ingest"
	"github.com/pharmastock/pharmastock/pkg/logger"
)

// serveCommand exposes a small webhook listener so the Drive folder owner can
// trigger ingestion remotely after uploading fresh exports.
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a webhook listener that ingests on demand",
		Flags: []cli.Flag{
			newDBURLFlag(),
			newWorkersFlag(),
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Listen address",
				Value: ":8090",
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
			var driveService *drive.Service
			if cfg.Drive.CredentialsJSON != "" {
				driveService, err = drive.NewService(c.Context, cfg.Drive.CredentialsJSON)
				if err != nil {
					return err
				}
			}

			h := &ingestHandler{
				processor: ingest.NewProcessor(db),
				drive:     driveService,
				cfg:       cfg,
				workers:   c.Int("workers"),
			}

			r := mux.NewRouter()
			r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("OK"))
			}).Methods("GET")
			r.HandleFunc("/ingest/file", h.IngestFile).Methods("POST")
			r.HandleFunc("/ingest/drive", h.IngestDrive).Methods("POST")

			addr := c.String("listen")
			logger.Log.Info().Str("addr", addr).Msg("Ingest listener starting")
			return http.ListenAndServe(addr, r)
		},
	}
}

type ingestHandler struct {
	processor *ingest.Processor
	drive     *drive.Service
	cfg       *config.Config
	workers   int
}

func (h *ingestHandler) IngestFile(w http.ResponseWriter, r *http.Request) {
	dataset := ingest.Dataset(r.URL.Query().Get("dataset"))
	path := r.URL.Query().Get("path")
	if dataset == "" || path == "" {
		http.Error(w, "dataset and path parameters are required", http.StatusBadRequest)
		return
	}

	res, err := h.processor.ProcessFile(r.Context(), dataset, path)
	if err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"rows": res.Rows, "skipped": res.Skipped})
}

func (h *ingestHandler) IngestDrive(w http.ResponseWriter, r *http.Request) {
	if h.drive == nil {
		http.Error(w, "drive integration is not configured", http.StatusServiceUnavailable)
		return
	}

	dataset := ingest.Dataset(r.URL.Query().Get("dataset"))
	if dataset == "" {
		http.Error(w, "dataset parameter is required", http.StatusBadRequest)
		return
	}
	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		folderID = h.cfg.Drive.FolderID
	}

	paths, err := h.drive.DownloadFolderCSVs(r.Context(), folderID, h.cfg.Drive.DownloadDir)
	if err != nil {
		http.Error(w, fmt.Sprintf("drive download failed: %v", err), http.StatusBadGateway)
		return
	}
	if len(paths) == 0 {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"files": 0})
		return
	}

	if err := h.processor.ProcessDir(r.Context(), dataset, h.cfg.Drive.DownloadDir, h.workers); err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"files": len(paths)})
}
