package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DownloadFolderCSVs pulls every CSV in the folder into destDir and returns
// the local paths. Non-CSV files are skipped; Drive folders with mixed
// content are common, that is not an error.
func (s *Service) DownloadFolderCSVs(ctx context.Context, folderID, destDir string) ([]string, error) {
	files, err := s.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed creating download dir %s: %w", destDir, err)
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		if !isCSV(f) {
			log.Debug().Str("file", f.Name).Str("mime", f.MimeType).Msg("drive: skipping non-csv file")
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return nil, fmt.Errorf("failed creating %s: %w", destPath, err)
		}
		if err := s.DownloadFile(ctx, f.ID, out); err != nil {
			out.Close()
			return nil, err
		}
		if err := out.Close(); err != nil {
			return nil, fmt.Errorf("failed writing %s: %w", destPath, err)
		}

		log.Info().Str("file", f.Name).Int64("size", f.Size).Msg("drive: file downloaded")
		paths = append(paths, destPath)
	}
	return paths, nil
}

func isCSV(f *File) bool {
	if f.MimeType == "text/csv" {
		return true
	}
	return strings.EqualFold(filepath.Ext(f.Name), ".csv")
}
