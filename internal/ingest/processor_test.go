package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp csv: %v", err)
	}
	return path
}

func TestProcessFileRejectsUnknownDataset(t *testing.T) {
	p := NewProcessor(nil)
	_, err := p.ProcessFile(context.Background(), Dataset("bogus"), "nowhere.csv")
	if err == nil || !strings.Contains(err.Error(), "unknown dataset") {
		t.Fatalf("expected unknown dataset error, got %v", err)
	}
}

func TestProcessFileRejectsMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		dataset Dataset
		header  string
		missing string
	}{
		{
			name:    "inventory without unit_price",
			dataset: DatasetInventory,
			header:  "drug_name,category,current_stock,minimum_stock",
			missing: "unit_price",
		},
		{
			name:    "consumption without date",
			dataset: DatasetConsumption,
			header:  "drug_id,quantity_consumed,department",
			missing: "date",
		},
		{
			name:    "suppliers without lead_time_days",
			dataset: DatasetSuppliers,
			header:  "name,reliability_score,quality_score,cost_rating",
			missing: "lead_time_days",
		},
	}

	p := NewProcessor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.header+"\n")
			_, err := p.ProcessFile(context.Background(), tt.dataset, path)
			if err == nil || !strings.Contains(err.Error(), tt.missing) {
				t.Fatalf("expected missing column error for %s, got %v", tt.missing, err)
			}
		})
	}
}

func TestCSVRowHelpers(t *testing.T) {
	row := csvRow{
		record: []string{" Paracetamol ", "12.5", "", "abc"},
		colMap: map[string]int{"name": 0, "stock": 1, "empty": 2, "junk": 3, "beyond": 9},
	}

	if got := row.value("name"); got != "Paracetamol" {
		t.Errorf("value(name) = %q, want trimmed string", got)
	}
	if got := row.float("stock"); got != 12.5 {
		t.Errorf("float(stock) = %v, want 12.5", got)
	}
	if got := row.float("empty"); got != 0 {
		t.Errorf("float(empty) = %v, want 0", got)
	}
	if got := row.float("junk"); got != 0 {
		t.Errorf("float(junk) = %v, want 0", got)
	}
	if got := row.value("beyond"); got != "" {
		t.Errorf("value(beyond) = %q, want empty for out-of-range index", got)
	}
	if got := row.value("absent"); got != "" {
		t.Errorf("value(absent) = %q, want empty for unknown column", got)
	}
}
