package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Habr.Hubs) != 1 || cfg.Habr.Hubs[0] != "go" {
		t.Errorf("unexpected default hubs: %v", cfg.Habr.Hubs)
	}
	if !cfg.UI.ShowDetails {
		t.Error("expected details shown by default")
	}
	if cfg.Habr.ScrapeDelay != time.Second {
		t.Errorf("unexpected default scrape delay: %v", cfg.Habr.ScrapeDelay)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
habr:
  hubs:
    - go
    - rust
  filters:
    exclude_keywords:
      - vacancies
    min_rating: 5
database:
  path: /tmp/test.db
ui:
  show_details: false
  notify: false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Habr.Hubs) != 2 || cfg.Habr.Hubs[1] != "rust" {
		t.Errorf("unexpected hubs: %v", cfg.Habr.Hubs)
	}
	if cfg.Habr.Filters.MinRating != 5 {
		t.Errorf("expected min rating 5, got %d", cfg.Habr.Filters.MinRating)
	}
	if len(cfg.Habr.Filters.ExcludeKeywords) != 1 {
		t.Errorf("unexpected exclude keywords: %v", cfg.Habr.Filters.ExcludeKeywords)
	}
	if cfg.UI.ShowDetails {
		t.Error("expected show_details false")
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dbPath != "/tmp/test.db" {
		t.Errorf("unexpected database path %q", dbPath)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("habr: [not a mapping"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}
