package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/quilting/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultAlgorithm = model.AlgorithmGenetic
	cfg.DefaultSeed = 42
	cfg.Color = false
	cfg.RecentLayouts = []string{"/tmp/a.json", "/tmp/b.yaml"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultAlgorithm != model.AlgorithmGenetic {
		t.Errorf("expected genetic algorithm, got %s", loaded.DefaultAlgorithm)
	}
	if loaded.DefaultSeed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.DefaultSeed)
	}
	if loaded.Color {
		t.Error("expected colour disabled")
	}
	if len(loaded.RecentLayouts) != 2 {
		t.Errorf("expected 2 recent layouts, got %d", len(loaded.RecentLayouts))
	}
}

func TestSaveAndLoadAppConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := model.DefaultAppConfig()
	cfg.BoardWidth = 7
	cfg.CellSize = 20
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || data[0] == '{' {
		t.Errorf("expected YAML output, got %q", string(data))
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.BoardWidth != 7 || loaded.CellSize != 20 {
		t.Errorf("unexpected values after YAML round trip: %+v", loaded)
	}
}

func TestLoadAppConfigPartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("board_width: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.BoardWidth != 5 {
		t.Errorf("expected board width 5, got %d", cfg.BoardWidth)
	}
	if cfg.BoardHeight != model.DefaultBoardHeight {
		t.Errorf("expected default height, got %d", cfg.BoardHeight)
	}
	if cfg.DefaultAlgorithm != model.AlgorithmGreedy {
		t.Errorf("expected default algorithm, got %s", cfg.DefaultAlgorithm)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.BoardWidth != defaults.BoardWidth || cfg.CellSize != defaults.CellSize {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentLayouts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"board_width":9,"recent_layouts":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil after loading")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	if filepath.Base(DefaultConfigPath()) != "config.json" {
		t.Errorf("unexpected config path %s", DefaultConfigPath())
	}
	if filepath.Base(DefaultConfigDir()) != ".quilting" {
		t.Errorf("unexpected config dir %s", DefaultConfigDir())
	}
	if filepath.Dir(DefaultLayoutDir()) != DefaultConfigDir() {
		t.Errorf("layout dir should live under the config dir, got %s", DefaultLayoutDir())
	}
}
