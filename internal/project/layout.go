package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/quilting/internal/model"
)

// DefaultLayoutDir returns the directory saved layouts live in,
// ~/.quilting/layouts.
func DefaultLayoutDir() string {
	return filepath.Join(DefaultConfigDir(), "layouts")
}

// SaveLayout writes a layout to path as JSON, or YAML for .yaml/.yml.
func SaveLayout(path string, layout model.Layout) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := marshal(path, layout)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadLayout reads a layout saved by SaveLayout. Shape and rotation names
// are validated while decoding; overlap and bounds are checked when the
// layout is restored onto a board.
func LoadLayout(path string) (model.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Layout{}, err
	}
	var layout model.Layout
	if err := unmarshal(path, data, &layout); err != nil {
		return model.Layout{}, fmt.Errorf("failed to parse layout %s: %w", path, err)
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		return model.Layout{}, fmt.Errorf("layout %s has invalid size %dx%d", path, layout.Width, layout.Height)
	}
	if layout.Placements == nil {
		layout.Placements = []model.Placement{}
	}
	return layout, nil
}

// SaveRecent saves layout and records path at the front of the config's
// recent list.
func SaveRecent(path string, layout model.Layout, config *model.AppConfig) error {
	if err := SaveLayout(path, layout); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	config.AddRecentLayout(abs)
	return nil
}
