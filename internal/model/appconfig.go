package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Board defaults applied to new layouts
	BoardWidth  int `json:"board_width" yaml:"board_width"`
	BoardHeight int `json:"board_height" yaml:"board_height"`

	// Automated placement defaults
	DefaultAlgorithm     Algorithm `json:"default_algorithm" yaml:"default_algorithm"`
	DefaultAllowRotation bool      `json:"default_allow_rotation" yaml:"default_allow_rotation"`
	DefaultSeed          int64     `json:"default_seed" yaml:"default_seed"`
	DefaultGenerations   int       `json:"default_generations" yaml:"default_generations"`
	DefaultPopulation    int       `json:"default_population" yaml:"default_population"`

	// Output preferences
	Color         bool     `json:"color" yaml:"color"`                   // Colour terminal output
	CellSize      int      `json:"cell_size" yaml:"cell_size"`           // PNG export pixels per cell
	RecentLayouts []string `json:"recent_layouts" yaml:"recent_layouts"` // Most recent first
}

// MaxRecentLayouts bounds the recent layouts list.
const MaxRecentLayouts = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultFillSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultFillSettings()
	return AppConfig{
		BoardWidth:           DefaultBoardWidth,
		BoardHeight:          DefaultBoardHeight,
		DefaultAlgorithm:     defaults.Algorithm,
		DefaultAllowRotation: defaults.AllowRotation,
		DefaultSeed:          defaults.Seed,
		DefaultGenerations:   defaults.Generations,
		DefaultPopulation:    defaults.Population,
		Color:                true,
		CellSize:             32,
		RecentLayouts:        []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a FillSettings struct.
func (c AppConfig) ApplyToSettings(s *FillSettings) {
	s.Algorithm = c.DefaultAlgorithm
	s.AllowRotation = c.DefaultAllowRotation
	s.Seed = c.DefaultSeed
	s.Generations = c.DefaultGenerations
	s.Population = c.DefaultPopulation
}

// AddRecentLayout moves path to the front of the recent list, dropping
// duplicates and trimming to MaxRecentLayouts.
func (c *AppConfig) AddRecentLayout(path string) {
	recent := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > MaxRecentLayouts {
		recent = recent[:MaxRecentLayouts]
	}
	c.RecentLayouts = recent
}
