package model

import "github.com/piwi3910/quilting/internal/geom"

// Default board dimensions.
const (
	DefaultBoardWidth  = 9
	DefaultBoardHeight = 9
)

// Placement is the persisted record of a patch committed to a board.
type Placement struct {
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Shape    Shape    `json:"shape" yaml:"shape"`
	Rotation Rotation `json:"rotation" yaml:"rotation"`
	X        int      `json:"x" yaml:"x"`
	Y        int      `json:"y" yaml:"y"`
}

// Anchor returns the placement's anchor point.
func (p Placement) Anchor() geom.IntPoint { return geom.Pt(p.X, p.Y) }

// Patch returns the placed patch value.
func (p Placement) Patch() Patch {
	return Patch{Shape: p.Shape, Rotation: p.Rotation}
}

// Geometry returns the placement outline in board coordinates.
func (p Placement) Geometry() geom.Polygon {
	return p.Patch().RelativeGeometry(p.Anchor())
}

// Layout is a board snapshot: its dimensions and placements in commit order.
type Layout struct {
	Name       string      `json:"name" yaml:"name"`
	Width      int         `json:"width" yaml:"width"`
	Height     int         `json:"height" yaml:"height"`
	Placements []Placement `json:"placements" yaml:"placements"`
}

// NewLayout returns an empty layout of the default board size.
func NewLayout(name string) Layout {
	return Layout{
		Name:       name,
		Width:      DefaultBoardWidth,
		Height:     DefaultBoardHeight,
		Placements: []Placement{},
	}
}

// CoveredCells returns the number of cells covered by the placements.
func (l Layout) CoveredCells() int {
	total := 0
	for _, p := range l.Placements {
		total += p.Shape.Cells()
	}
	return total
}

// TotalCells returns the board area in cells.
func (l Layout) TotalCells() int { return l.Width * l.Height }

// Coverage returns the covered percentage of the board.
func (l Layout) Coverage() float64 {
	total := l.TotalCells()
	if total == 0 {
		return 0
	}
	return float64(l.CoveredCells()) / float64(total) * 100.0
}

// Buttons returns the total button yield of the placed patches.
func (l Layout) Buttons() int {
	total := 0
	for _, p := range l.Placements {
		total += p.Shape.Buttons()
	}
	return total
}

// Algorithm selects the automated fill strategy.
type Algorithm string

const (
	AlgorithmGreedy  Algorithm = "greedy"  // Largest patch first, first fit (fast)
	AlgorithmGenetic Algorithm = "genetic" // Evolves patch order and preferred rotation (slower, often denser)
)

// FillSettings configures automated placement.
type FillSettings struct {
	Algorithm     Algorithm `json:"algorithm" yaml:"algorithm"`
	AllowRotation bool      `json:"allow_rotation" yaml:"allow_rotation"` // When false only the patch's own orientation is used
	Seed          int64     `json:"seed" yaml:"seed"`                     // Seed for the genetic algorithm
	Generations   int       `json:"generations" yaml:"generations"`
	Population    int       `json:"population" yaml:"population"`
}

// DefaultFillSettings returns greedy fill with rotation enabled.
func DefaultFillSettings() FillSettings {
	return FillSettings{
		Algorithm:     AlgorithmGreedy,
		AllowRotation: true,
		Seed:          1,
		Generations:   60,
		Population:    30,
	}
}
