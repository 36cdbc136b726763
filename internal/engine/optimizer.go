// Package engine fills a board automatically from a list of patches using
// the board's fit search.
package engine

import (
	"sort"

	"github.com/piwi3910/quilting/internal/board"
	"github.com/piwi3910/quilting/internal/model"
)

// Optimizer places patches onto a board with the configured strategy.
type Optimizer struct {
	Settings model.FillSettings
}

func New(settings model.FillSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// FillResult is the outcome of an automated fill.
type FillResult struct {
	Board    *board.Board      // The filled board; the input board is untouched
	Placed   []model.Placement // Placements added by the fill, in commit order
	Unplaced []model.Patch     // Patches no fit was found for
}

// PlacedCells returns the number of cells covered by the fill's placements.
func (r FillResult) PlacedCells() int {
	total := 0
	for _, p := range r.Placed {
		total += p.Shape.Cells()
	}
	return total
}

// Coverage returns the covered percentage of the whole board.
func (r FillResult) Coverage() float64 {
	if r.Board == nil {
		return 0
	}
	total := r.Board.Width() * r.Board.Height()
	return float64(r.Board.CoveredCells()) / float64(total) * 100.0
}

// Buttons returns the button yield of the fill's placements.
func (r FillResult) Buttons() int {
	total := 0
	for _, p := range r.Placed {
		total += p.Shape.Buttons()
	}
	return total
}

// Fill places as many patches as it can onto a copy of b.
func (o *Optimizer) Fill(b *board.Board, patches []model.Patch) FillResult {
	if o.Settings.Algorithm == model.AlgorithmGenetic {
		return FillGenetic(o.Settings, b, patches)
	}
	return o.fillGreedy(b, patches)
}

// fillGreedy places the largest patches first, each at its first fit.
func (o *Optimizer) fillGreedy(b *board.Board, patches []model.Patch) FillResult {
	order := make([]int, len(patches))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return patches[order[i]].Cells() > patches[order[j]].Cells()
	})

	genes := make([]gene, len(order))
	for i, idx := range order {
		genes[i] = gene{patchIndex: idx, rotation: model.R0}
	}
	return decode(o.Settings, b, patches, genes)
}

// rotationOrder lists the rotations to try, starting at preferred.
func rotationOrder(settings model.FillSettings, preferred model.Rotation) []model.Rotation {
	if !settings.AllowRotation {
		return []model.Rotation{model.R0}
	}
	order := make([]model.Rotation, 0, 4)
	for _, r := range model.Rotations() {
		order = append(order, preferred.Add(r))
	}
	return order
}

// decode applies patches to a clone of b in gene order.
func decode(settings model.FillSettings, b *board.Board, patches []model.Patch, genes []gene) FillResult {
	result := FillResult{Board: b.Clone()}
	for _, g := range genes {
		patch := patches[g.patchIndex]
		fit, ok := result.Board.FitRotations(patch, rotationOrder(settings, g.rotation))
		if !ok {
			result.Unplaced = append(result.Unplaced, patch)
			continue
		}
		rec, err := result.Board.PlaceRecord(fit.Anchor, patch.Rotate(fit.Rotation))
		if err != nil {
			result.Unplaced = append(result.Unplaced, patch)
			continue
		}
		result.Placed = append(result.Placed, rec)
	}
	return result
}
