package board

import (
	"sync"

	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/model"
)

// Guard serializes access to a Board. Place holds the write lock across
// validation and commit; queries and Fit take the read lock and may run
// concurrently with each other.
type Guard struct {
	mu    sync.RWMutex
	board *Board
}

// NewGuard takes ownership of b. The caller must not use b directly afterwards.
func NewGuard(b *Board) *Guard {
	return &Guard{board: b}
}

func (g *Guard) Place(anchor geom.IntPoint, patch model.Patch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Place(anchor, patch)
}

// PlaceFirstFit searches and commits the first legal placement under one
// write lock, so no other placement can invalidate the result in between.
func (g *Guard) PlaceFirstFit(patch model.Patch) (Fit, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.board.Fit(patch)
	if !ok {
		return Fit{}, false
	}
	if err := g.board.Place(f.Anchor, patch.Rotate(f.Rotation)); err != nil {
		return Fit{}, false
	}
	return f, true
}

func (g *Guard) Fit(patch model.Patch) (Fit, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.Fit(patch)
}

func (g *Guard) Render() Grid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.Render()
}

func (g *Guard) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.Len()
}

// Snapshot returns an independent copy of the guarded board.
func (g *Guard) Snapshot() *Board {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.Clone()
}
