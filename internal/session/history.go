package session

import "github.com/piwi3910/quilting/internal/model"

const defaultMaxDepth = 50

// Snapshot captures a board layout at a point in time.
type Snapshot struct {
	Layout model.Layout
	Label  string // Human-readable description (e.g. "Place T:2,0")
}

// History is a timeline of layout snapshots with a cursor on the one the
// board currently shows. Undo and redo move the cursor; recording a new
// step drops everything after it.
type History struct {
	steps    []Snapshot
	cursor   int
	maxDepth int
}

// NewHistory creates an empty History that keeps at most 50 undo steps.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Reset discards the timeline and starts a new one at s.
func (h *History) Reset(s Snapshot) {
	h.steps = []Snapshot{s}
	h.cursor = 0
}

// Record appends s as the new current step. Steps after the cursor are
// discarded, and the oldest steps fall off beyond the max depth.
func (h *History) Record(s Snapshot) {
	if len(h.steps) > 0 {
		h.steps = h.steps[:h.cursor+1]
	}
	h.steps = append(h.steps, s)
	if over := len(h.steps) - (h.maxDepth + 1); over > 0 {
		h.steps = append([]Snapshot(nil), h.steps[over:]...)
	}
	h.cursor = len(h.steps) - 1
}

// Back returns the snapshot an undo would restore without moving the
// cursor.
func (h *History) Back() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	return h.steps[h.cursor-1], true
}

// Forward returns the snapshot a redo would restore without moving the
// cursor.
func (h *History) Forward() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	return h.steps[h.cursor+1], true
}

// Step moves the cursor by delta once the caller has applied the snapshot
// Back or Forward returned. Out-of-range moves are ignored.
func (h *History) Step(delta int) {
	next := h.cursor + delta
	if next < 0 || next >= len(h.steps) {
		return
	}
	h.cursor = next
}

// CanUndo returns true if there is an earlier step.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo returns true if there is a later step.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.steps)-1
}

// MakeSnapshot creates a snapshot of layout with a label. The placement
// slice is copied so later changes to the caller's layout do not leak in.
func MakeSnapshot(layout model.Layout, label string) Snapshot {
	layout.Placements = append([]model.Placement(nil), layout.Placements...)
	return Snapshot{Layout: layout, Label: label}
}
