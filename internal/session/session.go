// Package session drives a board interactively: manual moves, automated
// fills and undo/redo. The board itself never removes a placement; undo
// restores an earlier layout onto a fresh board.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/quilting/internal/board"
	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/model"
)

// Move is a requested placement of a patch at an anchor.
type Move struct {
	Patch  model.Patch
	Anchor geom.IntPoint
}

func (m Move) String() string {
	return fmt.Sprintf("%s:%d,%d", m.Patch, m.Anchor.X, m.Anchor.Y)
}

// ParseMove reads "Shape[@rotation]:x,y", for example "T:2,0" or
// "LongI@90:8,4".
func ParseMove(s string) (Move, error) {
	head, coords, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Move{}, fmt.Errorf("move %q: expected Shape[@rotation]:x,y", s)
	}

	name, rot, _ := strings.Cut(head, "@")
	shape, err := model.ParseShape(name)
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s, err)
	}
	rotation, err := model.ParseRotation(rot)
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s, err)
	}

	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return Move{}, fmt.Errorf("move %q: expected x,y after ':'", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Move{}, fmt.Errorf("move %q: invalid x: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Move{}, fmt.Errorf("move %q: invalid y: %w", s, err)
	}

	return Move{Patch: model.FromShape(shape).Rotate(rotation), Anchor: geom.Pt(x, y)}, nil
}

// Session owns a board and its edit history.
type Session struct {
	Name    string
	board   *board.Board
	history *History
}

// New starts a session on b. The board as given is the first undo step.
func New(name string, b *board.Board) *Session {
	s := &Session{Name: name, board: b, history: NewHistory()}
	s.history.Reset(s.snapshot("Start"))
	return s
}

// Board returns the current board.
func (s *Session) Board() *board.Board { return s.board }

// Layout snapshots the current board.
func (s *Session) Layout() model.Layout { return s.board.Layout(s.Name) }

func (s *Session) snapshot(label string) Snapshot {
	return MakeSnapshot(s.Layout(), label)
}

// Place commits a move. A rejected move leaves both the board and the
// history untouched and returns the board's *board.PlacementError.
func (s *Session) Place(m Move) (model.Placement, error) {
	placed, err := s.board.PlaceRecord(m.Anchor, m.Patch)
	if err != nil {
		return model.Placement{}, err
	}
	s.history.Record(s.snapshot("Place " + m.String()))
	return placed, nil
}

// PlaceFirstFit places the patch at its first fit. It returns false when
// the patch fits nowhere.
func (s *Session) PlaceFirstFit(p model.Patch) (model.Placement, bool) {
	fit, ok := s.board.Fit(p)
	if !ok {
		return model.Placement{}, false
	}
	placed, err := s.Place(Move{Patch: p.Rotate(fit.Rotation), Anchor: fit.Anchor})
	return placed, err == nil
}

// Candidates lists every anchor and rotation where p fits on the current
// board, in fit order.
func (s *Session) Candidates(p model.Patch) []board.Fit {
	return s.board.Candidates(p)
}

// Replace swaps in a new board, such as the result of an automated fill,
// as a single undoable step.
func (s *Session) Replace(b *board.Board, label string) {
	s.board = b
	s.history.Record(s.snapshot(label))
}

// Load replaces the board with a saved layout and starts a fresh history
// from it. On error the session is unchanged.
func (s *Session) Load(layout model.Layout) error {
	b, err := board.Restore(layout)
	if err != nil {
		return fmt.Errorf("loading %q: %w", layout.Name, err)
	}
	s.board = b
	if layout.Name != "" {
		s.Name = layout.Name
	}
	s.history.Reset(s.snapshot("Load " + s.Name))
	return nil
}

// Undo restores the layout before the last change. It returns false when
// there is nothing to undo. If the earlier layout cannot be rebuilt the
// board and history stay where they were.
func (s *Session) Undo() (bool, error) {
	snap, ok := s.history.Back()
	if !ok {
		return false, nil
	}
	if err := s.restore(snap); err != nil {
		return false, err
	}
	s.history.Step(-1)
	return true, nil
}

// Redo re-applies the last undone change, with the same error handling
// as Undo.
func (s *Session) Redo() (bool, error) {
	snap, ok := s.history.Forward()
	if !ok {
		return false, nil
	}
	if err := s.restore(snap); err != nil {
		return false, err
	}
	s.history.Step(1)
	return true, nil
}

// CanUndo reports whether Undo would change the board.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change the board.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) restore(snap Snapshot) error {
	b, err := board.Restore(snap.Layout)
	if err != nil {
		return fmt.Errorf("restoring %q: %w", snap.Label, err)
	}
	s.board = b
	return nil
}
