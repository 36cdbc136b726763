package board

import (
	"errors"
	"fmt"

	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/model"
)

// Rejection causes carried by PlacementError.
var (
	ErrOutOfBounds = errors.New("outside the board")
	ErrOverlap     = errors.New("overlaps a placed patch")
	ErrAnchorTaken = errors.New("anchor already holds a patch")
)

// PlacementError reports a rejected placement attempt. Use errors.Is with
// ErrOutOfBounds, ErrOverlap or ErrAnchorTaken to tell the causes apart.
type PlacementError struct {
	Anchor   geom.IntPoint
	Shape    model.Shape
	Rotation model.Rotation
	Reason   error
	Conflict string // ID of the blocking placement, if any
}

func (e *PlacementError) Error() string {
	patch := model.Patch{Shape: e.Shape, Rotation: e.Rotation}
	if e.Conflict != "" {
		return fmt.Sprintf("cannot place %s at %s: %v (%s)", patch, e.Anchor, e.Reason, e.Conflict)
	}
	return fmt.Sprintf("cannot place %s at %s: %v", patch, e.Anchor, e.Reason)
}

func (e *PlacementError) Unwrap() error { return e.Reason }
