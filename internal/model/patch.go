package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/quilting/internal/geom"
)

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Token is the display hint for a board cell. The core treats it as
// opaque; renderers map it to coloured output. The zero Token is a blank cell.
type Token struct {
	Glyph string `json:"glyph"`
	FG    RGB    `json:"fg"`
	BG    RGB    `json:"bg"`
}

// IsBlank reports whether the token marks an empty cell.
func (t Token) IsBlank() bool { return t == Token{} }

// Rotation is a counter-clockwise quarter-turn rotation.
type Rotation int

const (
	R0 Rotation = iota
	R90
	R180
	R270
)

// Rotations returns the four rotations in search order.
func Rotations() []Rotation {
	return []Rotation{R0, R90, R180, R270}
}

// Add composes two rotations.
func (r Rotation) Add(o Rotation) Rotation {
	return Rotation(((int(r)+int(o))%4 + 4) % 4)
}

// Degrees returns the rotation angle in degrees.
func (r Rotation) Degrees() int { return int(r.Add(R0)) * 90 }

func (r Rotation) String() string {
	return strconv.Itoa(r.Degrees())
}

func (r Rotation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rotation) UnmarshalText(text []byte) error {
	parsed, err := ParseRotation(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRotation accepts degrees ("0", "90", "180", "270", optionally
// suffixed with "°" or "deg") and treats an empty string as R0.
func ParseRotation(s string) (Rotation, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(strings.TrimSuffix(s, "deg"), "°")
	if s == "" {
		return R0, nil
	}
	deg, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return R0, fmt.Errorf("invalid rotation %q", s)
	}
	if deg%90 != 0 {
		return R0, fmt.Errorf("rotation %d is not a multiple of 90", deg)
	}
	return Rotation(((deg/90)%4 + 4) % 4), nil
}

// Patch is a shape instance. It is a value: rotating returns a new patch,
// and the anchor is supplied when the patch is placed.
type Patch struct {
	Shape    Shape    `json:"shape"`
	Rotation Rotation `json:"rotation"`
}

// FromShape creates an unrotated patch for a shape.
func FromShape(shape Shape) Patch {
	return Patch{Shape: shape}
}

// Rotate returns the patch turned a further r counter-clockwise.
func (p Patch) Rotate(r Rotation) Patch {
	p.Rotation = p.Rotation.Add(r)
	return p
}

// Geometry returns the patch outline in local coordinates with its
// rotation applied about the local origin.
func (p Patch) Geometry() geom.Polygon {
	return p.Shape.Geometry().RotateQuarter(int(p.Rotation))
}

// RelativeGeometry returns the patch outline translated to anchor.
func (p Patch) RelativeGeometry(anchor geom.IntPoint) geom.Polygon {
	return p.Geometry().Translate(anchor.Point())
}

// Pattern returns the display token of the patch's shape.
func (p Patch) Pattern() Token { return p.Shape.Pattern() }

// Buttons returns the button yield of the patch's shape.
func (p Patch) Buttons() int { return p.Shape.Buttons() }

// Cells returns the number of unit cells the patch covers.
func (p Patch) Cells() int { return p.Shape.Cells() }

func (p Patch) String() string {
	if p.Rotation == R0 {
		return p.Shape.String()
	}
	return fmt.Sprintf("%s@%s", p.Shape, p.Rotation)
}
