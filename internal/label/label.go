// Package label places the number annotation of a puzzle dot, either
// automatically from the polygon formed with its neighbors or at a position
// pinned by the user.
package label

import (
	"dotwork/pkg/geometry"
)

// Epsilon is added to every norm before dividing by it. It keeps the result
// finite when a neighbor coincides with the dot (single-dot puzzles) and
// gives a usable direction when both neighbors are collinear with it.
const Epsilon = 1e-5

// Mode identifies how a label is positioned.
type Mode int

const (
	ModeAuto Mode = iota
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Label is the placement state of one dot's number. The zero value is an
// automatic label.
type Label struct {
	mode   Mode
	pinned geometry.Point2D // only meaningful in ModeManual
}

// Manual returns a label pinned at (x, y).
func Manual(x, y float64) Label {
	return Label{mode: ModeManual, pinned: geometry.NewPoint2D(x, y)}
}

// Mode returns the current placement mode.
func (l Label) Mode() Mode {
	return l.mode
}

// Pinned returns the manual position and true, or false for an automatic label.
func (l Label) Pinned() (geometry.Point2D, bool) {
	if l.mode != ModeManual {
		return geometry.Point2D{}, false
	}
	return l.pinned, true
}

// SetManual pins the label at (x, y).
func (l *Label) SetManual(x, y float64) {
	l.mode = ModeManual
	l.pinned = geometry.NewPoint2D(x, y)
}

// SetAuto returns the label to automatic placement and forgets any pin.
func (l *Label) SetAuto() {
	l.mode = ModeAuto
	l.pinned = geometry.Point2D{}
}

// Position returns where the label is drawn. A manual label ignores the
// geometry arguments entirely.
func (l Label) Position(prev, self, next geometry.Point2D, radius float64) geometry.Point2D {
	if l.mode == ModeManual {
		return l.pinned
	}
	return ComputeAutoPosition(prev, self, next, radius)
}

// ComputeAutoPosition offsets self by radius along the external bisector of
// the angle prev-self-next, pointing away from both neighbors.
func ComputeAutoPosition(prev, self, next geometry.Point2D, radius float64) geometry.Point2D {
	u := self.Sub(prev)
	u = u.Scale(1 / (u.Norm() + Epsilon))
	w := self.Sub(next)
	w = w.Scale(1 / (w.Norm() + Epsilon))
	v := u.Add(w)
	v = v.Scale(radius / (v.Norm() + Epsilon))
	return self.Add(v)
}
