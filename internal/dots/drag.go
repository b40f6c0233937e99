package dots

import (
	"dotwork/pkg/geometry"
)

// LabelDrag moves a label with the pointer. The dragged label is pinned at
// its position when the drag began, offset by the pointer's displacement.
//
// The dot is tracked by ID, so reordering the set during a drag is
// harmless; removing it ends the drag.
type LabelDrag struct {
	active       bool
	id           DotID
	startPointer geometry.Point2D
	startLabel   geometry.Point2D
}

// Active reports whether a drag is in progress.
func (g *LabelDrag) Active() bool {
	return g.active
}

// Begin starts dragging the label nearest to (x, y) if it lies within
// threshold, pinning it where it currently is. radius is the automatic
// placement radius used to locate labels.
func (g *LabelDrag) Begin(s *Set, x, y, radius, threshold float64) bool {
	g.active = false
	i, d, err := s.FindNearestLabel(x, y, radius)
	if err != nil || d >= threshold*threshold {
		return false
	}
	pos, _ := s.LabelPosition(i, radius)
	*g = LabelDrag{
		active:       true,
		id:           s.dots[i].ID,
		startPointer: geometry.NewPoint2D(x, y),
		startLabel:   pos,
	}
	s.dots[i].Label.SetManual(pos.X, pos.Y)
	return true
}

// Move pins the dragged label for the pointer at (x, y).
func (g *LabelDrag) Move(s *Set, x, y float64) bool {
	if !g.active {
		return false
	}
	i, err := s.IndexOf(g.id)
	if err != nil {
		g.active = false
		return false
	}
	p := g.startLabel.Add(geometry.NewPoint2D(x, y).Sub(g.startPointer))
	s.dots[i].Label.SetManual(p.X, p.Y)
	return true
}

// End applies the final pointer position and releases the label.
func (g *LabelDrag) End(s *Set, x, y float64) bool {
	moved := g.Move(s, x, y)
	g.active = false
	return moved
}
