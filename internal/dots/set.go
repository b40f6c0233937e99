// Package dots maintains the ordered set of puzzle dots.
//
// The order of the set is the drawing order and also closes a polygon: the
// neighbors of the dot at index i are the dots at (i-1+n) mod n and
// (i+1) mod n. A dot's display number is always its index plus one and is
// never stored.
//
// A Set is not safe for concurrent use.
package dots

import (
	"fmt"

	"dotwork/internal/label"
	"dotwork/pkg/geometry"
)

// DotID identifies a dot for the lifetime of its Set. IDs are never reused.
type DotID int

func (id DotID) String() string {
	return fmt.Sprintf("dot-%d", int(id))
}

// Dot is one placed puzzle point.
type Dot struct {
	ID    DotID
	X, Y  float64
	Label label.Label
}

// Position returns the dot's coordinates.
func (d *Dot) Position() geometry.Point2D {
	return geometry.NewPoint2D(d.X, d.Y)
}

// Set is an ordered, renumberable collection of dots with a selection.
type Set struct {
	dots     []*Dot
	selected map[DotID]struct{}
	nextID   DotID
}

// NewSet creates an empty set whose first dot gets ID 0.
func NewSet() *Set {
	return &Set{
		selected: make(map[DotID]struct{}),
	}
}

// Len returns the number of dots.
func (s *Set) Len() int {
	return len(s.dots)
}

// At returns a copy of the dot at index.
func (s *Set) At(index int) (Dot, error) {
	if err := s.checkIndex(index); err != nil {
		return Dot{}, err
	}
	return *s.dots[index], nil
}

// IndexOf returns the current index of the dot with the given ID.
func (s *Set) IndexOf(id DotID) (int, error) {
	for i, d := range s.dots {
		if d.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%v: %w", id, ErrNotFound)
}

// Add appends a dot at (x, y) with an automatic label.
func (s *Set) Add(x, y float64) DotID {
	d := &Dot{ID: s.nextID, X: x, Y: y}
	s.nextID++
	s.dots = append(s.dots, d)
	return d.ID
}

// RemoveAt removes the dot at index. Later dots shift down by one.
func (s *Set) RemoveAt(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	delete(s.selected, s.dots[index].ID)
	s.dots = append(s.dots[:index], s.dots[index+1:]...)
	return nil
}

// Remove removes the dot with the given ID.
func (s *Set) Remove(id DotID) error {
	i, err := s.IndexOf(id)
	if err != nil {
		return err
	}
	return s.RemoveAt(i)
}

// Move relocates the dot at index.
func (s *Set) Move(index int, x, y float64) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.dots[index].X = x
	s.dots[index].Y = y
	return nil
}

// FindNearest returns the index of the dot closest to (x, y) and its squared
// distance. Ties go to the lowest index.
func (s *Set) FindNearest(x, y float64) (int, float64, error) {
	if len(s.dots) == 0 {
		return -1, 0, ErrEmpty
	}
	p := geometry.NewPoint2D(x, y)
	best, bestDist := 0, p.DistanceSquared(s.dots[0].Position())
	for i := 1; i < len(s.dots); i++ {
		if d := p.DistanceSquared(s.dots[i].Position()); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist, nil
}

// HitTest reports the dot under (x, y). The nearest dot is always computed;
// it only counts as hit when its squared distance is below threshold².
func (s *Set) HitTest(x, y, threshold float64) (int, bool) {
	i, d, err := s.FindNearest(x, y)
	if err != nil {
		return -1, false
	}
	return i, d < threshold*threshold
}

// Neighbors returns the indices before and after index, wrapping around.
func (s *Set) Neighbors(index int) (prev, next int, err error) {
	if err := s.checkIndex(index); err != nil {
		return -1, -1, err
	}
	n := len(s.dots)
	return (index - 1 + n) % n, (index + 1) % n, nil
}

// ToggleSelection flips the selection state of the dot at index.
func (s *Set) ToggleSelection(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	id := s.dots[index].ID
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	return nil
}

// IsSelected reports whether the dot at index is selected.
func (s *Set) IsSelected(index int) bool {
	if index < 0 || index >= len(s.dots) {
		return false
	}
	_, ok := s.selected[s.dots[index].ID]
	return ok
}

// Selected returns the indices of the selected dots in sequence order.
func (s *Set) Selected() []int {
	var out []int
	for i, d := range s.dots {
		if _, ok := s.selected[d.ID]; ok {
			out = append(out, i)
		}
	}
	return out
}

// ClearSelection deselects every dot.
func (s *Set) ClearSelection() {
	clear(s.selected)
}

// Renumber moves the dot at index so that its display number becomes
// newNumber, keeping the relative order of every other dot. Exactly one dot
// must be selected and it must be the one at index. The set is unchanged on
// error.
func (s *Set) Renumber(index, newNumber int) error {
	if n := len(s.selected); n != 1 {
		return &SelectionCountError{Count: n}
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if !s.IsSelected(index) {
		return fmt.Errorf("renumber %v: %w", s.dots[index].ID, ErrNotSelected)
	}
	if newNumber < 1 || newNumber > len(s.dots) {
		return fmt.Errorf("renumber to %d with %d dots: %w", newNumber, len(s.dots), ErrOutOfRange)
	}

	d := s.dots[index]
	target := newNumber - 1
	if target < index {
		copy(s.dots[target+1:index+1], s.dots[target:index])
	} else {
		copy(s.dots[index:target], s.dots[index+1:target+1])
	}
	s.dots[target] = d
	return nil
}

// RenumberSelected renumbers the single selected dot.
func (s *Set) RenumberSelected(newNumber int) error {
	sel := s.Selected()
	if len(sel) != 1 {
		return &SelectionCountError{Count: len(sel)}
	}
	return s.Renumber(sel[0], newNumber)
}

// PinLabel fixes the label of the dot at index at (x, y).
func (s *Set) PinLabel(index int, x, y float64) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.dots[index].Label.SetManual(x, y)
	return nil
}

// ResetLabel returns the label of the dot at index to automatic placement.
func (s *Set) ResetLabel(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.dots[index].Label.SetAuto()
	return nil
}

// LabelPosition returns where the label of the dot at index is drawn.
func (s *Set) LabelPosition(index int, radius float64) (geometry.Point2D, error) {
	prev, next, err := s.Neighbors(index)
	if err != nil {
		return geometry.Point2D{}, err
	}
	d := s.dots[index]
	return d.Label.Position(s.dots[prev].Position(), d.Position(), s.dots[next].Position(), radius), nil
}

// FindNearestLabel is FindNearest over label positions.
func (s *Set) FindNearestLabel(x, y, radius float64) (int, float64, error) {
	if len(s.dots) == 0 {
		return -1, 0, ErrEmpty
	}
	p := geometry.NewPoint2D(x, y)
	best, bestDist := -1, 0.0
	for i := range s.dots {
		pos, _ := s.LabelPosition(i, radius)
		if d := p.DistanceSquared(pos); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist, nil
}

func (s *Set) checkIndex(index int) error {
	if index < 0 || index >= len(s.dots) {
		return &indexError{index: index, length: len(s.dots)}
	}
	return nil
}
