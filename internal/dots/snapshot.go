package dots

import (
	"dotwork/internal/label"
	"dotwork/pkg/geometry"
)

// Entry is a read-only view of one dot, as consumed by renderers.
type Entry struct {
	ID       DotID
	Number   int
	Position geometry.Point2D
	Selected bool
	Label    label.Label

	// Positions of the wraparound neighbors.
	Prev, Next geometry.Point2D
}

// LabelPosition returns where the entry's number is drawn.
func (e Entry) LabelPosition(radius float64) geometry.Point2D {
	return e.Label.Position(e.Prev, e.Position, e.Next, radius)
}

// Snapshot returns the current dots in order. The result is freshly built on
// every call and shares nothing with the set.
func (s *Set) Snapshot() []Entry {
	n := len(s.dots)
	out := make([]Entry, n)
	for i, d := range s.dots {
		_, sel := s.selected[d.ID]
		out[i] = Entry{
			ID:       d.ID,
			Number:   i + 1,
			Position: d.Position(),
			Selected: sel,
			Label:    d.Label,
			Prev:     s.dots[(i-1+n)%n].Position(),
			Next:     s.dots[(i+1)%n].Position(),
		}
	}
	return out
}
