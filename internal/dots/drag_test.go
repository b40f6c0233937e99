package dots_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotwork/internal/dots"
	"dotwork/internal/label"
	"dotwork/pkg/geometry"
)

const (
	radius    = 15.0
	threshold = 32.0
)

func square() *dots.Set {
	s := dots.NewSet()
	s.Add(100, 100)
	s.Add(200, 100)
	s.Add(200, 200)
	s.Add(100, 200)
	return s
}

func TestLabelDragPinsWithPointerOffset(t *testing.T) {
	s := square()
	start, err := s.LabelPosition(0, radius)
	require.NoError(t, err)

	var g dots.LabelDrag
	require.True(t, g.Begin(s, start.X+2, start.Y+1, radius, threshold))
	require.True(t, g.Active())

	require.True(t, g.Move(s, start.X+12, start.Y+6))
	d, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, label.ModeManual, d.Label.Mode())
	pos, _ := s.LabelPosition(0, radius)
	assert.InDelta(t, start.X+10, pos.X, 1e-9)
	assert.InDelta(t, start.Y+5, pos.Y, 1e-9)

	require.True(t, g.End(s, start.X+22, start.Y+1))
	assert.False(t, g.Active())
	pos, _ = s.LabelPosition(0, radius)
	assert.InDelta(t, start.X+20, pos.X, 1e-9)
	assert.InDelta(t, start.Y, pos.Y, 1e-9)

	// released: further moves do nothing
	assert.False(t, g.Move(s, 0, 0))
	pos2, _ := s.LabelPosition(0, radius)
	assert.Equal(t, pos, pos2)
}

func TestLabelDragMissesFarPointer(t *testing.T) {
	s := square()
	var g dots.LabelDrag
	assert.False(t, g.Begin(s, 150, 150, radius, threshold))
	assert.False(t, g.Active())
	assert.False(t, g.End(s, 0, 0))

	assert.False(t, g.Begin(dots.NewSet(), 0, 0, radius, threshold))
}

func TestLabelDragFollowsIdentity(t *testing.T) {
	s := square()
	start, _ := s.LabelPosition(3, radius)

	var g dots.LabelDrag
	require.True(t, g.Begin(s, start.X, start.Y, radius, threshold))

	require.NoError(t, s.ToggleSelection(3))
	require.NoError(t, s.Renumber(3, 1))
	require.True(t, g.End(s, start.X-5, start.Y))

	pos, _ := s.LabelPosition(0, radius)
	assert.Equal(t, geometry.NewPoint2D(start.X-5, start.Y), pos)
}

func TestLabelDragEndsWhenDotRemoved(t *testing.T) {
	s := square()
	start, _ := s.LabelPosition(1, radius)

	var g dots.LabelDrag
	require.True(t, g.Begin(s, start.X, start.Y, radius, threshold))
	require.NoError(t, s.RemoveAt(1))

	assert.False(t, g.Move(s, 0, 0))
	assert.False(t, g.Active())
	for _, e := range s.Snapshot() {
		assert.Equal(t, label.ModeAuto, e.Label.Mode())
	}
}

func TestLabelDragPinsOnBegin(t *testing.T) {
	s := square()
	start, _ := s.LabelPosition(2, radius)

	var g dots.LabelDrag
	require.True(t, g.Begin(s, start.X, start.Y, radius, threshold))
	d, _ := s.At(2)
	pinned, ok := d.Label.Pinned()
	require.True(t, ok)
	assert.Equal(t, start, pinned)

	// moving a neighbour no longer moves the grabbed label
	require.NoError(t, s.Move(1, 500, 500))
	pos, _ := s.LabelPosition(2, radius)
	assert.Equal(t, start, pos)
}
