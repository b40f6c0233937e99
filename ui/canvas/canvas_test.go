package canvas

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotwork/internal/app"
	"dotwork/internal/label"
	"dotwork/internal/render"
)

func newTestCanvas(t *testing.T) (*DotCanvas, *app.State) {
	t.Helper()
	test.NewApp()
	renderer, err := render.New()
	require.NoError(t, err)
	state := app.NewState(app.DefaultSettings(), renderer)
	return New(state), state
}

func TestTapAddsDot(t *testing.T) {
	dc, state := newTestCanvas(t)

	dc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(50, 60)})
	entries := state.Snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, 50.0, entries[0].Position.X)
	assert.Equal(t, 60.0, entries[0].Position.Y)

	// inside the top margin
	dc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(50, 2)})
	assert.Equal(t, 1, state.DotCount())
}

func TestDragMovesLabelInEditMode(t *testing.T) {
	dc, state := newTestCanvas(t)
	dc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(100, 100)})
	dc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(200, 100)})
	dc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(150, 200)})
	state.ToggleEditMode()

	start := state.Snapshot()[0].LabelPosition(state.Settings().LabelRadius)
	press := fyne.NewPos(float32(start.X), float32(start.Y))

	dc.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: press.AddXY(10, 0)},
		Dragged:    fyne.NewDelta(10, 0),
	})
	dc.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: press.AddXY(20, 5)},
		Dragged:    fyne.NewDelta(10, 5),
	})
	dc.DragEnd()

	e := state.Snapshot()[0]
	assert.Equal(t, label.ModeManual, e.Label.Mode())
	pos := e.LabelPosition(state.Settings().LabelRadius)
	assert.InDelta(t, start.X+20, pos.X, 1e-3)
	assert.InDelta(t, start.Y+5, pos.Y, 1e-3)
}

func TestDragIgnoredOutsideEditMode(t *testing.T) {
	dc, state := newTestCanvas(t)
	dc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(100, 100)})
	start := state.Snapshot()[0].LabelPosition(state.Settings().LabelRadius)

	dc.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(float32(start.X)+10, float32(start.Y))},
		Dragged:    fyne.NewDelta(10, 0),
	})
	dc.DragEnd()

	assert.Equal(t, label.ModeAuto, state.Snapshot()[0].Label.Mode())
}

func TestDrawRendersAtImageSize(t *testing.T) {
	dc, _ := newTestCanvas(t)
	dc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(40, 40)})

	img := dc.draw(10, 10)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
	assert.Same(t, dc.LastOutput(), img)

	r, _, _, _ := img.At(40, 40).RGBA()
	assert.Less(t, r, uint32(0x8000), "dot drawn dark on white")
}
