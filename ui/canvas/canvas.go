// Package canvas provides the editor surface: the background image with the
// dot set drawn over it.
package canvas

import (
	"image"
	"log"

	"dotwork/internal/app"
	"dotwork/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

// defaultSize is used until a background is loaded.
var defaultSize = fyne.NewSize(400, 300)

// DotCanvas displays the editor state and turns pointer input into edits.
// Canvas coordinates are working image pixels.
type DotCanvas struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster

	// Label drag in progress
	dragging bool
	last     fyne.Position

	// Last rendered output
	lastOutput *image.RGBA
}

var (
	_ fyne.Tappable  = (*DotCanvas)(nil)
	_ fyne.Draggable = (*DotCanvas)(nil)
)

// New creates a canvas bound to state and redraws it on every state event.
func New(state *app.State) *DotCanvas {
	dc := &DotCanvas{state: state}
	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.raster.ScaleMode = fynecanvas.ImageScalePixels
	dc.raster.SetMinSize(dc.imageSize())
	dc.ExtendBaseWidget(dc)

	redraw := func(interface{}) { dc.Refresh() }
	state.On(app.EventDotsChanged, redraw)
	state.On(app.EventViewChanged, redraw)
	state.On(app.EventModeChanged, redraw)
	state.On(app.EventBackdropLoaded, func(interface{}) {
		dc.raster.SetMinSize(dc.imageSize())
		dc.Refresh()
	})
	return dc
}

func (dc *DotCanvas) imageSize() fyne.Size {
	b := dc.state.Backdrop()
	if b == nil {
		return defaultSize
	}
	size := b.Size()
	return fyne.NewSize(float32(size.Width), float32(size.Height))
}

// Tapped applies the current mode at the tap position.
func (dc *DotCanvas) Tapped(ev *fyne.PointEvent) {
	dc.state.Click(float64(ev.Position.X), float64(ev.Position.Y))
}

// Dragged moves the label under the pointer. The first event of a drag
// grabs the label under the press position.
func (dc *DotCanvas) Dragged(ev *fyne.DragEvent) {
	if !dc.dragging {
		start := ev.Position.Subtract(ev.Dragged)
		if !dc.state.BeginLabelDrag(float64(start.X), float64(start.Y)) {
			return
		}
		dc.dragging = true
	}
	dc.last = ev.Position
	dc.state.DragLabel(float64(ev.Position.X), float64(ev.Position.Y))
}

// DragEnd releases the dragged label.
func (dc *DotCanvas) DragEnd() {
	if !dc.dragging {
		return
	}
	dc.dragging = false
	dc.state.EndLabelDrag(float64(dc.last.X), float64(dc.last.Y))
}

// LastOutput returns the most recently rendered frame, or nil.
func (dc *DotCanvas) LastOutput() *image.RGBA {
	return dc.lastOutput
}

// draw renders at working image size; the raster scales it to the widget.
func (dc *DotCanvas) draw(_, _ int) image.Image {
	size := dc.imageSize()
	output := image.NewRGBA(image.Rect(0, 0, int(size.Width), int(size.Height)))
	draw.Draw(output, output.Bounds(), image.NewUniform(colorutil.White), image.Point{}, draw.Src)

	if b := dc.state.Backdrop(); b != nil && b.Image != nil && dc.state.ShowBackground() {
		draw.Draw(output, output.Bounds(), b.Image, b.Image.Bounds().Min, draw.Src)
	}

	if err := dc.state.Draw(output); err != nil {
		log.Printf("canvas: draw failed: %v", err)
	}

	dc.lastOutput = output
	return output
}

// CreateRenderer implements fyne.Widget.
func (dc *DotCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &dotCanvasRenderer{canvas: dc}
}

type dotCanvasRenderer struct {
	canvas *DotCanvas
}

func (r *dotCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *dotCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.raster.MinSize()
}

func (r *dotCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *dotCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *dotCanvasRenderer) Destroy() {}
