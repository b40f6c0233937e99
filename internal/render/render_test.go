package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotwork/internal/dots"
	"dotwork/internal/render"
	"dotwork/pkg/geometry"
)

func whiteCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func isDark(c color.RGBA) bool {
	return c.R < 128 && c.G < 128 && c.B < 128
}

func darkPixelsIn(img *image.RGBA, r image.Rectangle) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if isDark(img.RGBAAt(x, y)) {
				n++
			}
		}
	}
	return n
}

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New()
	require.NoError(t, err)
	return r
}

func TestDrawDotsWithoutLabels(t *testing.T) {
	set := dots.NewSet()
	set.Add(20, 20)
	set.Add(60, 20)

	opts := render.DefaultOptions()
	opts.ShowLabels = false
	img := whiteCanvas(100, 50)
	require.NoError(t, newRenderer(t).Draw(img, set.Snapshot(), opts))

	assert.True(t, isDark(img.RGBAAt(20, 20)))
	assert.True(t, isDark(img.RGBAAt(60, 20)))
	assert.False(t, isDark(img.RGBAAt(40, 20)), "no links by default")
	assert.False(t, isDark(img.RGBAAt(20, 30)))
}

func TestDrawSelectedColor(t *testing.T) {
	set := dots.NewSet()
	set.Add(10, 10)
	require.NoError(t, set.ToggleSelection(0))

	opts := render.DefaultOptions()
	opts.ShowLabels = false
	img := whiteCanvas(20, 20)
	require.NoError(t, newRenderer(t).Draw(img, set.Snapshot(), opts))
	c := img.RGBAAt(10, 10)
	assert.True(t, c.R < 16 && c.G > 240 && c.B > 240, "want cyan, got %v", c)

	img = whiteCanvas(20, 20)
	require.NoError(t, newRenderer(t).Draw(img, set.Snapshot(), opts.ForExport()))
	assert.True(t, isDark(img.RGBAAt(10, 10)))
}

func TestDrawLinks(t *testing.T) {
	set := dots.NewSet()
	set.Add(10, 10)
	set.Add(90, 10)
	set.Add(90, 40)

	opts := render.DefaultOptions()
	opts.ShowLabels = false
	opts.ShowLinks = true
	opts.LinkWidth = 2
	img := whiteCanvas(100, 50)
	require.NoError(t, newRenderer(t).Draw(img, set.Snapshot(), opts))

	assert.True(t, isDark(img.RGBAAt(50, 10)))
	assert.True(t, isDark(img.RGBAAt(90, 25)))
	// the polygon is not closed on screen
	assert.False(t, isDark(img.RGBAAt(50, 25)))
}

func TestDrawLabelsAroundDot(t *testing.T) {
	set := dots.NewSet()
	set.Add(50, 50)
	set.Add(150, 50)
	set.Add(150, 150)
	set.Add(50, 150)

	r := newRenderer(t)
	opts := render.DefaultOptions()
	img := whiteCanvas(200, 200)
	require.NoError(t, r.Draw(img, set.Snapshot(), opts))

	pos, err := set.LabelPosition(0, opts.LabelRadius)
	require.NoError(t, err)
	box, err := r.LabelBounds("1", pos, opts.FontSize)
	require.NoError(t, err)
	assert.True(t, box.Max.X <= 50 && box.Max.Y <= 50, "label 1 should sit up-left of its dot, got %v", box)
	assert.Greater(t, darkPixelsIn(img, box), 0)
}

func TestLabelBoundsCentred(t *testing.T) {
	r := newRenderer(t)
	box, err := r.LabelBounds("12", geometry.NewPoint2D(100, 100), 15)
	require.NoError(t, err)

	assert.InDelta(t, 100, (box.Min.X+box.Max.X)/2, 2)
	assert.InDelta(t, 100, (box.Min.Y+box.Max.Y)/2, 3)
	assert.Greater(t, box.Dx(), 0)
}

func TestExport(t *testing.T) {
	set := dots.NewSet()
	set.Add(30, 30)
	set.Add(70, 30)

	var buf bytes.Buffer
	opts := render.DefaultOptions()
	opts.ShowLabels = false
	opts.ShowLinks = true
	require.NoError(t, newRenderer(t).Export(&buf, image.Pt(100, 60), set.Snapshot(), opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 60), img.Bounds())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
	r, _, _, _ = img.At(50, 30).RGBA()
	assert.Equal(t, uint32(0xffff), r, "export never draws links")
	r, _, _, _ = img.At(30, 30).RGBA()
	assert.Less(t, r, uint32(0x8000))
}

func TestExportPath(t *testing.T) {
	assert.Equal(t, filepath.FromSlash("/pics/connect-the-dots-dotwork.cat.png"),
		render.ExportPath(filepath.FromSlash("/pics/dotwork.cat.png")))
	assert.Equal(t, "connect-the-dots-dotwork.cat.jpg.png", render.ExportPath("dotwork.cat.jpg"))
}

func TestDrawEmptySet(t *testing.T) {
	img := whiteCanvas(10, 10)
	opts := render.DefaultOptions()
	opts.ShowLinks = true
	require.NoError(t, newRenderer(t).Draw(img, nil, opts))
	assert.Equal(t, 0, darkPixelsIn(img, img.Bounds()))
}
