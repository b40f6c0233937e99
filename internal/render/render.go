// Package render rasterises a dot set: dots, optional links between
// consecutive dots, and their number labels. The same code draws the
// on-screen editor and the exported puzzle.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strconv"
	"sync"

	"dotwork/internal/dots"
	"dotwork/pkg/colorutil"
	"dotwork/pkg/geometry"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ExportPrefix is prepended to the working image name for exported puzzles.
const ExportPrefix = "connect-the-dots-"

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Options configures rendering.
type Options struct {
	DotWidth    float64 // dot diameter in pixels
	LabelRadius float64 // distance from a dot to its automatic label
	FontSize    float64 // label size in points at 72 DPI
	LinkWidth   float64
	ShowLabels  bool
	ShowLinks   bool

	DotColor      color.RGBA
	SelectedColor color.RGBA
	LabelColor    color.RGBA
	LinkColor     color.RGBA
}

// DefaultOptions returns the editor's default rendering options.
func DefaultOptions() Options {
	return Options{
		DotWidth:      8,
		LabelRadius:   15,
		FontSize:      15,
		LinkWidth:     1,
		ShowLabels:    true,
		DotColor:      colorutil.Black,
		SelectedColor: colorutil.Cyan,
		LabelColor:    colorutil.Black,
		LinkColor:     colorutil.Black,
	}
}

// ForExport returns o adjusted for the printed puzzle: labels always shown,
// no links, no selection highlight.
func (o Options) ForExport() Options {
	o.ShowLabels = true
	o.ShowLinks = false
	o.SelectedColor = o.DotColor
	return o
}

// Renderer draws dot sets. It caches font faces by size and is safe for
// concurrent use.
type Renderer struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

// New creates a renderer using the Go Regular font.
func New() (*Renderer, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	return &Renderer{font: fnt, faces: make(map[float64]font.Face)}, nil
}

func (r *Renderer) face(size float64) (font.Face, error) {
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %.1fpt face: %w", size, err)
	}
	r.faces[size] = f
	return f, nil
}

// Draw renders entries onto dst: links first, then dots, then labels.
func (r *Renderer) Draw(dst draw.Image, entries []dots.Entry, opts Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if opts.ShowLinks && len(entries) > 1 {
		drawLinks(dst, entries, opts)
	}

	for _, e := range entries {
		col := opts.DotColor
		if e.Selected {
			col = opts.SelectedColor
		}
		drawDisc(dst, e.Position, opts.DotWidth/2, col)
	}

	if !opts.ShowLabels {
		return nil
	}
	face, err := r.face(opts.FontSize)
	if err != nil {
		return err
	}
	for _, e := range entries {
		drawCenteredText(dst, face, strconv.Itoa(e.Number), e.LabelPosition(opts.LabelRadius), opts.LabelColor)
	}
	return nil
}

// Export renders entries on a white canvas of the given size and encodes it
// as PNG.
func (r *Renderer) Export(w io.Writer, size image.Point, entries []dots.Entry, opts Options) error {
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorutil.White), image.Point{}, draw.Src)
	if err := r.Draw(img, entries, opts.ForExport()); err != nil {
		return err
	}
	return png.Encode(w, img)
}

// ExportPath returns where the puzzle for a working image is saved. The
// result always has a .png extension.
func ExportPath(workPath string) string {
	dir, base := filepath.Split(workPath)
	if filepath.Ext(base) != ".png" {
		base += ".png"
	}
	return filepath.Join(dir, ExportPrefix+base)
}

// LabelBounds returns the pixel box a label occupies when drawn centred at p.
func (r *Renderer) LabelBounds(text string, p geometry.Point2D, size float64) (image.Rectangle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	face, err := r.face(size)
	if err != nil {
		return image.Rectangle{}, err
	}
	dot := textOrigin(face, text, p)
	width := font.MeasureString(face, text)
	m := face.Metrics()
	return image.Rect(
		dot.X.Floor(), (dot.Y - m.Ascent).Floor(),
		(dot.X + width).Ceil(), (dot.Y + m.Descent).Ceil(),
	), nil
}

// textOrigin returns the baseline origin that centres text on p.
func textOrigin(face font.Face, text string, p geometry.Point2D) fixed.Point26_6 {
	width := font.MeasureString(face, text)
	m := face.Metrics()
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X*64) - width/2,
		Y: fixed.Int26_6(p.Y*64) + (m.Ascent-m.Descent)/2,
	}
}

func drawCenteredText(dst draw.Image, face font.Face, text string, p geometry.Point2D, col color.RGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  textOrigin(face, text, p),
	}
	d.DrawString(text)
}

// drawDisc fills an antialiased circle. The rasteriser only covers the
// disc's bounding box; draw.DrawMask clips it to dst.
func drawDisc(dst draw.Image, c geometry.Point2D, radius float64, col color.RGBA) {
	if radius <= 0 {
		return
	}
	box := image.Rect(
		int(c.X-radius)-1, int(c.Y-radius)-1,
		int(c.X+radius)+2, int(c.Y+radius)+2,
	)
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	cx := float32(c.X - float64(box.Min.X))
	cy := float32(c.Y - float64(box.Min.Y))
	r := float32(radius)
	k := float32(kappa) * r

	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, box, image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// drawLinks joins each dot to the next one in order. The last dot is not
// joined back to the first.
func drawLinks(dst draw.Image, entries []dots.Entry, opts Options) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	half := opts.LinkWidth / 2
	if half <= 0 {
		half = 0.5
	}
	off := geometry.NewPoint2D(float64(b.Min.X), float64(b.Min.Y))

	for i := 1; i < len(entries); i++ {
		p, q := entries[i-1].Position.Sub(off), entries[i].Position.Sub(off)
		d := q.Sub(p)
		length := d.Norm()
		if length == 0 {
			continue
		}
		n := geometry.NewPoint2D(-d.Y, d.X).Scale(half / length)
		a, bb, c, dd := p.Add(n), q.Add(n), q.Sub(n), p.Sub(n)
		z.MoveTo(float32(a.X), float32(a.Y))
		z.LineTo(float32(bb.X), float32(bb.Y))
		z.LineTo(float32(c.X), float32(c.Y))
		z.LineTo(float32(dd.X), float32(dd.Y))
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, b, image.NewUniform(opts.LinkColor), image.Point{}, mask, image.Point{}, draw.Over)
}
