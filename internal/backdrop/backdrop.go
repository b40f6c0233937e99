// Package backdrop loads the photo a puzzle is traced over and prepares the
// resized working copy shown behind the dots.
package backdrop

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dotwork/pkg/geometry"

	"gocv.io/x/gocv"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// WorkPrefix is prepended to the source file name for the working copy.
const WorkPrefix = "dotwork."

// Backdrop is a background image resized to its on-screen work size.
type Backdrop struct {
	SourcePath string      // Original file path
	WorkPath   string      // Resized working copy
	Image      image.Image // Resized image data
}

// Size returns the work size of the backdrop.
func (b *Backdrop) Size() geometry.Size {
	if b == nil || b.Image == nil {
		return geometry.Size{}
	}
	bounds := b.Image.Bounds()
	return geometry.NewSize(float64(bounds.Dx()), float64(bounds.Dy()))
}

// Load decodes an image file. PNG, JPEG, GIF, TIFF, BMP and WebP are supported.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// WorkSize returns the size img is displayed at on a screen of the given
// size, using fraction of the screen along the tighter axis.
func WorkSize(img image.Image, screen geometry.Size, fraction float64) geometry.Size {
	b := img.Bounds()
	return geometry.NewSize(float64(b.Dx()), float64(b.Dy())).FitWithin(screen, fraction)
}

// Resize scales img to size. Area interpolation is used when shrinking and
// cubic interpolation when enlarging.
func Resize(img image.Image, size geometry.Size) (image.Image, error) {
	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", w, h)
	}

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	interp := gocv.InterpolationArea
	if w > src.Cols() || h > src.Rows() {
		interp = gocv.InterpolationCubic
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(w, h), 0, 0, interp)

	out, err := dst.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert resized image: %w", err)
	}
	return out, nil
}

// WorkPath returns the working copy path for a source image. Formats without
// an encoder are written as PNG.
func WorkPath(source string) string {
	dir, base := filepath.Split(source)
	if _, ok := encoderFor(base); !ok {
		base += ".png"
	}
	return filepath.Join(dir, WorkPrefix+base)
}

// Prepare loads source, resizes it for the screen and writes the working copy.
func Prepare(source string, screen geometry.Size, fraction float64) (*Backdrop, error) {
	img, err := Load(source)
	if err != nil {
		return nil, err
	}

	size := WorkSize(img, screen, fraction)
	resized, err := Resize(img, size)
	if err != nil {
		return nil, err
	}

	b := &Backdrop{
		SourcePath: source,
		WorkPath:   WorkPath(source),
		Image:      resized,
	}
	if err := Save(b.WorkPath, resized); err != nil {
		return nil, err
	}
	return b, nil
}

// Save writes img to path, choosing the encoder from the file extension.
func Save(path string, img image.Image) error {
	enc, ok := encoderFor(path)
	if !ok {
		return fmt.Errorf("no encoder for %q", filepath.Ext(path))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := enc(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

type encoder func(io.Writer, image.Image) error

func encoderFor(path string) (encoder, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, true
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
		}, true
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, true
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, true
	case ".bmp":
		return bmp.Encode, true
	}
	return nil, false
}
