// Package ocr reads exported puzzle numbers back with Tesseract to flag
// labels that are unreadable, e.g. because they overlap a dot, a link or
// another label.
package ocr

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"dotwork/internal/dots"
	"dotwork/internal/render"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Digits is the whitelist used when reading labels.
const Digits = "0123456789"

// labelPadding is added around each label box before recognition.
const labelPadding = 4

// minHeight is the height label crops are upscaled to.
const minHeight = 96

// Misread is a label whose recognised text differs from its number.
type Misread struct {
	Number int
	Read   string
	Bounds image.Rectangle
}

// Report summarises a legibility check.
type Report struct {
	Checked int
	Misread []Misread
}

// OK reports whether every label was read back correctly.
func (r Report) OK() bool {
	return len(r.Misread) == 0
}

func (r Report) String() string {
	if r.OK() {
		return fmt.Sprintf("all %d labels legible", r.Checked)
	}
	nums := make([]string, len(r.Misread))
	for i, m := range r.Misread {
		nums[i] = strconv.Itoa(m.Number)
	}
	return fmt.Sprintf("%d of %d labels unreadable: %s", len(r.Misread), r.Checked, strings.Join(nums, ", "))
}

// Checker runs Tesseract over label regions.
type Checker struct {
	client   *gosseract.Client
	renderer *render.Renderer
}

// NewChecker creates a checker. The renderer is used to locate label boxes.
func NewChecker(renderer *render.Renderer) (*Checker, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	// Numbers aren't dictionary words
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	if err := client.SetWhitelist(Digits); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_WORD); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set PSM: %w", err)
	}

	return &Checker{client: client, renderer: renderer}, nil
}

// Close releases OCR resources.
func (c *Checker) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Check reads every label of entries back from img, which must be a puzzle
// rendered with opts.
func (c *Checker) Check(img image.Image, entries []dots.Entry, opts render.Options) (Report, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return Report{}, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	bounds := image.Rect(0, 0, mat.Cols(), mat.Rows())
	var report Report
	for _, e := range entries {
		want := strconv.Itoa(e.Number)
		box, err := c.renderer.LabelBounds(want, e.LabelPosition(opts.LabelRadius), opts.FontSize)
		if err != nil {
			return Report{}, err
		}
		box = padRect(box, labelPadding, bounds)
		report.Checked++
		if box.Empty() {
			report.Misread = append(report.Misread, Misread{Number: e.Number, Bounds: box})
			continue
		}

		got, err := c.recognize(mat, box)
		if err != nil {
			return Report{}, fmt.Errorf("label %d: %w", e.Number, err)
		}
		if got != want {
			report.Misread = append(report.Misread, Misread{Number: e.Number, Read: got, Bounds: box})
		}
	}
	return report, nil
}

// recognize runs OCR on one region of img.
func (c *Checker) recognize(img gocv.Mat, box image.Rectangle) (string, error) {
	region := img.Region(box)
	defer region.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(region, &gray, gocv.ColorBGRToGray)

	scaled := gocv.NewMat()
	defer scaled.Close()
	if h := gray.Rows(); h < minHeight {
		scale := float64(minHeight) / float64(h)
		gocv.Resize(gray, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		gray.CopyTo(&scaled)
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, scaled)
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	if err := c.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return normalize(text), nil
}

// normalize strips whitespace Tesseract puts around and inside a word.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), "")
}

// padRect grows r by pad on every side and clips it to bounds.
func padRect(r image.Rectangle, pad int, bounds image.Rectangle) image.Rectangle {
	return r.Inset(-pad).Intersect(bounds)
}
