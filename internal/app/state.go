// Package app provides the editor state, input handling and events.
package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"sync"

	"dotwork/internal/backdrop"
	"dotwork/internal/dots"
	"dotwork/internal/ocr"
	"dotwork/internal/render"
	"dotwork/pkg/colorutil"
)

// ErrNoBackdrop is returned by operations that need a loaded background.
var ErrNoBackdrop = errors.New("no background image loaded")

// Mode is the effect of a click on the canvas.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
	ModeDelete
)

// ModeInfo returns the status bar text and color for a mode.
func ModeInfo(m Mode) (string, color.RGBA) {
	switch m {
	case ModeEdit:
		return "Selecting points", colorutil.Blue
	case ModeDelete:
		return "Deleting points", colorutil.Red
	default:
		return "Adding points", colorutil.Green
	}
}

// EventType identifies different application events.
type EventType int

const (
	EventDotsChanged EventType = iota
	EventModeChanged
	EventViewChanged
	EventBackdropLoaded
	EventExported
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// LabelChecker verifies the labels of an exported puzzle.
type LabelChecker interface {
	Check(img image.Image, entries []dots.Entry, opts render.Options) (ocr.Report, error)
}

// State holds the editor state. Its methods serialise access to the dot set,
// which is not safe for concurrent use by itself. Listeners are called after
// the lock is released and are expected to pull a fresh Snapshot.
type State struct {
	mu sync.Mutex

	dots     *dots.Set
	drag     dots.LabelDrag
	mode     Mode
	settings Settings
	backdrop *backdrop.Backdrop
	renderer *render.Renderer

	showLabels     bool
	showLinks      bool
	showBackground bool

	listeners map[EventType][]EventListener
}

// NewState creates an empty editor state.
func NewState(settings Settings, renderer *render.Renderer) *State {
	return &State{
		dots:           dots.NewSet(),
		settings:       settings,
		renderer:       renderer,
		showLabels:     true,
		showBackground: true,
		listeners:      make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.Lock()
	listeners := s.listeners[event]
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Settings returns the editor settings.
func (s *State) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Mode returns the current click mode.
func (s *State) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *State) toggleMode(m Mode) {
	s.mu.Lock()
	if s.mode == m {
		s.mode = ModeAdd
	} else {
		s.mode = m
	}
	mode := s.mode
	s.mu.Unlock()
	s.Emit(EventModeChanged, mode)
}

// ToggleEditMode switches between selecting and adding dots.
func (s *State) ToggleEditMode() {
	s.toggleMode(ModeEdit)
}

// ToggleDeleteMode switches between deleting and adding dots.
func (s *State) ToggleDeleteMode() {
	s.toggleMode(ModeDelete)
}

func (s *State) toggleView(flag *bool) {
	s.mu.Lock()
	*flag = !*flag
	s.mu.Unlock()
	s.Emit(EventViewChanged, nil)
}

// ToggleLabels shows or hides dot numbers.
func (s *State) ToggleLabels() {
	s.toggleView(&s.showLabels)
}

// ToggleLinks shows or hides lines between consecutive dots.
func (s *State) ToggleLinks() {
	s.toggleView(&s.showLinks)
}

// ToggleBackground shows or hides the background image.
func (s *State) ToggleBackground() {
	s.toggleView(&s.showBackground)
}

// ShowBackground reports whether the background image is shown.
func (s *State) ShowBackground() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showBackground
}

// RenderOptions returns the on-screen rendering options.
func (s *State) RenderOptions() render.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderOptions()
}

func (s *State) renderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.DotWidth = s.settings.DotWidth
	opts.LabelRadius = s.settings.LabelRadius
	opts.FontSize = s.settings.FontSize
	opts.ShowLabels = s.showLabels
	opts.ShowLinks = s.showLinks
	return opts
}

// Snapshot returns the current dots in order.
func (s *State) Snapshot() []dots.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dots.Snapshot()
}

// Draw renders the dots onto dst with the current view options.
func (s *State) Draw(dst draw.Image) error {
	s.mu.Lock()
	entries := s.dots.Snapshot()
	opts := s.renderOptions()
	s.mu.Unlock()
	return s.renderer.Draw(dst, entries, opts)
}

// Click applies the current mode at (x, y) and reports whether the dots
// changed. Clicks in the top margin are ignored.
func (s *State) Click(x, y float64) bool {
	s.mu.Lock()
	changed := s.click(x, y)
	s.mu.Unlock()

	if changed {
		s.Emit(EventDotsChanged, nil)
	}
	return changed
}

func (s *State) click(x, y float64) bool {
	if y < s.settings.MarginTop {
		return false
	}
	switch s.mode {
	case ModeAdd:
		s.dots.Add(x, y)
		return true
	case ModeDelete:
		i, hit := s.dots.HitTest(x, y, s.settings.HitRadius())
		return hit && s.dots.RemoveAt(i) == nil
	case ModeEdit:
		i, hit := s.dots.HitTest(x, y, s.settings.HitRadius())
		return hit && s.dots.ToggleSelection(i) == nil
	default:
		log.Printf("Click: unknown mode %d", s.mode)
		return false
	}
}

// RenumberSelected gives the single selected dot a new display number.
func (s *State) RenumberSelected(number int) error {
	s.mu.Lock()
	err := s.dots.RenumberSelected(number)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Emit(EventDotsChanged, nil)
	return nil
}

// SelectionCount returns the number of selected dots.
func (s *State) SelectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dots.Selected())
}

// DotCount returns the number of dots.
func (s *State) DotCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dots.Len()
}

// BeginLabelDrag grabs the label under (x, y). Labels can only be dragged
// while selecting.
func (s *State) BeginLabelDrag(x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeEdit {
		return false
	}
	return s.drag.Begin(s.dots, x, y, s.settings.LabelRadius, s.settings.HitRadius())
}

// DragLabel moves the grabbed label with the pointer.
func (s *State) DragLabel(x, y float64) {
	s.mu.Lock()
	moved := s.mode == ModeEdit && s.drag.Move(s.dots, x, y)
	s.mu.Unlock()
	if moved {
		s.Emit(EventDotsChanged, nil)
	}
}

// EndLabelDrag drops the grabbed label at the pointer.
func (s *State) EndLabelDrag(x, y float64) {
	s.mu.Lock()
	moved := s.mode == ModeEdit && s.drag.End(s.dots, x, y)
	s.mu.Unlock()
	if moved {
		s.Emit(EventDotsChanged, nil)
	}
}

// Backdrop returns the loaded background, or nil.
func (s *State) Backdrop() *backdrop.Backdrop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backdrop
}

// SetBackdrop replaces the background image.
func (s *State) SetBackdrop(b *backdrop.Backdrop) {
	s.mu.Lock()
	s.backdrop = b
	s.mu.Unlock()
	s.Emit(EventBackdropLoaded, b)
}

// LoadBackdrop prepares the background image at path for this screen.
func (s *State) LoadBackdrop(path string) error {
	settings := s.Settings()
	b, err := backdrop.Prepare(path, settings.Screen, settings.FitFraction)
	if err != nil {
		return fmt.Errorf("load background %s: %w", path, err)
	}
	size := b.Size()
	log.Printf("Loaded background %s at %.0fx%.0f (working copy %s)", path, size.Width, size.Height, b.WorkPath)
	s.SetBackdrop(b)
	return nil
}

// ExportPath returns where Export writes the puzzle.
func (s *State) ExportPath() (string, error) {
	b := s.Backdrop()
	if b == nil {
		return "", ErrNoBackdrop
	}
	return render.ExportPath(b.WorkPath), nil
}

// Export writes the puzzle (dots and numbers on white) next to the working
// image and returns its path.
func (s *State) Export() (string, error) {
	s.mu.Lock()
	b := s.backdrop
	entries := s.dots.Snapshot()
	opts := s.renderOptions()
	s.mu.Unlock()

	if b == nil {
		return "", ErrNoBackdrop
	}
	path := render.ExportPath(b.WorkPath)
	size := b.Size()

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := s.renderer.Export(file, image.Pt(int(size.Width), int(size.Height)), entries, opts); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to export %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	log.Printf("Exported %d dots to %s", len(entries), path)
	s.Emit(EventExported, path)
	return path, nil
}

// VerifyExport exports the puzzle and checks that every number reads back.
func (s *State) VerifyExport(checker LabelChecker) (ocr.Report, error) {
	path, err := s.Export()
	if err != nil {
		return ocr.Report{}, err
	}
	img, err := backdrop.Load(path)
	if err != nil {
		return ocr.Report{}, err
	}
	report, err := checker.Check(img, s.Snapshot(), s.RenderOptions().ForExport())
	if err != nil {
		return ocr.Report{}, fmt.Errorf("verify %s: %w", path, err)
	}
	log.Printf("Verified %s: %s", path, report)
	return report, nil
}
