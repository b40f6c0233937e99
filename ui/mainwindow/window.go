// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"dotwork/internal/app"
	"dotwork/internal/dots"
	"dotwork/internal/ocr"
	"dotwork/internal/render"
	"dotwork/internal/version"
	"dotwork/pkg/colorutil"
	"dotwork/ui/canvas"
	"dotwork/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const prefKeyLastDir = "lastDirectory"

// modeBarAlpha keeps the mode color readable behind black text.
const modeBarAlpha = 0x80

// Binding is a key and what it does.
type Binding struct {
	Key  fyne.KeyName
	Help string
}

// Bindings lists the editor's keyboard shortcuts in help order.
var Bindings = []Binding{
	{fyne.KeySpace, "toggle selecting points"},
	{fyne.KeyEscape, "toggle deleting points"},
	{fyne.KeyI, "show or hide the background image"},
	{fyne.KeyN, "show or hide numbers"},
	{fyne.KeyT, "show or hide links between points"},
	{fyne.KeyS, "export the puzzle"},
	{fyne.KeyR, "renumber the selected point"},
	{fyne.KeyV, "export and check that every number is readable"},
}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	state    *app.State
	prefs    *prefs.Prefs
	renderer *render.Renderer
	canvas   *canvas.DotCanvas

	modeBar   *fynecanvas.Rectangle
	modeLabel *widget.Label
	statusBar *widget.Label

	checker *ocr.Checker
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, renderer *render.Renderer) *MainWindow {
	win := fyneApp.NewWindow("Dotwork")

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		prefs:    p,
		renderer: renderer,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.Canvas().SetOnTypedKey(mw.onTypedKey)
	mw.SetCloseIntercept(mw.onClose)

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(mw.state)

	mw.modeBar = fynecanvas.NewRectangle(colorutil.Green)
	mw.modeLabel = widget.NewLabel("")
	mw.updateModeBar()

	helpBtn := widget.NewButton("Help", mw.onHelp)
	top := container.NewBorder(nil, nil, nil, helpBtn,
		container.NewStack(mw.modeBar, mw.modeLabel))

	mw.statusBar = widget.NewLabel("Ready")
	canvasArea := container.NewScroll(container.NewCenter(mw.canvas))

	content := container.NewBorder(
		top,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		canvasArea,                        // center
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItem("Export Puzzle", mw.onExport),
		fyne.NewMenuItem("Check Numbers", mw.onVerify),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Select Points", mw.state.ToggleEditMode),
		fyne.NewMenuItem("Delete Points", mw.state.ToggleDeleteMode),
		fyne.NewMenuItem("Renumber...", mw.onRenumber),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Background", mw.state.ToggleBackground),
		fyne.NewMenuItem("Numbers", mw.state.ToggleLabels),
		fyne.NewMenuItem("Links", mw.state.ToggleLinks),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keys", mw.onHelp),
		fyne.NewMenuItem("About", mw.onAbout),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventModeChanged, func(interface{}) {
		mw.updateModeBar()
	})

	mw.state.On(app.EventDotsChanged, func(interface{}) {
		mw.updateStatus(fmt.Sprintf("%d points, %d selected", mw.state.DotCount(), mw.state.SelectionCount()))
	})

	mw.state.On(app.EventBackdropLoaded, func(interface{}) {
		if b := mw.state.Backdrop(); b != nil {
			mw.SetTitle("Dotwork - " + filepath.Base(b.SourcePath))
			mw.updateStatus("Loaded " + b.SourcePath)
		}
	})

	mw.state.On(app.EventExported, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Exported " + path)
		}
	})
}

func (mw *MainWindow) updateModeBar() {
	text, col := app.ModeInfo(mw.state.Mode())
	mw.modeBar.FillColor = colorutil.WithAlpha(col, modeBarAlpha)
	mw.modeBar.Refresh()
	mw.modeLabel.SetText(text)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) onTypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeySpace:
		mw.state.ToggleEditMode()
	case fyne.KeyEscape:
		mw.state.ToggleDeleteMode()
	case fyne.KeyI:
		mw.state.ToggleBackground()
	case fyne.KeyN:
		mw.state.ToggleLabels()
	case fyne.KeyT:
		mw.state.ToggleLinks()
	case fyne.KeyS:
		mw.onExport()
	case fyne.KeyR:
		mw.onRenumber()
	case fyne.KeyV:
		mw.onVerify()
	}
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.prefs.SetString(prefKeyLastDir, filepath.Dir(path))
		if err := mw.state.LoadBackdrop(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExport() {
	if _, err := mw.state.Export(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onRenumber() {
	if n := mw.state.SelectionCount(); n != 1 {
		dialog.ShowError(&dots.SelectionCountError{Count: n}, mw.Window)
		return
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder(fmt.Sprintf("1 to %d", mw.state.DotCount()))
	entry.Validator = func(s string) error {
		if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
			return errors.New("enter a whole number")
		}
		return nil
	}

	items := []*widget.FormItem{widget.NewFormItem("New number", entry)}
	dialog.ShowForm("Renumber point", "Renumber", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(entry.Text))
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if err := mw.state.RenumberSelected(n); err != nil {
			if errors.Is(err, dots.ErrOutOfRange) {
				err = fmt.Errorf("%d is not between 1 and %d", n, mw.state.DotCount())
			}
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
}

func (mw *MainWindow) onVerify() {
	if mw.checker == nil {
		checker, err := ocr.NewChecker(mw.renderer)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.checker = checker
	}

	report, err := mw.state.VerifyExport(mw.checker)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	dialog.ShowInformation("Check numbers", report.String(), mw.Window)
}

// HelpText returns the key binding summary shown by the Help button.
func HelpText() string {
	var b strings.Builder
	b.WriteString("Click to add a point. Drag a number to move it while selecting.\n\n")
	for _, k := range Bindings {
		fmt.Fprintf(&b, "%s\t%s\n", k.Key, k.Help)
	}
	return b.String()
}

func (mw *MainWindow) onHelp() {
	dialog.ShowInformation("Keys", HelpText(), mw.Window)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Dotwork",
		version.String()+"\n\nBuilds connect-the-dots puzzles from photos.",
		mw.Window)
}

func (mw *MainWindow) onClose() {
	if err := mw.prefs.SaveIfChanged(); err != nil {
		log.Printf("Failed to save preferences to %s: %v", mw.prefs.Path(), err)
	}
	if mw.checker != nil {
		mw.checker.Close()
	}
	mw.Close()
}
