package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// DotworkTheme keeps the default look but uses the mode colors for accents.
type DotworkTheme struct{}

var _ fyne.Theme = (*DotworkTheme)(nil)

func (t *DotworkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x1E, G: 0x88, B: 0xE5, A: 0xFF} // selection blue
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x00, G: 0xFF, B: 0xFF, A: 0x60} // cyan, as selected dots
	case theme.ColorNameError:
		return color.NRGBA{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *DotworkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *DotworkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *DotworkTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 2 // keep the canvas close to the window edge
	default:
		return theme.DefaultTheme().Size(name)
	}
}
