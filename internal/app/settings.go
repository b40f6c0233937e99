package app

import (
	"dotwork/pkg/geometry"
)

// Preference keys read by LoadSettings.
const (
	PrefDotWidth     = "dotWidth"
	PrefLabelRadius  = "labelRadius"
	PrefFontSize     = "fontSize"
	PrefMarginTop    = "marginTop"
	PrefScreenWidth  = "screenWidth"
	PrefScreenHeight = "screenHeight"
	PrefFitFraction  = "fitFraction"
)

// Settings holds the editor's tunable constants.
type Settings struct {
	DotWidth    float64       // dot diameter in pixels
	LabelRadius float64       // distance from a dot to its automatic label
	FontSize    float64       // label size in points
	MarginTop   float64       // clicks above this y are ignored
	Screen      geometry.Size // area the background is fitted to
	FitFraction float64       // share of Screen used by the background
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		DotWidth:    8,
		LabelRadius: 15,
		FontSize:    15,
		MarginTop:   5,
		Screen:      geometry.NewSize(1920, 1080),
		FitFraction: 0.8,
	}
}

// FloatSource provides float preferences with fallbacks.
type FloatSource interface {
	FloatWithFallback(key string, fallback float64) float64
}

// LoadSettings reads settings from src, falling back to DefaultSettings for
// missing or non-positive values.
func LoadSettings(src FloatSource) Settings {
	s := DefaultSettings()
	read := func(key string, dst *float64) {
		if v := src.FloatWithFallback(key, *dst); v > 0 {
			*dst = v
		}
	}
	read(PrefDotWidth, &s.DotWidth)
	read(PrefLabelRadius, &s.LabelRadius)
	read(PrefFontSize, &s.FontSize)
	read(PrefMarginTop, &s.MarginTop)
	read(PrefScreenWidth, &s.Screen.Width)
	read(PrefScreenHeight, &s.Screen.Height)
	read(PrefFitFraction, &s.FitFraction)
	if s.FitFraction > 1 {
		s.FitFraction = 1
	}
	return s
}

// HitRadius is the distance within which a click hits a dot or a label.
func (s Settings) HitRadius() float64 {
	return 4 * s.DotWidth
}
