// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Point2D represents a 2D point with floating-point coordinates.
// It doubles as a vector for label placement arithmetic.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func (p Point2D) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Point2D {
	return Point2D{X: v.X, Y: v.Y}
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return fromVec(r2.Add(p.vec(), other.vec()))
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return fromVec(r2.Sub(p.vec(), other.vec()))
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return fromVec(r2.Scale(factor, p.vec()))
}

// Norm returns the Euclidean length of the point taken as a vector.
func (p Point2D) Norm() float64 {
	return r2.Norm(p.vec())
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	return p.Sub(other).Norm()
}

// DistanceSquared returns the squared Euclidean distance to another point.
func (p Point2D) DistanceSquared(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Size represents a 2D size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewSize creates a new Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// FitWithin scales s uniformly so that it fills fraction of bounds along its
// tighter axis. The result is truncated to whole pixels.
// A degenerate size or bounds yields the zero Size.
func (s Size) FitWithin(bounds Size, fraction float64) Size {
	if s.Width <= 0 || s.Height <= 0 || bounds.Width <= 0 || bounds.Height <= 0 {
		return Size{}
	}
	f := bounds.Width / s.Width
	if fy := bounds.Height / s.Height; fy < f {
		f = fy
	}
	return Size{
		Width:  float64(int(fraction * f * s.Width)),
		Height: float64(int(fraction * f * s.Height)),
	}
}
