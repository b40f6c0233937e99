package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dotwork/pkg/geometry"
)

func TestPointArithmetic(t *testing.T) {
	a := geometry.NewPoint2D(3, 4)
	b := geometry.NewPoint2D(1, -2)

	assert.Equal(t, geometry.Point2D{X: 4, Y: 2}, a.Add(b))
	assert.Equal(t, geometry.Point2D{X: 2, Y: 6}, a.Sub(b))
	assert.Equal(t, geometry.Point2D{X: -6, Y: -8}, a.Scale(-2))
	assert.InDelta(t, 5.0, a.Norm(), 1e-12)
	assert.InDelta(t, 0.0, geometry.Point2D{}.Norm(), 0)
}

func TestDistance(t *testing.T) {
	a := geometry.NewPoint2D(0, 0)
	b := geometry.NewPoint2D(6, 8)

	assert.InDelta(t, 10.0, a.Distance(b), 1e-12)
	assert.Equal(t, 100.0, a.DistanceSquared(b))
	assert.Equal(t, 100.0, b.DistanceSquared(a))
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name     string
		size     geometry.Size
		bounds   geometry.Size
		fraction float64
		want     geometry.Size
	}{
		{"landscape on wide screen", geometry.NewSize(4000, 3000), geometry.NewSize(1920, 1080), 0.8, geometry.NewSize(1152, 863)},
		{"small image is enlarged", geometry.NewSize(100, 50), geometry.NewSize(1000, 1000), 0.8, geometry.NewSize(800, 400)},
		{"full fraction", geometry.NewSize(200, 200), geometry.NewSize(100, 300), 1, geometry.NewSize(100, 100)},
		{"empty image", geometry.NewSize(0, 10), geometry.NewSize(100, 100), 0.8, geometry.Size{}},
		{"empty bounds", geometry.NewSize(10, 10), geometry.Size{}, 0.8, geometry.Size{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.size.FitWithin(tt.bounds, tt.fraction))
		})
	}
}
