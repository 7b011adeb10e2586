package geometry_test

import (
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineThrough(t *testing.T) {
	line, err := geometry.LineThrough(domain.Point{X: 0, Y: 0}, domain.Point{X: 10, Y: 5})
	require.NoError(t, err)
	assert.Equal(t, 0.5, line.Slope)
	assert.Equal(t, 0.0, line.Intercept)
	assert.Equal(t, 2.5, line.At(5))

	line, err = geometry.LineThrough(domain.Point{X: 2, Y: 1}, domain.Point{X: 4, Y: -3})
	require.NoError(t, err)
	assert.Equal(t, -2.0, line.Slope)
	assert.Equal(t, 5.0, line.Intercept)
}

func TestLineThrough_Vertical(t *testing.T) {
	a := domain.Point{X: 3, Y: 0}
	b := domain.Point{X: 3, Y: 8}

	_, err := geometry.LineThrough(a, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDegenerateLine)

	var geoErr *domain.GeometryError
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, a, geoErr.From)
	assert.Equal(t, b, geoErr.To)
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, geometry.Linspace(0, 10, 5))
	assert.Equal(t, []float64{4}, geometry.Linspace(4, 9, 1))
	assert.Nil(t, geometry.Linspace(0, 1, 0))

	down := geometry.Linspace(1, -1, 3)
	assert.Equal(t, []float64{1, 0, -1}, down)
}

func TestInterpolate(t *testing.T) {
	points, err := geometry.Interpolate(domain.Point{X: 0, Y: 0}, domain.Point{X: 10, Y: 5}, 5)
	require.NoError(t, err)
	require.Len(t, points, 5)

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, xs)
	assert.Equal(t, []float64{0, 1.25, 2.5, 3.75, 5}, ys)
}

func TestInterpolate_VerticalSegment(t *testing.T) {
	points, err := geometry.Interpolate(domain.Point{X: 0, Y: 4}, domain.Point{X: 0, Y: -4}, 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.Point{{X: 0, Y: 4}, {X: 0, Y: 0}, {X: 0, Y: -4}}, points)
}

func TestInterpolate_InvalidSteps(t *testing.T) {
	_, err := geometry.Interpolate(domain.Point{}, domain.Point{X: 1}, 0)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestPositionsAndSegment(t *testing.T) {
	anchors := []domain.Point{{X: 0, Y: 5}, {X: 4, Y: -3}, {X: -4, Y: -3}}
	positions := geometry.Positions(anchors, 2)
	require.Len(t, positions, 6)
	assert.Equal(t, anchors, positions[:3])
	assert.Equal(t, anchors, positions[3:])

	from, to := geometry.Segment(positions, 2)
	assert.Equal(t, anchors[2], from)
	assert.Equal(t, anchors[0], to)

	// The final trial closes the loop back to the first anchor.
	from, to = geometry.Segment(positions, 5)
	assert.Equal(t, anchors[2], from)
	assert.Equal(t, anchors[0], to)
}
