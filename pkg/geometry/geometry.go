// Package geometry holds the 2D line math used to build moving-stimulus trajectories.
package geometry

import (
	"github.com/aretw0/cadence/pkg/domain"
)

// Line is the function y = Slope·x + Intercept through two anchors.
type Line struct {
	Slope     float64
	Intercept float64
}

// LineThrough returns the line passing through a and b.
// Two anchors sharing the same x-coordinate have no slope and yield a *domain.GeometryError.
func LineThrough(a, b domain.Point) (Line, error) {
	dx := b.X - a.X
	if dx == 0 {
		return Line{}, &domain.GeometryError{From: a, To: b}
	}
	slope := (b.Y - a.Y) / dx
	return Line{Slope: slope, Intercept: a.Y - slope*a.X}, nil
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Linspace returns n evenly spaced values over [start, stop], both ends included.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Interpolate returns steps points travelling from a to b.
//
// The x-values are spaced evenly and y is read from the line through a and b.
// Vertical segments (same x) have no line function, so their y-values are
// spaced evenly instead; identical anchors produce a stationary trajectory.
// The first and last points are always the anchors themselves.
func Interpolate(a, b domain.Point, steps int) ([]domain.Point, error) {
	if steps < 1 {
		return nil, domain.NewConfigurationError("steps", "interpolation needs at least one step, got %d", steps)
	}
	xs := Linspace(a.X, b.X, steps)
	out := make([]domain.Point, steps)

	line, err := LineThrough(a, b)
	if err != nil {
		ys := Linspace(a.Y, b.Y, steps)
		for i := range out {
			out[i] = domain.Point{X: xs[i], Y: ys[i]}
		}
		return out, nil
	}

	for i, x := range xs {
		out[i] = domain.Point{X: x, Y: line.At(x)}
	}
	out[0] = a
	if steps > 1 {
		out[steps-1] = b
	}
	return out, nil
}

// Positions repeats the anchors cyclically n times.
func Positions(anchors []domain.Point, repeats int) []domain.Point {
	if repeats <= 0 {
		return nil
	}
	out := make([]domain.Point, 0, len(anchors)*repeats)
	for range repeats {
		out = append(out, anchors...)
	}
	return out
}

// Segment returns the start and end position of trial i over a closed path:
// the last position connects back to the first.
func Segment(positions []domain.Point, i int) (from, to domain.Point) {
	n := len(positions)
	return positions[i%n], positions[(i+1)%n]
}
