// Package core defines domain models for grid path scenarios.
package core

import (
	"errors"
	"fmt"
)

// Cell is a 0-indexed grid cell (column X, row Y).
type Cell struct {
	X, Y int
}

// Point is a known position of an entity at a given time.
type Point struct {
	X, Y int
	T    float64 // Time
}

// Cell returns the cell the point sits in.
func (p Point) Cell() Cell {
	return Cell{X: p.X, Y: p.Y}
}

// Vec is a continuous 2D position in cell units.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns k * v.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Trajectory is a time-ordered sequence of points for one entity.
// Times are non-decreasing.
type Trajectory []Point

// Trajectory validation errors.
var (
	ErrEmptyTrajectory = errors.New("trajectory has no points")
	ErrTimeOrder       = errors.New("trajectory time decreases")
)

// Validate checks the trajectory invariants.
func (tr Trajectory) Validate() error {
	if len(tr) == 0 {
		return ErrEmptyTrajectory
	}
	for i := 1; i < len(tr); i++ {
		if tr[i].T < tr[i-1].T {
			return fmt.Errorf("%w: point %d at %g after %g", ErrTimeOrder, i, tr[i].T, tr[i-1].T)
		}
	}
	return nil
}

// Start returns the first timestamp.
func (tr Trajectory) Start() float64 {
	if len(tr) == 0 {
		return 0
	}
	return tr[0].T
}

// End returns the last timestamp.
func (tr Trajectory) End() float64 {
	if len(tr) == 0 {
		return 0
	}
	return tr[len(tr)-1].T
}

// Stationary reports whether the entity never leaves its first cell.
func (tr Trajectory) Stationary() bool {
	for _, p := range tr {
		if p.X != tr[0].X || p.Y != tr[0].Y {
			return false
		}
	}
	return true
}
