// Package point provides a 2D point value.
package point

import (
	"errors"
	"fmt"
	"math"
)

// ErrTypeMismatch is returned by Add when the operand is not a Point.
var ErrTypeMismatch = errors.New("operand is not a Point")

// Point represents an (X, Y) coordinate. The zero value is the origin.
type Point struct {
	X, Y float64
}

// New returns a Point at (x, y).
func New(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Translate moves p by (dx, dy).
func (p *Point) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

// DistanceFromOrigin returns the Euclidean norm of p.
func (p Point) DistanceFromOrigin() float64 {
	return math.Hypot(p.X, p.Y)
}

// Plus returns a new Point offset by q.
func (p Point) Plus(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Add returns the pairwise sum of p and other, which must be a Point.
// Any other operand, *Point included, fails with ErrTypeMismatch.
func (p Point) Add(other any) (Point, error) {
	q, ok := other.(Point)
	if !ok {
		return Point{}, fmt.Errorf("%w: %T", ErrTypeMismatch, other)
	}
	return p.Plus(q), nil
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g)", p.X, p.Y)
}
