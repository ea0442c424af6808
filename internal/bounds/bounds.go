// Package bounds computes world-space axis-aligned bounding boxes for
// transformed boxes and tests them for overlap.
package bounds

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoPoints is returned when extremes are requested for an empty point set.
var ErrNoPoints = errors.New("bounds: at least one point is required")

// UnitCube holds the local corners of a box at ±0.5 on every axis.
//
//    v6----- v5
//   /|      /|
//  v1------v0|
//  | |     | |
//  | v7----|-v4
//  |/      |/
//  v2------v3
var UnitCube = [8]mgl32.Vec3{
	{0.5, 0.5, 0.5},    // v0
	{-0.5, 0.5, 0.5},   // v1
	{-0.5, -0.5, 0.5},  // v2
	{0.5, -0.5, 0.5},   // v3
	{0.5, -0.5, -0.5},  // v4
	{0.5, 0.5, -0.5},   // v5
	{-0.5, 0.5, -0.5},  // v6
	{-0.5, -0.5, -0.5}, // v7
}

// Extremes holds the per-axis minimum and maximum of a point set.
type Extremes struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// At returns the extremes of a single point.
func At(p mgl32.Vec3) Extremes {
	return Extremes{Min: p, Max: p}
}

// Extend grows e so that it contains p.
func (e *Extremes) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		e.Min[i] = math32.Min(e.Min[i], p[i])
		e.Max[i] = math32.Max(e.Max[i], p[i])
	}
}

// Size is the edge length on every axis.
func (e Extremes) Size() mgl32.Vec3 {
	return e.Max.Sub(e.Min)
}

// AABB converts the extremes to center and half-extent form.
func (e Extremes) AABB() AABB {
	return AABB{
		Center:      e.Min.Add(e.Max).Mul(0.5),
		HalfExtents: e.Size().Mul(0.5),
	}
}

// Corners lists the eight corners of the box in UnitCube order.
func (e Extremes) Corners() [8]mgl32.Vec3 {
	var corners [8]mgl32.Vec3
	for i, c := range UnitCube {
		for axis := 0; axis < 3; axis++ {
			if c[axis] > 0 {
				corners[i][axis] = e.Max[axis]
			} else {
				corners[i][axis] = e.Min[axis]
			}
		}
	}
	return corners
}

// ExtremesOf transforms every point by m and folds the results into the
// smallest axis-aligned box that contains them all.
func ExtremesOf(m mgl32.Mat4, points []mgl32.Vec3) (Extremes, error) {
	if len(points) == 0 {
		return Extremes{}, ErrNoPoints
	}
	e := At(transform(m, points[0]))
	for _, p := range points[1:] {
		e.Extend(transform(m, p))
	}
	return e, nil
}

func transform(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// AABB is an axis-aligned bounding box stored as center and half extents.
type AABB struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// FromCenter builds an AABB, taking the absolute value of every half extent.
func FromCenter(center, halfExtents mgl32.Vec3) AABB {
	for i := range halfExtents {
		halfExtents[i] = math32.Abs(halfExtents[i])
	}
	return AABB{Center: center, HalfExtents: halfExtents}
}

// BoxAABB is the world-space AABB of the unit cube placed by model.
func BoxAABB(model mgl32.Mat4) AABB {
	// UnitCube is never empty
	e, _ := ExtremesOf(model, UnitCube[:])
	return e.AABB()
}

// Extremes converts the box back to min/max form.
func (a AABB) Extremes() Extremes {
	return Extremes{
		Min: a.Center.Sub(a.HalfExtents),
		Max: a.Center.Add(a.HalfExtents),
	}
}

// Overlaps reports whether a and b intersect. Boxes that only touch on a
// face, edge or corner overlap.
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if math32.Abs(a.Center[i]-b.Center[i]) > a.HalfExtents[i]+b.HalfExtents[i] {
			return false
		}
	}
	return true
}
