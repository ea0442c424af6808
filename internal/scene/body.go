// Package scene holds the per-entity state of the collision demo and
// advances it once per frame.
package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/gltutorial/internal/bounds"
)

// Body is a box placed in the world.
type Body struct {
	Name     string
	Position mgl32.Vec3
	Velocity mgl32.Vec3 // units per second
	Axis     mgl32.Vec3 // rotation axis, need not be normalized
	Angle    float32    // radians around Axis
	Spin     float32    // radians per second
	Scale    mgl32.Vec3 // edge lengths
	Color    mgl32.Vec3 // multiplied into the face colors
	Player   bool       // velocity comes from the controls
	Static   bool       // never moves
}

// Tick advances b by dt seconds.
func (b *Body) Tick(dt float32) {
	if b.Static {
		return
	}
	b.Angle = math32.Mod(b.Angle+b.Spin*dt, 2*math32.Pi)
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}

func (b Body) rotated() bool {
	return b.Angle != 0 && b.Axis.Len() > 0
}

// Rotation is the orientation of b as a homogeneous matrix.
func (b Body) Rotation() mgl32.Mat4 {
	if !b.rotated() {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(b.Angle, b.Axis.Normalize())
}

// Model maps the unit cube to b in world space: scale, rotate, translate.
func (b Body) Model() mgl32.Mat4 {
	t := mgl32.Translate3D(b.Position[0], b.Position[1], b.Position[2])
	s := mgl32.Scale3D(b.Scale[0], b.Scale[1], b.Scale[2])
	return t.Mul4(b.Rotation()).Mul4(s)
}

// Bounds is the world-space AABB of b. An unrotated box is taken
// directly from its position and size.
func (b Body) Bounds() bounds.AABB {
	if !b.rotated() {
		return bounds.FromCenter(b.Position, b.Scale.Mul(0.5))
	}
	return bounds.BoxAABB(b.Model())
}

// Controls is the directional input state for the player body.
type Controls struct {
	Left, Right   bool
	Forward, Back bool
	Up, Down      bool
}

// Direction is the unit vector the controls point to, or zero.
// Forward is -z, the direction the default camera looks in.
func (c Controls) Direction() mgl32.Vec3 {
	axis := func(pos, neg bool) float32 {
		switch {
		case pos && !neg:
			return 1
		case neg && !pos:
			return -1
		}
		return 0
	}
	d := mgl32.Vec3{axis(c.Right, c.Left), axis(c.Up, c.Down), axis(c.Back, c.Forward)}
	if d.Len() == 0 {
		return d
	}
	return d.Normalize()
}

// Velocity scales Direction to speed.
func (c Controls) Velocity(speed float32) mgl32.Vec3 {
	return c.Direction().Mul(speed)
}
