package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/gltutorial/internal/bounds"
)

// Camera is a perspective camera looking at a fixed target.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	FOV      float32 // vertical, degrees
	Near     float32
	Far      float32
}

// Projection transforms eye to clip coordinates.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// View transforms world to eye coordinates, +y up.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, mgl32.Vec3{0, 1, 0})
}

// Floor is the ground plane.
type Floor struct {
	Size   float32
	Height float32
	Color  mgl32.Vec3
}

// Scene is everything the collision demo draws.
type Scene struct {
	Camera Camera
	Floor  Floor
	Bodies []Body
	Speed  float32 // player speed, units per second
}

// Contact is a pair of overlapping bodies, by index, with A < B.
type Contact struct {
	A, B int
}

// Step advances every body by dt and returns the resulting contacts.
func (s *Scene) Step(dt float32, c Controls) []Contact {
	for i := range s.Bodies {
		b := &s.Bodies[i]
		if b.Player {
			b.Velocity = c.Velocity(s.Speed)
		}
		b.Tick(dt)
	}
	return s.Contacts()
}

// Bounds returns the current AABB of every body.
func (s *Scene) Bounds() []bounds.AABB {
	out := make([]bounds.AABB, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = b.Bounds()
	}
	return out
}

// Contacts tests every pair of bodies for AABB overlap.
func (s *Scene) Contacts() []Contact {
	boxes := s.Bounds()
	var contacts []Contact
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].Overlaps(boxes[j]) {
				contacts = append(contacts, Contact{A: i, B: j})
			}
		}
	}
	return contacts
}

// Touching flags, per body, whether it takes part in any contact.
func Touching(contacts []Contact, n int) []bool {
	out := make([]bool, n)
	for _, c := range contacts {
		out[c.A] = true
		out[c.B] = true
	}
	return out
}
