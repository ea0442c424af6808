// Package mesh builds interleaved vertex and index arrays for the
// tutorial shapes. Every vertex is x,y,z followed by r,g,b.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/gltutorial/internal/bounds"
)

const (
	PositionSize  = 3 // x,y,z
	ColorSize     = 3 // r,g,b
	VertexSize    = PositionSize + ColorSize
	BytesFloat32  = 4 // a float32 is 4 bytes
	BytesUint32   = 4 // a uint32 is 4 bytes
	VertexStride  = VertexSize * BytesFloat32
	ColorOffset   = PositionSize * BytesFloat32
	quadVertices  = 4 // a rectangle has 4 vertices
	quadIndices   = 6 // a rectangle has 6 indices
	cubeFaces     = 6
	boxLineCount  = 12
	boxCornerSize = 8
)

// Primitive tells the renderer how indices are assembled.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

// Data is one shape ready for upload.
type Data struct {
	Vertices  []float32
	Indices   []uint32
	Primitive Primitive
}

// VertexCount is the number of interleaved vertices in d.
func (d Data) VertexCount() int {
	return len(d.Vertices) / VertexSize
}

// Validate checks that the arrays are well formed and that every index
// refers to an existing vertex.
func (d Data) Validate() error {
	if len(d.Vertices)%VertexSize != 0 {
		return fmt.Errorf("mesh: %d floats is not a multiple of vertex size %d", len(d.Vertices), VertexSize)
	}
	n := uint32(d.VertexCount())
	for i, idx := range d.Indices {
		if idx >= n {
			return fmt.Errorf("mesh: index %d at %d out of range for %d vertices", idx, i, n)
		}
	}
	return nil
}

func vertex(p mgl32.Vec3, c mgl32.Vec3) []float32 {
	return []float32{p[0], p[1], p[2], c[0], c[1], c[2]}
}

// Triangle is the first tutorial shape: one red, one green and one blue corner.
func Triangle() Data {
	return Data{
		Vertices: []float32{
			0.0, 0.5, 0, 1, 0, 0, // top: red
			0.5, -0.5, 0, 0, 1, 0, // bottom-right: green
			-0.5, -0.5, 0, 0, 0, 1, // bottom-left: blue
		},
		Indices: []uint32{0, 1, 2},
	}
}

// rectangle
//
//  v1------v0
//  |       |
//  |       |
//  v2------v3
func quadCorners(w, h, z float32) [quadVertices]mgl32.Vec3 {
	return [quadVertices]mgl32.Vec3{
		{w * 0.5, h * 0.5, z},   // v0 position = top-right
		{-w * 0.5, h * 0.5, z},  // v1 position = top-left
		{-w * 0.5, -h * 0.5, z}, // v2 position = bottom-left
		{w * 0.5, -h * 0.5, z},  // v3 position = bottom-right
	}
}

func quadIndexList(base uint32) []uint32 {
	return []uint32{
		base, base + 1, base + 2, // first triangle
		base, base + 2, base + 3, // second triangle
	}
}

// Quad is a w×h rectangle at depth z facing +z with a single color.
func Quad(w, h, z float32, c mgl32.Vec3) Data {
	return CornerQuad(w, h, z, [quadVertices]mgl32.Vec3{c, c, c, c})
}

// CornerQuad is a rectangle with a color per corner, in v0..v3 order.
func CornerQuad(w, h, z float32, colors [quadVertices]mgl32.Vec3) Data {
	d := Data{Vertices: make([]float32, 0, quadVertices*VertexSize)}
	for i, p := range quadCorners(w, h, z) {
		d.Vertices = append(d.Vertices, vertex(p, colors[i])...)
	}
	d.Indices = quadIndexList(0)
	return d
}

// Plane is a size×size floor in the XZ plane at height y, facing +y.
func Plane(size, y float32, c mgl32.Vec3) Data {
	h := size * 0.5
	d := Data{}
	for _, p := range []mgl32.Vec3{{h, y, -h}, {-h, y, -h}, {-h, y, h}, {h, y, h}} {
		d.Vertices = append(d.Vertices, vertex(p, c)...)
	}
	d.Indices = quadIndexList(0)
	return d
}

// cube faces, each listed counter-clockwise seen from outside, using the
// bounds.UnitCube corner numbering
var cubeFaceCorners = [cubeFaces][quadVertices]int{
	{0, 1, 2, 3}, // front  (+z)
	{5, 0, 3, 4}, // right  (+x)
	{6, 5, 4, 7}, // back   (-z)
	{1, 6, 7, 2}, // left   (-x)
	{5, 6, 1, 0}, // top    (+y)
	{3, 2, 7, 4}, // bottom (-y)
}

// DefaultFaceColors gives every cube face a distinct color.
var DefaultFaceColors = [cubeFaces]mgl32.Vec3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 0},
	{1, 0, 1},
	{0, 1, 1},
}

// Cube is an axis aligned cube of the given edge length centered at the
// origin. Faces do not share vertices so each keeps its own color.
func Cube(size float32, faceColors [cubeFaces]mgl32.Vec3) Data {
	d := Data{
		Vertices: make([]float32, 0, cubeFaces*quadVertices*VertexSize),
		Indices:  make([]uint32, 0, cubeFaces*quadIndices),
	}
	for f, face := range cubeFaceCorners {
		base := uint32(f * quadVertices)
		for _, corner := range face {
			d.Vertices = append(d.Vertices, vertex(bounds.UnitCube[corner].Mul(size), faceColors[f])...)
		}
		d.Indices = append(d.Indices, quadIndexList(base)...)
	}
	return d
}

// the 12 edges of a box as corner pairs
var boxEdges = [boxLineCount * 2]uint32{
	0, 1, 1, 2, 2, 3, 3, 0, // front
	5, 6, 6, 7, 7, 4, 4, 5, // back
	0, 5, 1, 6, 2, 7, 3, 4, // sides
}

// BoxOutline is a line mesh tracing the edges of e.
func BoxOutline(e bounds.Extremes, c mgl32.Vec3) Data {
	return Data{
		Vertices:  BoxOutlineVertices(e, c),
		Indices:   append([]uint32(nil), boxEdges[:]...),
		Primitive: Lines,
	}
}

// BoxOutlineVertices recomputes only the vertex array of BoxOutline, for
// refreshing a dynamic buffer every frame.
func BoxOutlineVertices(e bounds.Extremes, c mgl32.Vec3) []float32 {
	vertices := make([]float32, 0, boxCornerSize*VertexSize)
	for _, p := range e.Corners() {
		vertices = append(vertices, vertex(p, c)...)
	}
	return vertices
}
