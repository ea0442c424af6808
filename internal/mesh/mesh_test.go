package mesh_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/paperboard/gltutorial/internal/bounds"
	"github.com/paperboard/gltutorial/internal/mesh"
)

func positions(d mesh.Data) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, d.VertexCount())
	for i := 0; i < len(d.Vertices); i += mesh.VertexSize {
		out = append(out, mgl32.Vec3{d.Vertices[i], d.Vertices[i+1], d.Vertices[i+2]})
	}
	return out
}

func TestShapes(t *testing.T) {
	red := mgl32.Vec3{1, 0, 0}
	tests := []struct {
		name     string
		data     mesh.Data
		vertices int
		indices  int
	}{
		{"triangle", mesh.Triangle(), 3, 3},
		{"quad", mesh.Quad(2, 1, -1, red), 4, 6},
		{"plane", mesh.Plane(10, -0.5, red), 4, 6},
		{"cube", mesh.Cube(1, mesh.DefaultFaceColors), 24, 36},
		{"outline", mesh.BoxOutline(bounds.Extremes{Max: mgl32.Vec3{1, 1, 1}}, red), 8, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.data.Validate())
			require.Equal(t, tt.vertices, tt.data.VertexCount())
			require.Len(t, tt.data.Indices, tt.indices)
		})
	}
}

func TestQuadCorners(t *testing.T) {
	d := mesh.Quad(2, 4, -1, mgl32.Vec3{0, 0, 1})
	require.Equal(t, []mgl32.Vec3{
		{1, 2, -1},
		{-1, 2, -1},
		{-1, -2, -1},
		{1, -2, -1},
	}, positions(d))
	require.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, d.Indices)
}

func TestCubeFitsUnitBox(t *testing.T) {
	d := mesh.Cube(2, mesh.DefaultFaceColors)
	e, err := bounds.ExtremesOf(mgl32.Ident4(), positions(d))
	require.NoError(t, err)
	require.Equal(t, mgl32.Vec3{-1, -1, -1}, e.Min)
	require.Equal(t, mgl32.Vec3{1, 1, 1}, e.Max)
}

func TestCubeFacesPointOutward(t *testing.T) {
	d := mesh.Cube(1, mesh.DefaultFaceColors)
	p := positions(d)
	for i := 0; i < len(d.Indices); i += 3 {
		a, b, c := p[d.Indices[i]], p[d.Indices[i+1]], p[d.Indices[i+2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		require.Greater(t, normal.Dot(center), float32(0), "triangle %d winds clockwise", i/3)
	}
}

func TestBoxOutlineFollowsExtremes(t *testing.T) {
	e := bounds.Extremes{Min: mgl32.Vec3{2, 0, -1}, Max: mgl32.Vec3{3, 5, 1}}
	d := mesh.BoxOutline(e, mgl32.Vec3{1, 1, 1})
	require.Equal(t, mesh.Lines, d.Primitive)

	back, err := bounds.ExtremesOf(mgl32.Ident4(), positions(d))
	require.NoError(t, err)
	require.Equal(t, e, back)

	// every edge is parallel to one axis
	p := positions(d)
	for i := 0; i < len(d.Indices); i += 2 {
		delta := p[d.Indices[i+1]].Sub(p[d.Indices[i]])
		changed := 0
		for axis := 0; axis < 3; axis++ {
			if delta[axis] != 0 {
				changed++
			}
		}
		require.Equal(t, 1, changed, "edge %d", i/2)
	}
}

func TestValidate(t *testing.T) {
	require.Error(t, mesh.Data{Vertices: []float32{1, 2, 3}}.Validate())
	require.Error(t, mesh.Data{Vertices: make([]float32, mesh.VertexSize), Indices: []uint32{1}}.Validate())
}
