package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/paperboard/gltutorial/internal/mesh"
)

// Usage is the buffer usage hint.
type Usage uint32

const (
	Static  Usage = gl.STATIC_DRAW
	Dynamic Usage = gl.DYNAMIC_DRAW
)

// Mesh is a vertex array object with its vertex and index buffers.
type Mesh struct {
	vao         uint32 // remembers attribute layout and the bound ibo
	vbo         uint32 // interleaved position + color
	ibo         uint32 // uint32 indices
	mode        uint32
	count       int32
	vertexBytes int
}

// https://www.songho.ca/opengl/gl_vbo.html#create
// https://learnopengl.com/Getting-started/Hello-Triangle

// NewMesh uploads d. Dynamic meshes can later be refreshed with Update.
func NewMesh(d mesh.Data, usage Usage) (*Mesh, error) {

	if err := d.Validate(); err != nil {
		return nil, err
	}
	if len(d.Vertices) == 0 || len(d.Indices) == 0 {
		return nil, errors.New("render: empty mesh")
	}

	m := &Mesh{
		mode:        primitiveMode(d.Primitive),
		count:       int32(len(d.Indices)),
		vertexBytes: len(d.Vertices) * mesh.BytesFloat32,
	}

	// create VAO and bind to it, the attribute layout below is recorded in it
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	// copy vertex data to VBO
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, m.vertexBytes, gl.Ptr(d.Vertices), uint32(usage))

	// copy index data to IBO, the binding stays with the VAO
	gl.GenBuffers(1, &m.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices)*mesh.BytesUint32, gl.Ptr(d.Indices), gl.STATIC_DRAW)

	// configure and enable vertex position
	gl.VertexAttribPointer(AttribPosition, mesh.PositionSize, gl.FLOAT, false, mesh.VertexStride, gl.PtrOffset(0)) // PtrOffset = 0
	gl.EnableVertexAttribArray(AttribPosition)

	// configure and enable vertex color
	gl.VertexAttribPointer(AttribColor, mesh.ColorSize, gl.FLOAT, false, mesh.VertexStride, gl.PtrOffset(mesh.ColorOffset)) // PtrOffset = 12
	gl.EnableVertexAttribArray(AttribColor)

	// unbind VAO first so it keeps the IBO
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	if err := CheckError(); err != nil {
		m.Delete()
		return nil, fmt.Errorf("render: uploading mesh: %w", err)
	}
	return m, nil

}

func primitiveMode(p mesh.Primitive) uint32 {
	if p == mesh.Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

// Update overwrites the vertex buffer. The vertex count cannot change.
func (m *Mesh) Update(vertices []float32) error {
	size := len(vertices) * mesh.BytesFloat32
	if size != m.vertexBytes {
		return fmt.Errorf("render: update of %d bytes into %d byte buffer", size, m.vertexBytes)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// Draw issues one indexed draw call with the current program.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// Delete releases the buffers and the VAO in reverse creation order.
func (m *Mesh) Delete() {
	gl.DeleteBuffers(1, &m.ibo)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	*m = Mesh{}
}
