// Package render wraps the OpenGL 3.2 core calls used by the tutorials:
// shader programs, vertex array meshes and error checks. Every function
// must run on the thread that owns the current context.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/gltutorial/internal/shader"
)

// attribute locations shared by every program, bound before linking so
// a mesh built once works with any program, including reloaded ones
const (
	AttribPosition uint32 = 0
	AttribColor    uint32 = 1
)

var attribNames = map[uint32]string{
	AttribPosition: "position",
	AttribColor:    "color",
}

var (
	ErrCompile = errors.New("render: shader compile failed")
	ErrLink    = errors.New("render: program link failed")
)

// Program is a linked vertex + fragment shader pair.
type Program struct {
	Name string

	id       uint32
	uniforms map[string]int32
}

// NewProgram compiles both stages of src, binds the fragment output
// variable to color number 0 and links them. The shader objects are
// released once the program is linked.
func NewProgram(src shader.Source, fragOutput string) (*Program, error) {

	vertexShader, err := compileShader(src.Vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(src.Fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)

	for loc, name := range attribNames {
		gl.BindAttribLocation(program, loc, gl.Str(name+"\x00"))
	}
	gl.BindFragDataLocation(program, 0, gl.Str(fragOutput+"\x00"))

	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {

		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])

		gl.DeleteProgram(program)
		return nil, fmt.Errorf("%s: %w: %s", src.Name, ErrLink, cString(log))

	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	return &Program{Name: src.Name, id: program, uniforms: make(map[string]int32)}, nil

}

func compileShader(source string, shaderType uint32) (uint32, error) {

	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {

		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])

		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s shader: %s", ErrCompile, stageName(shaderType), cString(log))

	}

	return shader, nil

}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return fmt.Sprintf("0x%x", shaderType)
}

func cString(b []byte) string {
	return strings.TrimSpace(strings.TrimRight(string(b), "\x00"))
}

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

func (p *Program) uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	// -1 for unknown names; GL silently ignores updates to it
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetMat4 uploads m to uniform name of the current program.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.uniform(name), 1, false, &m[0])
}

// SetVec3 uploads v to uniform name of the current program.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(p.uniform(name), 1, &v[0])
}

// Delete releases the program object.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
