package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Init loads the GL function pointers for the current context and
// returns the driver version string.
func Init() (string, error) {
	if err := gl.Init(); err != nil {
		return "", fmt.Errorf("render: initializing OpenGL: %w", err)
	}
	return gl.GoStr(gl.GetString(gl.VERSION)), nil
}

// Setup sets the clear color and enables depth testing when depth is set.
func Setup(clear mgl32.Vec4, depth bool) {

	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])

	if depth {
		// do not render pixels that are anyhow covered by nearer ones
		gl.Enable(gl.DEPTH_TEST)

		// equal depths keep draw order
		gl.DepthFunc(gl.LEQUAL)

		gl.FrontFace(gl.CCW)
		gl.Enable(gl.CULL_FACE)
	}

}

// Clear clears the color and depth buffers.
func Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Viewport maps NDC to a width×height framebuffer.
func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

var glErrorNames = map[uint32]string{
	0x500: `GL_INVALID_ENUM`,
	0x501: `GL_INVALID_VALUE`,
	0x502: `GL_INVALID_OPERATION`,
	0x503: `GL_STACK_OVERFLOW`,
	0x504: `GL_STACK_UNDERFLOW`,
	0x505: `GL_OUT_OF_MEMORY`,
	0x506: `GL_INVALID_FRAMEBUFFER_OPERATION`,
	0x507: `GL_CONTEXT_LOST`,
}

// Error is an OpenGL error code.
type Error uint32

func (e Error) Error() string {
	if name, ok := glErrorNames[uint32(e)]; ok {
		return "GL_ERROR: " + name
	}
	return fmt.Sprintf("GL_ERROR UNKNOWN: 0x%x", uint32(e))
}

// a lost context reports errors forever
const maxQueuedErrors = 8

// CheckError drains the accumulated OpenGL errors.
func CheckError() error {
	var errs []error
	for len(errs) < maxQueuedErrors {
		glerr := gl.GetError()
		if glerr == gl.NO_ERROR {
			break
		}
		errs = append(errs, Error(glerr))
	}
	return errors.Join(errs...)
}
