// Package window opens a GLFW window with an OpenGL 3.2 core context and
// drives the frame loop.
package window

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/paperboard/gltutorial/internal/render"
)

func init() {
	// glfw must be on main thread
	runtime.LockOSThread()
}

// Config describes the window to open.
type Config struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Window is an open window whose context is current on the main thread.
type Window struct {
	handle *glfw.Window
	logger *slog.Logger
	width  int
	height int
}

// Open initializes GLFW, creates the window and makes its context current.
// Callers must Close the returned window.
func Open(cfg Config, logger *slog.Logger) (*Window, error) {

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("window: invalid size %dx%d", cfg.Width, cfg.Height)
	}

	// initalize glfw
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: failed to initialize glfw: %w", err)
	}

	// use OpenGL v3.2 core
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	// create window handle
	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: creating %dx%d window: %w", cfg.Width, cfg.Height, err)
	}
	handle.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		handle: handle,
		logger: logger.With("area", "window"),
		width:  cfg.Width,
		height: cfg.Height,
	}

	// initialize OpenGL
	version, err := render.Init()
	if err != nil {
		w.Close()
		return nil, err
	}
	w.logger.Info("opened window", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "gl", version)

	handle.SetKeyCallback(w.onKey)

	// on high density displays the framebuffer is larger than the window
	fbw, fbh := handle.GetFramebufferSize()
	render.Viewport(fbw, fbh)
	handle.SetFramebufferSizeCallback(w.onFramebufferSize)

	return w, nil

}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.logger.Debug("escape pressed, closing")
		w.handle.SetShouldClose(true)
	}
}

func (w *Window) onFramebufferSize(_ *glfw.Window, width int, height int) {
	w.logger.Debug("framebuffer resized", "width", width, "height", height)
	render.Viewport(width, height)
}

// Aspect is width over height.
func (w *Window) Aspect() float32 {
	return float32(w.width) / float32(w.height)
}

// Pressed reports whether key is currently held down.
func (w *Window) Pressed(key glfw.Key) bool {
	return w.handle.GetKey(key) == glfw.Press
}

// ErrClosed is returned by a frame function to end the loop without error.
var ErrClosed = errors.New("window: closed")

// Run calls frame once per iteration with the seconds elapsed since the
// previous frame, presents the result and polls events, until the window
// is closed or frame fails.
func (w *Window) Run(frame func(dt float32) error) error {

	last := glfw.GetTime()
	frames := 0

	for !w.handle.ShouldClose() {

		now := glfw.GetTime()
		dt := float32(now - last)
		last = now

		// draw into buffer
		if err := frame(dt); err != nil {
			if errors.Is(err, ErrClosed) {
				break
			}
			return err
		}

		// render buffer to screen
		w.handle.SwapBuffers()
		frames++

		// glfw events?
		glfw.PollEvents()

	}

	w.logger.Info("frame loop done", "frames", frames)
	return nil

}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	if w.handle != nil {
		w.handle.Destroy()
		w.handle = nil
	}
	glfw.Terminate()
}
