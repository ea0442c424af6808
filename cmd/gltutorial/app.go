package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/gltutorial/assets"
	"github.com/paperboard/gltutorial/internal/config"
	"github.com/paperboard/gltutorial/internal/render"
	"github.com/paperboard/gltutorial/internal/shader"
	"github.com/paperboard/gltutorial/internal/window"
)

// fragment shader output bound to the default framebuffer
const fragOutput = "outColor"

// demo is one tutorial step. setup runs once with the context current,
// draw once per frame after the buffers were cleared, teardown releases
// whatever setup acquired.
type demo interface {
	setup(a *app) error
	draw(a *app, dt float32) error
	teardown()
}

type demoOptions struct {
	name  string
	depth bool
	clear mgl32.Vec4
}

type app struct {
	cfg     config.Config
	logger  *slog.Logger
	win     *window.Window
	shaders fs.FS
	watcher *shader.Watcher

	programs map[string]*render.Program
}

func run(ctx context.Context, cfg config.Config, opts demoOptions, d demo) error {

	logger := newLogger(cfg).With("demo", opts.name)

	win, err := window.Open(window.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title + " - " + opts.name,
		VSync:  cfg.VSync,
	}, logger)
	if err != nil {
		return err
	}
	defer win.Close()

	a := &app{
		cfg:      cfg,
		logger:   logger,
		win:      win,
		shaders:  assets.Shaders(),
		programs: make(map[string]*render.Program),
	}
	if cfg.ShaderDir != "" {
		a.shaders = os.DirFS(cfg.ShaderDir)
	}
	if cfg.Watch {
		a.watcher, err = shader.Watch(ctx, cfg.ShaderDir, logger)
		if err != nil {
			return err
		}
		defer a.watcher.Close()
	}
	defer a.deletePrograms()

	render.Setup(opts.clear, opts.depth)

	// teardown copes with a partial setup
	defer d.teardown()
	if err := d.setup(a); err != nil {
		return fmt.Errorf("%s setup: %w", opts.name, err)
	}

	if err := render.CheckError(); err != nil {
		return fmt.Errorf("%s setup: %w", opts.name, err)
	}

	return win.Run(func(dt float32) error {

		if ctx.Err() != nil {
			return window.ErrClosed
		}

		a.reloadPrograms()

		render.Clear()

		if err := d.draw(a, dt); err != nil {
			return err
		}

		// check for accumulated OpenGL errors
		return render.CheckError()

	})

}

// program returns the linked program called name, building it on first use.
func (a *app) program(name string) (*render.Program, error) {
	if p, ok := a.programs[name]; ok {
		return p, nil
	}
	p, err := a.buildProgram(name)
	if err != nil {
		return nil, err
	}
	a.programs[name] = p
	return p, nil
}

func (a *app) buildProgram(name string) (*render.Program, error) {
	src, err := shader.Load(a.shaders, name)
	if err != nil {
		return nil, err
	}
	p, err := render.NewProgram(src, fragOutput)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("linked program", "program", name)
	return p, nil
}

// reloadPrograms rebuilds programs whose files changed. A program that
// fails to build is kept in its previous working state.
func (a *app) reloadPrograms() {
	if a.watcher == nil {
		return
	}
	select {
	case <-a.watcher.Changed():
	default:
		return
	}
	for _, name := range a.watcher.Pending() {
		old, ok := a.programs[name]
		if !ok {
			continue
		}
		p, err := a.buildProgram(name)
		if err != nil {
			a.logger.Warn("shader reload failed, keeping previous program", "program", name, "err", err)
			continue
		}
		old.Delete()
		a.programs[name] = p
		a.logger.Info("reloaded program", "program", name)
	}
}

func (a *app) deletePrograms() {
	for name, p := range a.programs {
		p.Delete()
		delete(a.programs, name)
	}
}
