package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/paperboard/gltutorial/internal/config"
	"github.com/paperboard/gltutorial/internal/mesh"
	"github.com/paperboard/gltutorial/internal/render"
)

func newTriangleCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "triangle",
		Short: "Draw one triangle with a red, green and blue corner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := demoOptions{name: "triangle", clear: mgl32.Vec4{0, 0, 0, 1}}
			return run(cmd.Context(), *cfg, opts, &flatDemo{data: mesh.Triangle()})
		},
	}
}

// flatDemo draws one mesh straight in normalized device coordinates,
// without any camera.
type flatDemo struct {
	data mesh.Data
	mesh *render.Mesh
}

func (d *flatDemo) setup(a *app) error {
	// build the program up front so shader errors stop the demo early
	if _, err := a.program("basic"); err != nil {
		return err
	}
	m, err := render.NewMesh(d.data, render.Static)
	if err != nil {
		return err
	}
	d.mesh = m
	return nil
}

func (d *flatDemo) draw(a *app, _ float32) error {
	p, err := a.program("basic")
	if err != nil {
		return err
	}
	p.Use()
	d.mesh.Draw()
	return nil
}

func (d *flatDemo) teardown() {
	if d.mesh != nil {
		d.mesh.Delete()
	}
}
