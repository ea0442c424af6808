package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/paperboard/gltutorial/internal/config"
	"github.com/paperboard/gltutorial/internal/mesh"
	"github.com/paperboard/gltutorial/internal/render"
	"github.com/paperboard/gltutorial/internal/scene"
)

var white = mgl32.Vec3{1, 1, 1}

func newCubeCmd(cfg *config.Config) *cobra.Command {
	var spin float32
	cmd := &cobra.Command{
		Use:   "cube",
		Short: "Draw a cube spinning in perspective",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := demoOptions{name: "cube", depth: true, clear: mgl32.Vec4{0.5, 0.5, 0.5, 1}}
			d := &cubeDemo{
				camera: scene.Camera{Position: mgl32.Vec3{3, 3, 3}, FOV: 45, Near: 0.1, Far: 10},
				body: scene.Body{
					Name:  "cube",
					Axis:  mgl32.Vec3{0, 1, 0},
					Spin:  mgl32.DegToRad(spin),
					Scale: mgl32.Vec3{1, 1, 1},
				},
			}
			return run(cmd.Context(), *cfg, opts, d)
		},
	}
	cmd.Flags().Float32Var(&spin, "spin", 90, "rotation speed in degrees per second")
	return cmd
}

type cubeDemo struct {
	camera scene.Camera
	body   scene.Body
	mesh   *render.Mesh
}

func (d *cubeDemo) setup(a *app) error {
	if _, err := a.program("color"); err != nil {
		return err
	}
	m, err := render.NewMesh(mesh.Cube(1, mesh.DefaultFaceColors), render.Static)
	if err != nil {
		return err
	}
	d.mesh = m
	return nil
}

func (d *cubeDemo) draw(a *app, dt float32) error {
	p, err := a.program("color")
	if err != nil {
		return err
	}
	d.body.Tick(dt)

	p.Use()
	setCamera(p, d.camera, a.win.Aspect())
	p.SetMat4("model", d.body.Model())
	p.SetVec3("tint", white)
	d.mesh.Draw()
	return nil
}

func (d *cubeDemo) teardown() {
	if d.mesh != nil {
		d.mesh.Delete()
	}
}

// Object Space -> Eye/World Space -> Clip Space -> NDC Space -> Viewport/Window Space
//
// projection: eye to clip coordinates
// camera: world to eye coordinates
// model: object to world coordinates, set per draw
//
// https://learnopengl.com/Getting-started/Coordinate-Systems
// https://learnopengl.com/Getting-started/Camera
func setCamera(p *render.Program, c scene.Camera, aspect float32) {
	p.SetMat4("projection", c.Projection(aspect))
	p.SetMat4("camera", c.View())
}
