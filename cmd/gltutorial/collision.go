package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/paperboard/gltutorial/internal/config"
	"github.com/paperboard/gltutorial/internal/mesh"
	"github.com/paperboard/gltutorial/internal/render"
	"github.com/paperboard/gltutorial/internal/scene"
)

var (
	touchingTint = mgl32.Vec3{1, 0.35, 0.35}
	outlineColor = mgl32.Vec3{1, 1, 1}
)

func newCollisionCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collision",
		Short: "Two cubes over a floor with bounding box overlap test",
		Long: `Draws the scene with each cube's world-space bounding box outlined.
Cubes whose boxes overlap turn red. Arrow keys move the player cube,
Page Up and Page Down move it vertically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := scene.Default()
			if cfg.ScenePath != "" {
				var err error
				if sc, err = scene.LoadFile(cfg.ScenePath); err != nil {
					return err
				}
			}
			opts := demoOptions{name: "collision", depth: true, clear: mgl32.Vec4{0.5, 0.5, 0.5, 1}}
			return run(cmd.Context(), *cfg, opts, &collisionDemo{scene: sc})
		},
	}
	cmd.Flags().StringVar(&cfg.ScenePath, "scene", cfg.ScenePath, "TOML scene file, the built-in scene when empty")
	return cmd
}

type collisionDemo struct {
	scene    *scene.Scene
	cube     *render.Mesh
	floor    *render.Mesh
	outlines []*render.Mesh // one dynamic line mesh per body
	touching []bool
}

func (d *collisionDemo) setup(a *app) error {
	if _, err := a.program("color"); err != nil {
		return err
	}

	var err error
	if d.cube, err = render.NewMesh(mesh.Cube(1, mesh.DefaultFaceColors), render.Static); err != nil {
		return err
	}
	f := d.scene.Floor
	if f.Size > 0 {
		if d.floor, err = render.NewMesh(mesh.Plane(f.Size, f.Height, f.Color), render.Static); err != nil {
			return err
		}
	}
	for _, box := range d.scene.Bounds() {
		m, err := render.NewMesh(mesh.BoxOutline(box.Extremes(), outlineColor), render.Dynamic)
		if err != nil {
			return err
		}
		d.outlines = append(d.outlines, m)
	}
	d.touching = make([]bool, len(d.scene.Bodies))

	a.logger.Info("scene loaded", "bodies", len(d.scene.Bodies))
	return nil
}

func controls(w interface{ Pressed(glfw.Key) bool }) scene.Controls {
	return scene.Controls{
		Left:    w.Pressed(glfw.KeyLeft),
		Right:   w.Pressed(glfw.KeyRight),
		Forward: w.Pressed(glfw.KeyUp),
		Back:    w.Pressed(glfw.KeyDown),
		Up:      w.Pressed(glfw.KeyPageUp),
		Down:    w.Pressed(glfw.KeyPageDown),
	}
}

func (d *collisionDemo) draw(a *app, dt float32) error {
	p, err := a.program("color")
	if err != nil {
		return err
	}

	contacts := d.scene.Step(dt, controls(a.win))
	touching := scene.Touching(contacts, len(d.scene.Bodies))
	d.logContacts(a, touching)

	p.Use()
	setCamera(p, d.scene.Camera, a.win.Aspect())

	if d.floor != nil {
		p.SetMat4("model", mgl32.Ident4())
		p.SetVec3("tint", white)
		d.floor.Draw()
	}

	for i, b := range d.scene.Bodies {
		tint := b.Color
		if touching[i] {
			tint = touchingTint
		}
		p.SetMat4("model", b.Model())
		p.SetVec3("tint", tint)
		d.cube.Draw()

		// outlines are already in world space
		color := outlineColor
		if touching[i] {
			color = touchingTint
		}
		if err := d.outlines[i].Update(mesh.BoxOutlineVertices(b.Bounds().Extremes(), color)); err != nil {
			return fmt.Errorf("outline of %s: %w", b.Name, err)
		}
		p.SetMat4("model", mgl32.Ident4())
		p.SetVec3("tint", white)
		d.outlines[i].Draw()
	}
	return nil
}

func (d *collisionDemo) logContacts(a *app, touching []bool) {
	for i, now := range touching {
		if now == d.touching[i] {
			continue
		}
		if now {
			a.logger.Info("overlap began", "body", d.scene.Bodies[i].Name)
		} else {
			a.logger.Info("overlap ended", "body", d.scene.Bodies[i].Name)
		}
	}
	d.touching = touching
}

func (d *collisionDemo) teardown() {
	for i := len(d.outlines) - 1; i >= 0; i-- {
		d.outlines[i].Delete()
	}
	if d.floor != nil {
		d.floor.Delete()
	}
	if d.cube != nil {
		d.cube.Delete()
	}
}
