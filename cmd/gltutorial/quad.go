package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/paperboard/gltutorial/internal/config"
	"github.com/paperboard/gltutorial/internal/mesh"
)

func newQuadCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "quad",
		Short: "Draw a rectangle from two indexed triangles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := demoOptions{name: "quad", clear: mgl32.Vec4{0, 0, 0, 1}}
			return run(cmd.Context(), *cfg, opts, &flatDemo{data: quadData()})
		},
	}
}

// quadData is the 1x1 rectangle with red, green, blue and white corners.
func quadData() mesh.Data {
	return mesh.CornerQuad(1, 1, 0, [4]mgl32.Vec3{
		{0, 1, 0}, // top-right: green
		{1, 0, 0}, // top-left: red
		{1, 1, 1}, // bottom-left: white
		{0, 0, 1}, // bottom-right: blue
	})
}
