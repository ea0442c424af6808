// Command gltutorial runs the OpenGL tutorial steps: a triangle, a quad,
// a rotating cube and a bounding box collision scene.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/paperboard/gltutorial/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "gltutorial",
		Short: "Incremental OpenGL tutorial demos",
		Long: `gltutorial opens a window and renders one tutorial step per subcommand,
from a single colored triangle up to two cubes with bounding box collision.
Press Escape or close the window to quit.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("log-level") {
				if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
					return fmt.Errorf("--log-level: %w", err)
				}
			}
			return cfg.Validate()
		},
	}

	flags := root.PersistentFlags()
	flags.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	flags.StringVar(&cfg.Title, "title", cfg.Title, "window title prefix")
	flags.StringVar(&cfg.ShaderDir, "shaders", cfg.ShaderDir, "load shaders from this directory instead of the built-in ones")
	flags.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload shaders from --shaders when they change")
	flags.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "wait for vertical sync between frames")
	flags.StringVar(&logLevel, "log-level", cfg.LogLevel.String(), "debug, info, warn or error")

	root.AddCommand(
		newTriangleCmd(cfg),
		newQuadCmd(cfg),
		newCubeCmd(cfg),
		newCollisionCmd(cfg),
	)
	return root
}

func newLogger(cfg config.Config) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(&cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
