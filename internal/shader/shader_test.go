package shader_test

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paperboard/gltutorial/internal/shader"
)

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"color.vert": {Data: []byte("#version 150 core\nvoid main() {}\n")},
		"color.frag": {Data: []byte("#version 150 core\nvoid main() {}\n")},
		"blank.vert": {Data: []byte("#version 150 core\n")},
		"blank.frag": {Data: []byte("  \n\t")},
		"half.vert":  {Data: []byte("void main() {}")},
	}

	t.Run("Both stages", func(t *testing.T) {
		src, err := shader.Load(fsys, "color")
		require.NoError(t, err)
		require.Equal(t, "color", src.Name)
		require.Contains(t, src.Vertex, "#version 150 core")
		require.Contains(t, src.Fragment, "void main")
	})

	t.Run("Missing fragment stage", func(t *testing.T) {
		_, err := shader.Load(fsys, "half")
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("Missing program", func(t *testing.T) {
		_, err := shader.Load(fsys, "nope")
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("Whitespace only", func(t *testing.T) {
		_, err := shader.Load(fsys, "blank")
		require.ErrorIs(t, err, shader.ErrEmptySource)
	})
}

func TestProgramName(t *testing.T) {
	tests := []struct {
		file string
		name string
		ok   bool
	}{
		{"shaders/color.vert", "color", true},
		{"/abs/dir/basic.frag", "basic", true},
		{`C:\shaders\cube.frag`, "cube", true},
		{"color.vert.swp", "", false},
		{".vert", "", false},
		{"README.md", "", false},
	}
	for _, tt := range tests {
		name, ok := shader.ProgramName(tt.file)
		require.Equal(t, tt.ok, ok, tt.file)
		require.Equal(t, tt.name, name, tt.file)
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "color.vert")
	require.NoError(t, os.WriteFile(vert, []byte("void main() {}"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := shader.Watch(ctx, dir, logger)
	require.NoError(t, err)
	defer w.Close()

	require.Empty(t, w.Pending())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(vert, []byte("void main() { }"), 0o644))

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	require.Equal(t, []string{"color"}, w.Pending())
}

func TestWatchMissingDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := shader.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), logger)
	require.Error(t, err)
}
