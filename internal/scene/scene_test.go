package scene_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/paperboard/gltutorial/internal/bounds"
	"github.com/paperboard/gltutorial/internal/scene"
)

type Vec3 = mgl32.Vec3

func cube(name string, pos Vec3) scene.Body {
	return scene.Body{Name: name, Position: pos, Axis: Vec3{0, 1, 0}, Scale: Vec3{1, 1, 1}}
}

func TestBodyTick(t *testing.T) {
	b := cube("a", Vec3{0, 0, 0})
	b.Velocity = Vec3{2, 0, -1}
	b.Spin = math32.Pi

	b.Tick(0.5)
	require.Equal(t, Vec3{1, 0, -0.5}, b.Position)
	require.InDelta(t, math32.Pi/2, b.Angle, 1e-6)

	// the angle wraps instead of growing without bound
	for i := 0; i < 10; i++ {
		b.Tick(0.5)
	}
	require.Less(t, b.Angle, float32(2*math32.Pi))

	s := cube("s", Vec3{1, 1, 1})
	s.Static = true
	s.Velocity = Vec3{5, 5, 5}
	s.Tick(1)
	require.Equal(t, Vec3{1, 1, 1}, s.Position)
}

func TestBodyBounds(t *testing.T) {
	t.Run("Unrotated box uses its size directly", func(t *testing.T) {
		b := cube("a", Vec3{3, 0, 0})
		b.Scale = Vec3{2, 1, 4}
		direct := b.Bounds()
		require.Equal(t, bounds.FromCenter(Vec3{3, 0, 0}, Vec3{1, 0.5, 2}), direct)

		viaModel := bounds.BoxAABB(b.Model())
		require.True(t, direct.Center.ApproxEqual(viaModel.Center))
		require.True(t, direct.HalfExtents.ApproxEqual(viaModel.HalfExtents))
	})

	t.Run("Rotation grows the box", func(t *testing.T) {
		b := cube("a", Vec3{0, 0, 0})
		b.Angle = mgl32.DegToRad(45)
		a := b.Bounds()
		require.InDelta(t, 0.7071, a.HalfExtents.X(), 1e-3)
		require.InDelta(t, 0.5, a.HalfExtents.Y(), 1e-5)
		require.InDelta(t, 0.7071, a.HalfExtents.Z(), 1e-3)
	})
}

func TestControls(t *testing.T) {
	require.Equal(t, Vec3{}, scene.Controls{}.Direction())
	require.Equal(t, Vec3{}, scene.Controls{Left: true, Right: true}.Direction())
	require.Equal(t, Vec3{0, 0, -1}, scene.Controls{Forward: true}.Direction())
	require.Equal(t, Vec3{0, 3, 0}, scene.Controls{Up: true}.Velocity(3))

	diag := scene.Controls{Right: true, Back: true}.Direction()
	require.InDelta(t, 1, diag.Len(), 1e-6)
	require.InDelta(t, diag.X(), diag.Z(), 1e-6)
}

func TestSceneStep(t *testing.T) {
	s := &scene.Scene{Speed: 1}
	player := cube("player", Vec3{-2, 0, 0})
	player.Player = true
	crate := cube("crate", Vec3{0, 0, 0})
	crate.Static = true
	far := cube("far", Vec3{0, 0, 10})
	s.Bodies = []scene.Body{player, crate, far}

	require.Empty(t, s.Step(0.5, scene.Controls{Right: true}))
	require.Equal(t, Vec3{-1.5, 0, 0}, s.Bodies[0].Position)

	// touching faces count as a contact
	contacts := s.Step(0.5, scene.Controls{Right: true})
	require.Equal(t, []scene.Contact{{A: 0, B: 1}}, contacts)
	require.Equal(t, []bool{true, true, false}, scene.Touching(contacts, len(s.Bodies)))

	// releasing the keys stops the player
	require.Len(t, s.Step(1, scene.Controls{}), 1)
	require.Equal(t, Vec3{-1, 0, 0}, s.Bodies[0].Position)
}

func TestDefaultScene(t *testing.T) {
	s := scene.Default()
	require.Len(t, s.Bodies, 2)
	require.True(t, s.Bodies[0].Player)
	require.True(t, s.Bodies[1].Static)
	require.Equal(t, Vec3{1, 1, 1}, s.Bodies[1].Scale)
	require.Equal(t, Vec3{3, 3, 3}, s.Camera.Position)
	require.InDelta(t, mgl32.DegToRad(45), s.Bodies[0].Spin, 1e-6)
	require.Empty(t, s.Contacts(), "default scene starts apart")
}

func TestDecode(t *testing.T) {
	base := `
[[body]]
position = [0, 0, 0]
`
	t.Run("Defaults", func(t *testing.T) {
		s, err := scene.Decode(strings.NewReader(base))
		require.NoError(t, err)
		require.Equal(t, "body0", s.Bodies[0].Name)
		require.Equal(t, Vec3{1, 1, 1}, s.Bodies[0].Scale)
		require.Equal(t, Vec3{1, 1, 1}, s.Bodies[0].Color)
		require.Equal(t, float32(45), s.Camera.FOV)
		require.Equal(t, float32(100), s.Camera.Far)
	})

	invalid := map[string]string{
		"no bodies":        `speed = 1.0`,
		"short vector":     "[[body]]\nposition = [1, 2]\n",
		"zero scale":       "[[body]]\nscale = [1, 0, 1]\n",
		"static spinner":   "[[body]]\nstatic = true\nspin = 10.0\n",
		"rotating no axis": "[[body]]\naxis = [0, 0, 0]\nspin = 10.0\n",
		"bad fov":          "[camera]\nfov = 200.0\n" + base,
		"far before near":  "[camera]\nnear = 5.0\nfar = 1.0\n" + base,
		"camera on target": "[camera]\nposition = [0, 0, 0]\n" + base,
		"negative speed":   "speed = -1.0\n" + base,
	}
	for name, doc := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := scene.Decode(strings.NewReader(doc))
			require.ErrorIs(t, err, scene.ErrInvalid)
		})
	}

	t.Run("Unknown key", func(t *testing.T) {
		_, err := scene.Decode(strings.NewReader("colour = [1, 0, 0]\n" + base))
		require.Error(t, err)
		require.NotErrorIs(t, err, scene.ErrInvalid)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.toml")
	doc := `
speed = 2.0

[[body]]
name = "left"
position = [-0.25, 0, 0]

[[body]]
name = "right"
position = [0.25, 0, 0]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := scene.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, float32(2), s.Speed)
	require.Equal(t, []scene.Contact{{A: 0, B: 1}}, s.Contacts())

	_, err = scene.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
