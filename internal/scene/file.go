package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultScene []byte

// ErrInvalid wraps every validation failure of a scene file.
var ErrInvalid = errors.New("scene: invalid")

type fileCamera struct {
	Position []float32 `toml:"position"`
	Target   []float32 `toml:"target"`
	FOV      float32   `toml:"fov"`
	Near     float32   `toml:"near"`
	Far      float32   `toml:"far"`
}

type fileFloor struct {
	Size   float32   `toml:"size"`
	Height float32   `toml:"height"`
	Color  []float32 `toml:"color"`
}

type fileBody struct {
	Name     string    `toml:"name"`
	Position []float32 `toml:"position"`
	Velocity []float32 `toml:"velocity"`
	Axis     []float32 `toml:"axis"`
	Angle    float32   `toml:"angle"` // degrees
	Spin     float32   `toml:"spin"`  // degrees per second
	Scale    []float32 `toml:"scale"`
	Color    []float32 `toml:"color"`
	Player   bool      `toml:"player"`
	Static   bool      `toml:"static"`
}

type file struct {
	Speed  float32    `toml:"speed"`
	Camera fileCamera `toml:"camera"`
	Floor  fileFloor  `toml:"floor"`
	Bodies []fileBody `toml:"body"`
}

// Default is the built-in scene: a spinning player cube, a static cube
// and a floor.
func Default() *Scene {
	s, err := Decode(bytes.NewReader(defaultScene))
	if err != nil {
		// default.toml is covered by tests
		panic(err)
	}
	return s
}

// LoadFile reads a scene from a TOML file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses and validates a TOML scene. Unknown keys are rejected.
func Decode(r io.Reader) (*Scene, error) {
	var f file
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&f); err != nil {
		return nil, fmt.Errorf("scene: decoding: %w", err)
	}
	return f.scene()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func vec3(field string, v []float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	if v == nil {
		return def, nil
	}
	if len(v) != 3 {
		return mgl32.Vec3{}, invalid("%s needs 3 components, got %d", field, len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}

func (f file) scene() (*Scene, error) {
	s := &Scene{Speed: f.Speed}
	if s.Speed < 0 {
		return nil, invalid("speed %v is negative", s.Speed)
	}

	var err error
	c := &s.Camera
	if c.Position, err = vec3("camera.position", f.Camera.Position, mgl32.Vec3{3, 3, 3}); err != nil {
		return nil, err
	}
	if c.Target, err = vec3("camera.target", f.Camera.Target, mgl32.Vec3{}); err != nil {
		return nil, err
	}
	c.FOV, c.Near, c.Far = f.Camera.FOV, f.Camera.Near, f.Camera.Far
	if c.FOV == 0 {
		c.FOV = 45
	}
	if c.Near == 0 {
		c.Near = 0.1
	}
	if c.Far == 0 {
		c.Far = 100
	}
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return nil, invalid("camera.fov %v outside (0, 180)", c.FOV)
	case c.Near <= 0 || c.Far <= c.Near:
		return nil, invalid("camera near %v / far %v", c.Near, c.Far)
	case c.Position == c.Target:
		return nil, invalid("camera.position equals camera.target")
	}

	s.Floor.Size, s.Floor.Height = f.Floor.Size, f.Floor.Height
	if s.Floor.Size < 0 {
		return nil, invalid("floor.size %v is negative", s.Floor.Size)
	}
	if s.Floor.Color, err = vec3("floor.color", f.Floor.Color, mgl32.Vec3{0.3, 0.3, 0.3}); err != nil {
		return nil, err
	}

	if len(f.Bodies) == 0 {
		return nil, invalid("no bodies")
	}
	for i, fb := range f.Bodies {
		b, err := fb.body(i)
		if err != nil {
			return nil, err
		}
		s.Bodies = append(s.Bodies, b)
	}
	return s, nil
}

func (fb fileBody) body(i int) (Body, error) {
	b := Body{
		Name:   fb.Name,
		Angle:  mgl32.DegToRad(fb.Angle),
		Spin:   mgl32.DegToRad(fb.Spin),
		Player: fb.Player,
		Static: fb.Static,
	}
	if b.Name == "" {
		b.Name = fmt.Sprintf("body%d", i)
	}
	field := func(name string) string { return fmt.Sprintf("body %q %s", b.Name, name) }

	var err error
	if b.Position, err = vec3(field("position"), fb.Position, mgl32.Vec3{}); err != nil {
		return Body{}, err
	}
	if b.Velocity, err = vec3(field("velocity"), fb.Velocity, mgl32.Vec3{}); err != nil {
		return Body{}, err
	}
	if b.Axis, err = vec3(field("axis"), fb.Axis, mgl32.Vec3{0, 1, 0}); err != nil {
		return Body{}, err
	}
	if b.Scale, err = vec3(field("scale"), fb.Scale, mgl32.Vec3{1, 1, 1}); err != nil {
		return Body{}, err
	}
	if b.Color, err = vec3(field("color"), fb.Color, mgl32.Vec3{1, 1, 1}); err != nil {
		return Body{}, err
	}

	for axis := 0; axis < 3; axis++ {
		if b.Scale[axis] <= 0 {
			return Body{}, invalid("%s must be positive, got %v", field("scale"), b.Scale)
		}
	}
	if b.Axis.Len() == 0 && (b.Spin != 0 || b.Angle != 0) {
		return Body{}, invalid("%s is zero but the body rotates", field("axis"))
	}
	if b.Static && (b.Player || b.Spin != 0 || b.Velocity.Len() > 0) {
		return Body{}, invalid("%s is static but moves", field("static"))
	}
	return b, nil
}
