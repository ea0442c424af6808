// Package shader loads GLSL program sources and watches them for changes.
package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

const (
	VertexExt   = ".vert"
	FragmentExt = ".frag"
)

// ErrEmptySource is returned for a shader file with no code in it.
var ErrEmptySource = errors.New("shader: empty source")

// Source is the text of a vertex and fragment shader pair.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Load reads name.vert and name.frag from fsys.
func Load(fsys fs.FS, name string) (Source, error) {
	vert, err := readStage(fsys, name+VertexExt)
	if err != nil {
		return Source{}, err
	}
	frag, err := readStage(fsys, name+FragmentExt)
	if err != nil {
		return Source{}, err
	}
	return Source{Name: name, Vertex: vert, Fragment: frag}, nil
}

func readStage(fsys fs.FS, file string) (string, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return "", fmt.Errorf("shader: reading %s: %w", file, err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("shader: %s: %w", file, ErrEmptySource)
	}
	return text, nil
}

// ProgramName maps a shader file path to the program it belongs to, or
// false if the file is not a shader stage.
func ProgramName(file string) (string, bool) {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	for _, ext := range []string{VertexExt, FragmentExt} {
		if strings.HasSuffix(base, ext) && len(base) > len(ext) {
			return strings.TrimSuffix(base, ext), true
		}
	}
	return "", false
}
