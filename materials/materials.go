// Package materials holds the scene's named lighting material presets.
package materials

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrDuplicateTag = errors.New("material tag already defined")
	ErrEmptyTag     = errors.New("material tag is empty")
)

// Material is a set of Phong surface properties addressed by Tag.
type Material struct {
	Tag             string     `yaml:"tag"`
	AmbientColor    mgl32.Vec3 `yaml:"ambient_color"`
	AmbientStrength float32    `yaml:"ambient_strength"`
	DiffuseColor    mgl32.Vec3 `yaml:"diffuse_color"`
	SpecularColor   mgl32.Vec3 `yaml:"specular_color"`
	Shininess       float32    `yaml:"shininess"`
}

// Registry is an append-only, insertion-ordered list of materials. Tags are
// unique: Define rejects a tag that is already present, so Find never has to
// choose between two matches.
type Registry struct {
	materials []Material
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Define appends m. Materials cannot be changed once defined.
func (r *Registry) Define(m Material) error {
	if m.Tag == "" {
		return ErrEmptyTag
	}
	if _, ok := r.Find(m.Tag); ok {
		return fmt.Errorf("define %q: %w", m.Tag, ErrDuplicateTag)
	}
	r.materials = append(r.materials, m)
	return nil
}

// Find returns the material tagged tag. The zero Material and false are
// returned when no such material exists.
func (r *Registry) Find(tag string) (Material, bool) {
	for _, m := range r.materials {
		if m.Tag == tag {
			return m, true
		}
	}
	return Material{}, false
}

func (r *Registry) Len() int {
	return len(r.materials)
}
