// Package scene describes the desk still life as data and replays it through
// the shader state binder every frame.
package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/richinsley/deskscene/binder"
	"github.com/richinsley/deskscene/materials"
	"github.com/richinsley/deskscene/meshes"
)

//go:embed default.yaml
var defaultManifest []byte

var ErrInvalidManifest = errors.New("invalid scene manifest")

// TextureEntry is one image to load into the texture registry.
type TextureEntry struct {
	Path string `yaml:"path"`
	Tag  string `yaml:"tag"`
}

// Camera is the fixed viewpoint of the scene.
type Camera struct {
	Eye    mgl32.Vec3 `yaml:"eye"`
	Target mgl32.Vec3 `yaml:"target"`
	Up     mgl32.Vec3 `yaml:"up"`
	FOV    float32    `yaml:"fov"`
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective projection for a viewport with the given
// width/height ratio.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// DrawOp is one entry of the draw list: either a single mesh draw or an
// instance of a prefab.
//
// A mesh draw names its mesh and exactly one of Color or Texture. Material
// and UVScale are optional; when omitted the previous values stay bound.
// A zero Scale means unit scale.
//
// Inside a prefab, Position is an offset from the instance position, and a
// part with Inherit set takes the instance's scale, rotation and surface.
type DrawOp struct {
	Name     string        `yaml:"name,omitempty"`
	Mesh     string        `yaml:"mesh,omitempty"`
	Parts    *meshes.Parts `yaml:"parts,omitempty"`
	Scale    mgl32.Vec3    `yaml:"scale"`
	Rotation mgl32.Vec3    `yaml:"rotation"`
	Position mgl32.Vec3    `yaml:"position"`
	Color    *mgl32.Vec4   `yaml:"color,omitempty"`
	Texture  string        `yaml:"texture,omitempty"`
	Material string        `yaml:"material,omitempty"`
	UVScale  *mgl32.Vec2   `yaml:"uv_scale,omitempty"`
	Prefab   string        `yaml:"prefab,omitempty"`
	Inherit  bool          `yaml:"inherit,omitempty"`
}

// Manifest is everything needed to prepare and draw a scene.
type Manifest struct {
	Textures   []TextureEntry       `yaml:"textures"`
	Materials  []materials.Material `yaml:"materials"`
	Lights     []binder.Light       `yaml:"lights"`
	Meshes     []meshes.Kind        `yaml:"meshes"`
	Camera     Camera               `yaml:"camera"`
	Background mgl32.Vec4           `yaml:"background"`
	Prefabs    map[string][]DrawOp  `yaml:"prefabs"`
	Objects    []DrawOp             `yaml:"objects"`
}

// Draw is a fully resolved mesh draw.
type Draw struct {
	Name     string
	Kind     meshes.Kind
	Parts    meshes.Parts
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3
	Position mgl32.Vec3
	Color    *mgl32.Vec4
	Texture  string
	Material string
	UVScale  *mgl32.Vec2
}

func defaults() *Manifest {
	return &Manifest{
		Camera: Camera{
			Eye:    mgl32.Vec3{0, 10, 30},
			Target: mgl32.Vec3{0, 2, 5},
			Up:     mgl32.Vec3{0, 1, 0},
			FOV:    45,
			Near:   0.1,
			Far:    100,
		},
		Background: mgl32.Vec4{0, 0, 0, 1},
	}
}

// ParseManifest decodes a YAML manifest and validates it. Camera and
// background keys that are left out keep their defaults.
func ParseManifest(data []byte) (*Manifest, error) {
	m := defaults()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	return m, nil
}

// DefaultManifest returns the built-in desk still life.
func DefaultManifest() *Manifest {
	m, err := ParseManifest(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("scene: embedded default manifest: %v", err))
	}
	return m
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidManifest, fmt.Sprintf(format, args...))
}

// Validate reports every problem found in m. The result wraps
// ErrInvalidManifest.
func (m *Manifest) Validate() error {
	var errs []error

	for i, t := range m.Textures {
		if t.Path == "" || t.Tag == "" {
			errs = append(errs, invalid("texture %d: path and tag are required", i))
		}
	}
	for i, mat := range m.Materials {
		if mat.Tag == "" {
			errs = append(errs, invalid("material %d: tag is required", i))
		}
	}
	if len(m.Lights) > binder.MaxLights {
		errs = append(errs, invalid("%d lights, at most %d are supported", len(m.Lights), binder.MaxLights))
	}

	c := m.Camera
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, invalid("camera fov %v out of range", c.FOV))
	}
	if c.Near <= 0 || c.Far <= c.Near {
		errs = append(errs, invalid("camera clip planes near=%v far=%v", c.Near, c.Far))
	}

	for name, parts := range m.Prefabs {
		for i, p := range parts {
			if p.Prefab != "" {
				errs = append(errs, invalid("prefab %s part %d: prefabs cannot nest", name, i))
			}
			if _, err := meshes.ParseKind(p.Mesh); err != nil {
				errs = append(errs, invalid("prefab %s part %d: %v", name, i, err))
			}
			if p.Color != nil && p.Texture != "" {
				errs = append(errs, invalid("prefab %s part %d: both color and texture set", name, i))
			}
			if !p.Inherit && p.Color == nil && p.Texture == "" {
				errs = append(errs, invalid("prefab %s part %d: color or texture required", name, i))
			}
		}
	}

	if _, err := m.Expand(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Expand flattens the object list into mesh draws in call order, replacing
// every prefab instance with its parts.
func (m *Manifest) Expand() ([]Draw, error) {
	var draws []Draw
	var errs []error

	for i, op := range m.Objects {
		if op.Prefab == "" {
			d, err := resolve(op)
			if err != nil {
				errs = append(errs, invalid("object %d (%s): %v", i, op.Name, err))
				continue
			}
			draws = append(draws, d)
			continue
		}

		if op.Mesh != "" {
			errs = append(errs, invalid("object %d (%s): mesh and prefab are exclusive", i, op.Name))
			continue
		}
		parts, ok := m.Prefabs[op.Prefab]
		if !ok {
			errs = append(errs, invalid("object %d (%s): unknown prefab %q", i, op.Name, op.Prefab))
			continue
		}
		for j, part := range parts {
			d, err := resolve(instantiate(op, part))
			if err != nil {
				errs = append(errs, invalid("object %d (%s) part %d: %v", i, op.Name, j, err))
				continue
			}
			draws = append(draws, d)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return draws, nil
}

func instantiate(instance, part DrawOp) DrawOp {
	op := part
	op.Position = instance.Position.Add(part.Position)
	if instance.Name != "" {
		op.Name = instance.Name + "/" + part.Name
	}
	if part.Inherit {
		op.Scale = instance.Scale
		op.Rotation = instance.Rotation
		if instance.Texture != "" {
			op.Texture, op.Color = instance.Texture, nil
		} else if instance.Color != nil {
			op.Texture, op.Color = "", instance.Color
		}
	}
	return op
}

func resolve(op DrawOp) (Draw, error) {
	kind, err := meshes.ParseKind(op.Mesh)
	if err != nil {
		return Draw{}, err
	}
	if (op.Color == nil) == (op.Texture == "") {
		return Draw{}, errors.New("exactly one of color and texture is required")
	}

	parts := meshes.AllParts
	if op.Parts != nil {
		parts = *op.Parts
	}
	scale := op.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}

	return Draw{
		Name:     op.Name,
		Kind:     kind,
		Parts:    parts,
		Scale:    scale,
		Rotation: op.Rotation,
		Position: op.Position,
		Color:    op.Color,
		Texture:  op.Texture,
		Material: op.Material,
		UVScale:  op.UVScale,
	}, nil
}

// Kinds returns the listed mesh kinds followed by any other kind the objects
// draw, without duplicates.
func (m *Manifest) Kinds() []meshes.Kind {
	seen := make(map[meshes.Kind]bool)
	var kinds []meshes.Kind
	add := func(k meshes.Kind) {
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	for _, k := range m.Meshes {
		add(k)
	}
	draws, _ := m.Expand()
	for _, d := range draws {
		add(d.Kind)
	}
	return kinds
}
