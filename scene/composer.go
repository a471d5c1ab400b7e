package scene

import (
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"

	"github.com/richinsley/deskscene/binder"
	"github.com/richinsley/deskscene/materials"
	"github.com/richinsley/deskscene/meshes"
	"github.com/richinsley/deskscene/textures"
)

// Composer owns the per-scene registries and replays the manifest's draw list
// through the binder.
type Composer struct {
	manifest  *Manifest
	textures  *textures.Registry
	materials *materials.Registry
	binder    *binder.Binder
	meshes    meshes.Library

	draws  []Draw
	aspect float32
}

// NewComposer wires a composer. The binder must resolve tags against the
// same texture and material registries.
func NewComposer(
	m *Manifest,
	tex *textures.Registry,
	mats *materials.Registry,
	b *binder.Binder,
	lib meshes.Library,
) *Composer {
	return &Composer{
		manifest:  m,
		textures:  tex,
		materials: mats,
		binder:    b,
		meshes:    lib,
		aspect:    1,
	}
}

// Prepare loads everything the scene needs. Relative texture paths are
// resolved against baseDir. A texture, material, light or mesh that fails is
// logged and skipped; only an invalid manifest is an error.
func (c *Composer) Prepare(baseDir string) error {
	if err := c.manifest.Validate(); err != nil {
		return err
	}
	draws, err := c.manifest.Expand()
	if err != nil {
		return err
	}
	c.draws = draws

	for _, t := range c.manifest.Textures {
		path := t.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		// Registry.Load logs its own failures.
		_ = c.textures.Load(path, t.Tag)
	}
	c.textures.BindAll()

	for _, m := range c.manifest.Materials {
		if err := c.materials.Define(m); err != nil {
			log.Warn().Err(err).Str("material", m.Tag).Msg("material skipped")
		}
	}

	c.binder.SetLighting(len(c.manifest.Lights) > 0)
	for i, l := range c.manifest.Lights {
		if err := c.binder.SetLight(i, l); err != nil {
			log.Warn().Err(err).Int("light", i).Msg("light skipped")
		}
	}

	for _, k := range c.manifest.Kinds() {
		if err := c.meshes.Load(k); err != nil {
			log.Warn().Err(err).Str("mesh", k.String()).Msg("mesh skipped")
		}
	}

	log.Info().
		Int("textures", c.textures.Len()).
		Int("materials", c.materials.Len()).
		Int("lights", len(c.manifest.Lights)).
		Int("draws", len(c.draws)).
		Msg("scene prepared")
	return nil
}

// Resize sets the viewport aspect ratio used for the projection.
func (c *Composer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

// Render pushes the camera and then, for every draw in order, its transform,
// surface, material and UV scale before drawing the mesh.
func (c *Composer) Render() {
	cam := c.manifest.Camera
	c.binder.SetCamera(cam.View(), cam.Projection(c.aspect), cam.Eye)

	for _, d := range c.draws {
		c.binder.SetTransform(d.Scale, d.Rotation.X(), d.Rotation.Y(), d.Rotation.Z(), d.Position)
		if d.Color != nil {
			col := *d.Color
			c.binder.SetFlatColor(col.X(), col.Y(), col.Z(), col.W())
		} else {
			c.binder.SetTexture(d.Texture)
		}
		if d.Material != "" {
			c.binder.SetMaterial(d.Material)
		}
		if d.UVScale != nil {
			c.binder.SetUVScale(d.UVScale.X(), d.UVScale.Y())
		}
		c.meshes.Draw(d.Kind, d.Parts)
	}
}

// Draws returns the resolved draw list. It is empty before Prepare.
func (c *Composer) Draws() []Draw {
	return c.draws
}

func (c *Composer) Background() mgl32.Vec4 {
	return c.manifest.Background
}

// Destroy releases GPU textures and meshes.
func (c *Composer) Destroy() {
	c.textures.ReleaseAll()
	c.meshes.Release()
	log.Debug().Msg("scene destroyed")
}
