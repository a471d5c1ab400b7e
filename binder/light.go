package binder

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights matches the lightSources array size in the scene shader.
const MaxLights = 4

var ErrLightIndex = errors.New("light index out of range")

// Light is one point light source of the Phong shader.
type Light struct {
	Position          mgl32.Vec3 `yaml:"position"`
	AmbientColor      mgl32.Vec3 `yaml:"ambient_color"`
	DiffuseColor      mgl32.Vec3 `yaml:"diffuse_color"`
	SpecularColor     mgl32.Vec3 `yaml:"specular_color"`
	FocalStrength     float32    `yaml:"focal_strength"`
	SpecularIntensity float32    `yaml:"specular_intensity"`
}

func lightField(i int, field string) string {
	return fmt.Sprintf("lightSources[%d].%s", i, field)
}

// SetLighting toggles the custom lighting path of the shader.
func (b *Binder) SetLighting(on bool) {
	b.uniforms.SetBool(UseLightingName, on)
}

// SetLight pushes every field of l into lightSources[i].
func (b *Binder) SetLight(i int, l Light) error {
	if i < 0 || i >= MaxLights {
		return fmt.Errorf("light %d: %w", i, ErrLightIndex)
	}
	b.uniforms.SetVec3(lightField(i, "position"), l.Position)
	b.uniforms.SetVec3(lightField(i, "ambientColor"), l.AmbientColor)
	b.uniforms.SetVec3(lightField(i, "diffuseColor"), l.DiffuseColor)
	b.uniforms.SetVec3(lightField(i, "specularColor"), l.SpecularColor)
	b.uniforms.SetFloat(lightField(i, "focalStrength"), l.FocalStrength)
	b.uniforms.SetFloat(lightField(i, "specularIntensity"), l.SpecularIntensity)
	return nil
}
