// Package binder is the single path from scene code to shader uniforms. Every
// draw call is preceded by pushes through a Binder; nothing else writes the
// program's per-draw state.
package binder

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/deskscene/materials"
)

// TextureSlots resolves a texture tag to the texture unit it is bound to, or
// -1 when the tag is unknown.
type TextureSlots interface {
	FindSlot(tag string) int
}

// MaterialSource resolves a material tag.
type MaterialSource interface {
	Find(tag string) (materials.Material, bool)
}

// Binder holds no state of its own beyond its collaborators: every method
// computes a value and pushes it by name. The program keeps the last value
// written until it is overwritten.
type Binder struct {
	uniforms  Uniforms
	textures  TextureSlots
	materials MaterialSource
}

func New(u Uniforms, textures TextureSlots, mats MaterialSource) *Binder {
	return &Binder{
		uniforms:  u,
		textures:  textures,
		materials: mats,
	}
}

// SetTransform pushes the model matrix for the next draw.
func (b *Binder) SetTransform(scale mgl32.Vec3, rxDeg, ryDeg, rzDeg float32, position mgl32.Vec3) {
	b.uniforms.SetMat4(ModelName, ModelMatrix(scale, rxDeg, ryDeg, rzDeg, position))
}

// SetFlatColor switches the next draw to a flat color. It clears the texture
// flag, so whichever of SetFlatColor and SetTexture ran last wins.
func (b *Binder) SetFlatColor(r, g, bl, a float32) {
	b.uniforms.SetBool(UseTextureName, false)
	b.uniforms.SetVec4(ColorName, mgl32.Vec4{r, g, bl, a})
}

// SetTexture samples the texture tagged tag on the next draw. An unknown tag
// pushes sampler index -1.
func (b *Binder) SetTexture(tag string) {
	b.uniforms.SetBool(UseTextureName, true)
	b.uniforms.SetSampler2D(TextureName, int32(b.textures.FindSlot(tag)))
}

// SetMaterial pushes the material tagged tag. An unknown tag is a no-op and
// the previous material stays in effect.
func (b *Binder) SetMaterial(tag string) {
	m, ok := b.materials.Find(tag)
	if !ok {
		return
	}
	b.uniforms.SetVec3(MaterialAmbientColor, m.AmbientColor)
	b.uniforms.SetFloat(MaterialAmbientStrength, m.AmbientStrength)
	b.uniforms.SetVec3(MaterialDiffuseColor, m.DiffuseColor)
	b.uniforms.SetVec3(MaterialSpecularColor, m.SpecularColor)
	b.uniforms.SetFloat(MaterialShininess, m.Shininess)
}

// SetUVScale scales texture coordinates so one image can tile differently
// per object.
func (b *Binder) SetUVScale(u, v float32) {
	b.uniforms.SetVec2(UVScaleName, mgl32.Vec2{u, v})
}

// SetCamera pushes the view and projection matrices and the eye position used
// for specular highlights.
func (b *Binder) SetCamera(view, projection mgl32.Mat4, eye mgl32.Vec3) {
	b.uniforms.SetMat4(ViewName, view)
	b.uniforms.SetMat4(ProjectionName, projection)
	b.uniforms.SetVec3(ViewPositionName, eye)
}
