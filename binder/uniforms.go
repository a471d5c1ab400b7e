package binder

import "github.com/go-gl/mathgl/mgl32"

// Uniforms sets values on a shader program by uniform name.
type Uniforms interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetBool(name string, v bool)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetMat4(name string, v mgl32.Mat4)
	SetSampler2D(name string, slot int32)
}

// Uniform names shared with the scene shaders.
const (
	ModelName        = "model"
	ViewName         = "view"
	ProjectionName   = "projection"
	ViewPositionName = "viewPosition"
	ColorName        = "objectColor"
	TextureName      = "objectTexture"
	UseTextureName   = "bUseTexture"
	UseLightingName  = "bUseLighting"
	UVScaleName      = "UVscale"

	MaterialAmbientColor    = "material.ambientColor"
	MaterialAmbientStrength = "material.ambientStrength"
	MaterialDiffuseColor    = "material.diffuseColor"
	MaterialSpecularColor   = "material.specularColor"
	MaterialShininess       = "material.shininess"
)
