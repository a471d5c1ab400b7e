package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richinsley/deskscene/binder"
)

func TestShaderVersions(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateVertexShader(false), "#version 410 core"))
	assert.True(t, strings.HasPrefix(GetFragmentShader(false), "#version 410 core"))
	assert.True(t, strings.HasPrefix(GenerateVertexShader(true), "#version 300 es"))
	assert.True(t, strings.HasPrefix(GetFragmentShader(true), "#version 300 es"))
}

func TestShadersDeclareBinderUniforms(t *testing.T) {
	vs := GenerateVertexShader(false)
	for _, name := range []string{binder.ModelName, binder.ViewName, binder.ProjectionName} {
		assert.Contains(t, vs, "uniform mat4 "+name+";")
	}

	fs := GetFragmentShader(false)
	for _, name := range []string{
		binder.ColorName,
		binder.TextureName,
		binder.UseTextureName,
		binder.UseLightingName,
		binder.UVScaleName,
		binder.ViewPositionName,
	} {
		assert.Contains(t, fs, " "+name+";", "fragment shader is missing %s", name)
	}

	// material.* and lightSources[i].* resolve through these declarations
	assert.Contains(t, fs, "uniform Material    material;")
	assert.Contains(t, fs, "uniform LightSource lightSources[TOTAL_LIGHTS];")
	assert.Contains(t, fs, "#define TOTAL_LIGHTS 4")
	for _, field := range []string{"ambientColor", "ambientStrength", "diffuseColor", "specularColor", "shininess", "focalStrength", "specularIntensity"} {
		assert.Contains(t, fs, " "+field+";")
	}
}
