// Package shader holds the GLSL sources of the scene program.
package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexHeaderGL = `#version 410 core
`

const fragmentHeaderGL = `#version 410 core
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexHeaderGLES = `#version 300 es
precision highp float;
`

const fragmentHeaderGLES = `#version 300 es
precision highp float;
precision highp int;
`

// ─────────────────────────────────── Shared ─────────────────────────────────────

// Vertex layout matches meshes.Vertex: position, normal, uv.
const vertexBody = `
layout (location = 0) in vec3 inVertexPosition;
layout (location = 1) in vec3 inVertexNormal;
layout (location = 2) in vec2 inTextureCoordinate;

out vec3 fragmentPosition;
out vec3 fragmentVertexNormal;
out vec2 fragmentTextureCoordinate;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main()
{
    vec4 world = model * vec4(inVertexPosition, 1.0);
    fragmentPosition = world.xyz;
    fragmentVertexNormal = mat3(transpose(inverse(model))) * inVertexNormal;
    fragmentTextureCoordinate = inTextureCoordinate;
    gl_Position = projection * view * world;
}
`

// Phong lighting over up to four point lights. Unused lights keep their zero
// defaults and contribute nothing.
const fragmentBody = `
in vec3 fragmentPosition;
in vec3 fragmentVertexNormal;
in vec2 fragmentTextureCoordinate;

out vec4 outFragmentColor;

struct Material {
    vec3  ambientColor;
    float ambientStrength;
    vec3  diffuseColor;
    vec3  specularColor;
    float shininess;
};

struct LightSource {
    vec3  position;
    vec3  ambientColor;
    vec3  diffuseColor;
    vec3  specularColor;
    float focalStrength;
    float specularIntensity;
};

#define TOTAL_LIGHTS 4

uniform bool        bUseTexture;
uniform bool        bUseLighting;
uniform vec4        objectColor;
uniform sampler2D   objectTexture;
uniform vec2        UVscale;
uniform vec3        viewPosition;
uniform Material    material;
uniform LightSource lightSources[TOTAL_LIGHTS];

vec3 calculateLight(LightSource light, vec3 normal, vec3 viewDir)
{
    vec3 ambient = light.ambientColor * material.ambientColor * material.ambientStrength;

    vec3 lightDir = normalize(light.position - fragmentPosition);
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 diffuse = diff * light.diffuseColor * material.diffuseColor;

    vec3 reflectDir = reflect(-lightDir, normal);
    float exponent = max(light.focalStrength, 1.0);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), exponent);
    if (material.shininess <= 0.0) {
        spec = 0.0;
    }
    vec3 specular = light.specularIntensity * spec * light.specularColor * material.specularColor;

    return ambient + diffuse + specular;
}

void main()
{
    vec4 base = objectColor;
    if (bUseTexture) {
        base = texture(objectTexture, fragmentTextureCoordinate * UVscale);
    }

    if (!bUseLighting) {
        outFragmentColor = base;
        return;
    }

    vec3 normal = normalize(fragmentVertexNormal);
    vec3 viewDir = normalize(viewPosition - fragmentPosition);
    vec3 phong = vec3(0.0);
    for (int i = 0; i < TOTAL_LIGHTS; i++) {
        phong += calculateLight(lightSources[i], normal, viewDir);
    }
    outFragmentColor = vec4(phong * base.rgb, base.a);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// GenerateVertexShader returns the scene vertex shader for the context flavor.
func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexHeaderGLES + vertexBody
	}
	return vertexHeaderGL + vertexBody
}

// GetFragmentShader returns the scene fragment shader for the context flavor.
func GetFragmentShader(isGLES bool) string {
	if isGLES {
		return fragmentHeaderGLES + fragmentBody
	}
	return fragmentHeaderGL + fragmentBody
}
