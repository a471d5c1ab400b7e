package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/deskscene/meshes"
	"github.com/richinsley/deskscene/textures"
)

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()
	require.NoError(t, m.Validate())

	assert.Len(t, m.Textures, textures.MaxSlots)
	assert.Len(t, m.Materials, 4)
	assert.Len(t, m.Lights, 2)

	draws, err := m.Expand()
	require.NoError(t, err)
	assert.Len(t, draws, 54)

	texTags := make(map[string]bool)
	for _, tex := range m.Textures {
		assert.False(t, texTags[tex.Tag], "duplicate texture tag %s", tex.Tag)
		texTags[tex.Tag] = true
	}
	matTags := make(map[string]bool)
	for _, mat := range m.Materials {
		matTags[mat.Tag] = true
	}
	for _, d := range draws {
		if d.Texture != "" {
			assert.True(t, texTags[d.Texture], "%s uses unknown texture %s", d.Name, d.Texture)
		}
		if d.Material != "" {
			assert.True(t, matTags[d.Material], "%s uses unknown material %s", d.Name, d.Material)
		}
	}
}

func TestParseManifestKeepsCameraDefaults(t *testing.T) {
	m, err := ParseManifest([]byte(`
camera:
  fov: 60
objects:
  - {mesh: box, color: [1, 0, 0, 1]}
`))
	require.NoError(t, err)

	assert.Equal(t, float32(60), m.Camera.FOV)
	assert.Equal(t, defaults().Camera.Eye, m.Camera.Eye)
	assert.Equal(t, float32(0.1), m.Camera.Near)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, m.Background)
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"syntax", "objects: [", ""},
		{"unknown mesh kind list", "meshes: [teapot]", ""},
		{"unknown object mesh", "objects: [{mesh: teapot, color: [1, 1, 1, 1]}]", "teapot"},
		{"no surface", "objects: [{mesh: box}]", "exactly one of color and texture"},
		{"two surfaces", "objects: [{mesh: box, texture: wood, color: [1, 1, 1, 1]}]", "exactly one of color and texture"},
		{"unknown prefab", "objects: [{prefab: lamp}]", `unknown prefab "lamp"`},
		{"mesh and prefab", "prefabs: {p: [{mesh: box, texture: t}]}\nobjects: [{prefab: p, mesh: box}]", "exclusive"},
		{"nested prefab", "prefabs: {p: [{prefab: q, mesh: box, texture: t}]}", "cannot nest"},
		{"texture without tag", "textures: [{path: a.png}]", "path and tag are required"},
		{"material without tag", "materials: [{shininess: 3}]", "tag is required"},
		{"too many lights", "lights: [{}, {}, {}, {}, {}]", "5 lights"},
		{"bad fov", "camera: {fov: 180}", "fov"},
		{"bad clip planes", "camera: {near: 10, far: 1}", "clip planes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidManifest)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestExpandPrefab(t *testing.T) {
	m, err := ParseManifest([]byte(`
prefabs:
  tube:
    - {name: body, mesh: cylinder, inherit: true, material: metal}
    - {name: cap, mesh: cylinder, scale: [0.5, 0.25, 0.5], position: [0, -5, 0], texture: pages}
objects:
  - {name: red, prefab: tube, scale: [0.5, 5, 0.5], rotation: [180, 200, 0], position: [7, 5, 3], texture: r_paint}
  - {name: desk, mesh: plane, texture: wood}
`))
	require.NoError(t, err)

	draws, err := m.Expand()
	require.NoError(t, err)
	require.Len(t, draws, 3)

	body := draws[0]
	assert.Equal(t, "red/body", body.Name)
	assert.Equal(t, meshes.Cylinder, body.Kind)
	assert.Equal(t, mgl32.Vec3{0.5, 5, 0.5}, body.Scale)
	assert.Equal(t, mgl32.Vec3{180, 200, 0}, body.Rotation)
	assert.Equal(t, mgl32.Vec3{7, 5, 3}, body.Position)
	assert.Equal(t, "r_paint", body.Texture)
	assert.Equal(t, "metal", body.Material)

	lid := draws[1]
	assert.Equal(t, "red/cap", lid.Name)
	assert.Equal(t, mgl32.Vec3{0.5, 0.25, 0.5}, lid.Scale)
	assert.Equal(t, mgl32.Vec3{}, lid.Rotation)
	assert.Equal(t, mgl32.Vec3{7, 0, 3}, lid.Position)
	assert.Equal(t, "pages", lid.Texture)

	desk := draws[2]
	assert.Equal(t, meshes.Plane, desk.Kind)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, desk.Scale, "omitted scale is unit scale")
	assert.Equal(t, meshes.AllParts, desk.Parts)
	assert.Nil(t, desk.UVScale)
}

func TestExpandInheritKeepsOwnSurfaceWithoutOverride(t *testing.T) {
	m, err := ParseManifest([]byte(`
prefabs:
  jar:
    - {name: glass, mesh: torus, inherit: true, color: [1, 0.8, 0.5, 0.9]}
objects:
  - {prefab: jar, scale: [1.5, 1.5, 5]}
`))
	require.NoError(t, err)

	draws, err := m.Expand()
	require.NoError(t, err)
	require.Len(t, draws, 1)
	require.NotNil(t, draws[0].Color)
	assert.Equal(t, mgl32.Vec4{1, 0.8, 0.5, 0.9}, *draws[0].Color)
	assert.Equal(t, "glass", draws[0].Name)
}

func TestExpandInheritNeedsSurface(t *testing.T) {
	_, err := ParseManifest([]byte(`
prefabs:
  tube:
    - {mesh: cylinder, inherit: true}
objects:
  - {prefab: tube}
`))
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestExpandParts(t *testing.T) {
	m, err := ParseManifest([]byte(`
objects:
  - {mesh: cylinder, parts: {bottom: true, sides: true}, color: [1, 1, 1, 1]}
`))
	require.NoError(t, err)
	draws, err := m.Expand()
	require.NoError(t, err)
	assert.Equal(t, meshes.Parts{Bottom: true, Sides: true}, draws[0].Parts)
}

func TestKinds(t *testing.T) {
	m, err := ParseManifest([]byte(`
meshes: [box, plane]
objects:
  - {mesh: cone, color: [1, 1, 1, 1]}
  - {mesh: box, color: [1, 1, 1, 1]}
  - {mesh: cone, color: [1, 1, 1, 1]}
`))
	require.NoError(t, err)
	assert.Equal(t, []meshes.Kind{meshes.Box, meshes.Plane, meshes.Cone}, m.Kinds())
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("objects: [{mesh: box, texture: wood}]\n"), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Len(t, m.Objects, 1)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCameraView(t *testing.T) {
	cam := defaults().Camera
	eye := cam.View().Mul4x1(cam.Eye.Vec4(1))
	assert.InDelta(t, 0, eye.X(), 1e-4)
	assert.InDelta(t, 0, eye.Y(), 1e-4)
	assert.InDelta(t, 0, eye.Z(), 1e-4)

	target := cam.View().Mul4x1(cam.Target.Vec4(1))
	assert.Less(t, target.Z(), float32(0), "target is in front of the camera")
}
