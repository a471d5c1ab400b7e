package meshes

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("teapot")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindText(t *testing.T) {
	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("half_torus")))
	assert.Equal(t, HalfTorus, k)

	text, err := TaperedCylinder.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "tapered_cylinder", string(text))

	assert.Equal(t, "Kind(42)", Kind(42).String())
	_, err = Kind(42).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPartsIncludes(t *testing.T) {
	p := Parts{Top: true}
	assert.True(t, p.Includes(PartTop))
	assert.False(t, p.Includes(PartBottom))
	assert.False(t, p.Includes(PartSides))

	for _, part := range []Part{PartTop, PartBottom, PartSides} {
		assert.True(t, AllParts.Includes(part))
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	_, err := Generate(Kind(99))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestGenerateWellFormed(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			g, err := Generate(k)
			require.NoError(t, err)
			require.NotEmpty(t, g.Vertices)
			require.NotEmpty(t, g.Indices)
			assert.Zero(t, len(g.Indices)%3)

			covered := 0
			for _, grp := range g.Groups {
				assert.Equal(t, covered, grp.Offset, "groups must be contiguous")
				assert.Zero(t, grp.Count%3)
				covered += grp.Count
			}
			assert.Equal(t, len(g.Indices), covered)

			for _, i := range g.Indices {
				require.Less(t, int(i), len(g.Vertices))
			}
			for _, v := range g.Vertices {
				assert.InDelta(t, 1, v.Normal.Len(), 1e-4)
			}
		})
	}
}

// Every triangle must face the same way as its vertex normals so back-face
// culling keeps the outside of each shape.
func TestGenerateWinding(t *testing.T) {
	for _, k := range Kinds() {
		g, err := Generate(k)
		require.NoError(t, err)
		for i := 0; i < len(g.Indices); i += 3 {
			a, b, c := g.Vertices[g.Indices[i]], g.Vertices[g.Indices[i+1]], g.Vertices[g.Indices[i+2]]
			face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
			n := a.Normal.Add(b.Normal).Add(c.Normal)
			assert.Greater(t, face.Dot(n), float32(0), "%s triangle %d", k, i/3)
		}
	}
}

func TestGenerateBounds(t *testing.T) {
	tests := []struct {
		kind     Kind
		min, max mgl32.Vec3
	}{
		{Plane, mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 0, 1}},
		{Box, mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}},
		{Cylinder, mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 1, 1}},
		{Cone, mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 1, 1}},
		{Pyramid4, mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}},
		{Torus, mgl32.Vec3{-1.2, -1.2, -0.2}, mgl32.Vec3{1.2, 1.2, 0.2}},
	}
	for _, tt := range tests {
		g, err := Generate(tt.kind)
		require.NoError(t, err)
		lo, hi := bounds(g)
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, tt.min[axis], lo[axis], 1e-4, "%s min axis %d", tt.kind, axis)
			assert.InDelta(t, tt.max[axis], hi[axis], 1e-4, "%s max axis %d", tt.kind, axis)
		}
	}
}

func TestHalfTorusStaysAboveAxis(t *testing.T) {
	g, err := Generate(HalfTorus)
	require.NoError(t, err)
	lo, hi := bounds(g)
	assert.InDelta(t, 0, lo.Y(), 1e-4)
	assert.InDelta(t, 1.2, hi.Y(), 1e-4)
}

func TestGroupsByKind(t *testing.T) {
	parts := func(k Kind) []Part {
		g, err := Generate(k)
		require.NoError(t, err)
		var out []Part
		for _, grp := range g.Groups {
			out = append(out, grp.Part)
		}
		return out
	}

	assert.Equal(t, []Part{PartSides, PartTop, PartBottom}, parts(Cylinder))
	assert.Equal(t, []Part{PartSides, PartTop, PartBottom}, parts(TaperedCylinder))
	assert.Equal(t, []Part{PartSides, PartBottom}, parts(Cone))
	assert.Equal(t, []Part{PartSides, PartBottom}, parts(Pyramid3))
	assert.Equal(t, []Part{PartSides}, parts(Torus))
	assert.Equal(t, []Part{PartSides}, parts(Plane))
}

func bounds(g *Geometry) (lo, hi mgl32.Vec3) {
	lo, hi = g.Vertices[0].Position, g.Vertices[0].Position
	for _, v := range g.Vertices {
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], v.Position[axis])
			hi[axis] = max(hi[axis], v.Position[axis])
		}
	}
	return lo, hi
}
