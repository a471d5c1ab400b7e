// Package meshes generates the primitive shapes the scene is built from and
// defines the library interface used to draw them.
package meshes

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// radial segments for round shapes
	segments = 36

	torusMainRadius = 1.0
	torusTubeRadius = 0.2
	torusSegments   = 48
	torusTubeSides  = 16

	taperedTopRadius = 0.5
)

// Vertex is the interleaved layout uploaded to the GPU: attribute 0 is the
// position, 1 the normal, 2 the texture coordinate.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = 8 * 4

// Group is a contiguous range of Indices belonging to one part.
type Group struct {
	Part   Part
	Offset int
	Count  int
}

// Geometry is an indexed triangle list.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []Group
}

// Generate builds the unit-sized geometry for kind.
//
// Plane spans -1..1 in X and Z at y=0. Box, prism and pyramids fit in the
// -0.5..0.5 cube. Cylinder, cone and tapered cylinder have radius 1 and run
// from y=0 to y=1. The torus rings the Z axis in the XY plane.
func Generate(kind Kind) (*Geometry, error) {
	b := &builder{}
	switch kind {
	case Plane:
		b.plane()
	case Box:
		b.box()
	case Cylinder:
		b.frustum(1, 1, true)
	case Cone:
		b.frustum(1, 0, false)
	case TaperedCylinder:
		b.frustum(1, taperedTopRadius, true)
	case Torus:
		b.torus(2 * math.Pi)
	case HalfTorus:
		b.torus(math.Pi)
	case Prism:
		b.prism()
	case Pyramid3:
		b.pyramid(3)
	case Pyramid4:
		b.pyramid(4)
	default:
		return nil, ErrUnknownKind
	}
	return &b.g, nil
}

type builder struct {
	g     Geometry
	start int
	part  Part
}

func (b *builder) begin(part Part) {
	b.part = part
	b.start = len(b.g.Indices)
}

func (b *builder) end() {
	if n := len(b.g.Indices) - b.start; n > 0 {
		b.g.Groups = append(b.g.Groups, Group{Part: b.part, Offset: b.start, Count: n})
	}
}

func (b *builder) vertex(p, n mgl32.Vec3, uv mgl32.Vec2) uint32 {
	b.g.Vertices = append(b.g.Vertices, Vertex{Position: p, Normal: n, UV: uv})
	return uint32(len(b.g.Vertices) - 1)
}

// tri emits a triangle wound counter-clockwise as seen from the side its
// vertex normals point to. Degenerate triangles are dropped.
func (b *builder) tri(i0, i1, i2 uint32) {
	v := b.g.Vertices
	face := v[i1].Position.Sub(v[i0].Position).Cross(v[i2].Position.Sub(v[i0].Position))
	if face.Len() < 1e-7 {
		return
	}
	normal := v[i0].Normal.Add(v[i1].Normal).Add(v[i2].Normal)
	if face.Dot(normal) < 0 {
		i1, i2 = i2, i1
	}
	b.g.Indices = append(b.g.Indices, i0, i1, i2)
}

func (b *builder) quad(i0, i1, i2, i3 uint32) {
	b.tri(i0, i1, i2)
	b.tri(i0, i2, i3)
}

// flatFace emits a convex polygon with one normal facing away from center.
func (b *builder) flatFace(center mgl32.Vec3, pts []mgl32.Vec3, uvs []mgl32.Vec2) {
	n := pts[1].Sub(pts[0]).Cross(pts[2].Sub(pts[0])).Normalize()
	var centroid mgl32.Vec3
	for _, p := range pts {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float32(len(pts)))
	if n.Dot(centroid.Sub(center)) < 0 {
		n = n.Mul(-1)
	}

	idx := make([]uint32, len(pts))
	for i, p := range pts {
		idx[i] = b.vertex(p, n, uvs[i])
	}
	for i := 1; i+1 < len(idx); i++ {
		b.tri(idx[0], idx[i], idx[i+1])
	}
}

func (b *builder) plane() {
	b.begin(PartSides)
	up := mgl32.Vec3{0, 1, 0}
	i0 := b.vertex(mgl32.Vec3{-1, 0, 1}, up, mgl32.Vec2{0, 0})
	i1 := b.vertex(mgl32.Vec3{1, 0, 1}, up, mgl32.Vec2{1, 0})
	i2 := b.vertex(mgl32.Vec3{1, 0, -1}, up, mgl32.Vec2{1, 1})
	i3 := b.vertex(mgl32.Vec3{-1, 0, -1}, up, mgl32.Vec2{0, 1})
	b.quad(i0, i1, i2, i3)
	b.end()
}

var squareUV = []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func (b *builder) box() {
	const h = 0.5
	c := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x * h, y * h, z * h} }

	b.begin(PartSides)
	b.flatFace(mgl32.Vec3{}, []mgl32.Vec3{c(-1, -1, 1), c(1, -1, 1), c(1, 1, 1), c(-1, 1, 1)}, squareUV)     // front
	b.flatFace(mgl32.Vec3{}, []mgl32.Vec3{c(1, -1, -1), c(-1, -1, -1), c(-1, 1, -1), c(1, 1, -1)}, squareUV) // back
	b.flatFace(mgl32.Vec3{}, []mgl32.Vec3{c(-1, -1, -1), c(-1, -1, 1), c(-1, 1, 1), c(-1, 1, -1)}, squareUV) // left
	b.flatFace(mgl32.Vec3{}, []mgl32.Vec3{c(1, -1, 1), c(1, -1, -1), c(1, 1, -1), c(1, 1, 1)}, squareUV)     // right
	b.end()

	b.begin(PartTop)
	b.flatFace(mgl32.Vec3{}, []mgl32.Vec3{c(-1, 1, 1), c(1, 1, 1), c(1, 1, -1), c(-1, 1, -1)}, squareUV)
	b.end()

	b.begin(PartBottom)
	b.flatFace(mgl32.Vec3{}, []mgl32.Vec3{c(-1, -1, -1), c(1, -1, -1), c(1, -1, 1), c(-1, -1, 1)}, squareUV)
	b.end()
}

// frustum covers cylinder (equal radii), tapered cylinder and cone (top 0).
func (b *builder) frustum(bottomRadius, topRadius float32, topCap bool) {
	slope := bottomRadius - topRadius

	b.begin(PartSides)
	ring := make([][2]uint32, segments+1)
	for i := 0; i <= segments; i++ {
		u := float32(i) / segments
		theta := float64(u) * 2 * math.Pi
		cos, sin := float32(math.Cos(theta)), float32(math.Sin(theta))
		n := mgl32.Vec3{cos, slope, sin}.Normalize()
		bottom := b.vertex(mgl32.Vec3{bottomRadius * cos, 0, bottomRadius * sin}, n, mgl32.Vec2{u, 0})
		top := b.vertex(mgl32.Vec3{topRadius * cos, 1, topRadius * sin}, n, mgl32.Vec2{u, 1})
		ring[i] = [2]uint32{bottom, top}
	}
	for i := 0; i < segments; i++ {
		b.quad(ring[i][0], ring[i+1][0], ring[i+1][1], ring[i][1])
	}
	b.end()

	if topCap && topRadius > 0 {
		b.begin(PartTop)
		b.disc(1, topRadius, mgl32.Vec3{0, 1, 0})
		b.end()
	}

	b.begin(PartBottom)
	b.disc(0, bottomRadius, mgl32.Vec3{0, -1, 0})
	b.end()
}

func (b *builder) disc(y, radius float32, n mgl32.Vec3) {
	center := b.vertex(mgl32.Vec3{0, y, 0}, n, mgl32.Vec2{0.5, 0.5})
	rim := make([]uint32, segments+1)
	for i := 0; i <= segments; i++ {
		theta := float64(i) / segments * 2 * math.Pi
		cos, sin := float32(math.Cos(theta)), float32(math.Sin(theta))
		rim[i] = b.vertex(
			mgl32.Vec3{radius * cos, y, radius * sin},
			n,
			mgl32.Vec2{0.5 + 0.5*cos, 0.5 + 0.5*sin},
		)
	}
	for i := 0; i < segments; i++ {
		b.tri(center, rim[i], rim[i+1])
	}
}

// torus sweeps the tube through sweep radians around the Z axis.
func (b *builder) torus(sweep float64) {
	b.begin(PartSides)
	idx := make([][]uint32, torusSegments+1)
	for i := 0; i <= torusSegments; i++ {
		u := float32(i) / torusSegments
		theta := float64(u) * sweep
		ct, st := float32(math.Cos(theta)), float32(math.Sin(theta))
		idx[i] = make([]uint32, torusTubeSides+1)
		for j := 0; j <= torusTubeSides; j++ {
			v := float32(j) / torusTubeSides
			phi := float64(v) * 2 * math.Pi
			cp, sp := float32(math.Cos(phi)), float32(math.Sin(phi))
			r := torusMainRadius + torusTubeRadius*cp
			p := mgl32.Vec3{r * ct, r * st, torusTubeRadius * sp}
			n := mgl32.Vec3{cp * ct, cp * st, sp}
			idx[i][j] = b.vertex(p, n, mgl32.Vec2{u, v})
		}
	}
	for i := 0; i < torusSegments; i++ {
		for j := 0; j < torusTubeSides; j++ {
			b.quad(idx[i][j], idx[i+1][j], idx[i+1][j+1], idx[i][j+1])
		}
	}
	b.end()
}

// prism is a triangle in XY extruded along Z; the +Z face is its top.
func (b *builder) prism() {
	tri := []mgl32.Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0, 0.5}}
	front := make([]mgl32.Vec3, 3)
	back := make([]mgl32.Vec3, 3)
	for i, p := range tri {
		front[i] = mgl32.Vec3{p.X(), p.Y(), 0.5}
		back[i] = mgl32.Vec3{p.X(), p.Y(), -0.5}
	}
	// centroid of the cross-section, so side normals point outward
	center := mgl32.Vec3{0, -1.0 / 6.0, 0}
	triUV := []mgl32.Vec2{{0, 0}, {1, 0}, {0.5, 1}}

	b.begin(PartSides)
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		b.flatFace(center, []mgl32.Vec3{back[i], back[j], front[j], front[i]}, squareUV)
	}
	b.end()

	b.begin(PartTop)
	b.flatFace(center, front, triUV)
	b.end()

	b.begin(PartBottom)
	b.flatFace(center, back, triUV)
	b.end()
}

// pyramid has a regular base of n corners at y=-0.5 and its apex at y=0.5.
func (b *builder) pyramid(n int) {
	apex := mgl32.Vec3{0, 0.5, 0}
	base := make([]mgl32.Vec3, n)
	baseUV := make([]mgl32.Vec2, n)
	for i := 0; i < n; i++ {
		theta := float64(i)/float64(n)*2*math.Pi + math.Pi/float64(n)
		if n == 3 {
			theta = float64(i)/3*2*math.Pi + math.Pi/2
		}
		cos, sin := float32(math.Cos(theta)), float32(math.Sin(theta))
		r := float32(0.5)
		if n == 4 {
			r = float32(math.Sqrt2) / 2
		}
		base[i] = mgl32.Vec3{r * cos, -0.5, r * sin}
		baseUV[i] = mgl32.Vec2{0.5 + 0.5*cos, 0.5 + 0.5*sin}
	}
	center := mgl32.Vec3{0, -0.25, 0}

	b.begin(PartSides)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		b.flatFace(center, []mgl32.Vec3{base[i], base[j], apex}, []mgl32.Vec2{{0, 0}, {1, 0}, {0.5, 1}})
	}
	b.end()

	b.begin(PartBottom)
	b.flatFace(center, base, baseUV)
	b.end()
}
