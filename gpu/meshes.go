package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog/log"

	"github.com/richinsley/deskscene/meshes"
)

type mesh struct {
	vao, vbo, ebo uint32
	groups        []meshes.Group
}

// MeshLibrary keeps one vertex array per loaded mesh kind.
type MeshLibrary struct {
	meshes map[meshes.Kind]*mesh
	warned map[meshes.Kind]bool
}

var _ meshes.Library = (*MeshLibrary)(nil)

func NewMeshLibrary() *MeshLibrary {
	return &MeshLibrary{
		meshes: make(map[meshes.Kind]*mesh),
		warned: make(map[meshes.Kind]bool),
	}
}

func (l *MeshLibrary) Load(kind meshes.Kind) error {
	if _, ok := l.meshes[kind]; ok {
		return nil
	}
	g, err := meshes.Generate(kind)
	if err != nil {
		return fmt.Errorf("load mesh %s: %w", kind, err)
	}

	m := &mesh{groups: g.Groups}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*meshes.VertexStride, gl.Ptr(g.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, meshes.VertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, meshes.VertexStride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, meshes.VertexStride, gl.PtrOffset(6*4))

	gl.BindVertexArray(0)

	l.meshes[kind] = m
	log.Debug().
		Str("mesh", kind.String()).
		Int("vertices", len(g.Vertices)).
		Int("indices", len(g.Indices)).
		Msg("loaded mesh")
	return nil
}

func (l *MeshLibrary) Draw(kind meshes.Kind, parts meshes.Parts) {
	m, ok := l.meshes[kind]
	if !ok {
		if !l.warned[kind] {
			log.Warn().Str("mesh", kind.String()).Msg("draw of unloaded mesh skipped")
			l.warned[kind] = true
		}
		return
	}

	gl.BindVertexArray(m.vao)
	for _, grp := range m.groups {
		if !parts.Includes(grp.Part) {
			continue
		}
		gl.DrawElements(gl.TRIANGLES, int32(grp.Count), gl.UNSIGNED_INT, gl.PtrOffset(grp.Offset*4))
	}
	gl.BindVertexArray(0)
}

func (l *MeshLibrary) Release() {
	for kind, m := range l.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		delete(l.meshes, kind)
	}
}
