package geometry

import (
	"github.com/akmonengine/scene3d/math3d"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// ComputeVertexNormals derives per-vertex normals from the positions. Indexed
// geometry gets smooth normals, the area-weighted sum of the normals of every
// face sharing the vertex; non-indexed geometry gets flat per-face normals.
// A trailing partial triangle is ignored. Without positions nothing happens.
// A normal attribute that does not match the positions is replaced.
func (g *Geometry) ComputeVertexNormals() {
	position := g.attributes[POSITION]
	if position == nil {
		g.log().Debug("Skipping vertex normals, no position attribute", zap.Uint64("geometry", g.ID))
		return
	}

	normal := g.attributes[NORMAL]
	if normal == nil || normal.ItemSize != 3 || normal.Count() != position.Count() {
		normal = &Attribute{Array: make(Float32Buffer, position.Count()*3), ItemSize: 3}
		g.attributes[NORMAL] = normal
	} else {
		for i := 0; i < normal.Count(); i++ {
			normal.SetVec3(i, mgl64.Vec3{})
		}
	}

	if g.index != nil {
		for i := 0; i+2 < g.index.Count(); i += 3 {
			a, b, c := g.indexAt(i), g.indexAt(i+1), g.indexAt(i+2)
			n := faceNormal(position.Vec3(a), position.Vec3(b), position.Vec3(c))

			normal.SetVec3(a, normal.Vec3(a).Add(n))
			normal.SetVec3(b, normal.Vec3(b).Add(n))
			normal.SetVec3(c, normal.Vec3(c).Add(n))
		}
	} else {
		for i := 0; i+2 < position.Count(); i += 3 {
			n := faceNormal(position.Vec3(i), position.Vec3(i+1), position.Vec3(i+2))

			normal.SetVec3(i, n)
			normal.SetVec3(i+1, n)
			normal.SetVec3(i+2, n)
		}
	}

	g.NormalizeNormals()
	normal.MarkNeedsUpdate()
}

// faceNormal returns (C-B) x (A-B), whose length is twice the triangle area.
func faceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return c.Sub(b).Cross(a.Sub(b))
}

// NormalizeNormals rescales every normal to unit length. Zero normals stay zero.
func (g *Geometry) NormalizeNormals() {
	normal := g.attributes[NORMAL]
	if normal == nil {
		return
	}
	for i := 0; i < normal.Count(); i++ {
		normal.SetVec3(i, math3d.Normalize(normal.Vec3(i)))
	}
}

func (g *Geometry) indexAt(i int) int {
	return int(g.index.Array.At(i))
}
