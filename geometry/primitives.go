package geometry

import (
	"github.com/akmonengine/scene3d/ident"
	"github.com/go-gl/mathgl/mgl64"
)

type boxFace struct {
	normal, u, v mgl64.Vec3
}

// u x v == normal, so the corners below wind counter-clockwise seen from outside
var boxFaces = [6]boxFace{
	{normal: mgl64.Vec3{1, 0, 0}, u: mgl64.Vec3{0, 1, 0}, v: mgl64.Vec3{0, 0, 1}},
	{normal: mgl64.Vec3{-1, 0, 0}, u: mgl64.Vec3{0, 0, 1}, v: mgl64.Vec3{0, 1, 0}},
	{normal: mgl64.Vec3{0, 1, 0}, u: mgl64.Vec3{0, 0, 1}, v: mgl64.Vec3{1, 0, 0}},
	{normal: mgl64.Vec3{0, -1, 0}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 0, 1}},
	{normal: mgl64.Vec3{0, 0, 1}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 1, 0}},
	{normal: mgl64.Vec3{0, 0, -1}, u: mgl64.Vec3{0, 1, 0}, v: mgl64.Vec3{1, 0, 0}},
}

// NewBox builds an indexed box centered on the origin: 24 vertices (4 per
// face) with position and uv attributes, 12 triangles and one group per face.
// Normals are left to ComputeVertexNormals.
func NewBox(ids *ident.Allocator, width, height, depth float64) *Geometry {
	g := New(ids)
	g.Name = "Box"

	size := mgl64.Vec3{width, height, depth}
	positions := make(Float32Buffer, 0, 24*3)
	uvs := make(Float32Buffer, 0, 24*2)
	indices := make([]uint32, 0, 36)

	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for f, face := range boxFaces {
		base := uint32(f * 4)
		for _, c := range corners {
			p := face.normal.Add(face.u.Mul(c[0])).Add(face.v.Mul(c[1])).Mul(0.5)
			for axis := 0; axis < 3; axis++ {
				positions = append(positions, float32(p[axis]*size[axis]))
			}
			uvs = append(uvs, float32((c[0]+1)/2), float32((c[1]+1)/2))
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
		g.AddGroup(f*6, 6, f)
	}

	g.SetAttribute(POSITION, &Attribute{Array: positions, ItemSize: 3})
	g.SetAttribute(UV, &Attribute{Array: uvs, ItemSize: 2})
	g.SetIndexValues(indices)

	return g
}
