package scene3d

import (
	"github.com/akmonengine/scene3d/geometry"
	"github.com/akmonengine/scene3d/math3d"
	"github.com/go-gl/mathgl/mgl64"
)

// WorldBoundingBox returns g's bounding box transformed by matrixWorld. The
// geometry box must already be computed, otherwise the result is empty.
func WorldBoundingBox(matrixWorld mgl64.Mat4, g *geometry.Geometry) math3d.Box3 {
	if g == nil || g.BoundingBox == nil {
		return math3d.EmptyBox()
	}
	return g.BoundingBox.ApplyMatrix4(matrixWorld)
}

// WorldBoundingSphere returns g's bounding sphere transformed by matrixWorld,
// its radius scaled by the largest axis scale.
func WorldBoundingSphere(matrixWorld mgl64.Mat4, g *geometry.Geometry) math3d.Sphere {
	if g == nil || g.BoundingSphere == nil {
		return math3d.EmptySphere()
	}
	return g.BoundingSphere.ApplyMatrix4(matrixWorld)
}
