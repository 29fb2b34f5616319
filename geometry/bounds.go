package geometry

import (
	"math"

	"github.com/akmonengine/scene3d/math3d"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func boxFromAttribute(a *Attribute) math3d.Box3 {
	box := math3d.EmptyBox()
	for i := 0; i < a.Count(); i++ {
		box = box.ExpandByPoint(a.Vec3(i))
	}
	return box
}

// expandByMorphs grows box by every morph target of positions. Relative
// targets are offsets, so their extremes are added to the running box.
func (g *Geometry) expandByMorphs(box math3d.Box3) math3d.Box3 {
	for _, morph := range g.MorphAttributes[POSITION] {
		morphBox := boxFromAttribute(morph)
		if g.MorphTargetsRelative {
			box = box.ExpandByPoint(box.Min.Add(morphBox.Min))
			box = box.ExpandByPoint(box.Max.Add(morphBox.Max))
		} else {
			box = box.ExpandByPoint(morphBox.Min)
			box = box.ExpandByPoint(morphBox.Max)
		}
	}
	return box
}

// ComputeBoundingBox stores the box enclosing the positions and every position
// morph target. Without positions the box is empty. A box holding NaN is still
// stored and ErrNaNBounds is returned.
func (g *Geometry) ComputeBoundingBox() error {
	position := g.attributes[POSITION]
	box := math3d.EmptyBox()
	if position != nil {
		box = g.expandByMorphs(boxFromAttribute(position))
	}
	g.BoundingBox = &box

	if box.HasNaN() {
		g.log().Error("Bounding box has NaN values, the position attribute is likely to contain NaN",
			zap.Uint64("geometry", g.ID), zap.String("name", g.Name))
		return errors.Wrapf(ErrNaNBounds, "bounding box of geometry %d", g.ID)
	}

	return nil
}

// ComputeBoundingSphere stores a sphere centered on the bounding box (morph
// targets included) whose radius reaches the farthest position or morphed
// position. Without positions the sphere is empty. A NaN radius is still
// stored and ErrNaNBounds is returned.
func (g *Geometry) ComputeBoundingSphere() error {
	position := g.attributes[POSITION]
	if position == nil {
		sphere := math3d.EmptySphere()
		g.BoundingSphere = &sphere
		return nil
	}

	center := g.expandByMorphs(boxFromAttribute(position)).Center()

	maxRadiusSq := 0.0
	for i := 0; i < position.Count(); i++ {
		maxRadiusSq = math.Max(maxRadiusSq, distanceSq(center, position.Vec3(i)))
	}

	for _, morph := range g.MorphAttributes[POSITION] {
		for j := 0; j < morph.Count(); j++ {
			p := morph.Vec3(j)
			if g.MorphTargetsRelative {
				p = p.Add(position.Vec3(j))
			}
			maxRadiusSq = math.Max(maxRadiusSq, distanceSq(center, p))
		}
	}

	g.BoundingSphere = &math3d.Sphere{Center: center, Radius: math.Sqrt(maxRadiusSq)}

	if math.IsNaN(g.BoundingSphere.Radius) {
		g.log().Error("Bounding sphere radius is NaN, the position attribute is likely to contain NaN",
			zap.Uint64("geometry", g.ID), zap.String("name", g.Name))
		return errors.Wrapf(ErrNaNBounds, "bounding sphere of geometry %d", g.ID)
	}

	return nil
}

func distanceSq(a, b mgl64.Vec3) float64 {
	return a.Sub(b).LenSqr()
}
