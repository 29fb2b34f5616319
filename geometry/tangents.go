package geometry

import (
	"math"

	"github.com/akmonengine/scene3d/math3d"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ComputeTangents derives a 4-component tangent attribute from the index,
// positions, normals and uvs. xyz is orthogonal to the normal and w is the
// handedness of the tangent frame, -1 or 1. Triangles with degenerate uvs are
// skipped. Any missing input leaves the geometry unchanged and returns
// ErrMissingAttributes.
func (g *Geometry) ComputeTangents() error {
	position := g.attributes[POSITION]
	normal := g.attributes[NORMAL]
	uv := g.attributes[UV]

	var missing []string
	if g.index == nil {
		missing = append(missing, "index")
	}
	if position == nil {
		missing = append(missing, POSITION)
	}
	if normal == nil {
		missing = append(missing, NORMAL)
	}
	if uv == nil {
		missing = append(missing, UV)
	}
	if len(missing) > 0 {
		g.log().Warn("Cannot compute tangents", zap.Uint64("geometry", g.ID), zap.Strings("missing", missing))
		return errors.Wrapf(ErrMissingAttributes, "tangents need %v", missing)
	}

	vertexCount := position.Count()
	tangent := g.attributes[TANGENT]
	if tangent == nil || tangent.ItemSize != 4 || tangent.Count() != vertexCount {
		tangent = &Attribute{Array: make(Float32Buffer, vertexCount*4), ItemSize: 4}
		g.attributes[TANGENT] = tangent
	}

	tan1 := make([]mgl64.Vec3, vertexCount)
	tan2 := make([]mgl64.Vec3, vertexCount)

	handleTriangle := func(a, b, c int) {
		vA := position.Vec3(a)
		vB := position.Vec3(b).Sub(vA)
		vC := position.Vec3(c).Sub(vA)

		uvA := uv2(uv, a)
		uvB := uv2(uv, b).Sub(uvA)
		uvC := uv2(uv, c).Sub(uvA)

		r := 1.0 / (uvB.X()*uvC.Y() - uvC.X()*uvB.Y())
		if math.IsInf(r, 0) || math.IsNaN(r) {
			return
		}

		sdir := vB.Mul(uvC.Y()).Sub(vC.Mul(uvB.Y())).Mul(r)
		tdir := vC.Mul(uvB.X()).Sub(vB.Mul(uvC.X())).Mul(r)

		tan1[a] = tan1[a].Add(sdir)
		tan1[b] = tan1[b].Add(sdir)
		tan1[c] = tan1[c].Add(sdir)

		tan2[a] = tan2[a].Add(tdir)
		tan2[b] = tan2[b].Add(tdir)
		tan2[c] = tan2[c].Add(tdir)
	}

	groups := g.Groups
	if len(groups) == 0 {
		groups = []Group{{Start: 0, Count: g.index.Count()}}
	}

	for _, group := range groups {
		end := min(group.Start+group.Count, g.index.Count())
		for j := group.Start; j+2 < end; j += 3 {
			handleTriangle(g.indexAt(j), g.indexAt(j+1), g.indexAt(j+2))
		}
	}

	handleVertex := func(v int) {
		n := normal.Vec3(v)
		t := tan1[v]

		// Gram-Schmidt orthogonalize
		tangentDir := math3d.Normalize(t.Sub(n.Mul(n.Dot(t))))

		w := 1.0
		if n.Cross(t).Dot(tan2[v]) < 0 {
			w = -1.0
		}

		tangent.SetXYZW(v, tangentDir.X(), tangentDir.Y(), tangentDir.Z(), w)
	}

	for _, group := range groups {
		end := min(group.Start+group.Count, g.index.Count())
		for j := group.Start; j+2 < end; j += 3 {
			handleVertex(g.indexAt(j))
			handleVertex(g.indexAt(j + 1))
			handleVertex(g.indexAt(j + 2))
		}
	}

	tangent.MarkNeedsUpdate()

	return nil
}

func uv2(uv *Attribute, i int) mgl64.Vec2 {
	return mgl64.Vec2{uv.X(i), uv.Y(i)}
}
