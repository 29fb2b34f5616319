// Package gltfexport converts a scene into a glTF 2.0 document.
package gltfexport

import (
	"io"

	"github.com/akmonengine/scene3d"
	"github.com/akmonengine/scene3d/geometry"
	"github.com/akmonengine/scene3d/node"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

type exporter struct {
	doc *gltf.Document

	nodes  map[*node.Node]uint32
	meshes map[*geometry.Geometry]uint32
}

// Export builds a document with one glTF node per scene node, rooted at the
// scene root, and one glTF mesh per distinct geometry. Each render group
// becomes a primitive. Meshes detached from the scene root are skipped.
func Export(scene *scene3d.Scene) (*gltf.Document, error) {
	e := &exporter{
		doc:    gltf.NewDocument(),
		nodes:  make(map[*node.Node]uint32),
		meshes: make(map[*geometry.Geometry]uint32),
	}

	scene.Root.Traverse(func(n *node.Node) {
		e.nodes[n] = uint32(len(e.doc.Nodes))
		e.doc.Nodes = append(e.doc.Nodes, exportNode(n))
	})
	scene.Root.Traverse(func(n *node.Node) {
		gn := e.doc.Nodes[e.nodes[n]]
		for _, child := range n.Children() {
			gn.Children = append(gn.Children, e.nodes[child])
		}
	})
	e.doc.Scenes[0].Name = scene.Root.Name
	e.doc.Scenes[0].Nodes = append(e.doc.Scenes[0].Nodes, e.nodes[scene.Root])

	for _, mesh := range scene.Meshes() {
		nodeIndex, ok := e.nodes[mesh.Node]
		if !ok {
			continue
		}

		meshIndex, err := e.mesh(mesh.Geometry)
		if err != nil {
			return nil, errors.Wrapf(err, "export mesh %q", mesh.Node.Name)
		}
		e.doc.Nodes[nodeIndex].Mesh = gltf.Index(meshIndex)
	}

	return e.doc, nil
}

func exportNode(n *node.Node) *gltf.Node {
	q := n.Quaternion()
	gn := &gltf.Node{
		Name:        n.Name,
		Translation: [3]float32{float32(n.Position[0]), float32(n.Position[1]), float32(n.Position[2])},
		Rotation:    [4]float32{float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W)},
		Scale:       [3]float32{float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2])},
	}
	if len(n.UserData) > 0 {
		gn.Extras = n.UserData
	}
	return gn
}

// mesh writes g once and returns its mesh index.
func (e *exporter) mesh(g *geometry.Geometry) (uint32, error) {
	if index, ok := e.meshes[g]; ok {
		return index, nil
	}

	position := g.Attribute(geometry.POSITION)
	if position == nil {
		return 0, errors.Wrap(geometry.ErrMissingAttributes, geometry.POSITION)
	}

	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(e.doc, vec3s(position)),
	}
	if normal := g.Attribute(geometry.NORMAL); normal != nil {
		attributes["NORMAL"] = modeler.WriteNormal(e.doc, vec3s(normal))
	}
	if tangent := g.Attribute(geometry.TANGENT); tangent != nil && tangent.ItemSize == 4 {
		attributes["TANGENT"] = modeler.WriteTangent(e.doc, vec4s(tangent))
	}
	if uv := g.Attribute(geometry.UV); uv != nil && uv.ItemSize >= 2 {
		attributes["TEXCOORD_0"] = modeler.WriteTextureCoord(e.doc, vec2s(uv))
	}

	gm := &gltf.Mesh{Name: g.Name}
	for _, r := range primitiveRanges(g, position.Count()) {
		primitive := &gltf.Primitive{Attributes: attributes}
		if indices := primitiveIndices(g, r); indices != nil {
			primitive.Indices = gltf.Index(modeler.WriteIndices(e.doc, indices))
		}
		gm.Primitives = append(gm.Primitives, primitive)
	}

	if g.BoundingSphere != nil {
		gm.Extras = map[string]any{
			"boundingSphere": geometry.SphereSnapshot{
				Center: [3]float64(g.BoundingSphere.Center),
				Radius: g.BoundingSphere.Radius,
			},
		}
	}

	e.doc.Meshes = append(e.doc.Meshes, gm)
	index := uint32(len(e.doc.Meshes) - 1)
	e.meshes[g] = index

	return index, nil
}

type drawRange struct {
	start, count int
	whole        bool
}

// primitiveRanges returns one range per group, or a single range covering the
// draw range when there are no groups.
func primitiveRanges(g *geometry.Geometry, vertexCount int) []drawRange {
	total := vertexCount
	if index := g.Index(); index != nil {
		total = index.Count()
	}

	if len(g.Groups) == 0 {
		start := min(g.DrawRange.Start, total)
		count := min(g.DrawRange.Count, total-start)
		return []drawRange{{start: start, count: count, whole: start == 0 && count == total}}
	}

	ranges := make([]drawRange, 0, len(g.Groups))
	for _, group := range g.Groups {
		start := min(group.Start, total)
		ranges = append(ranges, drawRange{start: start, count: min(group.Count, total-start)})
	}
	return ranges
}

// primitiveIndices returns the indices drawn by r. A non-indexed geometry
// drawn whole needs none.
func primitiveIndices(g *geometry.Geometry, r drawRange) []uint32 {
	index := g.Index()
	if index == nil && r.whole {
		return nil
	}

	indices := make([]uint32, r.count)
	for i := range indices {
		if index == nil {
			indices[i] = uint32(r.start + i)
			continue
		}
		indices[i] = uint32(index.X(r.start + i))
	}
	return indices
}

func vec2s(a *geometry.Attribute) [][2]float32 {
	out := make([][2]float32, a.Count())
	for i := range out {
		out[i] = [2]float32{float32(a.X(i)), float32(a.Y(i))}
	}
	return out
}

func vec3s(a *geometry.Attribute) [][3]float32 {
	out := make([][3]float32, a.Count())
	for i := range out {
		v := a.Vec3(i)
		out[i] = [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
	}
	return out
}

func vec4s(a *geometry.Attribute) [][4]float32 {
	out := make([][4]float32, a.Count())
	for i := range out {
		out[i] = [4]float32{float32(a.X(i)), float32(a.Y(i)), float32(a.Z(i)), float32(a.W(i))}
	}
	return out
}

// Write encodes doc to w, as GLB when binary is set, as JSON glTF otherwise.
// In JSON mode buffers without an URI are embedded as data URIs.
func Write(w io.Writer, doc *gltf.Document, binary bool) error {
	if !binary {
		for _, buffer := range doc.Buffers {
			if buffer.URI == "" {
				buffer.EmbeddedResource()
			}
		}
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = binary
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrapf(err, "encode gltf (binary=%t)", binary)
	}
	return nil
}
