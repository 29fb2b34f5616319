// Package scene3d ties the transform hierarchy to geometries: a Scene owns a
// root node, the id allocator used by everything it creates and a registry of
// meshes whose world bounds it refreshes on Update.
package scene3d

import (
	"github.com/akmonengine/scene3d/geometry"
	"github.com/akmonengine/scene3d/ident"
	"github.com/akmonengine/scene3d/math3d"
	"github.com/akmonengine/scene3d/node"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

var ErrDetachedParent = errors.New("parent does not belong to the scene")

// Mesh binds a node to the geometry drawn at its world transform.
type Mesh struct {
	Node     *node.Node
	Geometry *geometry.Geometry

	// World bounds, refreshed by Scene.Update
	WorldBox    math3d.Box3
	WorldSphere math3d.Sphere
}

type Scene struct {
	Root *node.Node
	// AutoUpdate runs a world matrix pass from Root on every Update
	AutoUpdate bool
	Workers    int

	meshes []*Mesh
	ids    *ident.Allocator
	config Config
	logger *zap.Logger
}

// NewScene creates an empty scene from a validated configuration; start from
// DefaultConfig rather than a zero Config. A nil logger falls back to the
// global one.
func NewScene(config Config, logger *zap.Logger) (*Scene, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scene config")
	}
	if logger == nil {
		logger = zap.L()
	}

	s := &Scene{
		AutoUpdate: true,
		Workers:    config.Workers,
		ids:        ident.NewAllocator(),
		config:     config,
		logger:     logger,
	}
	s.Root = s.NewNode(node.KindScene)
	s.Root.Name = "Scene"

	return s, nil
}

// NewNode creates a detached node carrying the scene defaults.
func (s *Scene) NewNode(kind node.Kind) *node.Node {
	n := node.New(s.ids, kind)
	n.Up = mgl64.Vec3(s.config.DefaultUp)
	n.MatrixAutoUpdate = s.config.MatrixAutoUpdate
	return n
}

func (s *Scene) NewGeometry() *geometry.Geometry {
	g := geometry.New(s.ids)
	g.SetLogger(s.logger)
	return g
}

// NewBox creates a box geometry owned by the scene.
func (s *Scene) NewBox(width, height, depth float64) *geometry.Geometry {
	g := geometry.NewBox(s.ids, width, height, depth)
	g.SetLogger(s.logger)
	return g
}

// AddMesh creates a KindMesh node named name under parent and registers it
// with g. A nil parent means the scene root.
func (s *Scene) AddMesh(parent *node.Node, name string, g *geometry.Geometry) (*Mesh, error) {
	if g == nil {
		return nil, errors.Wrap(geometry.ErrNilGeometry, "add mesh")
	}
	if parent == nil {
		parent = s.Root
	}
	if parent.Root() != s.Root {
		return nil, errors.Wrapf(ErrDetachedParent, "add mesh %q", name)
	}

	n := s.NewNode(node.KindMesh)
	n.Name = name
	if err := parent.Add(n); err != nil {
		return nil, errors.Wrapf(err, "add mesh %q", name)
	}

	mesh := &Mesh{
		Node:        n,
		Geometry:    g,
		WorldBox:    math3d.EmptyBox(),
		WorldSphere: math3d.EmptySphere(),
	}
	s.meshes = append(s.meshes, mesh)

	s.logger.Debug("Mesh added",
		zap.String("name", name),
		zap.Uint64("node", n.ID),
		zap.Uint64("geometry", g.ID),
	)
	return mesh, nil
}

// RemoveMesh unregisters the mesh and detaches its node.
func (s *Scene) RemoveMesh(mesh *Mesh) {
	k := -1
	for i, m := range s.meshes {
		if m == mesh {
			k = i
			break
		}
	}

	if k != -1 {
		s.meshes = append(s.meshes[:k], s.meshes[k+1:]...)
		mesh.Node.RemoveFromParent()
	}
}

// Meshes returns the registered meshes in insertion order.
func (s *Scene) Meshes() []*Mesh {
	return append([]*Mesh(nil), s.meshes...)
}

// Config returns the configuration the scene was built with.
func (s *Scene) Config() Config {
	return s.config
}

// ResetIDs restarts the id sequence for objects created afterwards.
func (s *Scene) ResetIDs() {
	s.ids.Reset()
}

// Update refreshes world matrices, computes bounds of geometries that have
// none yet, then the world bounds of every mesh attached under Root. Meshes
// whose node was removed from the tree keep their previous world bounds.
// Bounds errors are returned together once every mesh is processed.
func (s *Scene) Update() error {
	s.Workers = max(DEFAULT_WORKERS, s.Workers)

	if s.AutoUpdate {
		s.Root.UpdateMatrixWorld(false)
	}

	attached := make([]*Mesh, 0, len(s.meshes))
	for _, mesh := range s.meshes {
		if mesh.Node.Root() == s.Root {
			attached = append(attached, mesh)
		}
	}

	err := s.computeBounds(attached)

	// geometries are only read from here on
	task(s.Workers, attached, func(mesh *Mesh) {
		mesh.WorldBox = WorldBoundingBox(mesh.Node.MatrixWorld, mesh.Geometry)
		mesh.WorldSphere = WorldBoundingSphere(mesh.Node.MatrixWorld, mesh.Geometry)
	})

	return err
}

// computeBounds computes the missing bounds once per distinct geometry.
// this is sequential: geometries can be shared between meshes
func (s *Scene) computeBounds(meshes []*Mesh) error {
	var err error
	seen := make(map[*geometry.Geometry]struct{}, len(meshes))

	for _, mesh := range meshes {
		g := mesh.Geometry
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}

		if g.BoundingBox == nil {
			err = multierr.Append(err, g.ComputeBoundingBox())
		}
		if g.BoundingSphere == nil {
			err = multierr.Append(err, g.ComputeBoundingSphere())
		}
	}

	return err
}

// WorldBounds returns the union of the world boxes of all meshes, as of the
// last Update.
func (s *Scene) WorldBounds() math3d.Box3 {
	box := math3d.EmptyBox()
	for _, mesh := range s.meshes {
		if mesh.Node.Root() == s.Root {
			box = box.Union(mesh.WorldBox)
		}
	}
	return box
}
