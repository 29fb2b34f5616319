package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/akmonengine/scene3d"
	"github.com/akmonengine/scene3d/geometry"
	"github.com/akmonengine/scene3d/gltfexport"
	"github.com/akmonengine/scene3d/node"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	outPath      string
	snapshotPath string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a sample scene and report its derived data",
	Long: `Builds a scene with a rotating pivot holding a cube, a second cube
reparented while keeping its world pose, and a camera looking at the origin.
Normals, tangents and bounds are computed, then reported.

Examples:
  scenectl demo --out scene.glb
  scenectl demo --snapshot scene.yaml -v`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	scene, err := buildDemoScene(config, logger)
	if err != nil {
		return err
	}

	for _, mesh := range scene.Meshes() {
		position := mesh.Node.WorldPosition()
		logger.Info("Mesh",
			zap.String("name", mesh.Node.Name),
			zap.Float64s("world_position", position[:]),
			zap.Float64s("box_min", mesh.WorldBox.Min[:]),
			zap.Float64s("box_max", mesh.WorldBox.Max[:]),
			zap.Float64("sphere_radius", mesh.WorldSphere.Radius),
		)
	}
	bounds := scene.WorldBounds()
	logger.Info("Scene bounds",
		zap.Float64s("min", bounds.Min[:]),
		zap.Float64s("max", bounds.Max[:]),
	)

	if outPath != "" {
		if err := writeGLTF(scene, outPath); err != nil {
			return err
		}
		logger.Info("glTF written", zap.String("path", outPath))
	}

	if snapshotPath != "" {
		if err := writeSnapshot(scene, snapshotPath); err != nil {
			return err
		}
		logger.Info("Snapshot written", zap.String("path", snapshotPath))
	}

	return nil
}

func buildDemoScene(config scene3d.Config, logger *zap.Logger) (*scene3d.Scene, error) {
	scene, err := scene3d.NewScene(config, logger)
	if err != nil {
		return nil, err
	}

	pivot := scene.NewNode(node.KindGroup)
	pivot.Name = "pivot"
	pivot.Position = mgl64.Vec3{0, 1, 0}
	pivot.RotateY(math.Pi / 4)
	if err := scene.Root.Add(pivot); err != nil {
		return nil, err
	}

	cube := scene.NewBox(1, 1, 1)
	cube.ComputeVertexNormals()
	if err := cube.ComputeTangents(); err != nil {
		return nil, err
	}

	orbiting, err := scene.AddMesh(pivot, "orbiting", cube)
	if err != nil {
		return nil, err
	}
	orbiting.Node.Position = mgl64.Vec3{2, 0, 0}

	floor := scene.NewBox(10, 0.2, 10)
	floor.ComputeVertexNormals()
	if _, err := scene.AddMesh(nil, "floor", floor); err != nil {
		return nil, err
	}

	free, err := scene.AddMesh(nil, "free", cube)
	if err != nil {
		return nil, err
	}
	free.Node.Position = mgl64.Vec3{-3, 0.5, 0}
	scene.Root.UpdateMatrixWorld(false)
	if err := pivot.Attach(free.Node); err != nil {
		return nil, err
	}

	camera := scene.NewNode(node.KindCamera)
	camera.Name = "camera"
	camera.Position = mgl64.Vec3{0, 5, 10}
	if err := scene.Root.Add(camera); err != nil {
		return nil, err
	}
	camera.LookAt(mgl64.Vec3{})

	if err := scene.Update(); err != nil {
		return nil, err
	}
	return scene, nil
}

func writeGLTF(scene *scene3d.Scene, path string) error {
	doc, err := gltfexport.Export(scene)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create gltf file")
	}
	defer f.Close()

	binary := !strings.EqualFold(filepath.Ext(path), ".gltf")
	if err := gltfexport.Write(f, doc, binary); err != nil {
		return err
	}
	return f.Close()
}

type nodeSnapshot struct {
	ID       uint64     `yaml:"id"`
	UUID     string     `yaml:"uuid"`
	Name     string     `yaml:"name,omitempty"`
	Kind     string     `yaml:"kind"`
	Parent   string     `yaml:"parent,omitempty"`
	Position [3]float64 `yaml:"position,flow"`
	Rotation [3]float64 `yaml:"rotation,flow"`
	Order    string     `yaml:"order"`
	Scale    [3]float64 `yaml:"scale,flow"`
}

type sceneSnapshot struct {
	Nodes      []nodeSnapshot              `yaml:"nodes"`
	Geometries []geometry.GeometrySnapshot `yaml:"geometries"`
}

func snapshotScene(scene *scene3d.Scene) sceneSnapshot {
	var snap sceneSnapshot

	scene.Root.Traverse(func(n *node.Node) {
		rotation := n.Rotation()
		ns := nodeSnapshot{
			ID:       n.ID,
			UUID:     n.UUID,
			Name:     n.Name,
			Kind:     n.Kind.String(),
			Position: [3]float64(n.Position),
			Rotation: [3]float64(rotation.Vec3()),
			Order:    rotation.Order.String(),
			Scale:    [3]float64(n.Scale),
		}
		if p := n.Parent(); p != nil {
			ns.Parent = p.UUID
		}
		snap.Nodes = append(snap.Nodes, ns)
	})

	seen := make(map[*geometry.Geometry]struct{})
	for _, mesh := range scene.Meshes() {
		if _, ok := seen[mesh.Geometry]; ok {
			continue
		}
		seen[mesh.Geometry] = struct{}{}
		snap.Geometries = append(snap.Geometries, mesh.Geometry.Snapshot())
	}

	return snap
}

func writeSnapshot(scene *scene3d.Scene, path string) error {
	data, err := yaml.Marshal(snapshotScene(scene))
	if err != nil {
		return errors.Wrap(err, "failed to marshal snapshot")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "failed to write snapshot")
}
