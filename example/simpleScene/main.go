package main

import (
	"fmt"
	"math"

	"github.com/akmonengine/scene3d"
	"github.com/akmonengine/scene3d/event"
	"github.com/akmonengine/scene3d/node"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// SetupScene builds a pivot spinning around Y with a cube orbiting it, and a
// camera that keeps looking at the cube.
func SetupScene() (*scene3d.Scene, *node.Node, *scene3d.Mesh, *node.Node) {
	scene, err := scene3d.NewScene(scene3d.DefaultConfig(), zap.NewExample())
	if err != nil {
		panic(err)
	}

	pivot := scene.NewNode(node.KindGroup)
	pivot.Name = "pivot"
	if err := scene.Root.Add(pivot); err != nil {
		panic(err)
	}

	cube := scene.NewBox(1, 1, 1)
	cube.ComputeVertexNormals()
	if err := cube.ComputeTangents(); err != nil {
		panic(err)
	}

	mesh, err := scene.AddMesh(pivot, "cube", cube)
	if err != nil {
		panic(err)
	}
	mesh.Node.Position = mgl64.Vec3{3, 0, 0}
	mesh.Node.Subscribe(event.REMOVED, func(e event.Event) {
		fmt.Println(e.(event.RemovedEvent).Target.(*node.Node).Name, "detached")
	})

	camera := scene.NewNode(node.KindCamera)
	camera.Name = "camera"
	camera.Position = mgl64.Vec3{0, 4, 8}
	if err := scene.Root.Add(camera); err != nil {
		panic(err)
	}

	return scene, pivot, mesh, camera
}

func main() {
	scene, pivot, mesh, camera := SetupScene()

	const steps = 8
	for step := 0; step < steps; step++ {
		pivot.RotateY(2 * math.Pi / steps)
		if err := scene.Update(); err != nil {
			panic(err)
		}
		camera.LookAt(mesh.Node.WorldPosition())

		fmt.Printf("--- step %d ---\n", step+1)
		fmt.Printf("  cube world position: %v\n", mesh.Node.WorldPosition())
		fmt.Printf("  cube world box: %v .. %v\n", mesh.WorldBox.Min, mesh.WorldBox.Max)
		fmt.Printf("  camera direction: %v\n", camera.WorldDirection())
	}

	// reparent the cube to the root without moving it
	if err := scene.Root.Attach(mesh.Node); err != nil {
		panic(err)
	}
	fmt.Printf("cube local position after attach: %v\n", mesh.Node.Position)
}
