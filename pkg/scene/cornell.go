package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewCornellScene creates the reference room: a 20 unit box with a mirror
// wall, two spheres, a small light sphere on the floor and a ceiling panel
// light. The camera sits on the south wall looking north.
func NewCornellScene() *Scene {
	v := core.NewVec3
	tri := func(a, b, c core.Vec3, m material.Material) geometry.Shape {
		return geometry.MustTriangle(a, b, c, m)
	}

	shapes := geometry.ShapeList{
		// Roof
		tri(v(10, 10, 10), v(-10, 10, -10), v(10, 10, -10), material.WhiteSolid),
		tri(v(-10, 10, -10), v(10, 10, 10), v(-10, 10, 10), material.WhiteSolid),

		geometry.MustSphere(v(-4, -6, 0), 4, material.WhiteMirror),
		geometry.MustSphere(v(2, -8, 0), 2, material.WhiteSolid),
		geometry.MustSphere(v(4, -9, 9), 1, material.WhiteLight),

		// Floor
		tri(v(10, -10, -10), v(-10, -10, 10), v(10, -10, 10), material.WhiteSolid),
		tri(v(10, -10, -10), v(-10, -10, -10), v(-10, -10, 10), material.WhiteSolid),

		// South wall, half mirror and half red
		tri(v(-10, 10, -10), v(10, -10, -10), v(10, 10, -10), material.WhiteMirror),
		tri(v(-10, -10, -10), v(10, -10, -10), v(-10, 10, -10), material.RedSolid),

		// East wall
		tri(v(10, 10, -10), v(10, -10, 10), v(10, 10, 10), material.RedSolid),
		tri(v(10, 10, -10), v(10, -10, -10), v(10, -10, 10), material.RedSolid),

		// West wall
		tri(v(-10, 10, -10), v(-10, -10, 10), v(-10, -10, -10), material.GreenSolid),
		tri(v(-10, 10, -10), v(-10, 10, 10), v(-10, -10, 10), material.GreenSolid),

		// North wall
		tri(v(-10, 10, 10), v(10, -10, 10), v(-10, -10, 10), material.WhiteSolid),
		tri(v(10, 10, 10), v(10, -10, 10), v(-10, 10, 10), material.WhiteSolid),

		// Ceiling light panel just below the roof
		tri(v(5, 9.9, 5), v(-5, 9.9, -5), v(5, 9.9, -5), material.WhiteLight),
		tri(v(-5, 9.9, -5), v(5, 9.9, 5), v(-5, 9.9, 5), material.WhiteLight),
	}

	return &Scene{
		Name:           "cornell",
		Description:    "Reference room with mirror wall, spheres and a ceiling light",
		Shapes:         shapes,
		CameraConfig:   renderer.DefaultCameraConfig(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}
