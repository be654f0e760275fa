package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewGlowingSphereScene creates a single emissive unit sphere at the origin.
// Seen from the default camera it renders as a bright disc on black.
func NewGlowingSphereScene() *Scene {
	return &Scene{
		Name:         "glowing-sphere",
		Description:  "One emissive sphere in empty space",
		Shapes:       geometry.ShapeList{geometry.MustSphere(core.NewVec3(0, 0, 0), 1, material.WhiteLight)},
		CameraConfig: renderer.DefaultCameraConfig(),
		SamplingConfig: renderer.SamplingConfig{
			Width:           64,
			Height:          64,
			SamplesPerPixel: 4,
			MaxBounces:      1,
			Seed:            42,
		},
	}
}

// NewSpheresScene creates colored mirror spheres over a diffuse floor, lit
// by a cyan light and a faint glowing sphere
func NewSpheresScene() *Scene {
	v := core.NewVec3

	shapes := geometry.ShapeList{
		// Floor
		geometry.MustTriangle(v(-30, -3, -30), v(-30, -3, 30), v(30, -3, 30), material.WhiteSolid),
		geometry.MustTriangle(v(-30, -3, -30), v(30, -3, 30), v(30, -3, -30), material.WhiteSolid),

		geometry.MustSphere(v(-3.5, -1, 4), 2, material.RedMirror),
		geometry.MustSphere(v(0, -1.5, 7), 1.5, material.GreenSolid),
		geometry.MustSphere(v(3.5, -1, 4), 2, material.CyanMirror),
		geometry.MustSphere(v(0, 1.5, 2), 1, material.WhiteGlow),

		geometry.MustSphere(v(0, 12, 6), 5, material.CyanLight),
		geometry.MustSphere(v(-8, 6, -2), 2, material.WhiteLight),
	}

	return &Scene{
		Name:         "spheres",
		Description:  "Mirror spheres on a floor under a cyan light",
		Shapes:       shapes,
		CameraConfig: renderer.CameraConfig{Center: v(0, 0, -8), FocalLength: 1.2},
		SamplingConfig: renderer.SamplingConfig{
			Width:           320,
			Height:          240,
			SamplesPerPixel: 64,
			MaxBounces:      8,
			Seed:            42,
		},
	}
}
