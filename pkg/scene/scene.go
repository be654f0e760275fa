package scene

import (
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Description    string
	Shapes         geometry.ShapeList      // Objects in the scene, searched in order
	CameraConfig   renderer.CameraConfig   // Where primary rays start
	SamplingConfig renderer.SamplingConfig // Recommended render settings
}

// GetCameraConfig returns the scene camera
func (s *Scene) GetCameraConfig() renderer.CameraConfig {
	return s.CameraConfig
}

// GetWorld returns every shape as one nearest-hit query
func (s *Scene) GetWorld() geometry.Shape {
	return s.Shapes
}

// GetSamplingConfig returns the recommended render settings
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// GetEmitterCount returns how many primitives emit light
func (s *Scene) GetEmitterCount() int {
	count := 0
	for _, shape := range s.Shapes {
		switch sh := shape.(type) {
		case *geometry.Sphere:
			if sh.Material.IsEmissive() {
				count++
			}
		case *geometry.Triangle:
			if sh.Material.IsEmissive() {
				count++
			}
		}
	}
	return count
}

// MergeSamplingConfig returns base with every positive field of overrides applied
func MergeSamplingConfig(base, overrides renderer.SamplingConfig) renderer.SamplingConfig {
	result := base
	if overrides.Width > 0 {
		result.Width = overrides.Width
	}
	if overrides.Height > 0 {
		result.Height = overrides.Height
	}
	if overrides.SamplesPerPixel > 0 {
		result.SamplesPerPixel = overrides.SamplesPerPixel
	}
	if overrides.MaxBounces > 0 {
		result.MaxBounces = overrides.MaxBounces
	}
	if overrides.Seed != 0 {
		result.Seed = overrides.Seed
	}
	return result
}
