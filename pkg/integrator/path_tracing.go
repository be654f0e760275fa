package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// PathTracingIntegrator implements unidirectional path tracing without light
// sampling. Emission is only picked up when a path happens to hit an emitter.
type PathTracingIntegrator struct {
	maxBounces int
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A negative bounce budget is treated as zero.
func NewPathTracingIntegrator(maxBounces int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxBounces: max(0, maxBounces)}
}

// MaxBounces returns the bounce budget per path
func (pt *PathTracingIntegrator) MaxBounces() int {
	return pt.maxBounces
}

// RayColor follows one path through at most maxBounces surface interactions.
// The path ends early when it escapes the scene; there is no environment light.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)
	radiance := core.NewVec3(0, 0, 0)

	for bounce := 0; bounce < pt.maxBounces; bounce++ {
		hit, isHit := world.Hit(ray)
		if !isHit {
			break
		}

		mat := hit.Material
		scatter := mat.Scatter(ray.Direction, hit.Normal, sampler)

		// Emission is weighted by the throughput before this surface's reflectance
		radiance = radiance.Add(mat.Emitted().MultiplyVec(throughput))
		throughput = throughput.MultiplyVec(scatter.Attenuation)

		ray = core.NewRay(hit.Point, scatter.Direction)
	}

	return radiance
}
