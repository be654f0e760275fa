package integrator

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// countingWorld reports a hit on an endless floor and counts queries
type countingWorld struct {
	material material.Material
	calls    int
}

func (w *countingWorld) Hit(ray core.Ray) (geometry.HitInfo, bool) {
	w.calls++
	return geometry.HitInfo{
		Point:    ray.Origin.Add(ray.Direction),
		Normal:   core.NewVec3(0, 1, 0),
		Material: w.material,
	}, true
}

func newTestSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

// createClosedBox builds a closed box of non-emissive triangles around the origin
func createClosedBox(m material.Material) geometry.ShapeList {
	v := func(x, y, z float64) core.Vec3 { return core.NewVec3(x, y, z) }
	quad := func(a, b, c, d core.Vec3) []geometry.Shape {
		return []geometry.Shape{
			geometry.MustTriangle(a, b, c, m),
			geometry.MustTriangle(a, c, d, m),
		}
	}

	var shapes geometry.ShapeList
	shapes = append(shapes, quad(v(-5, -5, -5), v(5, -5, -5), v(5, -5, 5), v(-5, -5, 5))...) // floor
	shapes = append(shapes, quad(v(-5, 5, -5), v(-5, 5, 5), v(5, 5, 5), v(5, 5, -5))...)     // ceiling
	shapes = append(shapes, quad(v(-5, -5, -5), v(-5, 5, -5), v(5, 5, -5), v(5, -5, -5))...) // back
	shapes = append(shapes, quad(v(-5, -5, 5), v(5, -5, 5), v(5, 5, 5), v(-5, 5, 5))...)     // front
	shapes = append(shapes, quad(v(-5, -5, -5), v(-5, -5, 5), v(-5, 5, 5), v(-5, 5, -5))...) // left
	shapes = append(shapes, quad(v(5, -5, -5), v(5, 5, -5), v(5, 5, 5), v(5, -5, 5))...)     // right
	shapes = append(shapes, geometry.MustSphere(v(0, -3, 2), 1.5, material.WhiteMirror))
	return shapes
}

func TestPathTracing_NonEmissiveSceneIsBlack(t *testing.T) {
	world := createClosedBox(material.WhiteSolid)
	sampler := newTestSampler()

	for _, bounces := range []int{1, 2, 5, 10, 25} {
		integrator := NewPathTracingIntegrator(bounces)
		for i := 0; i < 50; i++ {
			dir := core.RandomDirection(sampler)
			color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), dir), world, sampler)
			if !color.IsZero() {
				t.Fatalf("bounces=%d: expected zero radiance without emitters, got %v", bounces, color)
			}
		}
	}
}

func TestPathTracing_ZeroBouncesIsBlack(t *testing.T) {
	light := geometry.MustSphere(core.NewVec3(0, 0, 5), 1, material.WhiteLight)
	world := geometry.ShapeList{light}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	integrator := NewPathTracingIntegrator(0)
	if color := integrator.RayColor(ray, world, newTestSampler()); !color.IsZero() {
		t.Errorf("Expected black for zero bounces, got %v", color)
	}

	// Negative budgets behave like zero
	integrator = NewPathTracingIntegrator(-3)
	if color := integrator.RayColor(ray, world, newTestSampler()); !color.IsZero() {
		t.Errorf("Expected black for negative bounces, got %v", color)
	}
}

func TestPathTracing_DirectEmission(t *testing.T) {
	// Diffuse and specular parameters must not dim a surface's own emission
	emitter := material.Material{
		DiffuseColor:     core.NewVec3(0.1, 0.2, 0.3),
		SpecularColor:    core.NewVec3(0.0, 0.5, 0.0),
		EmissionColor:    core.NewVec3(1.0, 0.5, 0.25),
		EmissionStrength: 3.0,
		SpecularChance:   0.5,
		Smoothness:       0.7,
	}
	world := geometry.ShapeList{geometry.MustSphere(core.NewVec3(0, 0, 5), 1, emitter)}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	expected := core.NewVec3(3.0, 1.5, 0.75)

	// A lone convex emitter is never hit twice, so the budget does not matter
	for _, bounces := range []int{1, 4} {
		integrator := NewPathTracingIntegrator(bounces)
		color := integrator.RayColor(ray, world, newTestSampler())
		if color.Subtract(expected).Length() > 1e-12 {
			t.Errorf("bounces=%d: expected %v, got %v", bounces, expected, color)
		}
	}
}

func TestPathTracing_ThroughputAttenuatesLaterEmission(t *testing.T) {
	mirror := material.Material{
		SpecularColor:  core.NewVec3(0.5, 0.25, 1.0),
		SpecularChance: 1.0,
		Smoothness:     1.0,
	}
	world := geometry.ShapeList{
		geometry.MustTriangle(
			core.NewVec3(-10, -10, 5), core.NewVec3(10, -10, 5), core.NewVec3(0, 10, 5), mirror),
		geometry.MustSphere(core.NewVec3(0, 0, -5), 1, material.NewEmissive(core.NewVec3(1, 1, 1), 2)),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	tests := []struct {
		bounces  int
		expected core.Vec3
	}{
		{1, core.NewVec3(0, 0, 0)},    // only the mirror is reached
		{2, core.NewVec3(1, 0.5, 2)},  // mirror color times light
		{3, core.NewVec3(1, 0.5, 2)},  // the light absorbs the rest
		{10, core.NewVec3(1, 0.5, 2)}, // ...for any budget
	}

	for _, tt := range tests {
		integrator := NewPathTracingIntegrator(tt.bounces)
		color := integrator.RayColor(ray, world, newTestSampler())
		if color.Subtract(tt.expected).Length() > 1e-9 {
			t.Errorf("bounces=%d: expected %v, got %v", tt.bounces, tt.expected, color)
		}
	}
}

func TestPathTracing_BounceBudget(t *testing.T) {
	world := &countingWorld{material: material.WhiteSolid}
	integrator := NewPathTracingIntegrator(7)

	integrator.RayColor(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), world, newTestSampler())
	if world.calls != 7 {
		t.Errorf("Expected 7 nearest-hit queries, got %d", world.calls)
	}
}

func TestPathTracing_EmptyWorldIsBlack(t *testing.T) {
	integrator := NewPathTracingIntegrator(10)

	color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), geometry.ShapeList{}, newTestSampler())
	if !color.IsZero() {
		t.Errorf("Expected black for an empty world, got %v", color)
	}
}
