package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Material material.Material
	radius   float64
}

// NewSphere creates a new sphere. The radius must be positive.
func NewSphere(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	return &Sphere{
		Center:   center,
		Material: mat,
		radius:   radius,
	}, nil
}

// MustSphere is like NewSphere but panics on invalid input. Intended for
// scene literals.
func MustSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	s, err := NewSphere(center, radius, mat)
	if err != nil {
		panic(err)
	}
	return s
}

// Radius returns the sphere radius, fixed at construction
func (s *Sphere) Radius() float64 {
	return s.radius
}

// Hit tests if a ray intersects with the sphere using the geometric method:
// project the center onto the ray, then step back by the half chord.
func (s *Sphere) Hit(ray core.Ray) (HitInfo, bool) {
	// Vector from ray origin to sphere center
	l := s.Center.Subtract(ray.Origin)

	// Center behind the origin. This also rejects rays that start inside
	// the sphere past its center.
	tca := l.Dot(ray.Direction)
	if tca < 0 {
		return HitInfo{}, false
	}

	// Squared distance from center to the ray line
	d2 := math.Max(0, l.Dot(l)-tca*tca)
	r2 := s.radius * s.radius
	if d2 > r2 {
		return HitInfo{}, false
	}

	thc := math.Sqrt(r2 - d2)
	t := tca - thc
	if t < 0 {
		// Origin inside the sphere: use the exit point
		t = tca + thc
	}

	point := ray.At(t)
	return HitInfo{
		Point:    point,
		Normal:   point.Subtract(s.Center).Normalize(),
		Material: s.Material,
	}, true
}
