package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// triangleEpsilon bounds both the parallel-ray determinant and the minimum hit distance
const triangleEpsilon = 1e-8

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	A, B, C  core.Vec3         // The three vertices
	Material material.Material // Material of the triangle
	normal   core.Vec3         // Cached face normal, normalize((B-A) x (C-A))
}

// NewTriangle creates a new triangle from three vertices.
// Collinear vertices are rejected.
func NewTriangle(a, b, c core.Vec3, mat material.Material) (*Triangle, error) {
	n := b.Subtract(a).Cross(c.Subtract(a))
	if n.LengthSquared() < triangleEpsilon*triangleEpsilon {
		return nil, fmt.Errorf("%w: %v %v %v", ErrDegenerateTriangle, a, b, c)
	}
	return &Triangle{
		A:        a,
		B:        b,
		C:        c,
		Material: mat,
		normal:   n.Normalize(),
	}, nil
}

// MustTriangle is like NewTriangle but panics on invalid input
func MustTriangle(a, b, c core.Vec3, mat material.Material) *Triangle {
	t, err := NewTriangle(a, b, c, mat)
	if err != nil {
		panic(err)
	}
	return t
}

// Normal returns the geometric face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm.
// The reported normal is the face normal for both front and back hits.
func (t *Triangle) Hit(ray core.Ray) (HitInfo, bool) {
	_, _, dist, ok := t.intersect(ray)
	if !ok {
		return HitInfo{}, false
	}
	return HitInfo{
		Point:    ray.At(dist),
		Normal:   t.normal,
		Material: t.Material,
	}, true
}

// intersect returns the barycentric coordinates (u, v) and ray parameter of the hit
func (t *Triangle) intersect(ray core.Ray) (u, v, dist float64, ok bool) {
	edge1 := t.B.Subtract(t.A)
	edge2 := t.C.Subtract(t.A)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Ray lies parallel to the triangle plane
	if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.A)
	u = f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	// Line intersection behind or at the origin is not a ray hit
	dist = f * edge2.Dot(q)
	if dist <= triangleEpsilon {
		return 0, 0, 0, false
	}

	return u, v, dist, true
}
