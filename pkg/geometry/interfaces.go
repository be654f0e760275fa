package geometry

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	ErrInvalidRadius      = errors.New("geometry: sphere radius must be positive")
	ErrDegenerateTriangle = errors.New("geometry: triangle vertices are collinear")
)

// HitInfo contains information about a ray-object intersection
type HitInfo struct {
	Point    core.Vec3         // World-space point of intersection
	Normal   core.Vec3         // Unit surface normal at intersection
	Material material.Material // Copy of the hit object's material
}

// Shape interface for objects that can be hit by rays.
// Hit expects a unit-length ray direction.
type Shape interface {
	Hit(ray core.Ray) (HitInfo, bool)
}
