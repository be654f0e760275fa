package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ShapeList is an ordered collection of shapes searched linearly.
// It implements Shape, returning the hit closest to the ray origin.
type ShapeList []Shape

// Hit scans every shape and keeps the hit with the smallest distance from the
// ray origin. On equal distances the earlier shape wins.
func (l ShapeList) Hit(ray core.Ray) (HitInfo, bool) {
	hit, _, ok := l.HitIndex(ray)
	return hit, ok
}

// HitIndex is Hit that also reports the position of the winning shape in
// the list, or -1 on a miss.
func (l ShapeList) HitIndex(ray core.Ray) (HitInfo, int, bool) {
	var closest HitInfo
	closestDist := math.Inf(1)
	index := -1

	for i, shape := range l {
		hit, ok := shape.Hit(ray)
		if !ok {
			continue
		}
		dist := hit.Point.Subtract(ray.Origin).Length()
		if dist < closestDist {
			closest = hit
			closestDist = dist
			index = i
		}
	}

	return closest, index, index >= 0
}
