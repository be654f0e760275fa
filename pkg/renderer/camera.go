package renderer

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig describes a pinhole camera looking down +Z
type CameraConfig struct {
	Center      core.Vec3 // Focal point; every primary ray starts here
	FocalLength float64   // Distance from the focal point to the image plane
}

// DefaultCameraConfig returns the camera used by the reference scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, -10),
		FocalLength: 1.0,
	}
}

// Validate checks the camera parameters
func (c CameraConfig) Validate() error {
	if !(c.FocalLength > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidFocal, c.FocalLength)
	}
	return nil
}

// Camera generates primary rays for a fixed image size
type Camera struct {
	origin      core.Vec3
	focalLength float64
	width       int
	height      int
}

// NewCamera creates a pinhole camera for a width x height image
func NewCamera(config CameraConfig, width, height int) *Camera {
	return &Camera{
		origin:      config.Center,
		focalLength: config.FocalLength,
		width:       width,
		height:      height,
	}
}

// ScreenCoords maps pixel (i, j) to screen coordinates in [-1, 1].
// Row 0 is the top of the image, so v decreases with j.
func (c *Camera) ScreenCoords(i, j int) (u, v float64) {
	u = (float64(i)/float64(c.width))*2 - 1
	v = -((float64(j)/float64(c.height))*2 - 1)
	return u, v
}

// GetRay returns the normalized primary ray through pixel (i, j)
func (c *Camera) GetRay(i, j int) core.Ray {
	u, v := c.ScreenCoords(i, j)
	direction := core.NewVec3(u, v, c.focalLength).Normalize()
	return core.NewRay(c.origin, direction)
}
