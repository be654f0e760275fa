package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
	"golang.org/x/image/math/f32"
)

// Frame holds one rendered image: the 8-bit output raster and the linear
// radiance it was quantized from.
type Frame struct {
	Width    int
	Height   int
	Image    *image.RGBA
	Radiance []f32.Vec3 // Row-major, unclamped mean radiance per pixel
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:    width,
		Height:   height,
		Image:    image.NewRGBA(image.Rect(0, 0, width, height)),
		Radiance: make([]f32.Vec3, width*height),
	}
}

// SetPixel stores the mean radiance of pixel (x, y) and its 8-bit color.
// Each pixel is written by exactly one goroutine per pass.
func (f *Frame) SetPixel(x, y int, radiance core.Vec3) {
	f.Radiance[y*f.Width+x] = f32.Vec3{float32(radiance.X), float32(radiance.Y), float32(radiance.Z)}
	f.Image.SetRGBA(x, y, vec3ToColor(radiance))
}

// RadianceAt returns the linear radiance stored for pixel (x, y)
func (f *Frame) RadianceAt(x, y int) core.Vec3 {
	r := f.Radiance[y*f.Width+x]
	return core.NewVec3(float64(r[0]), float64(r[1]), float64(r[2]))
}

// vec3ToColor clamps each channel to [0, 1] before scaling by 255 and truncating
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
