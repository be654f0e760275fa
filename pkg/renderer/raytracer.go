package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxBounces      int   // Maximum surface interactions per path
	Seed            int64 // Seed for the reference sampler and per-tile generators
}

// DefaultSamplingConfig returns the reference render settings
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           250,
		Height:          250,
		SamplesPerPixel: 160,
		MaxBounces:      10,
		Seed:            42,
	}
}

// Validate checks that the configuration can produce an image
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxBounces < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBounces, c.MaxBounces)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCameraConfig() CameraConfig
	GetWorld() geometry.Shape
}

// Raytracer turns a scene into an image by averaging path-traced samples
// through every pixel.
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
	sampler    core.Sampler
}

// NewRaytracer validates the configuration and prepares a raytracer for scene
func NewRaytracer(scene Scene, config SamplingConfig) (*Raytracer, error) {
	if scene == nil {
		return nil, ErrSceneNotDefined
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cameraConfig := scene.GetCameraConfig()
	if err := cameraConfig.Validate(); err != nil {
		return nil, err
	}

	return &Raytracer{
		world:      scene.GetWorld(),
		camera:     NewCamera(cameraConfig, config.Width, config.Height),
		integrator: integrator.NewPathTracingIntegrator(config.MaxBounces),
		config:     config,
		sampler:    core.NewSeededSampler(config.Seed),
	}, nil
}

// Config returns the sampling configuration in use
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// RenderPass renders the full image on the calling goroutine using a single
// sampler. Pixels are visited column by column, top to bottom within a
// column. onColumn, if not nil, is called after each finished column.
// Repeated calls continue the same random sequence.
func (rt *Raytracer) RenderPass(onColumn func(column int)) (*Frame, RenderStats) {
	start := time.Now()
	frame := NewFrame(rt.config.Width, rt.config.Height)
	stats := newRenderStats(rt.config.Width*rt.config.Height, rt.config.SamplesPerPixel)

	for i := 0; i < rt.config.Width; i++ {
		for j := 0; j < rt.config.Height; j++ {
			var ps PixelStats
			rt.samplePixel(i, j, &ps, rt.sampler, rt.config.SamplesPerPixel)
			frame.SetPixel(i, j, ps.GetColor())
			stats.update(ps.SampleCount)
		}
		if onColumn != nil {
			onColumn(i)
		}
	}

	stats.finalize()
	stats.RenderTime = time.Since(start)
	return frame, stats
}

// samplePixel adds samples to ps until it holds targetSamples
func (rt *Raytracer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler, targetSamples int) int {
	initialSampleCount := ps.SampleCount
	// Every sample of a pixel uses the same primary ray
	ray := rt.camera.GetRay(i, j)

	for ps.SampleCount < targetSamples {
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, sampler))
	}

	return ps.SampleCount - initialSampleCount
}
