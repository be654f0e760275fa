package scene

import (
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewSceneFromFile loads a JSON scene file. Sampling fields the file leaves
// out fall back to the reference defaults.
func NewSceneFromFile(filename string) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, err
	}

	s, err := NewSceneFromDescription(sf)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return s, nil
}

// NewSceneFromDescription builds a scene from a parsed scene file
func NewSceneFromDescription(sf *loaders.SceneFile) (*Scene, error) {
	shapes, err := sf.BuildShapes()
	if err != nil {
		return nil, err
	}

	camera := renderer.CameraConfig{
		Center:      sf.Camera.Center.ToCore(),
		FocalLength: sf.Camera.FocalLength,
	}
	if err := camera.Validate(); err != nil {
		return nil, err
	}

	sampling := MergeSamplingConfig(renderer.DefaultSamplingConfig(), renderer.SamplingConfig{
		Width:           sf.Sampling.Width,
		Height:          sf.Sampling.Height,
		SamplesPerPixel: sf.Sampling.SamplesPerPixel,
		MaxBounces:      sf.Sampling.MaxBounces,
	})

	return &Scene{
		Name:           sf.Name,
		Description:    sf.Description,
		Shapes:         shapes,
		CameraConfig:   camera,
		SamplingConfig: sampling,
	}, nil
}
