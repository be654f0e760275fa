package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	ErrUnknownMaterial  = errors.New("loaders: unknown material")
	ErrUnknownShapeType = errors.New("loaders: unknown shape type")
	ErrInvalidMaterial  = errors.New("loaders: invalid material")
)

// Vec3 is written as a JSON array [x, y, z]
type Vec3 [3]float64

// ToCore converts to the renderer vector type
func (v Vec3) ToCore() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneFile is the on-disk description of a scene
type SceneFile struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Sampling    SamplingCfg            `json:"sampling,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials,omitempty"`
	Shapes      []ShapeCfg             `json:"shapes"`
}

type CameraCfg struct {
	Center      Vec3    `json:"center"`
	FocalLength float64 `json:"focalLength,omitempty"` // defaults to 1
}

// SamplingCfg holds recommended render settings; zero fields fall back to defaults
type SamplingCfg struct {
	Width           int `json:"width,omitempty"`
	Height          int `json:"height,omitempty"`
	SamplesPerPixel int `json:"spp,omitempty"`
	MaxBounces      int `json:"maxBounces,omitempty"`
}

type MaterialCfg struct {
	Diffuse          Vec3    `json:"diffuse"`
	Specular         Vec3    `json:"specular"`
	Emission         Vec3    `json:"emission"`
	EmissionStrength float64 `json:"emissionStrength,omitempty"`
	Smoothness       float64 `json:"smoothness,omitempty"`
	SpecularChance   float64 `json:"specularChance,omitempty"`
}

// ShapeCfg describes a sphere (center, radius) or a triangle (a, b, c).
// Material names refer to the file's materials first, then to the presets.
type ShapeCfg struct {
	Type     string  `json:"type"` // "sphere" or "triangle"
	Material string  `json:"material"`
	Center   Vec3    `json:"center,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	A        Vec3    `json:"a,omitempty"`
	B        Vec3    `json:"b,omitempty"`
	C        Vec3    `json:"c,omitempty"`
}

// LoadSceneFile reads and parses a JSON scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sf, nil
}

// ParseSceneFile decodes a scene description. Unknown keys are rejected.
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var sf SceneFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if sf.Camera.FocalLength == 0 {
		sf.Camera.FocalLength = 1
	}
	return &sf, nil
}

// Build validates and constructs the runtime material. Emission strength
// must be non-negative; smoothness and specular chance lie in [0, 1].
func (mc MaterialCfg) Build() (material.Material, error) {
	if !(mc.EmissionStrength >= 0) {
		return material.Material{}, fmt.Errorf("%w: emission strength %v is negative", ErrInvalidMaterial, mc.EmissionStrength)
	}
	if !inUnitRange(mc.Smoothness) {
		return material.Material{}, fmt.Errorf("%w: smoothness %v outside [0, 1]", ErrInvalidMaterial, mc.Smoothness)
	}
	if !inUnitRange(mc.SpecularChance) {
		return material.Material{}, fmt.Errorf("%w: specular chance %v outside [0, 1]", ErrInvalidMaterial, mc.SpecularChance)
	}

	return material.Material{
		DiffuseColor:     mc.Diffuse.ToCore(),
		SpecularColor:    mc.Specular.ToCore(),
		EmissionColor:    mc.Emission.ToCore(),
		EmissionStrength: mc.EmissionStrength,
		Smoothness:       mc.Smoothness,
		SpecularChance:   mc.SpecularChance,
	}, nil
}

// NaN fails both comparisons
func inUnitRange(x float64) bool {
	return x >= 0 && x <= 1
}

// ResolveMaterial looks a material name up in the file, then in the presets
func (sf *SceneFile) ResolveMaterial(name string) (material.Material, error) {
	if mc, ok := sf.Materials[name]; ok {
		m, err := mc.Build()
		if err != nil {
			return material.Material{}, fmt.Errorf("material %q: %w", name, err)
		}
		return m, nil
	}
	if m, ok := material.Presets[name]; ok {
		return m, nil
	}
	return material.Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
}

// Build validates and constructs the shape.
func (sc ShapeCfg) Build(mat material.Material) (geometry.Shape, error) {
	switch sc.Type {
	case "sphere":
		sphere, err := geometry.NewSphere(sc.Center.ToCore(), sc.Radius, mat)
		if err != nil {
			return nil, err
		}
		return sphere, nil
	case "triangle":
		triangle, err := geometry.NewTriangle(sc.A.ToCore(), sc.B.ToCore(), sc.C.ToCore(), mat)
		if err != nil {
			return nil, err
		}
		return triangle, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeType, sc.Type)
	}
}

// BuildShapes constructs every shape in file order
func (sf *SceneFile) BuildShapes() (geometry.ShapeList, error) {
	shapes := make(geometry.ShapeList, 0, len(sf.Shapes))
	for i, sc := range sf.Shapes {
		mat, err := sf.ResolveMaterial(sc.Material)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shape, err := sc.Build(mat)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}
