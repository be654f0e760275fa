package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material describes how a surface reflects and emits light.
//
// A single Smoothness value drives both the direction blend and the color
// blend of a specular bounce. Materials are plain values and are copied into
// every primitive and hit record that references them.
type Material struct {
	DiffuseColor     core.Vec3 // Reflectance for diffuse bounces
	SpecularColor    core.Vec3 // Reflectance for specular bounces
	EmissionColor    core.Vec3 // Color of emitted light
	EmissionStrength float64   // Multiplier applied to EmissionColor
	Smoothness       float64   // 0 = fully diffuse, 1 = perfect mirror on specular bounces
	SpecularChance   float64   // Probability of taking the specular branch
}

// NewDiffuse creates a matte material with a small specular sheen, matching
// the solid presets.
func NewDiffuse(color core.Vec3) Material {
	return Material{
		DiffuseColor:   color,
		SpecularColor:  core.NewVec3(1, 1, 1),
		SpecularChance: 0.1,
		Smoothness:     0.1,
	}
}

// NewMirror creates a reflective material. specularChance is clamped to [0, 1].
func NewMirror(diffuse, specular core.Vec3, specularChance float64) Material {
	return Material{
		DiffuseColor:   diffuse,
		SpecularColor:  specular,
		SpecularChance: clamp01(specularChance),
		Smoothness:     1.0,
	}
}

// NewEmissive creates a light source that absorbs everything it does not emit
func NewEmissive(color core.Vec3, strength float64) Material {
	return Material{
		EmissionColor:    color,
		EmissionStrength: max(0, strength),
	}
}

// Emitted returns the light leaving the surface: EmissionColor * EmissionStrength
func (m Material) Emitted() core.Vec3 {
	return m.EmissionColor.Multiply(m.EmissionStrength)
}

// IsEmissive reports whether the material contributes any light
func (m Material) IsEmissive() bool {
	return m.EmissionStrength > 0 && !m.EmissionColor.IsZero()
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
