package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// ScatterResult contains the outcome of one surface bounce
type ScatterResult struct {
	Direction   core.Vec3 // Outgoing unit direction
	Attenuation core.Vec3 // Blended reflectance to fold into the path throughput
	Specular    bool      // Whether the specular branch was taken
}

// Scatter samples an outgoing direction for a ray arriving along incoming at a
// surface with the given unit normal.
//
// The random direction is drawn before the specular coin flip. The weight
// w = Smoothness*isSpecular blends diffuse and mirror directions and the
// diffuse and specular colors alike.
func (m Material) Scatter(incoming, normal core.Vec3, sampler core.Sampler) ScatterResult {
	diffuseDir := normal.Add(core.RandomDirection(sampler)).Normalize()
	reflectDir := core.Reflect(incoming, normal)

	isSpecular := 0.0
	if m.SpecularChance > sampler.Get1D() {
		isSpecular = 1.0
	}
	w := m.Smoothness * isSpecular

	direction := diffuseDir.Multiply(1 - w).Add(reflectDir.Multiply(w)).Normalize()
	attenuation := m.DiffuseColor.Multiply(1 - w).Add(m.SpecularColor.Multiply(w))

	return ScatterResult{
		Direction:   direction,
		Attenuation: attenuation,
		Specular:    isSpecular > 0,
	}
}
