package material

import "github.com/df07/go-pathtracer/pkg/core"

// Preset materials used by the built-in scenes.
var (
	WhiteSolid = Material{
		DiffuseColor:   core.NewVec3(1.0, 1.0, 1.0),
		SpecularColor:  core.NewVec3(1.0, 1.0, 1.0),
		SpecularChance: 0.1,
		Smoothness:     0.1,
	}
	RedSolid = Material{
		DiffuseColor:   core.NewVec3(1.0, 0.1, 0.1),
		SpecularColor:  core.NewVec3(1.0, 0.0, 0.0),
		SpecularChance: 0.1,
		Smoothness:     0.1,
	}
	GreenSolid = Material{
		DiffuseColor:   core.NewVec3(0.1, 1.0, 0.1),
		SpecularColor:  core.NewVec3(1.0, 0.0, 0.0),
		SpecularChance: 0.1,
		Smoothness:     0.1,
	}
	// The mirror presets carry a white emission color with zero strength,
	// so they never glow.
	WhiteMirror = Material{
		DiffuseColor:   core.NewVec3(1.0, 1.0, 1.0),
		SpecularColor:  core.NewVec3(1.0, 1.0, 1.0),
		EmissionColor:  core.NewVec3(1.0, 1.0, 1.0),
		SpecularChance: 0.1,
		Smoothness:     1.0,
	}
	RedMirror = Material{
		DiffuseColor:   core.NewVec3(1.0, 0.0, 0.0),
		SpecularColor:  core.NewVec3(0.9, 0.8, 0.8),
		EmissionColor:  core.NewVec3(1.0, 1.0, 1.0),
		SpecularChance: 1.0,
		Smoothness:     1.0,
	}
	CyanMirror = Material{
		DiffuseColor:   core.NewVec3(1.0, 1.0, 1.0),
		SpecularColor:  core.NewVec3(0.8, 0.9, 0.9),
		EmissionColor:  core.NewVec3(1.0, 1.0, 1.0),
		SpecularChance: 0.9,
		Smoothness:     1.0,
	}
	WhiteLight = NewEmissive(core.NewVec3(1.0, 1.0, 1.0), 1.0)
	CyanLight  = NewEmissive(core.NewVec3(0.0, 1.0, 1.0), 1.0)
	WhiteGlow  = Material{
		DiffuseColor:     core.NewVec3(1.0, 1.0, 1.0),
		SpecularColor:    core.NewVec3(1.0, 1.0, 1.0),
		EmissionColor:    core.NewVec3(1.0, 1.0, 1.0),
		EmissionStrength: 0.2,
		SpecularChance:   0.1,
		Smoothness:       0.1,
	}
)

// Presets maps preset names to materials, for scene files
var Presets = map[string]Material{
	"white-solid":  WhiteSolid,
	"red-solid":    RedSolid,
	"green-solid":  GreenSolid,
	"white-mirror": WhiteMirror,
	"red-mirror":   RedMirror,
	"cyan-mirror":  CyanMirror,
	"white-light":  WhiteLight,
	"cyan-light":   CyanLight,
	"white-glow":   WhiteGlow,
}
