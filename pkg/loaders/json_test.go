package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

const testSceneJSON = `{
  "name": "two lights",
  "camera": {"center": [0, 0, -5]},
  "sampling": {"width": 32, "height": 16, "spp": 8},
  "materials": {
    "orange-glow": {"emission": [1, 0.5, 0], "emissionStrength": 2}
  },
  "shapes": [
    {"type": "triangle", "material": "white-solid", "a": [-1, -1, 0], "b": [1, -1, 0], "c": [0, 1, 0]},
    {"type": "sphere", "material": "orange-glow", "center": [0, 0, 3], "radius": 0.5}
  ]
}`

func TestParseSceneFile(t *testing.T) {
	sf, err := ParseSceneFile(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	if sf.Name != "two lights" {
		t.Errorf("Expected name 'two lights', got %q", sf.Name)
	}
	if sf.Camera.Center != (Vec3{0, 0, -5}) || sf.Camera.FocalLength != 1 {
		t.Errorf("Unexpected camera %+v", sf.Camera)
	}
	if sf.Sampling.Width != 32 || sf.Sampling.Height != 16 || sf.Sampling.SamplesPerPixel != 8 || sf.Sampling.MaxBounces != 0 {
		t.Errorf("Unexpected sampling %+v", sf.Sampling)
	}

	shapes, err := sf.BuildShapes()
	if err != nil {
		t.Fatalf("BuildShapes failed: %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("Expected 2 shapes, got %d", len(shapes))
	}

	triangle, ok := shapes[0].(*geometry.Triangle)
	if !ok {
		t.Fatalf("Expected first shape to be a triangle, got %T", shapes[0])
	}
	if triangle.Material != material.WhiteSolid {
		t.Errorf("Expected preset white-solid, got %+v", triangle.Material)
	}

	sphere, ok := shapes[1].(*geometry.Sphere)
	if !ok {
		t.Fatalf("Expected second shape to be a sphere, got %T", shapes[1])
	}
	if sphere.Radius() != 0.5 || sphere.Center != core.NewVec3(0, 0, 3) {
		t.Errorf("Unexpected sphere %+v", sphere)
	}
	if got := sphere.Material.Emitted(); got != core.NewVec3(2, 1, 0) {
		t.Errorf("Expected file material emission (2, 1, 0), got %v", got)
	}
}

func TestParseSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{
			name:    "unknown material",
			json:    `{"shapes": [{"type": "sphere", "material": "gold", "center": [0,0,0], "radius": 1}]}`,
			wantErr: ErrUnknownMaterial,
		},
		{
			name:    "unknown shape type",
			json:    `{"shapes": [{"type": "cube", "material": "white-solid"}]}`,
			wantErr: ErrUnknownShapeType,
		},
		{
			name:    "invalid radius",
			json:    `{"shapes": [{"type": "sphere", "material": "white-solid", "center": [0,0,0], "radius": -1}]}`,
			wantErr: geometry.ErrInvalidRadius,
		},
		{
			name:    "degenerate triangle",
			json:    `{"shapes": [{"type": "triangle", "material": "white-solid", "a": [0,0,0], "b": [1,1,1], "c": [2,2,2]}]}`,
			wantErr: geometry.ErrDegenerateTriangle,
		},
		{
			name: "out of range material",
			json: `{"materials": {"bad": {"emissionStrength": -5, "smoothness": 3, "specularChance": 7}},
				"shapes": [{"type": "sphere", "material": "bad", "center": [0,0,0], "radius": 1}]}`,
			wantErr: ErrInvalidMaterial,
		},
		{
			name: "negative emission strength",
			json: `{"materials": {"dim": {"emissionStrength": -0.5}},
				"shapes": [{"type": "sphere", "material": "dim", "center": [0,0,0], "radius": 1}]}`,
			wantErr: ErrInvalidMaterial,
		},
		{
			name: "smoothness above one",
			json: `{"materials": {"glossy": {"smoothness": 1.5}},
				"shapes": [{"type": "sphere", "material": "glossy", "center": [0,0,0], "radius": 1}]}`,
			wantErr: ErrInvalidMaterial,
		},
		{
			name: "negative specular chance",
			json: `{"materials": {"dull": {"specularChance": -0.1}},
				"shapes": [{"type": "sphere", "material": "dull", "center": [0,0,0], "radius": 1}]}`,
			wantErr: ErrInvalidMaterial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, err := ParseSceneFile(strings.NewReader(tt.json))
			if err != nil {
				t.Fatalf("ParseSceneFile failed: %v", err)
			}
			if _, err := sf.BuildShapes(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := ParseSceneFile(strings.NewReader(`{"shapes": [], "lights": []}`)); err == nil {
		t.Error("Expected unknown keys to be rejected")
	}
	if _, err := ParseSceneFile(strings.NewReader(`{"shapes": [`)); err == nil {
		t.Error("Expected truncated JSON to fail")
	}
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(testSceneJSON), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sf, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if len(sf.Shapes) != 2 {
		t.Errorf("Expected 2 shapes, got %d", len(sf.Shapes))
	}

	if _, err := LoadSceneFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
