package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return path
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	named := writeSceneFile(t, dir, "lamp.json", `{"name": "Desk Lamp", "description": "One light", "shapes": []}`)
	unnamed := writeSceneFile(t, dir, "empty_room.json", `{"shapes": []}`)
	writeSceneFile(t, dir, "broken.json", `{"shapes": [`)
	writeSceneFile(t, dir, "notes.txt", `ignored`)

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes (broken file skipped), got %d: %+v", len(scenes), scenes)
	}

	// Sorted by display name
	expected := []SceneInfo{
		{ID: "file:" + named, DisplayName: "Desk Lamp", Description: "One light", Group: "Scene Files", Type: "file", FilePath: named},
		{ID: "file:" + unnamed, DisplayName: "Empty Room", Group: "Scene Files", Type: "file", FilePath: unnamed},
	}
	for i, want := range expected {
		if scenes[i] != want {
			t.Errorf("scene %d = %+v, want %+v", i, scenes[i], want)
		}
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	for _, dir := range []string{"", filepath.Join(t.TempDir(), "missing")} {
		scenes, err := ListSceneFiles(dir)
		if err != nil {
			t.Errorf("ListSceneFiles(%q) error: %v", dir, err)
		}
		if scenes == nil || len(scenes) != 0 {
			t.Errorf("ListSceneFiles(%q) = %v, expected empty slice", dir, scenes)
		}
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "lamp.json", `{"name": "Desk Lamp", "shapes": []}`)

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}
	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}

	builtIn := response.Groups[0]
	if builtIn.Name != "Built-in Scenes" {
		t.Errorf("Expected built-in group first, got %q", builtIn.Name)
	}

	expectedScenes := []string{"cornell", "glowing-sphere", "spheres"}
	if len(builtIn.Scenes) != len(expectedScenes) {
		t.Fatalf("Built-in scenes count = %d, want %d", len(builtIn.Scenes), len(expectedScenes))
	}
	for i, id := range expectedScenes {
		if builtIn.Scenes[i].ID != id || builtIn.Scenes[i].Type != "builtin" {
			t.Errorf("Built-in scene %d = %+v, want ID %q", i, builtIn.Scenes[i], id)
		}
	}

	if files := response.Groups[1]; files.Name != "Scene Files" || len(files.Scenes) != 1 {
		t.Errorf("Unexpected file group %+v", files)
	}
}

func TestCreate(t *testing.T) {
	for _, info := range ListBuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(info.ID)
			if err != nil {
				t.Fatalf("Create(%q) error: %v", info.ID, err)
			}
			if s.Name != info.ID {
				t.Errorf("Expected scene name %q, got %q", info.ID, s.Name)
			}
			if s.GetPrimitiveCount() == 0 || s.GetEmitterCount() == 0 {
				t.Errorf("Scene %q should contain shapes and at least one emitter", info.ID)
			}
			if err := s.GetSamplingConfig().Validate(); err != nil {
				t.Errorf("Scene %q recommends an invalid config: %v", info.ID, err)
			}
			if err := s.GetCameraConfig().Validate(); err != nil {
				t.Errorf("Scene %q has an invalid camera: %v", info.ID, err)
			}
		})
	}

	if _, err := Create("teapot"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}

	path := writeSceneFile(t, t.TempDir(), "one.json",
		`{"shapes": [{"type": "sphere", "material": "white-light", "center": [0, 0, 0], "radius": 1}]}`)
	s, err := Create("file:" + path)
	if err != nil {
		t.Fatalf("Create(file) error: %v", err)
	}
	if s.Name != "one" || s.GetPrimitiveCount() != 1 {
		t.Errorf("Unexpected file scene %+v", s)
	}
}

func TestShippedSceneFiles(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}
	if len(scenes) == 0 {
		t.Fatal("Expected at least one shipped scene file")
	}

	for _, info := range scenes {
		t.Run(info.DisplayName, func(t *testing.T) {
			s, err := Create(info.ID)
			if err != nil {
				t.Fatalf("Create(%q) error: %v", info.ID, err)
			}
			if s.GetEmitterCount() == 0 {
				t.Errorf("Scene %q has no light", info.DisplayName)
			}
			if err := s.GetSamplingConfig().Validate(); err != nil {
				t.Errorf("Scene %q recommends an invalid config: %v", info.DisplayName, err)
			}
		})
	}
}
