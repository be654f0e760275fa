package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("scene")

var ErrUnknownScene = errors.New("scene: unknown scene")

// fileScenePrefix marks scene IDs that refer to a JSON file
const fileScenePrefix = "file:"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroup = "Built-in Scenes"

var builtinScenes = []struct {
	info    SceneInfo
	factory func() *Scene
}{
	{SceneInfo{ID: "cornell", DisplayName: "Cornell Room", Description: "Reference room with mirror wall, spheres and a ceiling light"}, NewCornellScene},
	{SceneInfo{ID: "glowing-sphere", DisplayName: "Glowing Sphere", Description: "One emissive sphere in empty space"}, NewGlowingSphereScene},
	{SceneInfo{ID: "spheres", DisplayName: "Spheres", Description: "Mirror spheres on a floor under a cyan light"}, NewSpheresScene},
}

// ListBuiltinScenes returns the scenes compiled into the binary
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Group = builtinGroup
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// ListSceneFiles scans dir for JSON scene files. A missing directory yields
// an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneInfo, err := readSceneFileInfo(filePath)
		if err != nil {
			// Skip broken files but keep listing the rest
			logger.Warningf("failed to read scene %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// readSceneFileInfo extracts metadata from a JSON scene file
func readSceneFileInfo(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	sceneInfo := SceneInfo{
		ID:          fileScenePrefix + filePath,
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	sf, err := loaders.LoadSceneFile(filePath)
	if err != nil {
		return sceneInfo, err
	}
	if sf.Name != "" {
		sceneInfo.DisplayName = sf.Name
	}
	sceneInfo.Description = sf.Description

	return sceneInfo, nil
}

// ListScenes returns built-in scenes followed by the scene files in dir
func ListScenes(dir string) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(ListBuiltinScenes(), files...), nil
}

// ListAllScenes returns every scene grouped by category, built-ins first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	allScenes, err := ListScenes(dir)
	if err != nil {
		return response, err
	}

	groupMap := make(map[string][]SceneInfo)
	var groupNames []string
	for _, s := range allScenes {
		if _, seen := groupMap[s.Group]; !seen && s.Group != builtinGroup {
			groupNames = append(groupNames, s.Group)
		}
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: groupMap[builtinGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// Create builds the scene with the given ID. IDs are either a built-in name
// or "file:" followed by the path of a JSON scene file.
func Create(id string) (*Scene, error) {
	if path, ok := strings.CutPrefix(id, fileScenePrefix); ok {
		return NewSceneFromFile(path)
	}

	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.factory(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
