package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"

	// FileIDPrefix marks scene IDs that refer to JSON files in a scenes directory
	FileIDPrefix = "file:"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier, accepted by the render API
	Name        string `json:"name"`               // Scene name
	Description string `json:"description"`        // Optional description
	Group       string `json:"group"`              // Grouping category
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the scene file (file type only)
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

// sceneMetadata holds the descriptive fields of a JSON scene file
type sceneMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// ListBuiltinScenes returns the scenes constructed in code, sorted by ID
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builders))
	for _, name := range Names() {
		b := builders[name]
		scenes = append(scenes, SceneInfo{
			ID:          name,
			Name:        b.displayName,
			Description: b.description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	return scenes
}

// ListSceneFiles scans dir for JSON scene files. A missing directory yields
// an empty list, and files with unreadable metadata are skipped.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but keep the other files listed
			fmt.Printf("Warning: skipping scene file: %v\n", err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads the descriptive fields of a JSON scene file.
// Missing fields fall back to values derived from the file name.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       FileIDPrefix + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    fileGroup,
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var meta sceneMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, fmt.Errorf("failed to parse metadata for %s: %w", filePath, err)
	}

	if meta.Name != "" {
		info.Name = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description

	return info, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
// with the built-in group first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(ListBuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: groupMap[builtinGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// FindSceneFile returns the file path of a discovered scene ID such as
// "file:sky-dome". Only files found in dir are accepted.
func FindSceneFile(dir, id string) (string, error) {
	if !strings.HasPrefix(id, FileIDPrefix) {
		return "", fmt.Errorf("scene %q is not a file scene", id)
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		return "", err
	}
	for _, s := range scenes {
		if s.ID == id {
			return s.FilePath, nil
		}
	}
	return "", fmt.Errorf("unknown scene %q", id)
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
