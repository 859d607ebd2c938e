package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name accepted by Resolve
	Name        string // Display name
	Description string // Optional description
	Type        string // "builtin" or "yaml"
	FilePath    string // Path to the scene file (yaml type only)
}

// Builtin scenes addressable by name
var builtins = map[string]SceneInfo{
	"cornell": {
		ID:          "cornell",
		Name:        "Cornell Box",
		Description: "Cornell box with a mirror sphere and a glass sphere",
		Type:        "builtin",
	},
}

// Builtin returns a built-in scene by name
func Builtin(name string, width, height int) (*Scene, bool) {
	switch name {
	case "cornell":
		return NewCornellScene(width, height), true
	default:
		return nil, false
	}
}

// Resolve loads a built-in scene by name, otherwise a YAML scene file
func Resolve(nameOrPath string, width, height int) (*Scene, error) {
	if s, ok := Builtin(nameOrPath, width, height); ok {
		return s, nil
	}
	return Load(nameOrPath)
}

// ListScenes returns the built-in scenes followed by the YAML scenes in dir
func ListScenes(dir string) ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, info := range builtins {
		scenes = append(scenes, info)
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	var discovered []SceneInfo
	for _, path := range files {
		info, err := ParseMetadata(path)
		if err != nil {
			return nil, err
		}
		discovered = append(discovered, info)
	}
	sort.Slice(discovered, func(i, j int) bool {
		return discovered[i].Name < discovered[j].Name
	})

	return append(scenes, discovered...), nil
}

// ParseMetadata extracts "# Scene:" and "# Description:" header comments from a scene file
func ParseMetadata(path string) (SceneInfo, error) {
	filename := filepath.Base(path)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       path,
		Name:     titleCase(nameWithoutExt),
		Type:     "yaml",
		FilePath: path,
	}

	file, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Metadata lives in the leading comment block
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		}
	}

	return info, scanner.Err()
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
