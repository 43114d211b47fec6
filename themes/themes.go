// Package themes loads the embedded color tables. A theme is a flat map of
// element names to tview color tags.
package themes

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultTheme = "standard"

func load(allThemes embed.FS, theme string) (map[string]string, error) {
	t := make(map[string]string)
	file := fmt.Sprintf("themes/%v.yml", theme)

	b, err := allThemes.ReadFile(file)
	if err != nil {
		return t, fmt.Errorf("failed to load file %v: %w", file, err)
	}

	err = yaml.Unmarshal(b, &t)
	if err != nil {
		return t, fmt.Errorf("failed to unmarshal file %v: %w", file, err)
	}

	return t, nil
}

// Load returns the color table for the requested theme. The default theme is
// always loaded first, so that elements left undefined in the requested theme
// still have a usable color.
func Load(allThemes embed.FS, theme string) (map[string]string, error) {
	t, err := load(allThemes, defaultTheme)
	if err != nil {
		return t, fmt.Errorf("failed to load default theme %v: %w", defaultTheme, err)
	}

	switch theme {
	case "":
		fallthrough
	case defaultTheme:
		return t, nil
	default:
		break
	}

	u, err := load(allThemes, theme)
	if err != nil {
		return t, fmt.Errorf("failed to load specified theme %v: %w", theme, err)
	}

	// merge the two maps
	for k, v := range u {
		t[k] = v
	}

	return t, nil
}
