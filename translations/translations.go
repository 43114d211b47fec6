// Package translations loads the embedded per-language string tables. The
// default language is always loaded first so that untranslated keys still
// render visible text, then the language selected by the LANG environment
// variable is merged on top.
package translations

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultLanguage = "en_US"

func load(allTranslations embed.FS, language string) (map[string]string, error) {
	t := make(map[string]string)
	file := fmt.Sprintf("translations/%v.yml", language)

	b, err := allTranslations.ReadFile(file)
	if err != nil {
		return t, fmt.Errorf("failed to load file %v: %w", file, err)
	}

	err = yaml.Unmarshal(b, &t)
	if err != nil {
		return t, fmt.Errorf("failed to unmarshal file %v: %w", file, err)
	}

	return t, nil
}

// language derives the table name from a LANG value such as
// "fr_FR.UTF-8" - the encoding suffix is not part of the file name.
func language() string {
	lang := os.Getenv("LANG")
	lang, _, _ = strings.Cut(lang, ".")

	return lang
}

// Load returns the merged translation table for the current environment.
func Load(allTranslations embed.FS) (map[string]string, error) {
	t, err := load(allTranslations, defaultLanguage)
	if err != nil {
		return t, fmt.Errorf("failed to load default translations %v: %w", defaultLanguage, err)
	}

	lang := language()

	switch lang {
	case "":
		fallthrough
	case defaultLanguage:
		return t, nil
	default:
		break
	}

	u, err := load(allTranslations, lang)
	if err != nil {
		// untranslated languages fall back to the default silently
		return t, nil
	}

	// merge the two maps
	for k, v := range u {
		t[k] = v
	}

	return t, nil
}
