package discovery

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"

	"github.com/simonhull/pdemeta/internal/filesystem"
)

// SourceOptions controls how source roots are resolved for a module.
type SourceOptions struct {
	PropertiesFile string   // Companion properties file name (build.properties)
	SourceKey      string   // Key listing source roots ("source..")
	Fallback       []string // Conventional roots tried when the file yields nothing
}

// ResolveSources returns the existing source roots of the module in moduleDir.
//
// Roots listed under SourceKey in the properties file win. When the file is
// absent, lacks the key, or names no existing directory, the fallback roots
// are tried instead. The result may be empty.
func ResolveSources(moduleDir string, opts SourceOptions) ([]string, error) {
	listed, err := readSourceKey(filepath.Join(moduleDir, opts.PropertiesFile), opts.SourceKey)
	if err != nil {
		return nil, err
	}

	if sources := existingDirs(moduleDir, listed); len(sources) > 0 {
		return sources, nil
	}
	return existingDirs(moduleDir, opts.Fallback), nil
}

// readSourceKey returns the comma separated entries of key, or nil when the
// file or the key does not exist.
func readSourceKey(path, key string) ([]string, error) {
	if !filesystem.IsFile(path) {
		return nil, nil
	}

	loader := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	props, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	value, ok := props.Get(key)
	if !ok {
		return nil, nil
	}
	return strings.Split(value, ","), nil
}

// existingDirs trims and de-duplicates candidates, keeping the ones that are
// directories below moduleDir, in their original order.
func existingDirs(moduleDir string, candidates []string) []string {
	var out []string
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		if filesystem.IsDir(filepath.Join(moduleDir, filepath.FromSlash(c))) {
			out = append(out, c)
		}
	}
	return out
}
