package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/simonhull/pdemeta/internal/filesystem"
)

// FindLibraries returns library archives below moduleDir matching pattern
// (default "lib/*.jar") as sorted, slash-separated paths relative to the
// module. A missing folder yields an empty result.
func FindLibraries(moduleDir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(moduleDir), pattern)
	if err != nil {
		return nil, fmt.Errorf("matching libraries %q in %s: %w", pattern, moduleDir, err)
	}

	libs := make([]string, 0, len(matches))
	for _, m := range matches {
		if filesystem.IsFile(filepath.Join(moduleDir, filepath.FromSlash(m))) {
			libs = append(libs, m)
		}
	}
	sort.Strings(libs)
	return libs, nil
}
