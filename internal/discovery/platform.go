package discovery

import (
	"github.com/simonhull/pdemeta/internal/filesystem"
)

// DefaultPlatformPattern matches target platform definitions anywhere in the tree.
const DefaultPlatformPattern = "**/*.target"

// DefaultPlatformExclusions skips the copies shipped in distribution folders.
var DefaultPlatformExclusions = []string{"distrib"}

// FindTargetPlatform returns the single target platform file below root,
// relative to root. Zero or several candidates yield a *TargetPlatformError.
func FindTargetPlatform(root, pattern string, exclusions []string) (string, error) {
	if pattern == "" {
		pattern = DefaultPlatformPattern
	}

	found, err := filesystem.MatchFiles(root, pattern, filesystem.WalkOptions{})
	if err != nil {
		return "", err
	}

	candidates := filesystem.ExcludeContaining(found, exclusions)
	if len(candidates) != 1 {
		return "", &TargetPlatformError{Found: candidates}
	}
	return candidates[0], nil
}
