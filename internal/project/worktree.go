package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSearchDepth is how many directories FindWorkTree inspects,
// starting with the start directory itself.
const DefaultSearchDepth = 5

// ErrWorkTreeNotFound is returned when no enclosing git work tree exists
// within the search depth.
var ErrWorkTreeNotFound = errors.New("could not find the .git folder")

// IsWorkTree reports whether dir contains a .git entry. Both the usual .git
// directory and the .git file of linked worktrees and submodules count.
func IsWorkTree(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// FindWorkTree walks upward from start looking for the enclosing git work
// tree and returns its absolute path. At most depth directories are
// inspected (DefaultSearchDepth when depth <= 0).
func FindWorkTree(start string, depth int) (string, error) {
	if depth <= 0 {
		depth = DefaultSearchDepth
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for i := 0; i < depth; i++ {
		if IsWorkTree(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w (searched %d levels up from %s)", ErrWorkTreeNotFound, depth, start)
}
