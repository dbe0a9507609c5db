package targetplatform

import (
	"fmt"
	"os"
	"strings"

	"github.com/simonhull/pdemeta/internal/generator"
)

// DefaultPlaceholder is substituted with the absolute git work tree path.
const DefaultPlaceholder = "${git_work_tree}"

// Generator patches the placeholder inside a target platform definition
type Generator struct {
	placeholder string
}

// New creates a generator replacing placeholder (DefaultPlaceholder when empty).
func New(placeholder string) *Generator {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Generator{placeholder: placeholder}
}

// Patch replaces every occurrence of the placeholder in content with workTree.
func (g *Generator) Patch(content []byte, workTree string) []byte {
	return []byte(strings.ReplaceAll(string(content), g.placeholder, workTree))
}

// Generate reads the definition at targetPath and returns the operation
// writing the patched text back. The existing file mode is kept.
func (g *Generator) Generate(targetPath, workTree string) (generator.Operation, error) {
	if workTree == "" {
		return nil, fmt.Errorf("work tree path is required")
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return nil, fmt.Errorf("reading target platform: %w", err)
	}
	content, err := os.ReadFile(targetPath)
	if err != nil {
		return nil, fmt.Errorf("reading target platform: %w", err)
	}

	return &generator.WriteFileOp{
		Path:    targetPath,
		Content: g.Patch(content, workTree),
		Mode:    info.Mode().Perm(),
	}, nil
}
