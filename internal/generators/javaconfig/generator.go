package javaconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/simonhull/pdemeta/internal/generator"
	"github.com/simonhull/pdemeta/internal/module"
)

// DefaultFileName is the aggregate configuration read by the editor.
const DefaultFileName = "javaConfig.json"

// Document is the aggregate configuration. Field order is the output order.
type Document struct {
	Projects       []string `json:"projects"`
	TargetPlatform string   `json:"targetPlatform"`
}

// Generator generates the aggregate javaConfig.json at the scan root
type Generator struct {
	root     string
	fileName string
}

// New creates a generator writing fileName (DefaultFileName when empty) into root.
func New(root, fileName string) *Generator {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Generator{root: root, fileName: fileName}
}

// Build lists the plugin-like module directories in discovery order.
func Build(records []module.Record, targetPlatform string) Document {
	doc := Document{Projects: []string{}, TargetPlatform: targetPlatform}
	for _, r := range module.PluginLike(records) {
		doc.Projects = append(doc.Projects, r.Dir())
	}
	return doc
}

// Generate returns the write operation for the aggregate document.
// targetPlatform must be the single target platform path, relative to root.
func (g *Generator) Generate(records []module.Record, targetPlatform string) (generator.Operation, error) {
	if targetPlatform == "" {
		return nil, fmt.Errorf("target platform path is required")
	}

	content, err := Render(Build(records, targetPlatform))
	if err != nil {
		return nil, err
	}

	return &generator.WriteFileOp{
		Path:    filepath.Join(g.root, g.fileName),
		Content: content,
		Mode:    0644,
	}, nil
}

// Render encodes doc with 4-space indentation.
func Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", DefaultFileName, err)
	}
	return buf.Bytes(), nil
}
