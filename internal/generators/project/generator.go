package project

import (
	"embed"
	"path/filepath"

	"github.com/simonhull/pdemeta/internal/generator"
	"github.com/simonhull/pdemeta/internal/module"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// FileName is the project descriptor written into each supported module.
const FileName = ".project"

// Builder and nature every Maven project gets.
const (
	MavenBuilder = "org.eclipse.m2e.core.maven2Builder"
	MavenNature  = "org.eclipse.m2e.core.maven2Nature"
)

// PluginBuilders are appended for plugin-like modules, in this order.
var PluginBuilders = []string{
	"org.eclipse.jdt.core.javabuilder",
	"org.eclipse.pde.ManifestBuilder",
	"org.eclipse.pde.SchemaBuilder",
}

// PluginNatures are appended for plugin-like modules, in this order.
var PluginNatures = []string{
	"org.eclipse.pde.PluginNature",
	"org.eclipse.jdt.core.javanature",
}

// Generator generates .project files
type Generator struct {
	root     string
	renderer *generator.Renderer
}

// New creates a project descriptor generator writing below root.
func New(root string) *Generator {
	return &Generator{
		root:     root,
		renderer: generator.NewRenderer(),
	}
}

// TemplateData is the data passed to the project template
type TemplateData struct {
	Name     string
	Builders []string
	Natures  []string
}

// Generate returns one write operation per record with a supported
// packaging kind (plugin, test plugin, pom, repository).
func (g *Generator) Generate(records []module.Record) ([]generator.Operation, error) {
	var ops []generator.Operation
	for _, r := range records {
		if !r.Packaging().IsSupported() {
			continue
		}

		content, err := g.Render(r)
		if err != nil {
			return nil, err
		}

		ops = append(ops, &generator.WriteFileOp{
			Path:    filepath.Join(g.root, filepath.FromSlash(r.Dir()), FileName),
			Content: content,
			Mode:    0644,
		})
	}
	return ops, nil
}

// Render builds the project descriptor for r.
func (g *Generator) Render(r module.Record) ([]byte, error) {
	data := TemplateData{
		Name:     r.Name(),
		Builders: []string{MavenBuilder},
		Natures:  []string{MavenNature},
	}
	if r.Packaging().IsPluginLike() {
		data.Builders = append(data.Builders, PluginBuilders...)
		data.Natures = append(data.Natures, PluginNatures...)
	}

	return g.renderer.RenderFS(templatesFS, "templates/project.xml.tmpl", data)
}
