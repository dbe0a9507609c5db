package classpath

import (
	"embed"
	"path/filepath"

	"github.com/simonhull/pdemeta/internal/generator"
	"github.com/simonhull/pdemeta/internal/module"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// FileName is the classpath document written into each plugin module.
const FileName = ".classpath"

// DefaultOutput is the compiler output folder of Tycho builds.
const DefaultOutput = "target/classes"

// Containers are always listed first, in this order.
var Containers = []string{
	"org.eclipse.jdt.launching.JRE_CONTAINER",
	"org.eclipse.pde.core.requiredPlugins",
}

// Generator generates .classpath files for plugin-like modules
type Generator struct {
	root     string
	output   string
	renderer *generator.Renderer
}

// New creates a classpath generator writing below root. An empty output
// uses DefaultOutput.
func New(root, output string) *Generator {
	if output == "" {
		output = DefaultOutput
	}
	return &Generator{
		root:     root,
		output:   output,
		renderer: generator.NewRenderer(),
	}
}

// TemplateData is the data passed to the classpath template
type TemplateData struct {
	Containers []string
	Sources    []string
	Libs       []string
	Test       bool // Mark source entries as test sources
	Output     string
}

// Generate returns one write operation per plugin-like record. Other
// packaging kinds are skipped.
func (g *Generator) Generate(records []module.Record) ([]generator.Operation, error) {
	var ops []generator.Operation
	for _, r := range records {
		if !r.Packaging().IsPluginLike() {
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

// Render builds the classpath document for r: containers, then source
// roots, then libraries, then the output folder.
func (g *Generator) Render(r module.Record) ([]byte, error) {
	return g.renderer.RenderFS(templatesFS, "templates/classpath.xml.tmpl", TemplateData{
		Containers: Containers,
		Sources:    r.Sources(),
		Libs:       r.Libs(),
		Test:       r.Packaging().IsTest(),
		Output:     g.output,
	})
}
