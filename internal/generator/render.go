package generator

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
)

// Renderer parses templates from a file system once and renders them many
// times, one document per module.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: template.FuncMap{"xml": XMLEscape},
		cache:   make(map[string]*template.Template),
	}
}

// RenderFS renders the template at path in fsys (typically an embed.FS).
// Parsed templates are cached by path.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	tmpl, err := r.lookup(fsys, path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", path, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) lookup(fsys fs.FS, path string) (*template.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[path]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
	}
	tmpl, err = template.New(path).Funcs(r.funcMap).Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", path, err)
	}

	r.mu.Lock()
	r.cache[path] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}

// XMLEscape escapes s for use in XML text or a double-quoted attribute.
func XMLEscape(s string) string {
	var buf strings.Builder
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
