// Package module defines the record produced for each discovered build module.
package module

import "encoding/json"

// Record describes one module found during discovery. Records are built once
// and only read afterwards, so all fields are unexported and slice accessors
// hand out copies.
type Record struct {
	dir          string
	descriptor   string
	name         string
	packaging    Packaging
	rawPackaging string
	sources      []string
	libs         []string
}

// Spec carries the values a Record is built from.
type Spec struct {
	Dir          string   // Module directory relative to the scan root ("." for the root)
	Descriptor   string   // Descriptor path relative to the scan root
	Name         string   // artifactId
	RawPackaging string   // <packaging> text as written in the descriptor
	Sources      []string // Existing source roots relative to Dir
	Libs         []string // Library archives relative to Dir (e.g. "lib/foo.jar")
}

// New builds an immutable Record from spec.
func New(spec Spec) Record {
	return Record{
		dir:          spec.Dir,
		descriptor:   spec.Descriptor,
		name:         spec.Name,
		packaging:    ParsePackaging(spec.RawPackaging),
		rawPackaging: spec.RawPackaging,
		sources:      clone(spec.Sources),
		libs:         clone(spec.Libs),
	}
}

func (r Record) Dir() string          { return r.dir }
func (r Record) Descriptor() string   { return r.descriptor }
func (r Record) Name() string         { return r.name }
func (r Record) Packaging() Packaging { return r.packaging }

// RawPackaging is the packaging value exactly as the descriptor declares it.
func (r Record) RawPackaging() string { return r.rawPackaging }

// Sources returns a copy of the module's source roots in resolution order.
func (r Record) Sources() []string { return clone(r.sources) }

// Libs returns a copy of the module's library archive paths.
func (r Record) Libs() []string { return clone(r.libs) }

// MarshalJSON renders the record for the scan command.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path       string   `json:"path"`
		Descriptor string   `json:"descriptor"`
		Name       string   `json:"name"`
		Packaging  string   `json:"packaging"`
		Sources    []string `json:"sources"`
		Libs       []string `json:"libs"`
	}{
		Path:       r.dir,
		Descriptor: r.descriptor,
		Name:       r.name,
		Packaging:  r.rawPackaging,
		Sources:    nonNil(r.sources),
		Libs:       nonNil(r.libs),
	})
}

// PluginLike filters records down to those needing a classpath document,
// keeping their order.
func PluginLike(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if r.packaging.IsPluginLike() {
			out = append(out, r)
		}
	}
	return out
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
