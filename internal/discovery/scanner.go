package discovery

import (
	"io"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/simonhull/pdemeta/internal/filesystem"
	"github.com/simonhull/pdemeta/internal/module"
)

// Options configures a Scanner. Zero values fall back to DefaultOptions.
type Options struct {
	Descriptor string   // Glob for descriptor files, relative to the root
	Exclude    []string // Path substrings that drop a descriptor
	Libraries  string   // Glob for library archives, relative to a module
	Sources    SourceOptions
}

// DefaultExclusions are the path substrings skipped in a Kura-style tree.
var DefaultExclusions = []string{"target", "tools", "distrib", "emulator", "features", "test-util", "examples"}

// DefaultOptions returns the conventional Maven/Tycho layout.
func DefaultOptions() Options {
	return Options{
		Descriptor: "**/pom.xml",
		Exclude:    append([]string(nil), DefaultExclusions...),
		Libraries:  "lib/*.jar",
		Sources: SourceOptions{
			PropertiesFile: "build.properties",
			SourceKey:      "source..",
			Fallback:       []string{"src/main/java", "src/test/java"},
		},
	}
}

// Scanner discovers module records below a root directory.
type Scanner struct {
	opts   Options
	logger *log.Logger
}

// NewScanner creates a scanner. A nil logger discards output.
func NewScanner(opts Options, logger *log.Logger) *Scanner {
	defaults := DefaultOptions()
	if opts.Descriptor == "" {
		opts.Descriptor = defaults.Descriptor
	}
	if opts.Exclude == nil {
		opts.Exclude = defaults.Exclude
	}
	if opts.Libraries == "" {
		opts.Libraries = defaults.Libraries
	}
	if opts.Sources.PropertiesFile == "" {
		opts.Sources.PropertiesFile = defaults.Sources.PropertiesFile
	}
	if opts.Sources.SourceKey == "" {
		opts.Sources.SourceKey = defaults.Sources.SourceKey
	}
	if opts.Sources.Fallback == nil {
		opts.Sources.Fallback = defaults.Sources.Fallback
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scanner{opts: opts, logger: logger}
}

// Discover returns one record per descriptor below root, sorted by
// descriptor path. A single unreadable or incomplete descriptor fails the
// whole call.
func (s *Scanner) Discover(root string) ([]module.Record, error) {
	found, err := filesystem.MatchFiles(root, s.opts.Descriptor, filesystem.WalkOptions{})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Found descriptor files", "count", len(found))

	descriptors := filesystem.ExcludeContaining(found, s.opts.Exclude)
	s.logger.Debug("Descriptor files after exclusions", "count", len(descriptors), "excluded", len(found)-len(descriptors))

	records := make([]module.Record, 0, len(descriptors))
	for _, rel := range descriptors {
		record, err := s.load(root, rel)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *Scanner) load(root, rel string) (module.Record, error) {
	s.logger.Debug("Parsing descriptor", "path", rel)

	desc, err := ParseDescriptor(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return module.Record{}, err
	}

	dir := path.Dir(rel)
	moduleDir := filepath.Join(root, filepath.FromSlash(dir))

	libs, err := FindLibraries(moduleDir, s.opts.Libraries)
	if err != nil {
		return module.Record{}, err
	}

	sources, err := ResolveSources(moduleDir, s.opts.Sources)
	if err != nil {
		return module.Record{}, err
	}
	if len(sources) == 0 {
		s.logger.Warn("No sources found for project", "name", desc.ArtifactID, "path", dir)
	}

	return module.New(module.Spec{
		Dir:          dir,
		Descriptor:   rel,
		Name:         desc.ArtifactID,
		RawPackaging: desc.Packaging,
		Sources:      sources,
		Libs:         libs,
	}), nil
}
