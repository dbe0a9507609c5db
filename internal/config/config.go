package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/pdemeta/internal/discovery"
	"github.com/simonhull/pdemeta/internal/generators/classpath"
	"github.com/simonhull/pdemeta/internal/generators/javaconfig"
	"github.com/simonhull/pdemeta/internal/generators/targetplatform"
	"github.com/simonhull/pdemeta/internal/project"
)

// FileName is the optional configuration file looked up in the scan root.
const FileName = ".pdemeta.yml"

// EnvPrefix prefixes environment overrides, e.g. PDEMETA_SCAN_LIBRARIES.
const EnvPrefix = "PDEMETA"

// Config represents .pdemeta.yml configuration
type Config struct {
	Scan     ScanConfig     `yaml:"scan" mapstructure:"scan"`
	Platform PlatformConfig `yaml:"platform" mapstructure:"platform"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// ScanConfig controls module discovery
type ScanConfig struct {
	Descriptor      string   `yaml:"descriptor" mapstructure:"descriptor"`
	Exclude         []string `yaml:"exclude" mapstructure:"exclude"`
	PropertiesFile  string   `yaml:"properties_file" mapstructure:"properties_file"`
	SourceKey       string   `yaml:"source_key" mapstructure:"source_key"`
	FallbackSources []string `yaml:"fallback_sources" mapstructure:"fallback_sources"`
	Libraries       string   `yaml:"libraries" mapstructure:"libraries"`
}

// PlatformConfig controls target platform lookup and patching
type PlatformConfig struct {
	Pattern     string   `yaml:"pattern" mapstructure:"pattern"`
	Exclude     []string `yaml:"exclude" mapstructure:"exclude"`
	Placeholder string   `yaml:"placeholder" mapstructure:"placeholder"`
	SearchDepth int      `yaml:"search_depth" mapstructure:"search_depth"`
}

// OutputConfig controls generated metadata
type OutputConfig struct {
	ClasspathDir  string `yaml:"classpath_dir" mapstructure:"classpath_dir"`
	AggregateFile string `yaml:"aggregate_file" mapstructure:"aggregate_file"`
}

// Default returns the configuration matching a Kura-style Tycho tree.
func Default() *Config {
	scan := discovery.DefaultOptions()
	return &Config{
		Scan: ScanConfig{
			Descriptor:      scan.Descriptor,
			Exclude:         scan.Exclude,
			PropertiesFile:  scan.Sources.PropertiesFile,
			SourceKey:       scan.Sources.SourceKey,
			FallbackSources: scan.Sources.Fallback,
			Libraries:       scan.Libraries,
		},
		Platform: PlatformConfig{
			Pattern:     discovery.DefaultPlatformPattern,
			Exclude:     append([]string(nil), discovery.DefaultPlatformExclusions...),
			Placeholder: targetplatform.DefaultPlaceholder,
			SearchDepth: project.DefaultSearchDepth,
		},
		Output: OutputConfig{
			ClasspathDir:  classpath.DefaultOutput,
			AggregateFile: javaconfig.DefaultFileName,
		},
	}
}

// Load reads configuration for the tree at root.
//
// A .env file in root is loaded into the environment first. When path is
// empty, root/.pdemeta.yml is used if present; an explicit path must exist.
// PDEMETA_* environment variables override file values.
func Load(root, path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(root)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("scan.descriptor", cfg.Scan.Descriptor)
	v.SetDefault("scan.exclude", cfg.Scan.Exclude)
	v.SetDefault("scan.properties_file", cfg.Scan.PropertiesFile)
	v.SetDefault("scan.source_key", cfg.Scan.SourceKey)
	v.SetDefault("scan.fallback_sources", cfg.Scan.FallbackSources)
	v.SetDefault("scan.libraries", cfg.Scan.Libraries)
	v.SetDefault("platform.pattern", cfg.Platform.Pattern)
	v.SetDefault("platform.exclude", cfg.Platform.Exclude)
	v.SetDefault("platform.placeholder", cfg.Platform.Placeholder)
	v.SetDefault("platform.search_depth", cfg.Platform.SearchDepth)
	v.SetDefault("output.classpath_dir", cfg.Output.ClasspathDir)
	v.SetDefault("output.aggregate_file", cfg.Output.AggregateFile)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Scan.Descriptor == "" {
		return fmt.Errorf("scan.descriptor must not be empty")
	}
	if c.Platform.Pattern == "" {
		return fmt.Errorf("platform.pattern must not be empty")
	}
	if c.Platform.Placeholder == "" {
		return fmt.Errorf("platform.placeholder must not be empty")
	}
	if c.Platform.SearchDepth < 1 {
		return fmt.Errorf("platform.search_depth must be at least 1, got %d", c.Platform.SearchDepth)
	}
	if c.Output.AggregateFile == "" || strings.ContainsAny(c.Output.AggregateFile, `/\`) {
		return fmt.Errorf("output.aggregate_file must be a plain file name, got %q", c.Output.AggregateFile)
	}
	return nil
}

// DiscoveryOptions converts the scan section for discovery.NewScanner.
func (c *Config) DiscoveryOptions() discovery.Options {
	return discovery.Options{
		Descriptor: c.Scan.Descriptor,
		Exclude:    c.Scan.Exclude,
		Libraries:  c.Scan.Libraries,
		Sources: discovery.SourceOptions{
			PropertiesFile: c.Scan.PropertiesFile,
			SourceKey:      c.Scan.SourceKey,
			Fallback:       c.Scan.FallbackSources,
		},
	}
}

// Save writes cfg as YAML to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
