package config

import (
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Discovery settings
	ExamplesDir string
	Extension   string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Dir           string
	Extension     string
	NameFilter    string
	TransformPath string
	ContextFile   string
	EnvFile       string
	Set           []string
	Progress      bool
	OpenFailures  bool
	NoColor       bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath: DefaultProjectPath,
		ExamplesDir: DefaultExamplesDir,
		Extension:   DefaultExtension,
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.Extension != "" {
		cfg.Extension = normalizeExtension(flags.Extension)
	}

	return cfg
}

// GetExamplesPath returns the directory to discover tests in, using the
// flag if provided
func (c *Config) GetExamplesPath() string {
	dir := c.ExamplesDir
	if c.Flags.Dir != "" {
		dir = c.Flags.Dir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.ProjectPath, dir)
}

// GetExtension returns the test file extension
func (c *Config) GetExtension() string {
	return c.Extension
}

func normalizeExtension(ext string) string {
	if ext == "" || ext[0] == '.' {
		return ext
	}
	return "." + ext
}
