package cli

import "vmtest/internal/config"

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
	Verbose       bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Dir:           f.Dir,
		Extension:     f.Extension,
		NameFilter:    f.NameFilter,
		TransformPath: f.TransformPath,
		ContextFile:   f.ContextFile,
		EnvFile:       f.EnvFile,
		Set:           append([]string(nil), f.Set...),
		Progress:      f.Progress,
		OpenFailures:  f.OpenFailures,
		NoColor:       f.NoColor,
	}
}
