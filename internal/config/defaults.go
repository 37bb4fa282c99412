package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultExamplesDir is the directory searched when no files are given
	DefaultExamplesDir = "test/examples"
	// DefaultExtension is the extension of discovered test files
	DefaultExtension = ".js"
	// EnvContextKey is the context name under which --env-file values are exposed
	EnvContextKey = "env"
)
