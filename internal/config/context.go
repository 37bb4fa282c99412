package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadContext builds the values injected into every test scope. Sources are
// applied in order, later ones overriding earlier keys: the YAML context
// file, the dotenv file (as a single "env" object) and --set pairs.
// It returns nil when no source is configured.
func (c *Config) LoadContext() (map[string]any, error) {
	if c.Flags.ContextFile == "" && c.Flags.EnvFile == "" && len(c.Flags.Set) == 0 {
		return nil, nil
	}

	values := make(map[string]any)

	if c.Flags.ContextFile != "" {
		fileValues, err := readContextFile(c.Flags.ContextFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	if c.Flags.EnvFile != "" {
		env, err := godotenv.Read(c.Flags.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", c.Flags.EnvFile, err)
		}
		envValues := make(map[string]any, len(env))
		for k, v := range env {
			envValues[k] = v
		}
		values[EnvContextKey] = envValues
	}

	for _, pair := range c.Flags.Set {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set value %q: expected key=value", pair)
		}
		values[key] = parseScalar(value)
	}

	return values, nil
}

func readContextFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read context file: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse context file %s: %w", path, err)
	}
	return values, nil
}

// parseScalar turns a --set value into a bool or number when it looks like
// one, and leaves it as a string otherwise.
func parseScalar(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
