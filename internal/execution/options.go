package execution

import (
	"log/slog"

	"vmtest/internal/sandbox"
)

// Transform rewrites the raw source of a test before it is evaluated
type Transform func(source, testName, filePath string) (string, error)

// Options configures a run
type Options struct {
	// Transform is applied to every test source, if set
	Transform Transform
	// Context entries are shallow-copied into every test's scope. Reference
	// values (maps, slices, pointers, functions) stay shared between tests
	// of a run. Pass a pointer to a slice to also see growth after the run.
	Context map[string]any
	// Logger receives run diagnostics; nil uses slog.Default()
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Invocation is the canonical shape of the arguments to a run
type Invocation struct {
	Files   []string
	Options Options
}

// FromFiles creates an invocation for an explicit file list
func FromFiles(files []string) Invocation {
	return Invocation{Files: files}
}

// FromTransform creates an invocation that only sets a transform
func FromTransform(transform Transform) Invocation {
	return Invocation{Options: Options{Transform: transform}}
}

// FromOptions creates an invocation from options alone
func FromOptions(opts Options) Invocation {
	return Invocation{Options: opts}
}

// NewInvocation creates an invocation from files and options. Nil options
// default to the zero Options.
func NewInvocation(files []string, opts *Options) Invocation {
	inv := Invocation{Files: files}
	if opts != nil {
		inv.Options = *opts
	}
	return inv
}

// NormalizeArgs reconciles loosely typed arguments into an Invocation.
//
// With one argument, a function becomes the transform, an options value
// (Options, *Options or a map with "transform"/"context" keys) becomes the
// options, and anything else is treated as the file list. With two
// arguments the first is always the files and the second the options.
// Shapes it does not recognise are ignored rather than rejected.
func NormalizeArgs(args ...any) Invocation {
	switch len(args) {
	case 0:
		return Invocation{}
	case 1:
		arg := args[0]
		if transform, ok := asTransform(arg); ok {
			return FromTransform(transform)
		}
		if opts, ok := asOptions(arg); ok {
			return FromOptions(opts)
		}
		return FromFiles(asFiles(arg))
	default:
		inv := FromFiles(asFiles(args[0]))
		if opts, ok := asOptions(args[1]); ok {
			inv.Options = opts
		} else if transform, ok := asTransform(args[1]); ok {
			inv.Options.Transform = transform
		}
		return inv
	}
}

func asTransform(arg any) (Transform, bool) {
	switch v := arg.(type) {
	case Transform:
		return v, v != nil
	case func(string, string, string) (string, error):
		return v, v != nil
	case sandbox.TransformFunc:
		return Transform(v), v != nil
	}
	return nil, false
}

func asOptions(arg any) (Options, bool) {
	switch v := arg.(type) {
	case Options:
		return v, true
	case *Options:
		if v == nil {
			return Options{}, true
		}
		return *v, true
	case map[string]any:
		var opts Options
		if t, ok := asTransform(v["transform"]); ok {
			opts.Transform = t
		}
		if c, ok := v["context"].(map[string]any); ok {
			opts.Context = c
		}
		return opts, true
	}
	return Options{}, false
}

func asFiles(arg any) []string {
	switch v := arg.(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}
