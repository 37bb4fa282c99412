package sandbox

import (
	"fmt"
	"os"
	"sync"

	"github.com/dop251/goja"
)

// TransformFunc rewrites test source before it is evaluated
type TransformFunc func(source, testName, filePath string) (string, error)

// ScriptTransform is a source transform implemented in JavaScript. The
// script must define a global function
//
//	function transform(source, testName, filePath) { return source; }
//
// The runtime is created once and reused for every call.
type ScriptTransform struct {
	path string

	mu sync.Mutex
	vm *goja.Runtime
	fn goja.Callable
}

// LoadTransform compiles the transform script at path
func LoadTransform(path string) (*ScriptTransform, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transform script: %w", err)
	}
	return CompileTransform(path, string(source))
}

// CompileTransform compiles a transform script from source
func CompileTransform(name, source string) (*ScriptTransform, error) {
	vm := goja.New()
	if _, err := vm.RunScript(name, source); err != nil {
		return nil, fmt.Errorf("evaluate transform script %s: %w", name, scriptError(err))
	}

	fn, ok := goja.AssertFunction(vm.Get("transform"))
	if !ok {
		return nil, fmt.Errorf("transform script %s does not define a transform function", name)
	}

	return &ScriptTransform{path: name, vm: vm, fn: fn}, nil
}

// Transform calls the script's transform function. A result that is not a
// string is rejected instead of being coerced.
func (t *ScriptTransform) Transform(source, testName, filePath string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	result, err := t.fn(goja.Undefined(), t.vm.ToValue(source), t.vm.ToValue(testName), t.vm.ToValue(filePath))
	if err != nil {
		return "", scriptError(err)
	}

	text, ok := result.Export().(string)
	if !ok {
		return "", fmt.Errorf("expected `source` to be a string, but got: %s", inspect(result))
	}
	return text, nil
}

// Func returns the transform as a plain function value
func (t *ScriptTransform) Func() TransformFunc {
	return t.Transform
}
