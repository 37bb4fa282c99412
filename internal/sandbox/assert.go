package sandbox

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/dop251/goja"
)

// asserter backs the assert object exposed to test programs. Failing
// checks throw an Error named AssertionError.
type asserter struct {
	vm *goja.Runtime
}

func installAssert(vm *goja.Runtime) error {
	a := &asserter{vm: vm}

	fn, ok := vm.ToValue(a.ok).(*goja.Object)
	if !ok {
		return fmt.Errorf("assert is not an object")
	}

	methods := map[string]func(goja.FunctionCall) goja.Value{
		"ok":             a.ok,
		"equal":          a.equal,
		"notEqual":       a.notEqual,
		"strictEqual":    a.strictEqual,
		"notStrictEqual": a.notStrictEqual,
		"deepEqual":      a.deepEqual,
		"throws":         a.throws,
		"fail":           a.fail,
	}
	for name, method := range methods {
		if err := fn.Set(name, method); err != nil {
			return err
		}
	}

	return vm.Set("assert", fn)
}

func (a *asserter) ok(call goja.FunctionCall) goja.Value {
	value := call.Argument(0)
	if !value.ToBoolean() {
		a.throw(call.Argument(1), fmt.Sprintf("%s == true", inspect(value)))
	}
	return goja.Undefined()
}

func (a *asserter) equal(call goja.FunctionCall) goja.Value {
	actual, expected := call.Argument(0), call.Argument(1)
	if !actual.Equals(expected) {
		a.throw(call.Argument(2), fmt.Sprintf("%s == %s", inspect(actual), inspect(expected)))
	}
	return goja.Undefined()
}

func (a *asserter) notEqual(call goja.FunctionCall) goja.Value {
	actual, expected := call.Argument(0), call.Argument(1)
	if actual.Equals(expected) {
		a.throw(call.Argument(2), fmt.Sprintf("%s != %s", inspect(actual), inspect(expected)))
	}
	return goja.Undefined()
}

func (a *asserter) strictEqual(call goja.FunctionCall) goja.Value {
	actual, expected := call.Argument(0), call.Argument(1)
	if !actual.StrictEquals(expected) {
		a.throw(call.Argument(2), fmt.Sprintf("%s === %s", inspect(actual), inspect(expected)))
	}
	return goja.Undefined()
}

func (a *asserter) notStrictEqual(call goja.FunctionCall) goja.Value {
	actual, expected := call.Argument(0), call.Argument(1)
	if actual.StrictEquals(expected) {
		a.throw(call.Argument(2), fmt.Sprintf("%s !== %s", inspect(actual), inspect(expected)))
	}
	return goja.Undefined()
}

// deepEqual compares the exported Go representations, so it is structural
// but not type-exact for numbers of different JS origin.
func (a *asserter) deepEqual(call goja.FunctionCall) goja.Value {
	actual, expected := call.Argument(0), call.Argument(1)
	if !reflect.DeepEqual(actual.Export(), expected.Export()) {
		a.throw(call.Argument(2), fmt.Sprintf("%s deepEqual %s", inspect(actual), inspect(expected)))
	}
	return goja.Undefined()
}

func (a *asserter) throws(call goja.FunctionCall) goja.Value {
	block, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		panic(a.vm.NewTypeError("assert.throws expects a function"))
	}
	if _, err := block(goja.Undefined()); err == nil {
		a.throw(call.Argument(1), "Missing expected exception.")
	}
	return goja.Undefined()
}

func (a *asserter) fail(call goja.FunctionCall) goja.Value {
	a.throw(call.Argument(0), "Failed")
	return goja.Undefined()
}

// throw raises an AssertionError. A user supplied message takes precedence
// over the generated one.
func (a *asserter) throw(message goja.Value, fallback string) {
	text := fallback
	if message != nil && !goja.IsUndefined(message) {
		text = message.String()
	}

	obj, err := a.vm.New(a.vm.Get("Error"), a.vm.ToValue(text))
	if err != nil {
		panic(a.vm.NewGoError(err))
	}
	if err := obj.Set("name", "AssertionError"); err != nil {
		panic(a.vm.NewGoError(err))
	}
	panic(obj)
}

func inspect(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if s, ok := v.Export().(string); ok {
		return strconv.Quote(s)
	}
	return v.String()
}
