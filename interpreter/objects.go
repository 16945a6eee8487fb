package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loxlang/golox/ast"
)

// Value is any runtime Lox value: nil, bool, float64, string, *Function,
// *NativeFunction, *Class, or *Instance. There is no interface method set
// shared by all of them; call sites type-switch where the distinction
// matters (isTruthy, stringify, isEqual, and the call/property paths).
type Value any

// callable is implemented by anything invokable with `(...)`: user-defined
// functions and methods, native functions, and classes (whose call
// constructs an instance).
type callable interface {
	Arity() int
	Call(in *Interp, args []Value) (Value, error)
}

// Function is a user-defined function or method, closed over the
// environment in which it was declared.
type Function struct {
	decl          *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme)
}

// Bind returns a copy of the method bound to instance: a new environment,
// parented on the method's original closure, with `this` defined.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewChildEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// NativeFunction wraps a Go function as a callable Lox value, per the
// language's small set of built-ins (clock).
type NativeFunction struct {
	arity int
	fn    func(in *Interp, args []Value) (Value, error)
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(in *Interp, args []Value) (Value, error) {
	return n.fn(in, args)
}

func (n *NativeFunction) String() string {
	return "<native fn>"
}

// Class is a Lox class: a name, an optional superclass, and its own
// (non-inherited) methods.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) String() string { return c.Name }

// FindMethod looks up a method by name, walking the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of `init`, or 0 if the class has no initializer.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class defines `init`, runs it
// against the constructor arguments.
func (c *Class) Call(in *Interp, args []Value) (Value, error) {
	instance := &Instance{class: c, fields: make(map[string]Value)}
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is an object created from a Class: a bag of fields plus a
// pointer back to its class for method lookup.
type Instance struct {
	class  *Class
	fields map[string]Value
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s instance", i.class.Name)
}

// Get reads a property, checking instance fields before class methods
// (fields shadow methods of the same name, per Lox semantics).
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if m, ok := i.class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set assigns a field, creating it if it doesn't already exist.
func (i *Instance) Set(name string, value Value) {
	i.fields[name] = value
}

// isTruthy implements Lox's truthiness rule: everything is truthy except
// nil and false.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's `==`: nil only equals nil, numbers/strings/bools
// compare by value, everything else (functions, classes, instances)
// compares by identity via Go's == on the underlying value.
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a Value the way `print` does.
func stringify(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	case *Function:
		return v.String()
	case *NativeFunction:
		return v.String()
	case *Class:
		return v.String()
	case *Instance:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatNumber strips a trailing ".0" so integral Lox numbers print the
// way jlox's Java-backed doubles do, without a decimal point.
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.HasSuffix(s, ".0") {
		return strings.TrimSuffix(s, ".0")
	}
	return s
}
