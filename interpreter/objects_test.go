package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	assert.False(t, isTruthy(nil))
	assert.False(t, isTruthy(false))
	assert.True(t, isTruthy(true))
	assert.True(t, isTruthy(0.0))
	assert.True(t, isTruthy(""))
}

func TestIsEqual(t *testing.T) {
	assert.True(t, isEqual(nil, nil))
	assert.False(t, isEqual(nil, false))
	assert.True(t, isEqual(1.0, 1.0))
	assert.False(t, isEqual(1.0, 2.0))
	assert.True(t, isEqual("a", "a"))
	assert.False(t, isEqual("a", "b"))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "nil", stringify(nil))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "3", stringify(3.0))
	assert.Equal(t, "3.25", stringify(3.25))
	assert.Equal(t, "hello", stringify("hello"))
}

func TestClassFindMethodWalksSuperclassChain(t *testing.T) {
	base := &Class{Name: "Base", Methods: map[string]*Function{
		"greet": {},
	}}
	derived := &Class{Name: "Derived", Superclass: base, Methods: map[string]*Function{}}

	_, ok := derived.FindMethod("greet")
	assert.True(t, ok, "FindMethod should find a method declared on the superclass")

	_, ok = derived.FindMethod("missing")
	assert.False(t, ok)
}

func TestInstanceGetPrefersFieldOverMethod(t *testing.T) {
	class := &Class{Name: "C", Methods: map[string]*Function{
		"x": {},
	}}
	instance := &Instance{class: class, fields: map[string]Value{"x": 42.0}}

	v, ok := instance.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 42.0, v)
}
