package interpreter_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/loxlang/golox/interpreter"
	"github.com/loxlang/golox/parser"
	"github.com/loxlang/golox/resolver"
)

// TestEndToEndPrograms snapshot-tests the printed output of a handful of
// representative Lox programs (a loop, classes with inheritance, and
// closures), each run as a whole program rather than feature by feature.
func TestEndToEndPrograms(t *testing.T) {
	programs := map[string]string{
		"fibonacci_iterative": `
			var a = 0;
			var b = 1;
			for (var i = 0; i < 8; i = i + 1) {
				print a;
				var next = a + b;
				a = b;
				b = next;
			}
		`,
		"class_hierarchy": `
			class Shape {
				area() {
					return 0;
				}
				describe() {
					print "A shape with area";
					return this.area();
				}
			}
			class Circle < Shape {
				init(radius) {
					this.radius = radius;
				}
				area() {
					return 3.14159 * this.radius * this.radius;
				}
			}
			var c = Circle(2);
			print c.describe();
		`,
		"closures_as_counters": `
			fun makeCounter() {
				var count = 0;
				fun increment() {
					count = count + 1;
					return count;
				}
				return increment;
			}
			var c1 = makeCounter();
			var c2 = makeCounter();
			print c1();
			print c1();
			print c2();
		`,
	}

	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			program, err := parser.Parse([]byte(src))
			if err != nil {
				t.Fatalf("Parse() returned unexpected error: %v", err)
			}
			locals, err := resolver.Resolve(program)
			if err != nil {
				t.Fatalf("Resolve() returned unexpected error: %v", err)
			}
			var out bytes.Buffer
			in := interpreter.New(locals, false)
			in.SetOutput(&out)
			if err := in.Interpret(program); err != nil {
				t.Fatalf("Interpret() returned unexpected error: %v", err)
			}
			snaps.MatchSnapshot(t, out.String())
		})
	}
}
