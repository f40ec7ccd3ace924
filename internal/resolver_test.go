package internal

import "testing"

func resolveSource(t *testing.T, source string) (*interpreterState, map[expr]int) {
	t.Helper()
	state, tp := parseSource(source)
	locals := make(map[expr]int)
	newResolver(state, locals).resolve(state.stmts)
	if state.PrintErrors() {
		t.Fatalf("%s: %s", source, tp.errors)
	}
	return state, locals
}

func checkDepth(t *testing.T, locals map[expr]int, e expr, depth int) {
	t.Helper()
	found, ok := locals[e]
	if depth < 0 {
		if ok {
			t.Errorf("%s should be global, resolved at depth %d", formatExpr(e), found)
		}
		return
	}
	if !ok {
		t.Errorf("%s should resolve at depth %d, it is global", formatExpr(e), depth)
		return
	}
	if found != depth {
		t.Errorf("%s should resolve at depth %d instead of %d", formatExpr(e), depth, found)
	}
}

func TestResolveShadowing(t *testing.T) {
	state, locals := resolveSource(t, `
		{
			var a = "outer";
			{
				var a = "inner";
				print a;
			}
			print a;
		}
	`)
	outer := state.stmts[0].(*blockStmt)
	inner := outer.stmts[1].(*blockStmt)

	innerRef := inner.stmts[1].(*printStmt).expression
	outerRef := outer.stmts[2].(*printStmt).expression
	checkDepth(t, locals, innerRef, 0)
	checkDepth(t, locals, outerRef, 0)
}

func TestResolveClosure(t *testing.T) {
	state, locals := resolveSource(t, `
		var g = 1;
		{
			var a = 1;
			fun f(p) {
				print a;
				print p;
				print g;
				a = p;
			}
		}
	`)
	block := state.stmts[1].(*blockStmt)
	f := block.stmts[1].(*functionStmt)

	checkDepth(t, locals, f.body[0].(*printStmt).expression, 1)
	checkDepth(t, locals, f.body[1].(*printStmt).expression, 0)
	checkDepth(t, locals, f.body[2].(*printStmt).expression, -1)
	checkDepth(t, locals, f.body[3].(*expressionStmt).expression, 1)
}

func TestResolveClassScopes(t *testing.T) {
	state, locals := resolveSource(t, `
		class A {}
		class B < A {
			m() {
				super.m();
				this;
			}
		}
	`)
	b := state.stmts[1].(*classStmt)
	m := b.methods[0]

	call := m.body[0].(*expressionStmt).expression.(*callExpr)
	checkDepth(t, locals, call.callee, 2)
	checkDepth(t, locals, m.body[1].(*expressionStmt).expression, 1)
	checkDepth(t, locals, b.superclass, -1)
}

func TestResolveErrors(t *testing.T) {
	checkCompileError(t, "return 1;", "[line 1] Error at 'return': Can't return from top-level code.")
	checkCompileError(t, "print this;", "[line 1] Error at 'this': Can't use 'this' outside of a class.")
	checkCompileError(t, "fun f() { this; }", "[line 1] Error at 'this': Can't use 'this' outside of a class.")
	checkCompileError(t, "super.x;", "[line 1] Error at 'super': Can't use 'super' outside of a class.")
	checkCompileError(t,
		"class A { m() { super.m(); } }",
		"[line 1] Error at 'super': Can't use 'super' in a class with no superclass.")
	checkCompileError(t, "class A < A {}", "[line 1] Error at 'A': A class can't inherit from itself.")
	checkCompileError(t, "{ var a = a; }", "[line 1] Error at 'a': Can't read local variable in its own initializer.")
	checkCompileError(t,
		"{ var a = 1; var a = 2; }",
		"[line 1] Error at 'a': Already a variable with this name in this scope.")
	checkCompileError(t,
		"fun f(a, a) {}",
		"[line 1] Error at 'a': Already a variable with this name in this scope.")
	checkCompileError(t,
		"class A { init() { return 1; } }",
		"[line 1] Error at 'return': Can't return a value from an initializer.")

	// Every resolver error is reported, in source order.
	checkCompileError(t,
		"return;\nprint this;",
		"[line 1] Error at 'return': Can't return from top-level code.",
		"[line 2] Error at 'this': Can't use 'this' outside of a class.")
}

func TestResolveAllowed(t *testing.T) {
	checkOutput(t, "var a = 1; var a = 2; print a;", "2")
	checkOutput(t, "class A { init() { return; } } print A();", "A instance")
	checkOutput(t, "fun f() { return; } print f();", "nil")
}
