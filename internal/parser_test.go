package internal

import (
	"fmt"
	"strings"
	"testing"
)

func parseSource(source string) (*interpreterState, *testPrinter) {
	tp := &testPrinter{}
	state := newInterpreterState(source, tp)
	lexer := &lexer{
		line:  1,
		state: state,
	}
	lexer.scan()
	parser := &parser{
		state: state,
	}
	parser.parse()
	return state, tp
}

func parseExpression(t *testing.T, source string) expr {
	t.Helper()
	state, tp := parseSource(source + ";")
	if state.PrintErrors() {
		t.Fatalf("%s: %s", source, tp.errors)
	}
	if len(state.stmts) != 1 {
		t.Fatalf("%s: expected a single statement, got %d", source, len(state.stmts))
	}
	st, ok := state.stmts[0].(*expressionStmt)
	if !ok {
		t.Fatalf("%s: expected an expression statement, got %T", source, state.stmts[0])
	}
	return st.expression
}

func checkTree(t *testing.T, source string, tree string) {
	t.Helper()
	tp := &testPrinter{}
	if !PrintTree(source, tp) {
		t.Errorf("%s: unexpected errors\n%s", source, tp.errors)
		return
	}
	if !tp.Equals(tree) {
		t.Errorf("\nSource:\n----\n%s\n----\nExpected:\n----\n%s\n----\nFound:\n----\n%s----", source, tree, tp.printed)
	}
}

func checkCompileError(t *testing.T, source string, expected ...string) {
	t.Helper()
	tp := &testPrinter{}
	if !RunSource(source, tp) {
		t.Errorf("%s: expected an error", source)
	}
	if tp.printed != "" {
		t.Errorf("%s: nothing should run, got %q", source, tp.printed)
	}
	result := strings.Join(expected, "\n") + "\n"
	if tp.errors != result {
		t.Errorf("\nSource:\n----\n%s\n----\nExpected:\n----\n%s----\nFound:\n----\n%s----", source, result, tp.errors)
	}
}

func TestParseExpressions(t *testing.T) {
	checkTree(t, "-123 * (45.67);", "(* (- 123) (group 45.67))")
	checkTree(t, "1 + 2 * 3 - 4;", "(- (+ 1 (* 2 3)) 4)")
	checkTree(t, "1 == 2 < 3;", "(== 1 (< 2 3))")
	checkTree(t, "!-a;", "(! (- a))")
	checkTree(t, "a or b and c;", "(or a (and b c))")
	checkTree(t, `"str" + nil + true;`, `(+ (+ "str" nil) true)`)

	checkTree(t, "a = b = c;", "(= a (= b c))")
	checkTree(t, "a.b.c = d;", "(= (. (. a b) c) d)")
	checkTree(t, "x = 1 ? 2 : 3;", "(?: (= x 1) 2 3)")
	checkTree(t, "a ? b : c ? d : e;", "(?: a b (?: c d e))")
	checkTree(t, "a ? b ? c : d : e;", "(?: a (?: b c d) e)")
	checkTree(t, "a, b, c;", "(, (, a b) c)")
	checkTree(t, "a, b ? c : d;", "(, a (?: b c d))")

	checkTree(t, "f(1)(2);", "(call (call f 1) 2)")
	checkTree(t, "f(a, b);", "(call f a b)")
	checkTree(t, "f((a, b));", "(call f (group (, a b)))")
	checkTree(t, "f();", "(call f)")
	checkTree(t, "obj.method(1).field;", "(. (call (. obj method) 1) field)")
}

func TestParseStatements(t *testing.T) {
	checkTree(t, "var a;", "(var a)")
	checkTree(t, "var a = 1;", "(var a 1)")
	checkTree(t, "print 1;", "(print 1)")
	checkTree(t, "{ var a = 1; print a; }", "(block (var a 1) (print a))")
	checkTree(t, "if (a) print 1; else print 2;", "(if a (print 1) (print 2))")
	checkTree(t, "while (a) { break; }", "(while a (block (break)))")

	checkTree(t,
		"for (var i = 0; i < 3; i = i + 1) print i;",
		"(block (var i 0) (while (< i 3) (print i) (= i (+ i 1))))")
	checkTree(t, "for (;;) {}", "(while true (block))")
	checkTree(t, "for (i = 0; ; ) continue;", "(block (= i 0) (while true (continue)))")

	checkTree(t, "fun add(a, b) { return a + b; }", "(fun add (a b) (return (+ a b)))")
	checkTree(t, "fun f() { return; }", "(fun f () (return))")
	checkTree(t,
		"class B < A { init(x) { this.x = x; } get() { return super.get(); } }",
		"(class B < A (method init (x) (= (. this x) x)) (method get () (return (call (super get)))))")
}

func TestParseErrors(t *testing.T) {
	checkCompileError(t, "a + b = c;", "[line 1] Error at '=': Invalid assignment target.")
	checkCompileError(t, "(a) = 1;", "[line 1] Error at '=': Invalid assignment target.")
	checkCompileError(t, "print 1", "[line 1] Error at end: Expect ';' after value.")
	checkCompileError(t, "var 1 = 2;", "[line 1] Error at '1': Expect variable name.")
	checkCompileError(t, "(1 + 2;", "[line 1] Error at ';': Expect ')' after expression.")
	checkCompileError(t, "true ? 1;", "[line 1] Error at ';': Expect ':' after then branch of conditional expression.")
	checkCompileError(t, "a.;", "[line 1] Error at ';': Expect property name after '.'.")
	checkCompileError(t, "class { }", "[line 1] Error at '{': Expect class name.")
	checkCompileError(t, "fun (a) {}", "[line 1] Error at '(': Expect function name.")
	checkCompileError(t, "fun f(1) {}", "[line 1] Error at '1': Expect parameter name.")
	checkCompileError(t, "{ print 1;", "[line 1] Error at end: Expect '}' after block.")

	checkCompileError(t, "break;", "[line 1] Error at 'break': Can't use 'break' outside of a loop.")
	checkCompileError(t, "if (true) continue;", "[line 1] Error at 'continue': Can't use 'continue' outside of a loop.")
	checkCompileError(t,
		"while (true) { fun f() { break; } }",
		"[line 1] Error at 'break': Can't use 'break' outside of a loop.")

	checkCompileError(t, "print 1;\n\n@",
		"[line 3] Error: Unexpected character.")
	checkCompileError(t, `print "unterminated`,
		"[line 1] Error: Unterminated string.",
		"[line 1] Error at end: Expect expression.")
}

func TestParseRecovers(t *testing.T) {
	checkCompileError(t, "print 1 +;\nprint 2;\nvar = 3;\nprint 4;",
		"[line 1] Error at ';': Expect expression.",
		"[line 3] Error at '=': Expect variable name.")

	state, _ := parseSource("print 1 +;\nprint 2;\nvar = 3;\nprint 4;")
	if len(state.stmts) != 2 {
		t.Errorf("expected the two valid statements to survive, got %d", len(state.stmts))
	}

	// An invalid assignment target does not throw away the statement.
	state, _ = parseSource("a + b = c; print 1;")
	if len(state.stmts) != 2 || len(state.errors) != 1 {
		t.Errorf("expected 2 statements and 1 error, got %d and %d", len(state.stmts), len(state.errors))
	}

	checkCompileError(t, "{\nvar a = ;\nprint 1;\n}\nvar b = ;",
		"[line 2] Error at ';': Expect expression.",
		"[line 5] Error at ';': Expect expression.")
}

func TestParseLimits(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "a"
	}
	checkCompileError(t,
		"f("+strings.Join(args, ", ")+");",
		"[line 1] Error at 'a': Can't have more than 255 arguments.")

	params := make([]string, 256)
	for i := range params {
		params[i] = fmt.Sprintf("p%d", i)
	}
	checkCompileError(t,
		"fun f("+strings.Join(params, ", ")+") {}",
		"[line 1] Error at 'p255': Can't have more than 255 parameters.")

	tp := &testPrinter{}
	if !PrintTree("f("+strings.Join(args[:255], ", ")+");", tp) {
		t.Errorf("255 arguments should be accepted: %s", tp.errors)
	}
}

func TestParseSourceRoundTrip(t *testing.T) {
	sources := []string{
		"-123 * (45.67)",
		"1 + 2 * 3 - 4 / 5",
		"(1 + 2) * 3",
		"!(a == b) != !c",
		"a = b = c",
		"a.b.c = d(1, 2)(3)",
		"x = 1 ? 2 : 3",
		"a ? b : c ? d : e",
		"(a ? b : c) ? d : e",
		"a, b, c",
		"a, (b, c)",
		"f((a, b), c)",
		"a or b and c or !d",
		"(a or b) and c",
		`"str" + nil + true + false`,
		"this.x = super.y",
		"--a - -b",
		"obj.method(a ? b : c).field",
	}
	for _, source := range sources {
		first := parseExpression(t, source)
		printed := sourceExpr(first)
		second := parseExpression(t, printed)

		if formatExpr(first) != formatExpr(second) {
			t.Errorf("%s: printed as %s which parses to %s instead of %s",
				source, printed, formatExpr(second), formatExpr(first))
		}
		if sourceExpr(second) != printed {
			t.Errorf("%s: printing is not stable: %s then %s", source, printed, sourceExpr(second))
		}
	}
}
