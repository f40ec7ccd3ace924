package internal

import (
	"fmt"
	"strings"
)

// PrintTree prints the parenthesized form of every parsed statement.
func (state *interpreterState) PrintTree() {
	for _, st := range state.stmts {
		state.logger.Println(formatStmt(st))
	}
}

// formatStmt renders a statement in prefix, fully parenthesized form.
func formatStmt(s stmt) string {
	switch st := s.(type) {
	case *expressionStmt:
		return formatExpr(st.expression)
	case *printStmt:
		return parenthesize("print", st.expression)
	case *varStmt:
		if st.initializer == nil {
			return "(var " + st.name.lexeme + ")"
		}
		return "(var " + st.name.lexeme + " " + formatExpr(st.initializer) + ")"
	case *blockStmt:
		out := "(block"
		for _, inner := range st.stmts {
			out += " " + formatStmt(inner)
		}
		return out + ")"
	case *ifStmt:
		out := fmt.Sprintf("(if %s %s", formatExpr(st.condition), formatStmt(st.thenBranch))
		if st.elseBranch != nil {
			out += " " + formatStmt(st.elseBranch)
		}
		return out + ")"
	case *whileStmt:
		out := fmt.Sprintf("(while %s %s", formatExpr(st.condition), formatStmt(st.body))
		if st.increment != nil {
			out += " " + formatExpr(st.increment)
		}
		return out + ")"
	case *functionStmt:
		return formatFunction("fun", st)
	case *returnStmt:
		if st.value == nil {
			return "(return)"
		}
		return parenthesize("return", st.value)
	case *breakStmt:
		return "(break)"
	case *continueStmt:
		return "(continue)"
	case *classStmt:
		out := "(class " + st.name.lexeme
		if st.superclass != nil {
			out += " < " + st.superclass.name.lexeme
		}
		for _, method := range st.methods {
			out += " " + formatFunction("method", method)
		}
		return out + ")"
	}
	panic(fmt.Sprintf("printer: unexpected statement %T", s))
}

func formatFunction(kind string, fn *functionStmt) string {
	params := make([]string, len(fn.params))
	for i, param := range fn.params {
		params[i] = param.lexeme
	}
	out := "(" + kind + " " + fn.name.lexeme + " (" + strings.Join(params, " ") + ")"
	for _, st := range fn.body {
		out += " " + formatStmt(st)
	}
	return out + ")"
}

// formatExpr renders an expression in prefix, fully parenthesized form:
// -123 * (45.67) prints as (* (- 123) (group 45.67)).
func formatExpr(e expr) string {
	switch ex := e.(type) {
	case *literalExpr:
		return printLiteral(ex.value)
	case *groupingExpr:
		return parenthesize("group", ex.expression)
	case *unaryExpr:
		return parenthesize(ex.operator.lexeme, ex.right)
	case *binaryExpr:
		return parenthesize(ex.operator.lexeme, ex.left, ex.right)
	case *logicalExpr:
		return parenthesize(ex.operator.lexeme, ex.left, ex.right)
	case *ternaryExpr:
		return parenthesize("?:", ex.test, ex.ifTrue, ex.ifFalse)
	case *variableExpr:
		return ex.name.lexeme
	case *assignExpr:
		return "(= " + ex.name.lexeme + " " + formatExpr(ex.value) + ")"
	case *callExpr:
		return parenthesize("call", append([]expr{ex.callee}, ex.arguments...)...)
	case *getExpr:
		return "(. " + formatExpr(ex.object) + " " + ex.name.lexeme + ")"
	case *setExpr:
		return "(= (. " + formatExpr(ex.object) + " " + ex.name.lexeme + ") " + formatExpr(ex.value) + ")"
	case *thisExpr:
		return "this"
	case *superExpr:
		return "(super " + ex.method.lexeme + ")"
	}
	panic(fmt.Sprintf("printer: unexpected expression %T", e))
}

func parenthesize(name string, exprs ...expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(formatExpr(e))
	}
	b.WriteString(")")
	return b.String()
}

func printLiteral(value interface{}) string {
	if s, ok := value.(loxString); ok {
		return s.Repr()
	}
	return stringify(value)
}

// sourceExpr renders an expression back to Lox source. Parentheses come
// only from grouping nodes, so the output of a parsed expression parses
// to the same tree.
func sourceExpr(e expr) string {
	switch ex := e.(type) {
	case *literalExpr:
		return printLiteral(ex.value)
	case *groupingExpr:
		return "(" + sourceExpr(ex.expression) + ")"
	case *unaryExpr:
		return ex.operator.lexeme + sourceExpr(ex.right)
	case *binaryExpr:
		if ex.operator.token == tkComma {
			return sourceExpr(ex.left) + ", " + sourceExpr(ex.right)
		}
		return sourceExpr(ex.left) + " " + ex.operator.lexeme + " " + sourceExpr(ex.right)
	case *logicalExpr:
		return sourceExpr(ex.left) + " " + ex.operator.lexeme + " " + sourceExpr(ex.right)
	case *ternaryExpr:
		return sourceExpr(ex.test) + " ? " + sourceExpr(ex.ifTrue) + " : " + sourceExpr(ex.ifFalse)
	case *variableExpr:
		return ex.name.lexeme
	case *assignExpr:
		return ex.name.lexeme + " = " + sourceExpr(ex.value)
	case *callExpr:
		args := make([]string, len(ex.arguments))
		for i, arg := range ex.arguments {
			args[i] = sourceExpr(arg)
		}
		return sourceExpr(ex.callee) + "(" + strings.Join(args, ", ") + ")"
	case *getExpr:
		return sourceExpr(ex.object) + "." + ex.name.lexeme
	case *setExpr:
		return sourceExpr(ex.object) + "." + ex.name.lexeme + " = " + sourceExpr(ex.value)
	case *thisExpr:
		return "this"
	case *superExpr:
		return "super." + ex.method.lexeme
	}
	panic(fmt.Sprintf("printer: unexpected expression %T", e))
}
