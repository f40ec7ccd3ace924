package main

import (
	"fmt"
	"go/format"
	"io/ioutil"
	"log"
	"os"
	"strings"
)

//go:generate go run . Expr ../../internal/expr.go
//go:generate go run . Stmt ../../internal/stmt.go

var nodes = map[string][]string{
	"Stmt": {
		"Block: stmts []stmt",
		"Break: keyword *token",
		"Class: name *token, superclass *variableExpr, methods []*functionStmt",
		"Continue: keyword *token",
		"Expression: expression expr",
		"Function: name *token, params []*token, body []stmt",
		"If: condition expr, thenBranch stmt, elseBranch stmt",
		"Print: expression expr",
		"Return: keyword *token, value expr",
		"Var: name *token, initializer expr",
		"While: condition expr, body stmt, increment expr",
	},
	"Expr": {
		"Assign: name *token, value expr",
		"Binary: left expr, operator *token, right expr",
		"Call: callee expr, paren *token, arguments []expr",
		"Get: object expr, name *token",
		"Grouping: expression expr",
		"Literal: value interface{}",
		"Logical: left expr, operator *token, right expr",
		"Set: object expr, name *token, value expr",
		"Super: keyword *token, method *token",
		"Ternary: test expr, question *token, ifTrue expr, ifFalse expr",
		"This: keyword *token",
		"Unary: operator *token, right expr",
		"Variable: name *token",
	},
}

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: ast Expr|Stmt /path/to/output.go")
		os.Exit(64)
	}

	types, ok := nodes[os.Args[1]]
	if !ok {
		log.Fatalf("unknown node category %q", os.Args[1])
	}

	src, err := format.Source([]byte(generateAst(os.Args[1], types)))
	if err != nil {
		log.Fatal(err)
	}

	if err := ioutil.WriteFile(os.Args[2], src, 0644); err != nil {
		log.Fatal(err)
	}
}

func generateAst(baseName string, types []string) string {
	out := "// Code generated by cmd/ast; DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Start base interface
	base := strings.ToLower(baseName)
	out += "type " + base + " interface {\n"
	out += "\t" + base + "Node()\n"
	out += "}\n\n"
	// End base interface

	// Start structs
	for _, t := range types {
		typeDef := strings.SplitN(t, ":", 2)
		structName := strings.TrimSpace(typeDef[0])
		structFields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, structName, structFields)
	}
	// End structs

	return out
}

func generateType(baseName, name, fields string) string {
	// Start Structure Definition
	structName := strings.ToLower(string(name[0])) + name[1:] + baseName
	out := "type " + structName + " struct {\n"
	for _, field := range strings.Split(fields, ",") {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"
	// End Structure Definition

	// Start marker method
	out += "func (*" + structName + ") " + strings.ToLower(baseName) + "Node() {}\n\n"
	// End marker method

	return out
}
