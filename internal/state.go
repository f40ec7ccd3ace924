package internal

import (
	"errors"
	"fmt"
	"os"
)

type parseError struct {
	err   error
	line  int
	where string
}

// interpreterState stores the state of a single run: the source, what the
// front-end made of it and every compile-time error found on the way.
type interpreterState struct {
	errors []parseError
	source string
	tokens []token
	stmts  []stmt
	logger IPrinter
}

func newInterpreterState(source string, p IPrinter) *interpreterState {
	return &interpreterState{
		source: source,
		errors: make([]parseError, 0),
		logger: p,
	}
}

func (s *interpreterState) setError(err error, line int, where string) {
	s.errors = append(s.errors, parseError{
		err:   err,
		line:  line,
		where: where,
	})
}

// errorAt records err against tk, the way the parser and resolver report.
func (s *interpreterState) errorAt(tk *token, err error) {
	if tk.token == tkEOF {
		s.setError(err, tk.line, " at end")
		return
	}
	s.setError(err, tk.line, fmt.Sprintf(" at '%s'", tk.lexeme))
}

// syntaxPanic unwinds the parser up to the nearest declaration.
type syntaxPanic struct {
	err error
}

func (s *interpreterState) fatalError(err error, tk *token) {
	s.errorAt(tk, err)
	panic(syntaxPanic{err: err})
}

// Valid returns true if no compile-time error has been recorded
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

// PrintErrors prints all errors and reports whether there were any
func (s *interpreterState) PrintErrors() bool {
	for _, e := range s.errors {
		s.logger.Fprintf(os.Stderr, "[line %d] Error%s: %s\n", e.line, e.where, e.err)
	}
	return !s.Valid()
}

// ErrCompile is returned by Run when lexing, parsing or resolving failed.
var ErrCompile = errors.New("compile error")

// RuntimeError is the error that stops a running program.
type RuntimeError struct {
	Line int
	Err  error

	token *token
}

func newRuntimeError(tk *token, err error) *RuntimeError {
	return &RuntimeError{
		Line:  tk.line,
		Err:   err,
		token: tk,
	}
}

func (r *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", r.Err, r.Line)
}

func (r *RuntimeError) Unwrap() error {
	return r.Err
}

// detailError carries a message with specifics while still matching its
// sentinel through errors.Is.
type detailError struct {
	kind error
	msg  string
}

func detailf(kind error, format string, a ...interface{}) error {
	return &detailError{kind: kind, msg: fmt.Sprintf(format, a...)}
}

func (d *detailError) Error() string {
	return d.msg
}

func (d *detailError) Unwrap() error {
	return d.kind
}

// Lexer errors
var errUnexpectedChar = errors.New("Unexpected character.")
var errUnterminatedString = errors.New("Unterminated string.")

// Parser errors
var errExpectExpr = errors.New("Expect expression.")
var errInvalidAssignTarget = errors.New("Invalid assignment target.")
var errMaxArguments = errors.New("Can't have more than 255 arguments.")
var errMaxParameters = errors.New("Can't have more than 255 parameters.")
var errExpectSemicolonValue = errors.New("Expect ';' after value.")
var errExpectSemicolonExpr = errors.New("Expect ';' after expression.")
var errExpectSemicolonVar = errors.New("Expect ';' after variable declaration.")
var errExpectSemicolonCond = errors.New("Expect ';' after loop condition.")
var errExpectSemicolonReturn = errors.New("Expect ';' after return value.")
var errExpectSemicolonBreak = errors.New("Expect ';' after 'break'.")
var errExpectSemicolonContinue = errors.New("Expect ';' after 'continue'.")
var errExpectVarName = errors.New("Expect variable name.")
var errExpectClassName = errors.New("Expect class name.")
var errExpectSuperclassName = errors.New("Expect superclass name.")
var errExpectClassBody = errors.New("Expect '{' before class body.")
var errUnclosedClassBody = errors.New("Expect '}' after class body.")
var errExpectFunctionName = errors.New("Expect function name.")
var errExpectMethodName = errors.New("Expect method name.")
var errExpectParenFunction = errors.New("Expect '(' after function name.")
var errExpectParenMethod = errors.New("Expect '(' after method name.")
var errExpectFunctionBody = errors.New("Expect '{' before function body.")
var errExpectMethodBody = errors.New("Expect '{' before method body.")
var errExpectParamName = errors.New("Expect parameter name.")
var errUnclosedParams = errors.New("Expect ')' after parameters.")
var errUnclosedBlock = errors.New("Expect '}' after block.")
var errExpectParenFor = errors.New("Expect '(' after 'for'.")
var errUnclosedFor = errors.New("Expect ')' after for clauses.")
var errExpectParenIf = errors.New("Expect '(' after 'if'.")
var errUnclosedIf = errors.New("Expect ')' after if condition.")
var errExpectParenWhile = errors.New("Expect '(' after 'while'.")
var errUnclosedWhile = errors.New("Expect ')' after condition.")
var errUnclosedArguments = errors.New("Expect ')' after arguments.")
var errUnclosedParen = errors.New("Expect ')' after expression.")
var errExpectColon = errors.New("Expect ':' after then branch of conditional expression.")
var errExpectProp = errors.New("Expect property name after '.'.")
var errExpectSuperDot = errors.New("Expect '.' after 'super'.")
var errExpectSuperMethod = errors.New("Expect superclass method name.")
var errBreakOutsideLoop = errors.New("Can't use 'break' outside of a loop.")
var errContinueOutsideLoop = errors.New("Can't use 'continue' outside of a loop.")

// Resolver errors
var errReadInInitializer = errors.New("Can't read local variable in its own initializer.")
var errAlreadyDeclared = errors.New("Already a variable with this name in this scope.")
var errTopLevelReturn = errors.New("Can't return from top-level code.")
var errInitializerReturn = errors.New("Can't return a value from an initializer.")
var errThisOutsideClass = errors.New("Can't use 'this' outside of a class.")
var errSuperOutsideClass = errors.New("Can't use 'super' outside of a class.")
var errSuperWithoutSuperclass = errors.New("Can't use 'super' in a class with no superclass.")
var errInheritFromSelf = errors.New("A class can't inherit from itself.")

// Runtime errors
var errOperandNumber = errors.New("Operand must be a number.")
var errOperandsNumbers = errors.New("Operands must be numbers.")
var errOperandsAdd = errors.New("Operands must be two numbers or at least one string.")
var errDivisionByZero = errors.New("Division by zero.")
var errUndefinedVar = errors.New("Undefined variable.")
var errOnlyCallable = errors.New("Can only call functions and classes.")
var errInvalidNumberArguments = errors.New("Wrong number of arguments.")
var errOnlyInstanceProps = errors.New("Only instances have properties.")
var errOnlyInstanceFields = errors.New("Only instances have fields.")
var errUndefinedProp = errors.New("Undefined property.")
var errSuperclassNotClass = errors.New("Superclass must be a class.")
var errStackOverflow = errors.New("Stack overflow.")
