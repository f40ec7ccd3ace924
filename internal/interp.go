package internal

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger makes the interpreter log stage events to logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(i *Interpreter) {
		i.log = logger
	}
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(i *Interpreter) {
		i.config = cfg
	}
}

// Interpreter runs Lox source. Globals and variable resolutions survive
// between calls to Run, so a REPL can feed it one line at a time.
// Interpreters share nothing with each other.
type Interpreter struct {
	printer IPrinter
	config  Config
	log     *logrus.Logger

	exec *exec
}

// NewInterpreter creates an interpreter printing through p.
func NewInterpreter(p IPrinter, opts ...Option) *Interpreter {
	i := &Interpreter{
		printer: p,
		config:  DefaultConfig(),
		log:     discardLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.config.MaxCallDepth <= 0 {
		i.config.MaxCallDepth = DefaultConfig().MaxCallDepth
	}

	globals := newEnv(nil)
	defineGlobals(globals)

	i.exec = &exec{
		printer:  p,
		log:      i.log,
		globals:  globals,
		env:      globals,
		locals:   make(map[expr]int),
		maxDepth: i.config.MaxCallDepth,
	}
	return i
}

// Run lexes, parses, resolves and executes source. It returns ErrCompile
// when any compile-time error was reported, the *RuntimeError that stopped
// execution, or nil.
func (i *Interpreter) Run(source string) error {
	state := newInterpreterState(source, i.printer)

	lexer := &lexer{
		line:  1,
		state: state,
	}
	lexer.scan()
	i.log.WithFields(logrus.Fields{
		"stage":  "lex",
		"tokens": len(state.tokens),
		"errors": len(state.errors),
	}).Debug("scanned source")

	// Parse even after lexical errors so every problem is reported at once.
	parser := &parser{
		state: state,
	}
	parser.parse()
	i.log.WithFields(logrus.Fields{
		"stage":      "parse",
		"statements": len(state.stmts),
		"errors":     len(state.errors),
	}).Debug("parsed tokens")

	if state.PrintErrors() {
		return ErrCompile
	}

	resolver := newResolver(state, i.exec.locals)
	resolver.resolve(state.stmts)
	i.log.WithFields(logrus.Fields{
		"stage":  "resolve",
		"locals": len(i.exec.locals),
		"errors": len(state.errors),
	}).Debug("resolved scopes")

	if state.PrintErrors() {
		return ErrCompile
	}

	if err := i.exec.interpret(state.stmts); err != nil {
		i.log.WithFields(logrus.Fields{
			"stage": "exec",
		}).WithError(err).Debug("runtime error")
		i.printer.Fprintln(os.Stderr, err.Error())
		return err
	}
	return nil
}

// RunSource runs source on a fresh interpreter and reports whether any
// compile-time or runtime error occurred.
func RunSource(source string, p IPrinter) (hadError bool) {
	return NewInterpreter(p).Run(source) != nil
}

// PrintTree prints the parenthesized form of every statement in source.
// It returns false when the source does not parse.
func PrintTree(source string, p IPrinter) bool {
	state := newInterpreterState(source, p)
	lexer := &lexer{
		line:  1,
		state: state,
	}
	lexer.scan()

	parser := &parser{
		state: state,
	}
	parser.parse()

	if state.PrintErrors() {
		return false
	}

	state.PrintTree()
	return true
}
