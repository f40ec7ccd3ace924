package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/sirupsen/logrus"

	"golox/internal"
)

// Exit codes follow sysexits.h.
const (
	exitUsage   = 64
	exitCompile = 65
	exitRuntime = 70
	exitIO      = 74
)

type stdPrinter struct {
	out    io.Writer
	errOut io.Writer
	red    *color.Color
}

func newStdPrinter(cfg internal.Config, out, errOut io.Writer) stdPrinter {
	// Colour only when the real stderr is a terminal.
	red := color.New()
	red.SetOutput(os.Stderr)
	if !cfg.Color {
		red.Disable()
	}
	return stdPrinter{
		out:    out,
		errOut: errOut,
		red:    red,
	}
}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Fprintln(s.out, a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return fmt.Fprint(s.writer(w), s.paint(fmt.Sprintf(format, a...)))
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return fmt.Fprint(s.writer(w), s.paint(fmt.Sprintln(a...)))
}

func (s stdPrinter) writer(w io.Writer) io.Writer {
	if w == os.Stderr {
		return s.errOut
	}
	return w
}

// paint colours a diagnostic, leaving trailing newlines outside the escape codes.
func (s stdPrinter) paint(msg string) string {
	body := strings.TrimRight(msg, "\n")
	return s.red.Red(body) + msg[len(body):]
}

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: golox [-config golox.yaml] [script.lox]")
		flag.PrintDefaults()
	}
	configPath := flag.String("config", os.Getenv("GOLOX_CONFIG"), "YAML configuration file")
	flag.Parse()

	os.Exit(run(*configPath, flag.Args()))
}

func run(configPath string, args []string) int {
	if len(args) > 1 {
		flag.Usage()
		return exitUsage
	}

	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	logger, err := internal.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	if len(args) == 0 {
		return runPrompt(cfg, logger)
	}
	return runFile(args[0], cfg, logger)
}

func runFile(path string, cfg internal.Config, logger *logrus.Logger) int {
	absPath, err := filepath.Abs(path)
	if err != nil {
		logger.WithError(err).WithField("path", path).Error("cannot resolve script path")
		return exitIO
	}

	b, err := ioutil.ReadFile(absPath)
	if err != nil {
		logger.WithError(err).WithField("path", absPath).Error("cannot read script")
		return exitIO
	}

	interp := internal.NewInterpreter(
		newStdPrinter(cfg, os.Stdout, os.Stderr),
		internal.WithConfig(cfg),
		internal.WithLogger(logger),
	)
	return exitCode(interp.Run(string(b)))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, internal.ErrCompile):
		return exitCompile
	default:
		return exitRuntime
	}
}
