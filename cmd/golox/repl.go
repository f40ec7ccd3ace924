package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/labstack/gommon/color"
	"github.com/sirupsen/logrus"

	"golox/internal"
)

const continuationPrompt = "... "

func runPrompt(cfg internal.Config, logger *logrus.Logger) int {
	green := color.New()
	if !cfg.Color {
		green.Disable()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          green.Green(cfg.Prompt),
		HistoryFile:     expandHome(cfg.HistoryFile),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logger.WithError(err).Error("cannot start line editor")
		return exitIO
	}
	defer rl.Close()

	interp := internal.NewInterpreter(
		newStdPrinter(cfg, rl.Stdout(), rl.Stderr()),
		internal.WithConfig(cfg),
		internal.WithLogger(logger),
	)

	var pending strings.Builder
	depth := 0

	for {
		if depth > 0 {
			rl.SetPrompt(green.Green(continuationPrompt))
		} else {
			rl.SetPrompt(green.Green(cfg.Prompt))
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			pending.Reset()
			depth = 0
			continue
		}
		if err != nil {
			fmt.Fprintln(rl.Stdout())
			return 0
		}

		// Keep reading while a block is open.
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		pending.WriteString(line)
		pending.WriteString("\n")
		if depth > 0 {
			continue
		}
		depth = 0

		source := pending.String()
		pending.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		// Errors are already reported; the session keeps its state.
		if err := interp.Run(source); err != nil {
			logger.WithError(err).Debug("line failed")
		}
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
