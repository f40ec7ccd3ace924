package internal

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "golox.yaml")
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
max_call_depth: 64
log_level: debug
color: false
prompt: "lox> "
history_file: /tmp/golox_history
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := Config{
		MaxCallDepth: 64,
		LogLevel:     "debug",
		Color:        false,
		Prompt:       "lox> ",
		HistoryFile:  "/tmp/golox_history",
	}
	if cfg != expected {
		t.Errorf("expected %+v, got %+v", expected, cfg)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "log_level: info\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level should be info, got %s", cfg.LogLevel)
	}
	defaults := DefaultConfig()
	if cfg.MaxCallDepth != defaults.MaxCallDepth || cfg.Prompt != defaults.Prompt || !cfg.Color {
		t.Errorf("unset keys should keep their defaults, got %+v", cfg)
	}

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Errorf("%q: %v", path, err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("%q: expected defaults, got %+v", path, cfg)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "max_call_depth: 0\n")); err == nil {
		t.Error("a zero call depth should be rejected")
	}
	if _, err := LoadConfig(writeConfig(t, "max_call_depth: [1, 2]\n")); err == nil {
		t.Error("a malformed file should be rejected")
	}
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	if _, err := NewLogger(cfg); err == nil {
		t.Error("an unknown level should be rejected")
	}

	cfg.LogLevel = "debug"
	cfg.Color = false
	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", logger.GetLevel())
	}

	var buf bytes.Buffer
	logger.SetOutput(&buf)

	tp := &testPrinter{}
	if err := NewInterpreter(tp, WithLogger(logger)).Run(`print 1;`); err != nil {
		t.Fatal(err)
	}
	for _, stage := range []string{"stage=lex", "stage=parse", "stage=resolve"} {
		if !strings.Contains(buf.String(), stage) {
			t.Errorf("log should mention %s:\n%s", stage, buf.String())
		}
	}
	if !tp.Equals("1") {
		t.Errorf("logging must not touch program output, got %q", tp.printed)
	}
}
