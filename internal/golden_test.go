package internal

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

// goldenTest runs testdata/<name>.lox and compares everything it prints,
// program output followed by diagnostics, to testdata/<name>.expected.
func goldenTest(t *testing.T, name string, wantError bool) {
	t.Helper()

	source, err := ioutil.ReadFile(filepath.Join("testdata", name+".lox"))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	expected, err := ioutil.ReadFile(filepath.Join("testdata", name+".expected"))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}

	tp := &testPrinter{}
	if hadError := RunSource(string(source), tp); hadError != wantError {
		t.Errorf("%s: hadError should be %v\n%s", name, wantError, tp.errors)
	}

	expectedLines := strings.Split(strings.TrimRight(string(expected), "\n"), "\n")
	gotLines := strings.Split(strings.TrimRight(tp.printed+tp.errors, "\n"), "\n")

	maxLines := len(expectedLines)
	if len(gotLines) > maxLines {
		maxLines = len(gotLines)
	}
	for i := 0; i < maxLines; i++ {
		exp, got := "<missing>", "<missing>"
		if i < len(expectedLines) {
			exp = expectedLines[i]
		}
		if i < len(gotLines) {
			got = gotLines[i]
		}
		if exp != got {
			t.Errorf("%s line %d: expected=%q got=%q", name, i+1, exp, got)
		}
	}
}

func TestGoldenClosures(t *testing.T) {
	goldenTest(t, "closures", false)
}

func TestGoldenClasses(t *testing.T) {
	goldenTest(t, "classes", false)
}

func TestGoldenControlFlow(t *testing.T) {
	goldenTest(t, "control_flow", false)
}

func TestGoldenRuntimeError(t *testing.T) {
	goldenTest(t, "runtime_error", true)
}

func TestGoldenCompileError(t *testing.T) {
	goldenTest(t, "compile_error", true)
}
