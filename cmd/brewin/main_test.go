package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const greeterProgram = `(class main
  (field string name "")
  (method void main ()
    (begin
      (inputs name)
      (print "hello " name))))
`

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"brewin", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"brewin", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"brewin"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	writeUsage(&buf, "brewin")
	for _, want := range []string{"run [flags] <script>", "analyze", "fmt", "repl", "-v1", "-input"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("usage missing %q:\n%s", want, buf.String())
		}
	}
}

func TestRunCommandCheckOnly(t *testing.T) {
	scriptPath := writeScript(t, greeterProgram)

	if err := runCommand([]string{"-check", scriptPath}); err != nil {
		t.Fatalf("runCommand check failed: %v", err)
	}
}

func TestRunCommandCheckReportsLoadErrors(t *testing.T) {
	scriptPath := writeScript(t, "(class helper (method void go () (print 1)))\n")

	err := runCommand([]string{"-check", scriptPath})
	if err == nil {
		t.Fatalf("expected missing main error")
	}
	if !strings.Contains(err.Error(), "load failed") || !strings.Contains(err.Error(), "TypeError") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandReadsInputFile(t *testing.T) {
	scriptPath := writeScript(t, greeterProgram)
	inputPath := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(inputPath, []byte("world\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-input", inputPath, scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if out != "hello world\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestRunCommandModeSelectsLanguageLevel(t *testing.T) {
	scriptPath := writeScript(t, `(class main
  (method void main ()
    (let ((int x 5))
      (print x))))
`)
	inputPath := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(inputPath, nil, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-input", inputPath, scriptPath})
	})
	if err != nil {
		t.Fatalf("extended run failed: %v", err)
	}
	if out != "5\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}

	err = runCommand([]string{"-v1", "-check", scriptPath})
	if err == nil {
		t.Fatalf("expected base mode load error for typed method")
	}
}

func TestRunCommandReportsRuntimeErrors(t *testing.T) {
	scriptPath := writeScript(t, `(class main
  (method main ()
    (begin
      (print "before")
      (print (/ 1 0)))))
`)
	inputPath := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(inputPath, nil, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-v1", "-input", inputPath, scriptPath})
	})
	if err == nil {
		t.Fatalf("expected division fault")
	}
	if !strings.Contains(err.Error(), "execution failed") || !strings.Contains(err.Error(), "FaultError (line 5)") {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "before\n" {
		t.Fatalf("output before the fault should be kept, got %q", out)
	}
}

func TestRunCommandStepBudget(t *testing.T) {
	scriptPath := writeScript(t, `(class main
  (method main ()
    (while true (print "tick"))))
`)
	inputPath := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(inputPath, nil, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	_, err := captureStdout(t, func() error {
		return runCommand([]string{"-v1", "-steps", "50", "-input", inputPath, scriptPath})
	})
	if err == nil {
		t.Fatalf("expected step quota error")
	}
	if !strings.Contains(err.Error(), "step quota exceeded") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandRequiresScriptPath(t *testing.T) {
	err := runCommand(nil)
	if err == nil {
		t.Fatalf("expected script path error")
	}
	if !strings.Contains(err.Error(), "script path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenInputMissingFile(t *testing.T) {
	_, _, err := openInput(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatalf("expected open error")
	}
	if !strings.Contains(err.Error(), "open input") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeCommandNoIssues(t *testing.T) {
	scriptPath := writeScript(t, `(class main
  (method main ()
    (print (call me twice 2)))
  (method twice (n)
    (return (* n 2))))
`)

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{"-v1", scriptPath})
	})
	if err != nil {
		t.Fatalf("analyzeCommand failed: %v", err)
	}
	if !strings.Contains(out, "No issues found") {
		t.Fatalf("unexpected analyze output: %q", out)
	}
}

func TestAnalyzeCommandReportsUnreachableStatements(t *testing.T) {
	scriptPath := writeScript(t, `(class main
  (method main ()
    (begin
      (return)
      (print "never"))))
`)

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{"-v1", scriptPath})
	})
	if err == nil {
		t.Fatalf("expected analyze command to report lint failures")
	}
	if !strings.Contains(err.Error(), "analysis found 1 issue(s)") {
		t.Fatalf("unexpected analyze error: %v", err)
	}
	if !strings.Contains(out, ":5:7: unreachable statement (main.main)") {
		t.Fatalf("expected unreachable statement warning, got %q", out)
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.brewin")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
