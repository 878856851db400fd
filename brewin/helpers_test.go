package brewin

import (
	"context"
	"slices"
	"testing"
)

func compileScriptWithConfig(t testing.TB, cfg Config, source string) *Script {
	t.Helper()
	engine := MustNewEngine(cfg)
	script, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return script
}

func runScript(t testing.TB, mode Mode, source string, input ...string) []string {
	t.Helper()
	script := compileScriptWithConfig(t, Config{Mode: mode}, source)
	output, err := script.Run(context.Background(), RunOptions{Input: NewLineInput(input...)})
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	return output
}

// runError loads and runs source, expecting it to fail at either stage.
func runError(t testing.TB, mode Mode, source string, input ...string) ([]string, error) {
	t.Helper()
	engine := MustNewEngine(Config{Mode: mode})
	script, err := engine.Compile(source)
	if err != nil {
		return nil, err
	}
	output, err := script.Run(context.Background(), RunOptions{Input: NewLineInput(input...)})
	if err == nil {
		t.Fatalf("expected run to fail, got output %q", output)
	}
	return output, err
}

func requireErrorAt(t testing.TB, mode Mode, source string, kind ErrorKind, line int, input ...string) {
	t.Helper()
	_, err := runError(t, mode, source, input...)
	if err == nil {
		t.Fatalf("expected %s at line %d, got success", kind, line)
	}
	gotKind, gotLine, ok := KindAndLine(err)
	if !ok {
		t.Fatalf("expected a Brewin error, got %v", err)
	}
	if gotKind != kind || gotLine != line {
		t.Fatalf("expected %s at line %d, got %s at line %d: %v", kind, line, gotKind, gotLine, err)
	}
}

func requireErrorKind(t testing.TB, mode Mode, source string, kind ErrorKind, input ...string) {
	t.Helper()
	_, err := runError(t, mode, source, input...)
	if err == nil {
		t.Fatalf("expected %s, got success", kind)
	}
	gotKind, _, ok := KindAndLine(err)
	if !ok || gotKind != kind {
		t.Fatalf("expected %s, got %v", kind, err)
	}
}

func requireOutput(t testing.TB, got []string, want ...string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("output mismatch:\n got  %q\n want %q", got, want)
	}
}
