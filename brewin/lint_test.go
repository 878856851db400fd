package brewin

import "testing"

func TestLintReportsUnreachableAndUncalled(t *testing.T) {
	script := compileScriptWithConfig(t, Config{Mode: ModeBase}, `(class main
  (method helper () (return 1))
  (method orphan () (print "never"))
  (method main ()
    (begin
      (print (call me helper))
      (if true
        (return)
        (return))
      (print "dead"))))`)

	warnings := script.Lint()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %#v", warnings)
	}
	if w := warnings[0]; w.Pos.Line != 3 || w.Message != "method is never called" || w.Method != "main.orphan" {
		t.Fatalf("unexpected first warning %#v", w)
	}
	if w := warnings[1]; w.Pos.Line != 10 || w.Message != "unreachable statement" || w.Method != "main.main" {
		t.Fatalf("unexpected second warning %#v", w)
	}
}

func TestLintCleanProgram(t *testing.T) {
	script := compileScriptWithConfig(t, Config{Mode: ModeExtended}, `(class main
  (method int twice ((int x)) (return (* 2 x)))
  (method void main ()
    (let ((int n 4))
      (print (call me twice n)))))`)
	if warnings := script.Lint(); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %#v", warnings)
	}
}

func TestLintReportsUncalledOverload(t *testing.T) {
	script := compileScriptWithConfig(t, Config{Mode: ModeBase}, `(class main
  (method area (w) (return (* w w)))
  (method area (w h) (return (* w h)))
  (method main ()
    (print (call me area 3))))`)

	warnings := script.Lint()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %#v", warnings)
	}
	if w := warnings[0]; w.Pos.Line != 3 || w.Message != "method is never called" || w.Method != "main.area" {
		t.Fatalf("unexpected warning %#v", w)
	}
}
