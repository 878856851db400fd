package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mgomes/brewin/brewin"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	base := fs.Bool("v1", false, "run in base mode (no let, inheritance or static types)")
	trace := fs.Bool("trace", false, "log loading, calls and statements to stderr")
	checkOnly := fs.Bool("check", false, "only load the program without executing")
	inputPath := fs.String("input", "", "read inputi/inputs lines from this file")
	steps := fs.Int("steps", 0, "statement budget for the run (0 keeps the default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("brewin run: script path required")
	}

	source, err := readSource(remaining[0])
	if err != nil {
		return err
	}

	cfg := brewin.Config{StepQuota: *steps}
	if *base {
		cfg.Mode = brewin.ModeBase
	}
	if *trace {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	engine, err := brewin.NewEngine(cfg)
	if err != nil {
		return err
	}
	script, err := engine.Compile(source)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	if *checkOnly {
		return nil
	}

	input, closeInput, err := openInput(*inputPath)
	if err != nil {
		return err
	}
	defer closeInput()

	_, err = script.Run(context.Background(), brewin.RunOptions{
		Input:  input,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

func readSource(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

// openInput picks the line source for inputi/inputs: a file when one is
// named, a line editor when stdin is a terminal, plain stdin otherwise.
func openInput(path string) (brewin.LineSource, func(), error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		return brewin.NewReaderInput(f), func() { _ = f.Close() }, nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		console := newConsoleInput("")
		return console, console.Close, nil
	}
	return brewin.NewReaderInput(os.Stdin), func() {}, nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	writeUsage(os.Stderr, filepath.Base(os.Args[0]))
}

func writeUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s <command> [flags] [args]\n", prog)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run [flags] <script>     load and run a program")
	fmt.Fprintln(w, "  analyze <script>         report unreachable statements and unused methods")
	fmt.Fprintln(w, "  fmt [-w] [-check] <path> normalize source layout")
	fmt.Fprintln(w, "  repl                     start an interactive session")
	fmt.Fprintln(w, "Run flags:")
	fmt.Fprintln(w, "  -v1")
	fmt.Fprintln(w, "    run in base mode (no let, inheritance or static types)")
	fmt.Fprintln(w, "  -trace")
	fmt.Fprintln(w, "    log loading, calls and statements to stderr")
	fmt.Fprintln(w, "  -check")
	fmt.Fprintln(w, "    only load the program without executing")
	fmt.Fprintln(w, "  -input <file>")
	fmt.Fprintln(w, "    read inputi/inputs lines from a file instead of stdin")
	fmt.Fprintln(w, "  -steps <n>")
	fmt.Fprintln(w, "    statement budget for the run")
	fmt.Fprintln(w, "Files use the .brewin extension.")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
