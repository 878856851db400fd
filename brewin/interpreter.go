package brewin

import (
	"fmt"
	"log/slog"
)

// Mode selects the language level a program is loaded under.
type Mode int

const (
	// ModeExtended adds static types, let blocks, inheritance and super.
	ModeExtended Mode = iota
	// ModeBase is the dynamically typed language without inheritance.
	ModeBase
)

func (m Mode) String() string {
	switch m {
	case ModeExtended:
		return "extended"
	case ModeBase:
		return "base"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Config controls the language level and execution bounds of an Engine.
type Config struct {
	Mode           Mode
	StepQuota      int
	RecursionLimit int
	MaxObjects     int
	Logger         *slog.Logger
}

// Engine loads and runs Brewin programs with deterministic limits.
type Engine struct {
	config Config
	logger *slog.Logger
}

// NewEngine constructs an Engine, filling in defaults for unset limits.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Mode != ModeExtended && cfg.Mode != ModeBase {
		return nil, fmt.Errorf("unknown mode %d", int(cfg.Mode))
	}
	if cfg.StepQuota <= 0 {
		cfg.StepQuota = 10_000_000
	}
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = 1000
	}
	if cfg.MaxObjects <= 0 {
		cfg.MaxObjects = 1_000_000
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{config: cfg, logger: logger}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

func (e *Engine) Mode() Mode { return e.config.Mode }

// ConfigSummary provides a human-readable description of the interpreter limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("mode=%s steps=%d recursion=%d objects=%d", e.config.Mode, e.config.StepQuota, e.config.RecursionLimit, e.config.MaxObjects)
}

// Compile parses source and loads the resulting program.
func (e *Engine) Compile(source string) (*Script, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, withSource(err, source)
	}
	return e.Load(prog)
}

// Load validates a parsed program and builds its class table. Every load
// failure is a Syntax, Name or Type error.
func (e *Engine) Load(prog *Program) (*Script, error) {
	table, err := buildClassTable(prog, e.config.Mode)
	if err != nil {
		return nil, withSource(err, prog.Source)
	}
	mainClass, entry, err := table.mainMethod()
	if err != nil {
		return nil, withSource(err, prog.Source)
	}
	for _, c := range table.order {
		super := ""
		if c.Super != nil {
			super = c.Super.Name
		}
		e.logger.Debug("class loaded", "class", c.Name, "super", super, "fields", len(c.Fields), "methods", len(c.Methods), "line", c.Pos.Line)
	}
	return &Script{engine: e, table: table, mainClass: mainClass, entry: entry, source: prog.Source, program: prog}, nil
}
